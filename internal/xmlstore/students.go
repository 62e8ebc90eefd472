package xmlstore

import (
	"encoding/xml"
	"fmt"

	"rosterctl/internal/dataprocessing"
	"rosterctl/internal/domain"
	"rosterctl/internal/errors"
	"rosterctl/internal/roster"
)

const regDateLayout = "2006-01-02T15:04:05"

type xmlStudents struct {
	XMLName  xml.Name     `xml:"students"`
	Students []xmlStudent `xml:"student"`
}

type xmlStudent struct {
	MatrNr    int    `xml:"matriculation-number"`
	Groups    []int  `xml:"group"`
	LastName  string `xml:"lastname"`
	FirstName string `xml:"firstname"`
	Wikiname  string `xml:"wikiname"`
	Degree    string `xml:"degree-programme,omitempty"`
	RegDate   string `xml:"registration-date"`
	Email     string `xml:"email"`
	Grade     int    `xml:"grade,omitempty"`
}

// LoadRoster reads a students.xml file into a validated roster. Entries
// sharing a matriculation number are folded with merged group sets.
func (s *Store) LoadRoster(path string) (roster.Roster, error) {
	data, err := s.readDocument(path)
	if err != nil {
		return roster.Roster{}, err
	}

	var doc xmlStudents
	if err := xml.Unmarshal(data, &doc); err != nil {
		return roster.Roster{}, errors.ParseError("students XML", err)
	}

	records := make([]domain.StudentRecord, 0, len(doc.Students))
	for _, entry := range doc.Students {
		rec, err := entry.toRecord()
		if err != nil {
			return roster.Roster{}, fmt.Errorf("student #%d: %w", entry.MatrNr, err)
		}
		records = append(records, rec)
	}

	r, err := roster.NewMerging(records...)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return r, nil
}

// StoreRoster writes a roster in canonical form: entries sorted by
// matriculation number ascending.
func (s *Store) StoreRoster(path string, r roster.Roster) error {
	doc := xmlStudents{}
	for _, rec := range r.SortedByMatrNr() {
		doc.Students = append(doc.Students, fromRecord(rec))
	}

	content, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding students XML: %w", err)
	}
	return s.writeDocument(path, append([]byte(xml.Header), append(content, '\n')...))
}

func (e xmlStudent) toRecord() (domain.StudentRecord, error) {
	regdate, err := dataprocessing.ParseISO8601(e.RegDate)
	if err != nil {
		return domain.StudentRecord{}, err
	}

	rec := domain.StudentRecord{
		MatrNr:    e.MatrNr,
		Groups:    domain.NormalizeGroups(e.Groups),
		LastName:  e.LastName,
		FirstName: e.FirstName,
		Degree:    e.Degree,
		RegDate:   regdate,
		Email:     e.Email,
		Grade:     e.Grade,
	}
	// The stored wikiname is only an override when it differs from the
	// derived one; this keeps serialize-then-parse an identity.
	if e.Wikiname != "" && e.Wikiname != rec.Wikiname() {
		rec.WikinameOverride = e.Wikiname
	}
	return rec, nil
}

func fromRecord(rec domain.StudentRecord) xmlStudent {
	return xmlStudent{
		MatrNr:    rec.MatrNr,
		Groups:    rec.Groups,
		LastName:  rec.LastName,
		FirstName: rec.FirstName,
		Wikiname:  rec.Wikiname(),
		Degree:    rec.Degree,
		RegDate:   rec.RegDate.Format(regDateLayout),
		Email:     rec.Email,
		Grade:     rec.Grade,
	}
}
