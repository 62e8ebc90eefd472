package xmlstore

import (
	"encoding/xml"
	"fmt"

	"rosterctl/internal/dataprocessing"
	"rosterctl/internal/domain"
	"rosterctl/internal/errors"
)

type xmlMetadata struct {
	XMLName     xml.Name        `xml:"metadata"`
	Courses     []xmlCourse     `xml:"course"`
	Tutors      []xmlTutor      `xml:"tutor"`
	Groups      []xmlGroup      `xml:"group"`
	Assignments []xmlAssignment `xml:"assignment"`
	Grades      xmlGrades       `xml:"grades"`
	WikiURL     string          `xml:"wikiurl"`
	WikiPath    string          `xml:"wikipath"`
}

type xmlCourse struct {
	Title    string `xml:"title,attr"`
	Lecturer string `xml:"lecturer,attr"`
	Type     string `xml:"type,attr"`
	ID       string `xml:"id,attr"`
}

type xmlTutor struct {
	ID        string `xml:"id,attr"`
	LastName  string `xml:"lastname"`
	FirstName string `xml:"firstname"`
	Email     string `xml:"email"`
}

type xmlGroup struct {
	Tutor string `xml:"tutor,attr"`
	ID    int    `xml:"id,attr"`
}

type xmlAssignment struct {
	ID                string `xml:"id,attr"`
	Deadline          string `xml:"deadline"`
	Submission        string `xml:"submission"`
	PartnerSubmission string `xml:"partnersubmission,omitempty"`
}

// The five grade elements are fixed by the exchange format.
type xmlGrades struct {
	Excellent    xmlGrade `xml:"excellent"`
	Good         xmlGrade `xml:"good"`
	Satisfactory xmlGrade `xml:"satisfactory"`
	Sufficient   xmlGrade `xml:"sufficient"`
	Insufficient xmlGrade `xml:"insufficient"`
}

type xmlGrade struct {
	Repr int `xml:"repr,attr"`
	Min  int `xml:"min,attr"`
	Max  int `xml:"max,attr"`
}

// LoadMeta reads and validates a metadata.xml file.
func (s *Store) LoadMeta(path string) (domain.CourseMeta, error) {
	data, err := s.readDocument(path)
	if err != nil {
		return domain.CourseMeta{}, err
	}

	var doc xmlMetadata
	if err := xml.Unmarshal(data, &doc); err != nil {
		return domain.CourseMeta{}, errors.ParseError("metadata XML", err)
	}

	meta := domain.CourseMeta{
		WikiURL:  doc.WikiURL,
		WikiPath: doc.WikiPath,
	}

	for _, c := range doc.Courses {
		meta.Courses = append(meta.Courses, domain.Course(c))
	}

	groupsByTutor := make(map[string][]int)
	for _, g := range doc.Groups {
		groupsByTutor[g.Tutor] = append(groupsByTutor[g.Tutor], g.ID)
	}
	for _, t := range doc.Tutors {
		meta.Tutors = append(meta.Tutors, domain.Tutor{
			ID:        t.ID,
			LastName:  t.LastName,
			FirstName: t.FirstName,
			Email:     t.Email,
			Groups:    domain.NormalizeGroups(groupsByTutor[t.ID]),
		})
	}

	for _, a := range doc.Assignments {
		deadline, err := dataprocessing.ParseDate(a.Deadline)
		if err != nil {
			return domain.CourseMeta{}, fmt.Errorf("assignment %q: %w", a.ID, err)
		}
		meta.Assignments = append(meta.Assignments, domain.AssignmentMeta{
			Name:              a.ID,
			Deadline:          deadline,
			Submission:        a.Submission,
			PartnerSubmission: a.PartnerSubmission,
		})
	}

	grades := []struct {
		name string
		g    xmlGrade
	}{
		{"excellent", doc.Grades.Excellent},
		{"good", doc.Grades.Good},
		{"satisfactory", doc.Grades.Satisfactory},
		{"sufficient", doc.Grades.Sufficient},
		{"insufficient", doc.Grades.Insufficient},
	}
	for _, entry := range grades {
		meta.Grades = append(meta.Grades, domain.GradeBoundary{
			Grade: entry.g.Repr,
			Name:  entry.name,
			Min:   entry.g.Min,
			Max:   entry.g.Max,
		})
	}

	if err := meta.Validate(); err != nil {
		return domain.CourseMeta{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return meta, nil
}

// StoreMeta writes course metadata, validating it first.
func (s *Store) StoreMeta(path string, meta domain.CourseMeta) error {
	if err := meta.Validate(); err != nil {
		return err
	}

	doc := xmlMetadata{
		WikiURL:  meta.WikiURL,
		WikiPath: meta.WikiPath,
	}

	for _, c := range meta.Courses {
		doc.Courses = append(doc.Courses, xmlCourse(c))
	}

	for _, t := range meta.Tutors {
		doc.Tutors = append(doc.Tutors, xmlTutor{
			ID:        t.ID,
			LastName:  t.LastName,
			FirstName: t.FirstName,
			Email:     t.Email,
		})
		for _, g := range t.Groups {
			doc.Groups = append(doc.Groups, xmlGroup{Tutor: t.ID, ID: g})
		}
	}

	for _, a := range meta.Assignments {
		doc.Assignments = append(doc.Assignments, xmlAssignment{
			ID:                a.Name,
			Deadline:          a.Deadline.Format(regDateLayout),
			Submission:        a.Submission,
			PartnerSubmission: a.PartnerSubmission,
		})
	}

	for _, g := range meta.Grades {
		entry := xmlGrade{Repr: g.Grade, Min: g.Min, Max: g.Max}
		switch g.Name {
		case "excellent":
			doc.Grades.Excellent = entry
		case "good":
			doc.Grades.Good = entry
		case "satisfactory":
			doc.Grades.Satisfactory = entry
		case "sufficient":
			doc.Grades.Sufficient = entry
		case "insufficient":
			doc.Grades.Insufficient = entry
		default:
			return errors.ParseErrorf("unknown grade name %q", g.Name)
		}
	}

	content, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata XML: %w", err)
	}
	return s.writeDocument(path, append([]byte(xml.Header), append(content, '\n')...))
}
