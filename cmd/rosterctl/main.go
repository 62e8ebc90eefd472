// Command rosterctl administers a course roster: importing and exporting
// student records, merging datasets and generating grading spreadsheets.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"rosterctl/internal/config"
	"rosterctl/internal/dataprocessing"
	"rosterctl/internal/errors"
	"rosterctl/internal/exporter"
	"rosterctl/internal/infrastructure"
	"rosterctl/internal/roster"
	"rosterctl/internal/spreadsheet"
	"rosterctl/internal/xmlstore"
)

const usage = `usage: rosterctl <command> [flags]

commands:
  students create   build the student database from a registration CSV
  students read     print students matching the given filters
  students update   replace fields of one student record
  students delete   remove one student from the database
  students export   write the roster as registration-style CSV
  students diff     report records present in a file but not the database
  students unify    merge several student XML files into one
  grades import     patch final grades from a filled overview CSV
  spreadsheets create  generate grading spreadsheets for one group
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	slog.SetDefault(logger)
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())
	log := infrastructure.LoggerWithContext(ctx)

	app := &app{
		paths:    config.NewPaths(cfg.Paths),
		store:    xmlstore.NewStore(promptConfirm),
		exporter: exporter.New(config.NewPaths(cfg.Paths), promptConfirm),
	}

	err = app.run(os.Args[1:])
	switch {
	case err == nil:
	case errors.IsAbort(err):
		log.Info("Aborted", slog.String("reason", err.Error()))
	default:
		log.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type app struct {
	paths    *config.Paths
	store    *xmlstore.Store
	exporter *exporter.Exporter
}

func (a *app) run(args []string) error {
	switch args[0] {
	case "students":
		if len(args) < 2 {
			return fmt.Errorf("students needs a subcommand\n%s", usage)
		}
		switch args[1] {
		case "create":
			return a.studentsCreate(args[2:])
		case "read":
			return a.studentsRead(args[2:])
		case "update":
			return a.studentsUpdate(args[2:])
		case "delete":
			return a.studentsDelete(args[2:])
		case "export":
			return a.studentsExport(args[2:])
		case "diff":
			return a.studentsDiff(args[2:])
		case "unify":
			return a.studentsUnify(args[2:])
		}
		return fmt.Errorf("unknown students subcommand %q", args[1])
	case "grades":
		if len(args) >= 2 && args[1] == "import" {
			return a.gradesImport(args[2:])
		}
		return fmt.Errorf("unknown grades subcommand")
	case "spreadsheets":
		if len(args) >= 2 && args[1] == "create" {
			return a.spreadsheetsCreate(args[2:])
		}
		return fmt.Errorf("unknown spreadsheets subcommand")
	case "-h", "--help", "help":
		fmt.Fprint(os.Stderr, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q\n%s", args[0], usage)
}

func (a *app) studentsCreate(args []string) error {
	fs := flag.NewFlagSet("students create", flag.ExitOnError)
	csvPath := fs.String("csv", "", "registration CSV to import (required)")
	out := fs.String("out", "", "output file (default: configured students file)")
	fs.Parse(args)

	if *csvPath == "" {
		return fmt.Errorf("students create: -csv is required")
	}

	r, err := dataprocessing.ParseStudentCSVFile(*csvPath)
	if err != nil {
		return err
	}
	return a.store.StoreRoster(a.outOrDefault(*out), r)
}

func (a *app) studentsRead(args []string) error {
	fs := flag.NewFlagSet("students read", flag.ExitOnError)
	matrnr := fs.Int("matriculation-number", 0, "exact matriculation number")
	group := fs.Int("group", -1, "group membership")
	lastname := fs.String("lastname", "", "last name, case-insensitive")
	firstname := fs.String("firstname", "", "first name, case-insensitive")
	wikiname := fs.String("wikiname", "", "exact wiki name")
	email := fs.String("email", "", "exact email address")
	degree := fs.String("degree", "", "exact degree programme")
	newer := fs.String("newer", "", "registered strictly after this date")
	older := fs.String("older", "", "registered strictly before this date")
	fs.Parse(args)

	var predicates []roster.Predicate
	if *newer != "" {
		after, err := dataprocessing.ParseDate(*newer)
		if err != nil {
			return err
		}
		predicates = append(predicates, roster.RegisteredAfter(after))
	}
	if *older != "" {
		before, err := dataprocessing.ParseDate(*older)
		if err != nil {
			return err
		}
		predicates = append(predicates, roster.RegisteredBefore(before))
	}

	r, err := a.store.LoadRoster(a.paths.StudentsPath())
	if err != nil {
		return err
	}

	if *matrnr != 0 {
		predicates = append(predicates, roster.MatchMatrNr(*matrnr))
	}
	if *group >= 0 {
		predicates = append(predicates, roster.InGroup(*group))
	}
	if *lastname != "" {
		predicates = append(predicates, roster.MatchLastName(*lastname))
	}
	if *firstname != "" {
		predicates = append(predicates, roster.MatchFirstName(*firstname))
	}
	if *wikiname != "" {
		predicates = append(predicates, roster.MatchWikiname(*wikiname))
	}
	if *email != "" {
		predicates = append(predicates, roster.MatchEmail(*email))
	}
	if *degree != "" {
		predicates = append(predicates, roster.MatchDegree(*degree))
	}

	matched, err := roster.Filter(r, predicates...)
	if err != nil {
		return err
	}
	return a.store.StoreRoster("-", matched)
}

func (a *app) studentsUpdate(args []string) error {
	fs := flag.NewFlagSet("students update", flag.ExitOnError)
	matrnr := fs.Int("matriculation-number", 0, "student to update (required)")
	groups := fs.String("groups", "", "replacement group list, space or comma separated")
	lastname := fs.String("lastname", "", "replacement last name")
	firstname := fs.String("firstname", "", "replacement first name")
	wikiname := fs.String("wikiname", "", "replacement wiki name override")
	degree := fs.String("degree", "", "replacement degree programme")
	regdate := fs.String("registration-date", "", "replacement registration date")
	email := fs.String("email", "", "replacement email address")
	grade := fs.Int("grade", 0, "replacement final grade")
	fs.Parse(args)

	if *matrnr == 0 {
		return fmt.Errorf("students update: -matriculation-number is required")
	}

	// Only flags the user actually set become part of the patch; an
	// omitted flag keeps the stored value.
	var patch roster.FieldPatch
	var patchErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "groups":
			parsed, err := parseGroupList(*groups)
			if err != nil {
				patchErr = err
				return
			}
			patch.Groups = &parsed
		case "lastname":
			patch.LastName = lastname
		case "firstname":
			patch.FirstName = firstname
		case "wikiname":
			patch.WikinameOverride = wikiname
		case "degree":
			patch.Degree = degree
		case "registration-date":
			parsed, err := dataprocessing.ParseDate(*regdate)
			if err != nil {
				patchErr = err
				return
			}
			patch.RegDate = &parsed
		case "email":
			patch.Email = email
		case "grade":
			patch.Grade = grade
		}
	})
	if patchErr != nil {
		return patchErr
	}

	r, err := a.store.LoadRoster(a.paths.StudentsPath())
	if err != nil {
		return err
	}
	updated, err := roster.Apply(r, *matrnr, patch)
	if err != nil {
		return err
	}
	return a.store.StoreRoster(a.paths.StudentsPath(), updated)
}

func (a *app) studentsDelete(args []string) error {
	fs := flag.NewFlagSet("students delete", flag.ExitOnError)
	matrnr := fs.Int("matriculation-number", 0, "student to remove (required)")
	fs.Parse(args)

	if *matrnr == 0 {
		return fmt.Errorf("students delete: -matriculation-number is required")
	}

	r, err := a.store.LoadRoster(a.paths.StudentsPath())
	if err != nil {
		return err
	}
	if !r.Contains(*matrnr) {
		return errors.NewWithDetails(errors.KindInternal, "NOT_FOUND",
			"no student with this matriculation number", *matrnr)
	}

	// Removal is filter exclusion: the record never gets mutated, the
	// new roster simply leaves it out.
	remaining, err := roster.Filter(r, roster.NotMatrNr(*matrnr))
	if err != nil {
		return err
	}
	slog.Info("Removing student",
		slog.Int("matrnr", *matrnr),
		slog.Int("remaining", remaining.Len()))
	return a.store.StoreRoster(a.paths.StudentsPath(), remaining)
}

func (a *app) studentsExport(args []string) error {
	fs := flag.NewFlagSet("students export", flag.ExitOnError)
	out := fs.String("out", "-", "output file, - for stdout")
	fs.Parse(args)

	r, err := a.store.LoadRoster(a.paths.StudentsPath())
	if err != nil {
		return err
	}
	return a.exporter.WriteRosterCSV(*out, r)
}

func (a *app) studentsDiff(args []string) error {
	fs := flag.NewFlagSet("students diff", flag.ExitOnError)
	file := fs.String("file", "", "student XML file to compare (required)")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("students diff: -file is required")
	}

	db, err := a.store.LoadRoster(a.paths.StudentsPath())
	if err != nil {
		return err
	}
	other, err := a.store.LoadRoster(*file)
	if err != nil {
		return err
	}

	missing, err := roster.Difference(other, db)
	if err != nil {
		return err
	}
	slog.Info("Computed difference",
		slog.String("file", *file),
		slog.Int("missing", missing.Len()))
	return a.store.StoreRoster("-", missing)
}

func (a *app) studentsUnify(args []string) error {
	fs := flag.NewFlagSet("students unify", flag.ExitOnError)
	out := fs.String("out", "-", "output file, - for stdout")
	fs.Parse(args)

	files := fs.Args()
	if len(files) == 0 {
		return fmt.Errorf("students unify: at least one input file is required")
	}

	merged, err := a.store.LoadRoster(files[0])
	if err != nil {
		return err
	}
	for _, file := range files[1:] {
		next, err := a.store.LoadRoster(file)
		if err != nil {
			return err
		}
		merged, err = roster.Union(merged, next)
		if err != nil {
			return fmt.Errorf("unifying %s: %w", file, err)
		}
	}
	return a.store.StoreRoster(*out, merged)
}

func (a *app) gradesImport(args []string) error {
	fs := flag.NewFlagSet("grades import", flag.ExitOnError)
	csvPath := fs.String("csv", "", "filled overview CSV (required)")
	fs.Parse(args)

	if *csvPath == "" {
		return fmt.Errorf("grades import: -csv is required")
	}

	r, err := a.store.LoadRoster(a.paths.StudentsPath())
	if err != nil {
		return err
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		return errors.FileSystemError("opening overview CSV", err)
	}
	defer f.Close()

	updated, err := dataprocessing.ImportGrades(f, r)
	if err != nil {
		return fmt.Errorf("importing %s: %w", *csvPath, err)
	}
	return a.store.StoreRoster(a.paths.StudentsPath(), updated)
}

func (a *app) spreadsheetsCreate(args []string) error {
	fs := flag.NewFlagSet("spreadsheets create", flag.ExitOnError)
	group := fs.Int("group", -1, "tutorial group to generate for (required)")
	workbook := fs.String("xlsx", "", "write one XLSX workbook to this path instead of CSV files")
	fs.Parse(args)

	if *group < 0 {
		return fmt.Errorf("spreadsheets create: -group is required")
	}

	r, err := a.store.LoadRoster(a.paths.StudentsPath())
	if err != nil {
		return err
	}
	meta, err := a.store.LoadMeta(a.paths.MetadataPath())
	if err != nil {
		return err
	}
	scheme, err := dataprocessing.ParseGradingTableFile(a.paths.GradingPath())
	if err != nil {
		return err
	}

	grids, err := spreadsheet.NewGenerator(meta, scheme).GenerateAll(r, *group)
	if err != nil {
		return err
	}

	if *workbook != "" {
		return a.exporter.WriteWorkbook(*workbook, grids)
	}
	return a.exporter.WriteSpreadsheets(grids, *group)
}

func (a *app) outOrDefault(out string) string {
	if out != "" {
		return out
	}
	return a.paths.StudentsPath()
}

func parseGroupList(value string) ([]int, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ' ' || r == ','
	})
	groups := make([]int, 0, len(fields))
	for _, field := range fields {
		g, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.ParseError("group list", err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// promptConfirm asks a destructive yes/no question on the terminal.
// Anything but an explicit yes declines.
func promptConfirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
