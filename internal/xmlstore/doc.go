// Package xmlstore persists rosters and course metadata as XML.
//
// students.xml is the roster exchange format: one entry per student,
// always emitted sorted by matriculation number ascending. metadata.xml
// carries the course-wide configuration (courses, tutors, groups,
// assignments, grade boundaries, wiki location).
//
// Writes are all-or-nothing: documents are encoded in memory first and
// only then written out. Overwriting an existing file requires explicit
// confirmation through the injected ConfirmFunc; a declined confirmation
// is a graceful no-op surfaced as USER_ABORT. The target path "-" writes
// to stdout without confirmation.
package xmlstore
