// Package domain holds the value types shared across the roster pipeline:
// student records, the grading scheme and the course metadata.
//
// All types have value semantics. Roster operations copy records, never
// alias them; the grading scheme and course metadata are parsed once and
// treated as immutable afterwards. Construction-time validation uses
// go-playground/validator tags plus explicit cross-field checks where tags
// cannot express them (grade boundary contiguity, scheme point sums).
package domain
