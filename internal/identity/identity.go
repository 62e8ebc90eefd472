// Package identity derives canonical wikinames from student names.
//
// A wikiname is the stable per-student identifier used as a foreign key
// into the course wiki: "Jürgen" + "Groß-Müller" becomes "JurgenGroMuller".
// Derivation is deterministic and idempotent; an explicit override stored
// on a record always takes precedence and skips this algorithm entirely.
package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes combined characters, drops the combining marks and
// discards any remaining non-ASCII residue.
var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

var titleCaser = cases.Title(language.Und)

// Derive maps a first and last name to a wikiname: hyphens and apostrophes
// become word boundaries, diacritics are stripped, every token is
// capitalized and the tokens are concatenated without separator.
func Derive(firstname, lastname string) string {
	// TODO: map ß to ss before folding. Changes existing wikinames, so it
	// needs a migration pass over stored rosters first.
	name := firstname + " " + lastname
	name = strings.NewReplacer("-", " ", "'", " ").Replace(name)

	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		// Remove transforms cannot fail; keep the unfolded name if one ever does.
		folded = name
	}

	tokens := strings.Fields(folded)
	for i, token := range tokens {
		tokens[i] = titleCaser.String(token)
	}
	return strings.Join(tokens, "")
}
