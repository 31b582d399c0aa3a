package complete

import (
	"strings"

	"github.com/sourcetable/lang-sql/dialect"
)

// KeywordCandidates builds one candidate per keyword, builtin and type name
// declared by the dialect. Keywords are tagged "keyword"; types and builtins
// are tagged "type". Labels keep the dialect's declared casing unless
// upperCase is set. A non-empty section becomes the grouping label on every
// candidate.
//
// mapper, when non-nil, runs as the final pure transform over the full list;
// it may reorder, filter or annotate, but must not invent labels outside the
// dialect's sets.
func KeywordCandidates(d *dialect.Dialect, upperCase bool, section string, mapper func([]Candidate) []Candidate) []Candidate {
	keywords := d.Keywords()
	types := d.Types()
	builtins := d.Builtins()

	out := make([]Candidate, 0, len(keywords)+len(types)+len(builtins))
	add := func(words []string, typ string) {
		for _, w := range words {
			if upperCase {
				w = strings.ToUpper(w)
			}
			out = append(out, Candidate{Label: w, Type: typ, Section: section})
		}
	}
	add(keywords, "keyword")
	add(types, "type")
	add(builtins, "type")

	if mapper != nil {
		out = mapper(out)
	}
	return out
}
