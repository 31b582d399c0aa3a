package complete

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxFiltered caps the list handed back to UI layers.
const maxFiltered = 50

// candidateLabels implements fuzzy.Source over a candidate slice.
type candidateLabels []Candidate

func (c candidateLabels) String(i int) string { return c[i].Label }
func (c candidateLabels) Len() int            { return len(c) }

// Filter ranks candidates by case-insensitive fuzzy match against the typed
// prefix. An empty prefix returns the input capped but unranked. Candidate
// selection is otherwise the host UI's concern; this helper exists for hosts
// without their own matcher.
func Filter(prefix string, candidates []Candidate) []Candidate {
	if prefix == "" {
		if len(candidates) > maxFiltered {
			return candidates[:maxFiltered]
		}
		return candidates
	}
	if len(candidates) == 0 {
		return nil
	}

	// Matching is case-insensitive: fold both sides, return originals.
	lowered := make(candidateLabels, len(candidates))
	for i, c := range candidates {
		c.Label = strings.ToLower(c.Label)
		lowered[i] = c
	}
	matches := fuzzy.FindFrom(strings.ToLower(prefix), lowered)
	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	out := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		out = append(out, candidates[m.Index])
		if len(out) == maxFiltered {
			break
		}
	}
	return out
}
