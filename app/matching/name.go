package matching

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// NameSimilarityThreshold is the exclusive lower bound on the similarity
// score for a fuzzy name match.
const NameSimilarityThreshold = 0.8

// MaterialCandidate is a stored material with its localized names.
type MaterialCandidate struct {
	ID uint
	He string
	En string
}

type MaterialMatch struct {
	ID    uint
	Score float64
	Exact bool
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)) on the
// normalized strings, measured in runes.
func Similarity(a, b string) float64 {
	a, b = normalizeName(a), normalizeName(b)
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// MatchMaterialName resolves a free-text material name. An exact
// case-insensitive match on either locale wins outright. Otherwise the
// candidate with the best similarity on either locale is returned when it
// scores above NameSimilarityThreshold.
func MatchMaterialName(name string, candidates []MaterialCandidate) (MaterialMatch, bool) {
	needle := normalizeName(name)
	if needle == "" {
		return MaterialMatch{}, false
	}

	for _, c := range candidates {
		if (c.He != "" && normalizeName(c.He) == needle) || (c.En != "" && normalizeName(c.En) == needle) {
			return MaterialMatch{ID: c.ID, Score: 1, Exact: true}, true
		}
	}

	best := MaterialMatch{Score: -1}
	for _, c := range candidates {
		for _, locale := range []string{c.He, c.En} {
			if locale == "" {
				continue
			}
			if s := Similarity(needle, locale); s > best.Score {
				best = MaterialMatch{ID: c.ID, Score: s}
			}
		}
	}

	if best.Score <= NameSimilarityThreshold {
		return MaterialMatch{}, false
	}
	return best, true
}
