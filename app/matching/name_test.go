package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("Oak Wood", "  oak   wood "))
	assert.Equal(t, 0.0, Similarity("abc", ""))
	assert.InDelta(t, 0.75, Similarity("oaks", "oak"), 1e-9)
	// Hebrew is compared rune by rune, not byte by byte.
	assert.InDelta(t, 0.75, Similarity("שיש", "שישי"), 1e-9)
}

func TestMatchMaterialName(t *testing.T) {
	// 21 runes, 4 edits: 1 - 4/21 ≈ 0.81
	above := MaterialCandidate{ID: 21, En: "abcdefghijklmnopqrstu"}
	// 19 runes, 4 edits: 1 - 4/19 ≈ 0.79
	below := MaterialCandidate{ID: 19, En: "abcdefghijklmnopqrs"}

	testCases := []struct {
		name       string
		input      string
		candidates []MaterialCandidate
		wantOK     bool
		wantID     uint
		wantExact  bool
	}{
		{
			name:  "Exact English match, case-insensitive",
			input: "WHITE MARBLE",
			candidates: []MaterialCandidate{
				{ID: 1, He: "שיש לבן", En: "White Marble"},
			},
			wantOK: true, wantID: 1, wantExact: true,
		},
		{
			name:  "Exact Hebrew match",
			input: "עץ אלון",
			candidates: []MaterialCandidate{
				{ID: 1, He: "שיש לבן", En: "White Marble"},
				{ID: 2, He: "עץ אלון", En: "Oak Wood"},
			},
			wantOK: true, wantID: 2, wantExact: true,
		},
		{
			name:  "Exact match takes priority over an earlier fuzzy match",
			input: "Marble Tile",
			candidates: []MaterialCandidate{
				{ID: 1, En: "Marble Tiles"},
				{ID: 2, En: "marble tile"},
			},
			wantOK: true, wantID: 2, wantExact: true,
		},
		{
			name:  "Fuzzy match picks the best scoring candidate",
			input: "Oak Wod",
			candidates: []MaterialCandidate{
				{ID: 1, En: "Walnut Wood"},
				{ID: 2, En: "Oak Wood"},
			},
			wantOK: true, wantID: 2,
		},
		{
			name:       "Score of 0.81 returns the candidate",
			input:      "abcdefghijklmnopqxxxx",
			candidates: []MaterialCandidate{above},
			wantOK:     true, wantID: 21,
		},
		{
			name:       "Score of 0.79 returns no match",
			input:      "abcdefghijklmnoxxxx",
			candidates: []MaterialCandidate{below},
		},
		{
			name:       "Empty name never matches",
			input:      "   ",
			candidates: []MaterialCandidate{{ID: 1, En: ""}},
		},
		{
			name:  "No candidates",
			input: "Concrete",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			match, ok := MatchMaterialName(tc.input, tc.candidates)

			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantID, match.ID)
				assert.Equal(t, tc.wantExact, match.Exact)
				assert.Greater(t, match.Score, NameSimilarityThreshold)
			}
		})
	}
}
