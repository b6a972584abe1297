package search

import (
	"unicode/utf8"

	"github.com/pr-poehali-dev/file-search-app/internal/domain/search/snippet"
)

// DefaultRelevance is the fixed score assigned by the default scorer.
const DefaultRelevance = 0.9

// UniformScorer assigns every match the same relevance.
type UniformScorer struct {
	Relevance float64
}

// Score returns the fixed relevance regardless of match shape.
func (u UniformScorer) Score(_, _ string, _ int) float64 {
	return u.Relevance
}

// FrequencyScorer blends occurrence density with first-match position:
// more occurrences score higher, earlier matches score higher. Scores
// stay in (0, 1] for any matched document.
type FrequencyScorer struct{}

// Score rates a document that matched at matchIndex (in characters).
func (FrequencyScorer) Score(content, query string, matchIndex int) float64 {
	cLen := utf8.RuneCountInString(content)
	if cLen == 0 {
		return 0
	}
	occ := snippet.Count(content, query)
	if occ == 0 {
		return 0
	}

	density := float64(occ*utf8.RuneCountInString(query)) / float64(cLen)
	if density > 1 {
		density = 1
	}
	position := 1 - float64(matchIndex)/float64(cLen)

	score := 0.5*density + 0.5*position
	if score > 1 {
		score = 1
	}
	return score
}
