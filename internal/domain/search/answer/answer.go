package answer

import (
	"fmt"

	"github.com/pr-poehali-dev/file-search-app/internal/domain/search/result"
)

// NotFound is the reply used when no document matches the query.
const NotFound = "No relevant information found in the uploaded documents."

const foundTemplate = "Found %d matching fragments in your documents. " +
	"The most relevant passage reads: %s"

// Synthesize builds the natural-language reply for a completed search.
// The quoted passage comes from the highest-relevance result; ties keep
// the earliest result, so store order decides.
func Synthesize(results []result.Result) string {
	if len(results) == 0 {
		return NotFound
	}

	best := results[0]
	for i := 1; i < len(results); i++ {
		if results[i].Relevance() > best.Relevance() {
			best = results[i]
		}
	}
	return fmt.Sprintf(foundTemplate, len(results), best.Snippet())
}
