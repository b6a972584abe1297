package result

// Result is a single search hit.
type Result struct {
	documentID   string
	documentName string
	snippet      string
	relevance    float64
}

// New creates a search result.
func New(documentID, documentName, snippet string, relevance float64) Result {
	return Result{
		documentID:   documentID,
		documentName: documentName,
		snippet:      snippet,
		relevance:    relevance,
	}
}

// DocumentID returns the matched document identifier.
func (r *Result) DocumentID() string { return r.documentID }

// DocumentName returns the matched document file name.
func (r *Result) DocumentName() string { return r.documentName }

// Snippet returns the context window around the first match.
func (r *Result) Snippet() string { return r.snippet }

// Relevance returns the relevance score in (0, 1].
func (r *Result) Relevance() float64 { return r.relevance }
