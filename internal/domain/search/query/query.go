package query

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pr-poehali-dev/file-search-app/internal/domain"
)

// MaxLength is the maximum allowed query length in bytes.
const MaxLength = 4096

// Query is a validated search query.
type Query struct {
	raw string
}

// New validates and creates a Query. Emptiness is judged on the
// trimmed form, but the raw text is kept as typed for matching.
func New(raw string) (Query, error) {
	if strings.TrimSpace(raw) == "" {
		return Query{}, domain.ErrEmptyQuery
	}
	if len(raw) > MaxLength {
		return Query{}, fmt.Errorf("query too long (max %d bytes)", MaxLength)
	}
	return Query{raw: raw}, nil
}

// Raw returns the query text as typed.
func (q *Query) Raw() string { return q.raw }

// RuneLen returns the query length in characters.
func (q *Query) RuneLen() int { return utf8.RuneCountInString(q.raw) }
