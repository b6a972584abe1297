package filesearch

import "github.com/pr-poehali-dev/file-search-app/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyQuery    = domain.ErrEmptyQuery
	ErrNoDocuments   = domain.ErrNoDocuments
	ErrDuplicateID   = domain.ErrDuplicateID
	ErrSessionClosed = domain.ErrSessionClosed
)
