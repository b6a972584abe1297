package document

import (
	"fmt"
	"time"
)

// UploadDateLayout is the display format for document upload dates.
const UploadDateLayout = "Jan 2, 2006"

// Document is an indexed file (immutable value object).
type Document struct {
	id         string
	name       string
	content    string
	size       string
	uploadDate string
}

// New validates and creates a Document.
// ID and name are required; content may be empty (an empty file is
// still listed and searchable).
func New(id, name, content, size, uploadDate string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if name == "" {
		return Document{}, fmt.Errorf("document name is required")
	}
	if size == "" {
		size = SizeLabel(int64(len(content)))
	}
	if uploadDate == "" {
		uploadDate = FormatUploadDate(time.Now())
	}

	return Document{
		id:         id,
		name:       name,
		content:    content,
		size:       size,
		uploadDate: uploadDate,
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id, name, content, size, uploadDate string) Document {
	return Document{id: id, name: name, content: content, size: size, uploadDate: uploadDate}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Name returns the original file name.
func (d *Document) Name() string { return d.name }

// Content returns the decoded text content.
func (d *Document) Content() string { return d.content }

// Size returns the human-readable size label.
func (d *Document) Size() string { return d.size }

// UploadDate returns the formatted ingestion date.
func (d *Document) UploadDate() string { return d.uploadDate }

// SizeLabel renders a byte count as a kilobyte label with two decimals.
func SizeLabel(bytes int64) string {
	return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
}

// FormatUploadDate renders a timestamp in the display layout.
func FormatUploadDate(t time.Time) string {
	return t.Format(UploadDateLayout)
}
