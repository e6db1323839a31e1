package webscan

import (
	"context"
	"time"
)

// Format identifies the form of a document's content.
type Format string

// Format constants for Document.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Document is the output of one fetch, as saved by a DocumentWriter.
type Document struct {
	SourceURL string    `json:"sourceUrl"`
	Format    Format    `json:"format"`
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	switch d.Format {
	case FormatHTML, FormatMarkdown, FormatText:
	default:
		return Errorf(EINVALID, "unknown document format %q", d.Format)
	}
	return nil
}

// DocumentWriter saves documents to storage.
type DocumentWriter interface {
	// WriteDocument saves doc and returns where it was written.
	WriteDocument(ctx context.Context, doc *Document) (string, error)
}
