package mock

import (
	"context"

	"github.com/fwojciec/webscan"
)

var _ webscan.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of webscan.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *webscan.Document) (string, error)
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *webscan.Document) (string, error) {
	return w.WriteDocumentFn(ctx, doc)
}
