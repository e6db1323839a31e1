package mock

import (
	"context"

	"github.com/fwojciec/webscan"
)

var _ webscan.Scanner = (*Scanner)(nil)

// Scanner is a mock implementation of webscan.Scanner.
type Scanner struct {
	FetchDocumentFn        func(ctx context.Context, req *webscan.FetchRequest) (string, error)
	FetchDocumentStealthFn func(ctx context.Context, req *webscan.FetchRequest) (string, error)
	ExtractTextFn          func(markup, path string) (string, error)
	ExtractSelectorTextFn  func(markup, selector string) (string, error)
}

func (s *Scanner) FetchDocument(ctx context.Context, req *webscan.FetchRequest) (string, error) {
	return s.FetchDocumentFn(ctx, req)
}

func (s *Scanner) FetchDocumentStealth(ctx context.Context, req *webscan.FetchRequest) (string, error) {
	return s.FetchDocumentStealthFn(ctx, req)
}

func (s *Scanner) ExtractText(markup, path string) (string, error) {
	return s.ExtractTextFn(markup, path)
}

func (s *Scanner) ExtractSelectorText(markup, selector string) (string, error) {
	return s.ExtractSelectorTextFn(markup, selector)
}
