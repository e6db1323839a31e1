// Package scan composes a document fetcher and markup extractors behind
// the single webscan.Scanner capability surface.
package scan

import (
	"context"

	"github.com/fwojciec/webscan"
)

// Ensure Service implements webscan.Scanner at compile time.
var _ webscan.Scanner = (*Service)(nil)

// Service delegates fetches to a DocumentFetcher and extraction to the
// configured extractors.
type Service struct {
	fetcher   webscan.DocumentFetcher
	extractor webscan.TextExtractor
	selectors webscan.SelectorExtractor
	config    *webscan.Config
}

// NewService creates a Service from its collaborators. All are required.
func NewService(config *webscan.Config, fetcher webscan.DocumentFetcher, extractor webscan.TextExtractor, selectors webscan.SelectorExtractor) (*Service, error) {
	switch {
	case config == nil:
		return nil, webscan.Errorf(webscan.EINVALID, "config cannot be nil")
	case fetcher == nil:
		return nil, webscan.Errorf(webscan.EINVALID, "fetcher cannot be nil")
	case extractor == nil:
		return nil, webscan.Errorf(webscan.EINVALID, "extractor cannot be nil")
	case selectors == nil:
		return nil, webscan.Errorf(webscan.EINVALID, "selector extractor cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		fetcher:   fetcher,
		extractor: extractor,
		selectors: selectors,
		config:    config,
	}, nil
}

// FetchDocument fetches req with plain transport semantics.
// Relative request URLs are resolved against the configured base URL.
func (s *Service) FetchDocument(ctx context.Context, req *webscan.FetchRequest) (string, error) {
	req, err := s.prepare(req)
	if err != nil {
		return "", err
	}
	return s.fetcher.FetchDocument(ctx, req)
}

// FetchDocumentStealth fetches req with browser-like headers.
func (s *Service) FetchDocumentStealth(ctx context.Context, req *webscan.FetchRequest) (string, error) {
	req, err := s.prepare(req)
	if err != nil {
		return "", err
	}
	return s.fetcher.FetchDocumentStealth(ctx, req)
}

// ExtractText resolves an XPath-style expression against markup.
func (s *Service) ExtractText(markup, path string) (string, error) {
	if err := webscan.ValidateExtractInput(markup, path); err != nil {
		return "", err
	}
	return s.extractor.ExtractText(markup, path)
}

// ExtractSelectorText resolves a CSS selector against markup.
func (s *Service) ExtractSelectorText(markup, selector string) (string, error) {
	if err := webscan.ValidateExtractInput(markup, selector); err != nil {
		return "", err
	}
	return s.selectors.ExtractSelectorText(markup, selector)
}

// prepare validates req and returns a copy whose URL is resolved against
// the base URL. The caller's request is left untouched.
func (s *Service) prepare(req *webscan.FetchRequest) (*webscan.FetchRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	resolved, err := s.config.ResolveURL(req.URL)
	if err != nil {
		return nil, err
	}
	if resolved == req.URL {
		return req, nil
	}
	req = req.Clone()
	req.URL = resolved
	return req, nil
}
