package mock

import "github.com/fwojciec/webscan"

var _ webscan.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of webscan.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(markup, path string) (string, error)
}

func (e *TextExtractor) ExtractText(markup, path string) (string, error) {
	return e.ExtractTextFn(markup, path)
}

var _ webscan.SelectorExtractor = (*SelectorExtractor)(nil)

// SelectorExtractor is a mock implementation of webscan.SelectorExtractor.
type SelectorExtractor struct {
	ExtractSelectorTextFn func(markup, selector string) (string, error)
}

func (e *SelectorExtractor) ExtractSelectorText(markup, selector string) (string, error) {
	return e.ExtractSelectorTextFn(markup, selector)
}
