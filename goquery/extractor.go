// Package goquery implements webscan.SelectorExtractor using goquery and
// cascadia CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/webscan"
)

// Ensure Extractor implements webscan.SelectorExtractor at compile time.
var _ webscan.SelectorExtractor = (*Extractor)(nil)

// Extractor resolves CSS selectors against HTML markup.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractSelectorText returns the text of the first element matching
// selector, in document order.
func (e *Extractor) ExtractSelectorText(markup, selector string) (string, error) {
	if err := webscan.ValidateExtractInput(markup, selector); err != nil {
		return "", err
	}

	sel, err := cascadia.Compile(selector)
	if err != nil {
		return "", webscan.Errorf(webscan.EINVALID, "invalid CSS selector %q: %v", selector, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", webscan.WrapError(webscan.EPARSE, err, "failed to parse HTML")
	}

	match := doc.FindMatcher(sel).First()
	if match.Length() == 0 {
		return "", webscan.Errorf(webscan.ENOTFOUND, "no element matches %q", selector)
	}
	return match.Text(), nil
}
