package webscan

import "strings"

// TextExtractor resolves a path expression against markup.
type TextExtractor interface {
	// ExtractText parses markup and returns the text content of the first
	// node matched by path, in document order.
	// Returns EINVALID for blank input, EPARSE for markup that cannot be
	// parsed and ENOTFOUND when no node matches.
	ExtractText(markup, path string) (string, error)
}

// SelectorExtractor resolves a CSS selector against HTML markup.
type SelectorExtractor interface {
	// ExtractSelectorText returns the text content of the first element
	// matched by selector. Errors follow TextExtractor.ExtractText.
	ExtractSelectorText(markup, selector string) (string, error)
}

// ValidateExtractInput returns EINVALID if markup or the expression is blank.
func ValidateExtractInput(markup, expr string) error {
	if strings.TrimSpace(markup) == "" {
		return Errorf(EINVALID, "markup cannot be empty or whitespace")
	}
	if strings.TrimSpace(expr) == "" {
		return Errorf(EINVALID, "path expression cannot be empty or whitespace")
	}
	return nil
}
