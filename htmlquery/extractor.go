// Package htmlquery implements webscan.TextExtractor for HTML documents
// using XPath 1.0 expressions.
package htmlquery

import (
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/fwojciec/webscan"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webscan.TextExtractor at compile time.
var _ webscan.TextExtractor = (*Extractor)(nil)

// Extractor parses HTML and resolves XPath expressions against it.
// It holds only configuration, so a single Extractor may be shared by
// concurrent callers; every call builds its own document tree.
type Extractor struct {
	bodyContext bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDocumentContext evaluates relative expressions against the document
// root instead of the <body> element.
func WithDocumentContext() Option {
	return func(e *Extractor) {
		e.bodyContext = false
	}
}

// NewExtractor creates a new Extractor. By default relative expressions
// are evaluated with <body> as the context node; absolute expressions
// always start at the document root.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{bodyContext: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractText returns the text content of the first node matched by path.
// Attributes yield their value. Expressions that evaluate to a string,
// number or boolean return that value formatted as text.
func (e *Extractor) ExtractText(markup, path string) (string, error) {
	if err := webscan.ValidateExtractInput(markup, path); err != nil {
		return "", err
	}

	expr, err := xpath.Compile(path)
	if err != nil {
		return "", webscan.Errorf(webscan.EINVALID, "invalid XPath expression %q: %v", path, err)
	}

	doc, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return "", webscan.WrapError(webscan.EPARSE, err, "failed to parse HTML")
	}

	nav := htmlquery.CreateXPathNavigator(e.contextNode(doc, path))
	switch v := expr.Evaluate(nav).(type) {
	case *xpath.NodeIterator:
		if !v.MoveNext() {
			return "", webscan.Errorf(webscan.ENOTFOUND, "no node matches %q", path)
		}
		node := v.Current().(*htmlquery.NodeNavigator)
		if node.NodeType() == xpath.AttributeNode {
			return node.Value(), nil
		}
		return htmlquery.InnerText(node.Current()), nil
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", webscan.Errorf(webscan.EINTERNAL, "unexpected XPath result %T for %q", v, path)
	}
}

func (e *Extractor) contextNode(doc *html.Node, path string) *html.Node {
	if !e.bodyContext || strings.HasPrefix(strings.TrimSpace(path), "/") {
		return doc
	}
	if body := findBody(doc); body != nil {
		return body
	}
	return doc
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}
