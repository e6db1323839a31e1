// Package etree implements webscan.TextExtractor for XML documents. Markup
// is parsed with etree and queried with XPath 1.0.
package etree

import (
	"strconv"
	"strings"

	"github.com/antchfx/xpath"
	"github.com/beevik/etree"
	"github.com/fwojciec/webscan"
)

// Ensure Extractor implements webscan.TextExtractor at compile time.
var _ webscan.TextExtractor = (*Extractor)(nil)

// Extractor parses XML and resolves XPath expressions against it.
// It is safe for concurrent use.
type Extractor struct {
	settings etree.ReadSettings
}

// NewExtractor creates a new Extractor. Parsing is strict: malformed XML
// is reported as EPARSE.
func NewExtractor() *Extractor {
	return &Extractor{
		settings: etree.ReadSettings{
			PreserveCData: true,
		},
	}
}

// ExtractText returns the text of the first node selected by path. Elements
// yield their concatenated character data and attributes their value.
// Expressions that evaluate to a string, number or boolean return that
// value formatted as text.
func (e *Extractor) ExtractText(markup, path string) (string, error) {
	if err := webscan.ValidateExtractInput(markup, path); err != nil {
		return "", err
	}

	expr, err := xpath.Compile(strings.TrimSpace(path))
	if err != nil {
		return "", webscan.Errorf(webscan.EINVALID, "invalid XPath expression %q: %v", path, err)
	}

	doc := etree.NewDocument()
	doc.ReadSettings = e.settings
	if err := doc.ReadFromString(markup); err != nil {
		return "", webscan.WrapError(webscan.EPARSE, err, "failed to parse XML")
	}
	if doc.Root() == nil {
		return "", webscan.Errorf(webscan.EPARSE, "failed to parse XML: no root element")
	}

	switch v := expr.Evaluate(newNavigator(doc)).(type) {
	case *xpath.NodeIterator:
		if !v.MoveNext() {
			return "", webscan.Errorf(webscan.ENOTFOUND, "no node matches %q", path)
		}
		return v.Current().Value(), nil
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

// writeText appends all descendant character data of e in document order.
func writeText(b *strings.Builder, e *etree.Element) {
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			writeText(b, t)
		}
	}
}
