package webscan

import (
	"strings"
)

// MarkupKind identifies the dialect of a markup document.
type MarkupKind string

// MarkupKind constants.
const (
	MarkupHTML MarkupKind = "html"
	MarkupXML  MarkupKind = "xml"
)

// DetectMarkup guesses whether markup is HTML or XML. Only documents that
// open with an XML declaration are XML; everything else, including
// fragments built from custom elements, is HTML. XHTML (an XML declaration
// followed by an HTML doctype or <html> root) is treated as HTML.
func DetectMarkup(markup string) MarkupKind {
	s := strings.TrimLeft(markup, " \t\r\n\ufeff")
	if !strings.HasPrefix(s, "<?xml") {
		return MarkupHTML
	}
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		switch {
		case strings.HasPrefix(s, "<?"):
			s = skipPast(s, "?>")
		case strings.HasPrefix(s, "<!--"):
			s = skipPast(s, "-->")
		case len(s) >= 9 && strings.EqualFold(s[:9], "<!doctype"):
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(s[9:])), "html") {
				return MarkupHTML
			}
			s = skipPast(s, ">")
		case strings.HasPrefix(s, "<"):
			if strings.EqualFold(elementName(s[1:]), "html") {
				return MarkupHTML
			}
			return MarkupXML
		default:
			return MarkupXML
		}
	}
}

func skipPast(s, marker string) string {
	i := strings.Index(s, marker)
	if i < 0 {
		return ""
	}
	return s[i+len(marker):]
}

func elementName(s string) string {
	end := strings.IndexAny(s, " \t\r\n/>")
	if end < 0 {
		return s
	}
	return s[:end]
}

// Ensure MarkupExtractor implements TextExtractor.
var _ TextExtractor = (*MarkupExtractor)(nil)

// MarkupExtractor routes extraction to an HTML or XML extractor based on
// DetectMarkup. Declared XML that the XML extractor cannot parse is retried
// as HTML, which tokenizes any input.
type MarkupExtractor struct {
	HTML TextExtractor
	XML  TextExtractor
}

// ExtractText validates input, detects the markup dialect and delegates.
func (m *MarkupExtractor) ExtractText(markup, path string) (string, error) {
	if err := ValidateExtractInput(markup, path); err != nil {
		return "", err
	}
	next := m.HTML
	kind := DetectMarkup(markup)
	if kind == MarkupXML {
		next = m.XML
	}
	if next == nil {
		return "", Errorf(EINTERNAL, "no extractor configured for %s markup", kind)
	}
	text, err := next.ExtractText(markup, path)
	if kind == MarkupXML && m.HTML != nil && ErrorCode(err) == EPARSE {
		return m.HTML.ExtractText(markup, path)
	}
	return text, err
}
