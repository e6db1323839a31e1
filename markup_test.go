package webscan_test

import (
	"testing"

	"github.com/fwojciec/webscan"
	"github.com/fwojciec/webscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   webscan.MarkupKind
	}{
		{"html doctype", `<!doctype html><html><body></body></html>`, webscan.MarkupHTML},
		{"html root without doctype", `<html><body><button>x</button></body></html>`, webscan.MarkupHTML},
		{"html fragment", `<div><p>text</p></div>`, webscan.MarkupHTML},
		{"xml declaration", `<?xml version="1.0"?><catalog><book/></catalog>`, webscan.MarkupXML},
		{"xhtml with declaration", `<?xml version="1.0"?><html xmlns="http://www.w3.org/1999/xhtml"></html>`, webscan.MarkupHTML},
		{"custom element fragment", `<my-widget><p>Hello<br>world</p></my-widget>`, webscan.MarkupHTML},
		{"unknown root without declaration", `<catalog><book>Go</book></catalog>`, webscan.MarkupHTML},
		{"declaration with bom", "\ufeff<?xml version=\"1.0\"?><rss/>", webscan.MarkupXML},
		{"declaration then comment", "<?xml version=\"1.0\"?>\n<!-- feed -->\n<rss><channel/></rss>", webscan.MarkupXML},
		{"declaration with html doctype", `<?xml version="1.0"?><!DOCTYPE html><html></html>`, webscan.MarkupHTML},
		{"plain text", `just text`, webscan.MarkupHTML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, webscan.DetectMarkup(tt.markup))
		})
	}
}

func TestMarkupExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	htmlExtractor := &mock.TextExtractor{
		ExtractTextFn: func(markup, path string) (string, error) {
			return "from html", nil
		},
	}
	xmlExtractor := &mock.TextExtractor{
		ExtractTextFn: func(markup, path string) (string, error) {
			return "from xml", nil
		},
	}

	t.Run("routes html markup", func(t *testing.T) {
		t.Parallel()

		m := &webscan.MarkupExtractor{HTML: htmlExtractor, XML: xmlExtractor}
		got, err := m.ExtractText(`<html><body></body></html>`, "/html/body")

		require.NoError(t, err)
		assert.Equal(t, "from html", got)
	})

	t.Run("routes xml markup", func(t *testing.T) {
		t.Parallel()

		m := &webscan.MarkupExtractor{HTML: htmlExtractor, XML: xmlExtractor}
		got, err := m.ExtractText(`<?xml version="1.0"?><feed/>`, "/feed")

		require.NoError(t, err)
		assert.Equal(t, "from xml", got)
	})

	t.Run("retries unparseable xml as html", func(t *testing.T) {
		t.Parallel()

		strictXML := &mock.TextExtractor{
			ExtractTextFn: func(markup, path string) (string, error) {
				return "", webscan.Errorf(webscan.EPARSE, "invalid XML")
			},
		}
		m := &webscan.MarkupExtractor{HTML: htmlExtractor, XML: strictXML}
		got, err := m.ExtractText(`<?xml version="1.0"?><root><br></root>`, "//root")

		require.NoError(t, err)
		assert.Equal(t, "from html", got)
	})

	t.Run("keeps xml not found errors", func(t *testing.T) {
		t.Parallel()

		missing := &mock.TextExtractor{
			ExtractTextFn: func(markup, path string) (string, error) {
				return "", webscan.Errorf(webscan.ENOTFOUND, "no node matches %q", path)
			},
		}
		m := &webscan.MarkupExtractor{HTML: htmlExtractor, XML: missing}
		_, err := m.ExtractText(`<?xml version="1.0"?><feed/>`, "/nope")

		assert.Equal(t, webscan.ENOTFOUND, webscan.ErrorCode(err))
	})

	t.Run("rejects blank input before routing", func(t *testing.T) {
		t.Parallel()

		m := &webscan.MarkupExtractor{}
		_, err := m.ExtractText(" ", "/html")

		assert.Equal(t, webscan.EINVALID, webscan.ErrorCode(err))
	})

	t.Run("missing route is internal error", func(t *testing.T) {
		t.Parallel()

		m := &webscan.MarkupExtractor{HTML: htmlExtractor}
		_, err := m.ExtractText(`<?xml version="1.0"?><feed/>`, "/feed")

		assert.Equal(t, webscan.EINTERNAL, webscan.ErrorCode(err))
	})
}

func TestValidateExtractInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		expr   string
	}{
		{"empty markup", "", "/html"},
		{"whitespace markup", " \n\t", "/html"},
		{"empty expression", "<html></html>", ""},
		{"whitespace expression", "<html></html>", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := webscan.ValidateExtractInput(tt.markup, tt.expr)
			assert.Equal(t, webscan.EINVALID, webscan.ErrorCode(err))
		})
	}

	assert.NoError(t, webscan.ValidateExtractInput("<html></html>", "/html"))
}
