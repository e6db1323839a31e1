package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/webscan"
	"github.com/fwojciec/webscan/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements webscan.Converter at compile time.
var _ webscan.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts a fetched page", func(t *testing.T) {
		t.Parallel()

		html := `<!doctype html><html><head><title>Herald</title><script>var x = 1;</script></head>
<body><h1>Title</h1><p>Hello, <strong>world</strong>!</p><ul><li>First</li><li>Second</li></ul></body></html>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "Hello, **world**!")
		assert.Contains(t, md, "- First")
		assert.NotContains(t, md, "var x")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table><thead><tr><th>Name</th><th>Price</th></tr></thead><tbody><tr><td>Widget</td><td>9.99</td></tr></tbody></table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "| Name")
		assert.Contains(t, md, "Widget")
	})

	t.Run("resolves relative links against page URL", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="/docs/intro">the intro</a>.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html, "https://example.com/blog/post")

		require.NoError(t, err)
		assert.Contains(t, md, "[the intro](https://example.com/docs/intro)")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ", "")

		require.Error(t, err)
		assert.Equal(t, webscan.EINVALID, webscan.ErrorCode(err))
	})

	t.Run("returns error for page URL without host", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("<p>x</p>", "/relative")

		assert.Equal(t, webscan.EINVALID, webscan.ErrorCode(err))
	})
}
