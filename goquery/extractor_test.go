package goquery_test

import (
	"testing"

	"github.com/fwojciec/webscan"
	"github.com/fwojciec/webscan/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements webscan.SelectorExtractor at compile time.
var _ webscan.SelectorExtractor = (*goquery.Extractor)(nil)

func TestExtractor_ExtractSelectorText(t *testing.T) {
	t.Parallel()

	t.Run("returns text of matching element", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		text, err := e.ExtractSelectorText(`<html><body><button type="button">Button Text</button></body></html>`, `button[type="button"]`)

		require.NoError(t, err)
		assert.Equal(t, "Button Text", text)
	})

	t.Run("returns first match in document order", func(t *testing.T) {
		t.Parallel()

		html := `<div class="item">first</div><div class="item">second</div>`
		e := goquery.NewExtractor()
		text, err := e.ExtractSelectorText(html, ".item")

		require.NoError(t, err)
		assert.Equal(t, "first", text)
	})

	t.Run("includes descendant text", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		text, err := e.ExtractSelectorText(`<p id="total">Total: <strong>9</strong></p>`, "#total")

		require.NoError(t, err)
		assert.Equal(t, "Total: 9", text)
	})

	t.Run("returns not found when nothing matches", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		_, err := e.ExtractSelectorText(`<p>text</p>`, "table td")

		assert.Equal(t, webscan.ENOTFOUND, webscan.ErrorCode(err))
	})

	t.Run("returns invalid for malformed selector", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		_, err := e.ExtractSelectorText(`<p>text</p>`, "p[")

		assert.Equal(t, webscan.EINVALID, webscan.ErrorCode(err))
	})

	t.Run("rejects blank input", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()

		_, err := e.ExtractSelectorText("", "p")
		assert.Equal(t, webscan.EINVALID, webscan.ErrorCode(err))

		_, err = e.ExtractSelectorText("<p>x</p>", "")
		assert.Equal(t, webscan.EINVALID, webscan.ErrorCode(err))
	})
}
