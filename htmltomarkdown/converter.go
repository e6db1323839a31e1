// Package htmltomarkdown renders fetched documents as Markdown using
// html-to-markdown.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/webscan"
)

// Ensure Converter implements webscan.Converter at compile time.
var _ webscan.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. The underlying converter is built once
// and shared across calls.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter with CommonMark and table support.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms a document into Markdown, resolving relative links
// against the scheme and host of pageURL.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", webscan.Errorf(webscan.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil || u.Host == "" {
			return "", webscan.Errorf(webscan.EINVALID, "invalid page URL %q", pageURL)
		}
		opts = append(opts, converter.WithDomain(u.Scheme+"://"+u.Host))
	}

	result, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", webscan.WrapError(webscan.EPARSE, err, "failed to convert HTML")
	}
	return strings.TrimSpace(result), nil
}
