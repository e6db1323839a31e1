// Package fs provides file-based storage for fetched documents.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webscan"
)

// Extension returns the file extension used for documents of the given format.
func Extension(format webscan.Format) string {
	switch format {
	case webscan.FormatMarkdown:
		return ".md"
	case webscan.FormatText:
		return ".txt"
	default:
		return ".html"
	}
}

// URLToPath converts a document URL to a relative file path rooted at the host.
// Example: https://example.com/docs/api/users → example.com/docs/api/users.md
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", webscan.WrapError(webscan.EINVALID, err, "invalid document URL %q", rawURL)
	}
	if u.Host == "" {
		return "", webscan.Errorf(webscan.EINVALID, "document URL %q has no host", rawURL)
	}
	if u.Host == "." || u.Host == ".." || strings.ContainsAny(u.Host, `/\`) {
		return "", webscan.Errorf(webscan.EINVALID, "document URL %q has an unusable host", rawURL)
	}

	// Dot segments must not climb above the host directory.
	p := path.Clean("/" + u.Path)
	if p != "/" && strings.HasSuffix(u.Path, "/") {
		p += "/"
	}
	p = strings.TrimPrefix(p, "/")

	// Root or trailing slash → index in that directory
	if p == "" || strings.HasSuffix(p, "/") {
		return filepath.FromSlash(u.Host + "/" + p + "index" + ext), nil
	}

	// page.html → page.md when saving markdown
	p = strings.TrimSuffix(p, path.Ext(p))
	return filepath.FromSlash(u.Host + "/" + p + ext), nil
}

// FormatDocument renders a document for disk. Markdown gets YAML
// frontmatter; other formats are written as fetched.
func FormatDocument(doc *webscan.Document) string {
	if doc.Format != webscan.FormatMarkdown {
		return doc.Content
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.SourceURL)
	b.WriteString("\nfetched: ")
	b.WriteString(doc.FetchedAt.Format("2006-01-02"))
	b.WriteString("\nhash: ")
	b.WriteString(strconv.FormatUint(xxhash.Sum64String(doc.Content), 16))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Writer implements webscan.DocumentWriter at compile time.
var _ webscan.DocumentWriter = (*Writer)(nil)

// Writer writes documents as files under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteDocument writes doc to disk and returns the file path.
func (w *Writer) WriteDocument(ctx context.Context, doc *webscan.Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}

	relPath, err := URLToPath(doc.SourceURL, Extension(doc.Format))
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if rel, err := filepath.Rel(w.baseDir, fullPath); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", webscan.Errorf(webscan.EINVALID, "document URL %q resolves outside the output directory", doc.SourceURL)
	}

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", webscan.WrapError(webscan.EINTERNAL, err, "failed to create directory for %s", relPath)
	}

	if err := os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644); err != nil {
		return "", webscan.WrapError(webscan.EINTERNAL, err, "failed to write %s", relPath)
	}
	return fullPath, nil
}
