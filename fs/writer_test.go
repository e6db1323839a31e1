package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webscan"
	"github.com/fwojciec/webscan/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		ext     string
		want    string
		wantErr bool
	}{
		{
			name: "simple path",
			url:  "https://example.com/docs/api/users",
			ext:  ".md",
			want: "example.com/docs/api/users.md",
		},
		{
			name: "trailing slash becomes index",
			url:  "https://example.com/docs/",
			ext:  ".html",
			want: "example.com/docs/index.html",
		},
		{
			name: "root path becomes index",
			url:  "https://example.com/",
			ext:  ".md",
			want: "example.com/index.md",
		},
		{
			name: "root without trailing slash",
			url:  "https://example.com",
			ext:  ".txt",
			want: "example.com/index.txt",
		},
		{
			name: "replaces existing extension",
			url:  "https://example.com/news/today.html",
			ext:  ".md",
			want: "example.com/news/today.md",
		},
		{
			name: "ignores query string and fragment",
			url:  "https://example.com/docs/api?version=2#section",
			ext:  ".md",
			want: "example.com/docs/api.md",
		},
		{
			name: "keeps port in host directory",
			url:  "http://localhost:8080/page",
			ext:  ".html",
			want: "localhost:8080/page.html",
		},
		{
			name: "dot segments stay under host",
			url:  "https://example.com/../../escaped",
			ext:  ".html",
			want: "example.com/escaped.html",
		},
		{
			name: "inner dot segments are resolved",
			url:  "https://example.com/docs/./api/../guide/",
			ext:  ".md",
			want: "example.com/docs/guide/index.md",
		},
		{
			name:    "dot dot host",
			url:     "https://../escaped",
			ext:     ".html",
			wantErr: true,
		},
		{
			name:    "relative URL has no host",
			url:     "/docs/api",
			ext:     ".md",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url, tt.ext)

			if tt.wantErr {
				assert.Equal(t, webscan.EINVALID, webscan.ErrorCode(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestFormatDocument(t *testing.T) {
	t.Parallel()

	t.Run("formats markdown with frontmatter", func(t *testing.T) {
		t.Parallel()

		content := "# API Reference\n\nThis is the API documentation."
		doc := &webscan.Document{
			SourceURL: "https://example.com/docs/api",
			Format:    webscan.FormatMarkdown,
			Content:   content,
			FetchedAt: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		}

		got := fs.FormatDocument(doc)

		want := "---\nsource: https://example.com/docs/api\nfetched: 2025-01-08\nhash: " +
			strconv.FormatUint(xxhash.Sum64String(content), 16) +
			"\n---\n\n" + content

		assert.Equal(t, want, got)
	})

	t.Run("writes html as fetched", func(t *testing.T) {
		t.Parallel()

		doc := &webscan.Document{
			SourceURL: "https://example.com",
			Format:    webscan.FormatHTML,
			Content:   "<html></html>",
		}

		assert.Equal(t, "<html></html>", fs.FormatDocument(doc))
	})
}

func TestWriter_WriteDocument(t *testing.T) {
	t.Parallel()

	t.Run("writes document to path derived from URL", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)

		doc := &webscan.Document{
			SourceURL: "https://example.com/deeply/nested/page",
			Format:    webscan.FormatText,
			Content:   "Button Text",
			FetchedAt: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		}

		path, err := w.WriteDocument(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(baseDir, "example.com", "deeply", "nested", "page.txt"), path)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Button Text", string(content))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)

		doc := &webscan.Document{SourceURL: "https://example.com/", Format: webscan.FormatHTML, Content: "old"}
		_, err := w.WriteDocument(context.Background(), doc)
		require.NoError(t, err)

		doc.Content = "new"
		path, err := w.WriteDocument(context.Background(), doc)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("keeps dot segment URLs inside base directory", func(t *testing.T) {
		t.Parallel()

		baseDir := filepath.Join(t.TempDir(), "out")
		w := fs.NewWriter(baseDir)

		doc := &webscan.Document{SourceURL: "https://example.com/../../escaped", Format: webscan.FormatHTML, Content: "x"}
		path, err := w.WriteDocument(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(baseDir, "example.com", "escaped.html"), path)
		_, err = os.Stat(filepath.Join(filepath.Dir(baseDir), "escaped.html"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("rejects URLs that resolve outside base directory", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		_, err := w.WriteDocument(context.Background(), &webscan.Document{SourceURL: "https://../escaped", Format: webscan.FormatHTML})
		assert.Equal(t, webscan.EINVALID, webscan.ErrorCode(err))
	})

	t.Run("rejects invalid document", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		_, err := w.WriteDocument(context.Background(), &webscan.Document{Format: webscan.FormatHTML})
		assert.Equal(t, webscan.EINVALID, webscan.ErrorCode(err))

		_, err = w.WriteDocument(context.Background(), &webscan.Document{SourceURL: "https://example.com", Format: "pdf"})
		assert.Equal(t, webscan.EINVALID, webscan.ErrorCode(err))
	})
}
