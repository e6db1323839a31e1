package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/fwojciec/webscan"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/net/html/charset"
)

var errBodyTooLarge = errors.New("body exceeds size limit")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readLimited reads r to EOF, failing once more than limit bytes are seen.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", errBodyTooLarge, limit)
	}
	return b, nil
}

// decompress reverses the codings listed in a Content-Encoding header.
// Codings are listed in the order they were applied, so they are undone
// last to first.
func decompress(body []byte, contentEncoding string, limit int64) ([]byte, error) {
	codings := parseContentEncoding(contentEncoding)
	for i := len(codings) - 1; i >= 0; i-- {
		coding := codings[i]
		r, err := newDecompressor(coding, body)
		if err != nil {
			return nil, webscan.WrapError(webscan.EDECODE, err, "body does not match declared %s encoding", coding)
		}
		out, err := readLimited(r, limit)
		if c, ok := r.(io.Closer); ok {
			_ = c.Close()
		}
		if err != nil {
			return nil, webscan.WrapError(webscan.EDECODE, err, "body does not match declared %s encoding", coding)
		}
		body = out
	}
	return body, nil
}

func parseContentEncoding(header string) []string {
	var codings []string
	for _, part := range strings.Split(header, ",") {
		coding := strings.ToLower(strings.TrimSpace(part))
		if coding == "" || coding == "identity" {
			continue
		}
		codings = append(codings, coding)
	}
	return codings
}

func newDecompressor(coding string, body []byte) (io.Reader, error) {
	switch coding {
	case "gzip", "x-gzip":
		return gzip.NewReader(bytes.NewReader(body))
	case "deflate":
		// RFC 9110 deflate is zlib-wrapped, but some servers send raw DEFLATE.
		if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			return zr, nil
		}
		return flate.NewReader(bytes.NewReader(body)), nil
	case "br":
		return brotli.NewReader(bytes.NewReader(body)), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", coding)
	}
}

// decodeText converts body to a UTF-8 string using the charset declared in
// contentType, falling back to BOM and <meta> sniffing.
func decodeText(body []byte, contentType string) (string, error) {
	enc, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" && !bytes.HasPrefix(body, utf8BOM) {
		return string(body), nil
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", webscan.WrapError(webscan.EDECODE, err, "cannot decode %s body", name)
	}
	return string(out), nil
}
