// Package http provides the net/http implementation of webscan.DocumentFetcher
// and the pooled client provider it draws transports from.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fwojciec/webscan"
)

// DefaultMaxBodySize caps how many bytes of a response body are read.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent is the browser identity sent by stealth fetches.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// snippetSize bounds the body excerpt attached to EHTTPSTATUS errors.
const snippetSize = 512

// errorBodyLimit bounds how much of an encoded error body is read to
// produce a snippet.
const errorBodyLimit = 64 << 10

// Ensure Fetcher implements webscan.DocumentFetcher at compile time.
var _ webscan.DocumentFetcher = (*Fetcher)(nil)

// Fetcher sends requests through clients obtained from a ClientProvider.
// It keeps no per-call state and is safe for concurrent use.
type Fetcher struct {
	config      *webscan.Config
	clients     webscan.ClientProvider
	logger      *slog.Logger
	maxBodySize int64
	userAgent   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxBodySize sets the maximum number of body bytes read per response.
// Defaults to DefaultMaxBodySize (10 MiB) if not specified.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithUserAgent sets the User-Agent sent by stealth fetches.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new Fetcher. The config, client provider and logger
// are all required.
func NewFetcher(config *webscan.Config, clients webscan.ClientProvider, logger *slog.Logger, opts ...Option) (*Fetcher, error) {
	if config == nil {
		return nil, webscan.Errorf(webscan.EINVALID, "config cannot be nil")
	}
	if clients == nil {
		return nil, webscan.Errorf(webscan.EINVALID, "client provider cannot be nil")
	}
	if logger == nil {
		return nil, webscan.Errorf(webscan.EINVALID, "logger cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	f := &Fetcher{
		config:      config,
		clients:     clients,
		logger:      logger,
		maxBodySize: DefaultMaxBodySize,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.maxBodySize <= 0 {
		return nil, webscan.Errorf(webscan.EINVALID, "max body size must be positive")
	}
	return f, nil
}

// FetchDocument sends req and returns the response body decoded to text
// using the declared or sniffed charset.
func (f *Fetcher) FetchDocument(ctx context.Context, req *webscan.FetchRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	resp, err := f.do(ctx, webscan.ProfileDefault, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := f.readBody(resp, req.URL)
	if err != nil {
		return "", err
	}
	return decodeText(body, resp.Header.Get("Content-Type"))
}

// FetchDocumentStealth sends a copy of req carrying browser-like headers and
// explicitly decompresses the body according to Content-Encoding.
func (f *Fetcher) FetchDocumentStealth(ctx context.Context, req *webscan.FetchRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	req = req.Clone()
	f.applyStealthHeaders(req.Header)

	resp, err := f.do(ctx, webscan.ProfileStealth, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := f.readBody(resp, req.URL)
	if err != nil {
		return "", err
	}
	body, err = decompress(body, resp.Header.Get("Content-Encoding"), f.maxBodySize)
	if err != nil {
		return "", err
	}
	return decodeText(body, resp.Header.Get("Content-Type"))
}

func (f *Fetcher) applyStealthHeaders(h http.Header) {
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Accept-Charset", "utf-8, iso-8859-1;q=0.5")
	h.Set("User-Agent", f.userAgent)
	h.Set("Connection", "keep-alive")
}

// do sends the request and returns once response headers are read.
// Non-2xx responses are returned as EHTTPSTATUS errors.
func (f *Fetcher) do(ctx context.Context, profile string, req *webscan.FetchRequest) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, nil)
	if err != nil {
		return nil, webscan.WrapError(webscan.EINVALID, err, "invalid request %s %s", method, req.URL)
	}
	if scheme := httpReq.URL.Scheme; scheme != "http" && scheme != "https" {
		return nil, webscan.Errorf(webscan.EINVALID, "request URL %q must be an absolute http(s) URL", req.URL)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	shared := f.clients.Client(profile)
	if shared == nil {
		return nil, webscan.Errorf(webscan.EINTERNAL, "client provider returned no client for profile %q", profile)
	}
	client := *shared
	client.Timeout = f.config.Timeout()

	f.logger.Debug("request start", "method", method, "url", req.URL, "profile", profileName(profile))
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, webscan.WrapError(webscan.ETRANSPORT, err, "%s %s failed", method, req.URL)
	}
	f.logger.Debug("request complete", "method", method, "url", req.URL)
	f.logger.Debug("status", "url", req.URL, "code", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &webscan.Error{
			Code:       webscan.EHTTPSTATUS,
			Message:    statusMessage(resp.StatusCode, req.URL, f.snippet(resp)),
			StatusCode: resp.StatusCode,
		}
	}
	return resp, nil
}

// snippet returns the start of an error response body. Content-encoded
// bodies are decoded first and dropped if they cannot be.
func (f *Fetcher) snippet(resp *http.Response) []byte {
	encoding := resp.Header.Get("Content-Encoding")
	if len(parseContentEncoding(encoding)) == 0 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, snippetSize))
		return b
	}
	raw, err := readLimited(resp.Body, errorBodyLimit)
	if err != nil {
		return nil
	}
	b, err := decompress(raw, encoding, f.maxBodySize)
	if err != nil {
		return nil
	}
	if len(b) > snippetSize {
		b = b[:snippetSize]
	}
	return b
}

func (f *Fetcher) readBody(resp *http.Response, url string) ([]byte, error) {
	body, err := readLimited(resp.Body, f.maxBodySize)
	if errors.Is(err, errBodyTooLarge) {
		return nil, webscan.WrapError(webscan.ETRANSPORT, err, "response body for %s too large", url)
	} else if err != nil {
		return nil, webscan.WrapError(webscan.ETRANSPORT, err, "read body of %s", url)
	}
	return body, nil
}

func statusMessage(code int, url string, snippet []byte) string {
	msg := fmt.Sprintf("HTTP %d for %s", code, url)
	if s := strings.TrimSpace(string(snippet)); s != "" {
		msg += ": " + s
	}
	return msg
}

func profileName(profile string) string {
	if profile == webscan.ProfileDefault {
		return "default"
	}
	return profile
}
