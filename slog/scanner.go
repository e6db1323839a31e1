// Package slog provides logging decorators for webscan services.
package slog

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webscan"
	"github.com/google/uuid"
)

// Ensure LoggingScanner implements webscan.Scanner.
var _ webscan.Scanner = (*LoggingScanner)(nil)

// LoggingScanner wraps a Scanner and logs one record per call.
// Each record carries an xxhash of the returned text so monitors can tell
// when a page or node changed between runs.
type LoggingScanner struct {
	next   webscan.Scanner
	logger *slog.Logger
}

// NewLoggingScanner creates a new LoggingScanner.
func NewLoggingScanner(next webscan.Scanner, logger *slog.Logger) *LoggingScanner {
	return &LoggingScanner{next: next, logger: logger}
}

// FetchDocument delegates to the wrapped scanner and logs the operation.
func (s *LoggingScanner) FetchDocument(ctx context.Context, req *webscan.FetchRequest) (body string, err error) {
	defer s.logFetch("fetch document", req, time.Now(), &body, &err)
	return s.next.FetchDocument(ctx, req)
}

// FetchDocumentStealth delegates to the wrapped scanner and logs the operation.
func (s *LoggingScanner) FetchDocumentStealth(ctx context.Context, req *webscan.FetchRequest) (body string, err error) {
	defer s.logFetch("fetch document stealth", req, time.Now(), &body, &err)
	return s.next.FetchDocumentStealth(ctx, req)
}

// ExtractText delegates to the wrapped scanner and logs the operation.
func (s *LoggingScanner) ExtractText(markup, path string) (text string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("extract text",
			"path", path,
			"bytes", len(text),
			"hash", hash(text, err),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ExtractText(markup, path)
}

// ExtractSelectorText delegates to the wrapped scanner and logs the operation.
func (s *LoggingScanner) ExtractSelectorText(markup, selector string) (text string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("extract selector text",
			"selector", selector,
			"bytes", len(text),
			"hash", hash(text, err),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ExtractSelectorText(markup, selector)
}

func (s *LoggingScanner) logFetch(msg string, req *webscan.FetchRequest, begin time.Time, body *string, err *error) {
	var url, method string
	if req != nil {
		url, method = req.URL, req.Method
	}
	s.logger.Info(msg,
		"request_id", uuid.NewString(),
		"method", method,
		"url", url,
		"bytes", len(*body),
		"hash", hash(*body, *err),
		"duration", time.Since(begin),
		"err", *err,
	)
}

// hash returns the hex xxhash64 of s, or an empty string when the call failed.
func hash(s string, err error) string {
	if err != nil {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}
