package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/webscan"
	"golang.org/x/sync/errgroup"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	if err := c.validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webscan.ErrorMessage(err))
		return err
	}
	header, err := parseHeaders(c.Header)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webscan.ErrorMessage(err))
		return err
	}

	results := make([]string, len(c.URLs))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.limit())
	for i, target := range c.URLs {
		g.Go(func() error {
			req := webscan.NewFetchRequest(c.Method, target)
			req.Header = header.Clone()

			var body string
			var err error
			if c.Stealth {
				body, err = deps.Scanner.FetchDocumentStealth(ctx, req)
			} else {
				body, err = deps.Scanner.FetchDocument(ctx, req)
			}
			if err != nil {
				return &targetError{target: target, err: err}
			}

			out, err := c.render(deps, target, body)
			if err != nil {
				return &targetError{target: target, err: err}
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	for i, out := range results {
		if deps.Writer == nil {
			fmt.Fprintln(deps.Stdout, out)
			continue
		}
		path, err := c.save(deps, c.URLs[i], out)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s -> %s\n", c.URLs[i], path)
	}
	return nil
}

// save writes one result through the configured DocumentWriter.
func (c *FetchCmd) save(deps *Dependencies, target, content string) (string, error) {
	sourceURL, err := deps.Config.ResolveURL(target)
	if err != nil {
		return "", &targetError{target: target, err: err}
	}
	path, err := deps.Writer.WriteDocument(deps.Ctx, &webscan.Document{
		SourceURL: sourceURL,
		Format:    c.format(),
		Content:   content,
		FetchedAt: time.Now(),
	})
	if err != nil {
		return "", &targetError{target: target, err: err}
	}
	return path, nil
}

func (c *FetchCmd) format() webscan.Format {
	switch {
	case c.XPath != "" || c.Selector != "":
		return webscan.FormatText
	case c.Markdown:
		return webscan.FormatMarkdown
	}
	return webscan.FormatHTML
}

func (c *FetchCmd) validate() error {
	if len(c.URLs) == 0 {
		return webscan.Errorf(webscan.EINVALID, "at least one URL is required")
	}
	if c.XPath != "" && c.Selector != "" {
		return webscan.Errorf(webscan.EINVALID, "--xpath and --selector are mutually exclusive")
	}
	if c.Markdown && (c.XPath != "" || c.Selector != "") {
		return webscan.Errorf(webscan.EINVALID, "--markdown cannot be combined with --xpath or --selector")
	}
	return nil
}

func (c *FetchCmd) limit() int {
	if c.Concurrency <= 0 {
		return 1
	}
	return c.Concurrency
}

// render turns a fetched document into the requested output form.
func (c *FetchCmd) render(deps *Dependencies, target, body string) (string, error) {
	switch {
	case c.XPath != "":
		return deps.Scanner.ExtractText(body, c.XPath)
	case c.Selector != "":
		return deps.Scanner.ExtractSelectorText(body, c.Selector)
	case c.Markdown:
		pageURL, err := deps.Config.ResolveURL(target)
		if err != nil {
			return "", err
		}
		return deps.Converter.Convert(body, pageURL)
	}
	return body, nil
}

// parseHeaders parses repeated Key:Value flags into a header set.
func parseHeaders(values []string) (http.Header, error) {
	header := make(http.Header)
	for _, v := range values {
		key, value, ok := strings.Cut(v, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, webscan.Errorf(webscan.EINVALID, "header %q must have the form Key:Value", v)
		}
		header.Add(key, strings.TrimSpace(value))
	}
	return header, nil
}

// targetError ties a fetch failure to the URL that caused it.
type targetError struct {
	target string
	err    error
}

func (e *targetError) Error() string { return e.target + ": " + e.err.Error() }

func (e *targetError) Unwrap() error { return e.err }

func describe(err error) string {
	var te *targetError
	if errors.As(err, &te) {
		return te.target + ": " + webscan.ErrorMessage(te.err)
	}
	return webscan.ErrorMessage(err)
}
