package main

import (
	"context"
	"io"

	"github.com/fwojciec/webscan"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *webscan.Config
	Scanner   webscan.Scanner
	Converter webscan.Converter

	// Writer is set when fetched output is saved to files instead of stdout.
	Writer webscan.DocumentWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL string `name:"base-url" env:"WEBSCAN_BASE_URL" help:"Base URL that relative targets are resolved against"`
	Timeout int    `name:"timeout" env:"WEBSCAN_TIMEOUT" default:"0" help:"Per-request timeout in seconds (0 means 100)"`
	Debug   bool   `help:"Log request lifecycle events to stderr"`

	Fetch   FetchCmd   `cmd:"" help:"Fetch documents and optionally extract text from them"`
	Extract ExtractCmd `cmd:"" help:"Extract text from a local document"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs        []string `arg:"" name:"url" sep:"none" help:"Target URLs (relative URLs need --base-url)"`
	Stealth     bool     `short:"s" help:"Send browser-like headers and a Chrome TLS fingerprint"`
	Header      []string `short:"H" sep:"none" help:"Extra request header as Key:Value (repeatable)"`
	Method      string   `short:"X" default:"GET" help:"HTTP method"`
	XPath       string   `short:"x" name:"xpath" help:"XPath expression to extract"`
	Selector    string   `short:"q" help:"CSS selector to extract"`
	Markdown    bool     `short:"m" help:"Convert fetched HTML to markdown"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	Output      string   `short:"o" type:"path" help:"Save each result as a file under this directory instead of printing it"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File     string `arg:"" help:"Document to read, or - for stdin"`
	XPath    string `short:"x" name:"xpath" help:"XPath expression to extract"`
	Selector string `short:"q" help:"CSS selector to extract"`
}
