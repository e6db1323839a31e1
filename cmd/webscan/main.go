package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webscan"
	"github.com/fwojciec/webscan/fs"
	"github.com/fwojciec/webscan/htmltomarkdown"
	"github.com/fwojciec/webscan/scan"
	wslog "github.com/fwojciec/webscan/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Built from flags when nil.
	Scanner   webscan.Scanner
	Converter webscan.Converter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webscan"),
		kong.Description("Fetch web documents and extract text with XPath or CSS selectors"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webscan --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Config = &webscan.Config{
		BaseURL:        cli.BaseURL,
		TimeoutSeconds: cli.Timeout,
	}
	if err := deps.Config.Validate(); err != nil {
		fmt.Fprintln(stderr, "Hint: --base-url must be an absolute http(s) URL and --timeout must not be negative")
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	scanner := m.Scanner
	if scanner == nil {
		svc, err := scan.New(deps.Config, scan.WithLogger(logger))
		if err != nil {
			return err
		}
		scanner = svc
	}
	// Per-call records are only interesting when debugging.
	if cli.Debug {
		scanner = wslog.NewLoggingScanner(scanner, logger)
	}
	deps.Scanner = scanner

	deps.Converter = m.Converter
	if deps.Converter == nil {
		deps.Converter = htmltomarkdown.NewConverter()
	}

	if cli.Fetch.Output != "" {
		deps.Writer = fs.NewWriter(cli.Fetch.Output)
	}

	return kongCtx.Run(deps)
}
