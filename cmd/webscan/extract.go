package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/webscan"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if (c.XPath == "") == (c.Selector == "") {
		err := webscan.Errorf(webscan.EINVALID, "exactly one of --xpath or --selector is required")
		fmt.Fprintf(deps.Stderr, "error: %s\n", webscan.ErrorMessage(err))
		return err
	}

	markup, err := c.read(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webscan.ErrorMessage(err))
		return err
	}

	var text string
	if c.XPath != "" {
		text, err = deps.Scanner.ExtractText(markup, c.XPath)
	} else {
		text, err = deps.Scanner.ExtractSelectorText(markup, c.Selector)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, text)
	return nil
}

func (c *ExtractCmd) read(stdin io.Reader) (string, error) {
	if c.File == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", webscan.WrapError(webscan.EINVALID, err, "failed to read stdin")
		}
		return string(b), nil
	}
	b, err := os.ReadFile(c.File)
	if err != nil {
		return "", webscan.WrapError(webscan.ENOTFOUND, err, "failed to read %s", c.File)
	}
	return string(b), nil
}
