package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/stratchat"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	if deps.Responder == nil {
		return stratchat.Errorf(stratchat.ECONFIG, "generation is not configured")
	}

	// A rendered answer is only shown once complete.
	var out io.Writer = deps.Stdout
	var buf strings.Builder
	if deps.Renderer != nil {
		out = &buf
	}

	session := stratchat.NewSession(deps.Responder, nil)
	turn, err := session.Send(deps.Ctx, c.Question, out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", userMessage(err))
		return err
	}

	if deps.Renderer != nil {
		rendered, err := deps.Renderer.Render(turn.Text)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", stratchat.ErrorMessage(err))
			return err
		}
		fmt.Fprint(deps.Stdout, rendered)
		return nil
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}

// userMessage returns the text shown for a failed turn.
func userMessage(err error) string {
	if stratchat.ErrorCode(err) == stratchat.EINVALID {
		return stratchat.ErrorMessage(err)
	}
	return stratchat.FailureMessage(err)
}
