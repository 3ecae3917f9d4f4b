package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/stratchat"
	"github.com/fwojciec/stratchat/assistant"
)

// Run executes the chat command. Each stdin line is one question; a failed
// turn is reported and the conversation continues.
func (c *ChatCmd) Run(deps *Dependencies) error {
	if deps.Responder == nil {
		return stratchat.Errorf(stratchat.ECONFIG, "generation is not configured")
	}

	greeting := assistant.Greeting()
	session := stratchat.NewSession(deps.Responder, greeting)
	fmt.Fprintln(deps.Stdout, greeting[len(greeting)-1].Text)

	scanner := bufio.NewScanner(deps.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		if _, err := session.Send(deps.Ctx, line, deps.Stdout); err != nil {
			if deps.Ctx.Err() != nil {
				return deps.Ctx.Err()
			}
			fmt.Fprintf(deps.Stderr, "error: %s\n", userMessage(err))
			continue
		}
		fmt.Fprintln(deps.Stdout)
	}
	fmt.Fprintln(deps.Stdout)
	return scanner.Err()
}
