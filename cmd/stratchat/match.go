package main

import (
	"fmt"

	"github.com/fwojciec/stratchat/assistant"
	"github.com/fwojciec/stratchat/knowledge"
)

// Run executes the match command.
func (c *MatchCmd) Run(deps *Dependencies) error {
	k := deps.Knowledge.Knowledge()

	route := assistant.Classify(c.Query, k)
	fmt.Fprintf(deps.Stdout, "intent: %s\n", route.Intent)
	if route.Refusal != "" {
		fmt.Fprintf(deps.Stdout, "refusal: %s\n", route.Refusal)
	}

	ranked := knowledge.Matcher{}.Rank(c.Query, k.Entries())
	if len(ranked) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching entries.")
		return nil
	}
	if c.Limit > 0 && len(ranked) > c.Limit {
		ranked = ranked[:c.Limit]
	}
	for _, cand := range ranked {
		fmt.Fprintf(deps.Stdout, "%.3f  %-9s  %s\n", cand.Score, cand.Kind, cand.Prompt)
	}
	return nil
}
