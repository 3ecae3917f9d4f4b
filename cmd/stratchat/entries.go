package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/stratchat"
)

// Run executes the entries command.
func (c *EntriesCmd) Run(deps *Dependencies) error {
	entries, err := c.find(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stratchat.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No entries found.")
		return nil
	}

	for _, e := range entries {
		if deps.Tokens != nil {
			n, err := deps.Tokens.CountTokens(deps.Ctx, e.Completion)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "%6d  %s  %s\n", n, e.SourcePath, e.Prompt)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", e.SourcePath, e.Prompt)
	}
	return nil
}

// find reads entries from the exported snapshot when a database is open,
// otherwise from the loaded knowledge.
func (c *EntriesCmd) find(deps *Dependencies) ([]stratchat.Entry, error) {
	if deps.Entries != nil {
		stored, err := deps.Entries.FindEntries(deps.Ctx, stratchat.EntryFilter{
			SourcePrefix: c.Prefix,
			Prompt:       c.Prompt,
			Limit:        c.Limit,
		})
		if err != nil {
			return nil, err
		}
		entries := make([]stratchat.Entry, len(stored))
		for i, e := range stored {
			entries[i] = e.Entry
		}
		return entries, nil
	}

	var entries []stratchat.Entry
	for _, e := range deps.Knowledge.Knowledge().Entries() {
		if !strings.HasPrefix(e.SourcePath, c.Prefix) || !strings.Contains(e.Prompt, c.Prompt) {
			continue
		}
		entries = append(entries, e)
		if c.Limit > 0 && len(entries) == c.Limit {
			break
		}
	}
	return entries, nil
}
