package main

import (
	"fmt"

	"github.com/fwojciec/stratchat"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	k := deps.Knowledge.Knowledge()
	if err := deps.Exporter.ExportKnowledge(deps.Ctx, k); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stratchat.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Exported %d entries to %s\n", k.Base.Len(), c.Path)
	return nil
}
