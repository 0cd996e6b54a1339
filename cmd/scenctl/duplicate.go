// Duplicate command copies a scenario into the next free slot.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/reconciler"
)

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <col,row>",
	Short: "Copy the scenario at a grid position",
	Long: `Duplicate copies the scenario at the given position into the first
empty slot. The copy gets its own identity; only the editable fields
are carried over.

Example:
  scenctl duplicate 0,0`,
	Args: cobra.ExactArgs(1),
	RunE: runDuplicate,
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	doc, err := fetchBoard(cmd.Context())
	if err != nil {
		return err
	}

	doc, state, err := reconciler.Duplicate(doc, loadSession(), pos)
	if err != nil {
		return err
	}
	if err := pushBoard(cmd.Context(), doc); err != nil {
		return err
	}
	if err := saveSession(state); err != nil {
		return err
	}

	scenarios := reconciler.Extract(doc)
	copied := scenarios[len(scenarios)-1]
	fmt.Printf("Duplicated (%d,%d) to (%d,%d)\n", pos.Column, pos.Row, copied.Column, copied.Row)
	return nil
}
