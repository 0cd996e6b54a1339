// Delete command removes a scenario from the board.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/reconciler"
	"github.com/vrsetup/scenctl/pkg/types"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <col,row>",
	Short: "Delete the scenario at a grid position",
	Long: `Delete removes the scenario at the given position. The slot becomes
empty; other scenarios keep their places.

Example:
  scenctl delete 1,0
  scenctl delete 1,0 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	doc, err := fetchBoard(cmd.Context())
	if err != nil {
		return err
	}

	scenarios := reconciler.Extract(doc)
	target, ok := reconciler.ScenarioAt(scenarios, pos.Column, pos.Row)
	if !ok {
		return types.ErrScenarioNotFound
	}

	title := target.Title
	if title == "" {
		title = "(untitled)"
	}
	if !confirm(fmt.Sprintf("Delete %q at (%d,%d)?", title, pos.Column, pos.Row)) {
		fmt.Println("Aborted")
		return nil
	}

	doc, err = reconciler.Delete(doc, pos)
	if err != nil {
		return err
	}
	if err := pushBoard(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Printf("Deleted scenario at (%d,%d)\n", pos.Column, pos.Row)
	return nil
}
