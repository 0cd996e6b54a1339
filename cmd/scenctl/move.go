// Move command relocates or swaps scenarios on the grid.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/reconciler"
)

var moveCmd = &cobra.Command{
	Use:   "move <from-col,row> <to-col,row>",
	Short: "Move a scenario to another slot",
	Long: `Move relocates the scenario at the first position to the second. When
the target slot already holds a scenario the two swap places.

Example:
  scenctl move 0,0 1,2`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	from, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	to, err := parsePosition(args[1])
	if err != nil {
		return err
	}

	doc, err := fetchBoard(cmd.Context())
	if err != nil {
		return err
	}

	doc, err = reconciler.Move(doc, loadSession(), from, to)
	if err != nil {
		return err
	}
	if err := pushBoard(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Printf("Moved (%d,%d) to (%d,%d)\n", from.Column, from.Row, to.Column, to.Row)
	return nil
}
