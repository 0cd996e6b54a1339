// Grid commands reshape the board's display extent. The extent is a
// per-user session preference kept in the config directory; none of
// these commands touch the remote bin.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/reconciler"
	"github.com/vrsetup/scenctl/pkg/types"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Manage the board's grid extent",
	Long: `Grid adjusts how many rows and columns the board shows beyond what
the scenarios themselves occupy. The extent is stored per user; the
scenarios on the remote board are never modified.`,
}

var gridAddRowCmd = &cobra.Command{
	Use:   "add-row",
	Short: "Append an empty row",
	Long: `Add-row appends an empty row below the grid. The current last row
must hold at least one scenario, so empty rows cannot pile up.`,
	Args: cobra.NoArgs,
	RunE: runGridAddRow,
}

var gridAddColumnCmd = &cobra.Command{
	Use:   "add-column",
	Short: "Append an empty column",
	Long: `Add-column appends an empty column to the right of the grid. The
current last column must hold at least one scenario.`,
	Args: cobra.NoArgs,
	RunE: runGridAddColumn,
}

var gridRemoveSlotCmd = &cobra.Command{
	Use:   "remove-slot <col,row>",
	Short: "Remove an empty slot, shrinking trailing rows or columns",
	Long: `Remove-slot shrinks the grid extent when the given empty slot sits in
a fully-empty trailing row or column. Occupied slots are refused;
delete the scenario first.

Example:
  scenctl grid remove-slot 1,3`,
	Args: cobra.ExactArgs(1),
	RunE: runGridRemoveSlot,
}

var gridRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute the extent from scenario positions",
	Long: `Refresh discards manual extent adjustments and recomputes the grid
from the scenarios' actual positions.`,
	Args: cobra.NoArgs,
	RunE: runGridRefresh,
}

func init() {
	gridCmd.AddCommand(gridAddRowCmd)
	gridCmd.AddCommand(gridAddColumnCmd)
	gridCmd.AddCommand(gridRemoveSlotCmd)
	gridCmd.AddCommand(gridRefreshCmd)
}

func runGridAddRow(cmd *cobra.Command, args []string) error {
	scenarios, err := boardScenarios(cmd)
	if err != nil {
		return err
	}

	state, err := reconciler.AddRow(scenarios, loadSession())
	if err != nil {
		return err
	}
	if err := saveSession(state); err != nil {
		return err
	}
	reportExtent(scenarios, state)
	return nil
}

func runGridAddColumn(cmd *cobra.Command, args []string) error {
	scenarios, err := boardScenarios(cmd)
	if err != nil {
		return err
	}

	state, err := reconciler.AddColumn(scenarios, loadSession())
	if err != nil {
		return err
	}
	if err := saveSession(state); err != nil {
		return err
	}
	reportExtent(scenarios, state)
	return nil
}

func runGridRemoveSlot(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	scenarios, err := boardScenarios(cmd)
	if err != nil {
		return err
	}

	state, err := reconciler.RemoveEmptySlot(scenarios, loadSession(), pos.Column, pos.Row)
	if err != nil {
		return err
	}
	if err := saveSession(state); err != nil {
		return err
	}
	reportExtent(scenarios, state)
	return nil
}

func runGridRefresh(cmd *cobra.Command, args []string) error {
	scenarios, err := boardScenarios(cmd)
	if err != nil {
		return err
	}

	state := reconciler.Refresh(scenarios)
	if err := saveSession(state); err != nil {
		return err
	}
	reportExtent(scenarios, state)
	return nil
}

func boardScenarios(cmd *cobra.Command) ([]types.Scenario, error) {
	doc, err := fetchBoard(cmd.Context())
	if err != nil {
		return nil, err
	}
	return reconciler.Extract(doc), nil
}

func reportExtent(scenarios []types.Scenario, state reconciler.GridState) {
	dims := reconciler.Measure(scenarios, state)
	fmt.Printf("Grid is now %d rows x %d columns\n", dims.TotalRows, dims.ActualColumns)
}
