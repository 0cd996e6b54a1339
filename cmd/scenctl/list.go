// List command renders the scenario board as a grid.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/reconciler"
	"github.com/vrsetup/scenctl/pkg/types"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the scenario board",
	Long: `List fetches the board and renders the grid: one line per slot,
row-major, with empty slots marked. Use --json for machine-readable
output.

Example:
  scenctl list
  scenctl list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	doc, err := fetchBoard(cmd.Context())
	if err != nil {
		return err
	}
	scenarios := reconciler.Extract(doc)
	state := loadSession()
	dims := reconciler.Measure(scenarios, state)

	if listJSON {
		out, err := json.MarshalIndent(scenarios, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal scenarios: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Board: %d scenarios, %d rows x %d columns\n\n", len(scenarios), dims.TotalRows, dims.ActualColumns)
	for row := 0; row < dims.TotalRows; row++ {
		for col := 0; col < dims.ActualColumns; col++ {
			sc, ok := reconciler.ScenarioAt(scenarios, col, row)
			if !ok {
				fmt.Printf("  (%d,%d)  -\n", col, row)
				continue
			}
			title := sc.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Printf("  (%d,%d)  %s  [%s]\n", col, row, title, types.EnvironmentDisplay(sc.Environment))
		}
	}
	return nil
}
