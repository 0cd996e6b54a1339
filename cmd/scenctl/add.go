// Add command creates a new scenario on the board.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/reconciler"
	"github.com/vrsetup/scenctl/pkg/types"
)

var (
	addTitle       string
	addCharacter   string
	addEnvironment string
	addGreeting    string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a scenario to the first free slot",
	Long: `Add creates a new scenario in the first empty slot, scanning the grid
row by row. When the grid is full a new row is appended.

The environment accepts either a code or a display label.

Example:
  scenctl add --title "Ward round" --character betty --environment "Hospital - Betty" --greeting "Hello"`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "scenario title (required)")
	addCmd.Flags().StringVar(&addCharacter, "character", "", "character identifier")
	addCmd.Flags().StringVar(&addEnvironment, "environment", "", "environment code or display label")
	addCmd.Flags().StringVar(&addGreeting, "greeting", "", "greeting message")
	_ = addCmd.MarkFlagRequired("title")
}

func runAdd(cmd *cobra.Command, args []string) error {
	doc, err := fetchBoard(cmd.Context())
	if err != nil {
		return err
	}

	in := types.ScenarioInput{
		Title:       addTitle,
		CharacterID: addCharacter,
		Environment: resolveEnvironment(addEnvironment),
		Greeting:    addGreeting,
	}

	doc, state, err := reconciler.Add(doc, loadSession(), in)
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
	added := scenarios[len(scenarios)-1]
	fmt.Printf("Added %q at (%d,%d)\n", added.Title, added.Column, added.Row)
	return nil
}
