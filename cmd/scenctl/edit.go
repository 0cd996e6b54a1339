// Edit command updates a scenario in place.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/reconciler"
	"github.com/vrsetup/scenctl/pkg/types"
)

var (
	editTitle       string
	editCharacter   string
	editEnvironment string
	editGreeting    string
)

var editCmd = &cobra.Command{
	Use:   "edit <col,row>",
	Short: "Edit the scenario at a grid position",
	Long: `Edit replaces fields of the scenario at the given position. Only
flags that are set change; omitted fields keep their current values.
The scenario's position never changes.

Example:
  scenctl edit 1,0 --title "New title"
  scenctl edit 0,2 --environment BDS_Hospital_Rachael --greeting "Hi"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "scenario title")
	editCmd.Flags().StringVar(&editCharacter, "character", "", "character identifier")
	editCmd.Flags().StringVar(&editEnvironment, "environment", "", "environment code or display label")
	editCmd.Flags().StringVar(&editGreeting, "greeting", "", "greeting message")
}

func runEdit(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	doc, err := fetchBoard(cmd.Context())
	if err != nil {
		return err
	}

	scenarios := reconciler.Extract(doc)
	current, ok := reconciler.ScenarioAt(scenarios, pos.Column, pos.Row)
	if !ok {
		return types.ErrScenarioNotFound
	}

	// Unset flags keep the current value.
	in := types.ScenarioInput{
		Title:       current.Title,
		CharacterID: current.CharacterID,
		Environment: current.Environment,
		Greeting:    current.Greeting,
	}
	if cmd.Flags().Changed("title") {
		in.Title = editTitle
	}
	if cmd.Flags().Changed("character") {
		in.CharacterID = editCharacter
	}
	if cmd.Flags().Changed("environment") {
		in.Environment = resolveEnvironment(editEnvironment)
	}
	if cmd.Flags().Changed("greeting") {
		in.Greeting = editGreeting
	}

	doc, err = reconciler.Edit(doc, pos, in)
	if err != nil {
		return err
	}
	if err := pushBoard(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Printf("Updated scenario at (%d,%d)\n", pos.Column, pos.Row)
	return nil
}
