// Push command uploads a local file to the scenario board.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/jsonio"
	"github.com/vrsetup/scenctl/internal/reconciler"
)

var pushCmd = &cobra.Command{
	Use:   "push <file>",
	Short: "Upload a local JSON file to the scenario board",
	Long: `Push validates a local file and replaces the remote board with it.
The whole bin document is overwritten, so push asks for confirmation
unless --yes is given.

Example:
  scenctl push board.json
  scenctl push board.json --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runPush,
}

func runPush(cmd *cobra.Command, args []string) error {
	raw, err := jsonio.ReadRaw(args[0])
	if err != nil {
		return err
	}

	doc, err := reconciler.DecodeBytes(raw)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}
	warnFindings(doc)

	if !confirm(fmt.Sprintf("Replace the remote board with %s (%d scenarios)?", args[0], doc.Len())) {
		fmt.Println("Aborted")
		return nil
	}

	if err := pushBoard(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Printf("Pushed %d scenarios\n", doc.Len())
	return nil
}
