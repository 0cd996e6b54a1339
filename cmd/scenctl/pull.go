// Pull command downloads the scenario board to a local file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/jsonio"
)

var pullIndent int

var pullCmd = &cobra.Command{
	Use:   "pull <file>",
	Short: "Download the scenario board to a local JSON file",
	Long: `Pull fetches the board from the remote bin and writes it to a local
file, preserving the document's wrapper shape exactly as stored.

Example:
  scenctl pull board.json
  scenctl pull board.json --indent 4`,
	Args: cobra.ExactArgs(1),
	RunE: runPull,
}

func init() {
	pullCmd.Flags().IntVar(&pullIndent, "indent", 2, "indent width for the written file")
}

func runPull(cmd *cobra.Command, args []string) error {
	doc, err := fetchBoard(cmd.Context())
	if err != nil {
		return err
	}

	if err := jsonio.WriteFile(args[0], doc.Value(), pullIndent); err != nil {
		return err
	}
	fmt.Printf("Pulled %d scenarios to %s\n", doc.Len(), args[0])
	return nil
}
