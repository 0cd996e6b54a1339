// Fmt command validates and reformats a local board file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/jsonio"
)

var fmtIndent int

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Validate and reformat a local JSON file",
	Long: `Fmt parses a local JSON file and rewrites it with consistent
indentation. Invalid JSON is reported without touching the file.

Example:
  scenctl fmt board.json
  scenctl fmt board.json --indent 4`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().IntVar(&fmtIndent, "indent", 2, "indent width (2 or 4)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	data, err := jsonio.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := jsonio.WriteFile(args[0], data, fmtIndent); err != nil {
		return err
	}
	fmt.Printf("Formatted %s\n", args[0])
	return nil
}
