// Root command for the scenctl CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/paths"
	"github.com/vrsetup/scenctl/pkg/scenctl"
	"github.com/vrsetup/scenctl/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagYes       bool
)

// binConfig holds the validated remote bin settings, loaded by
// PersistentPreRunE for every command that talks to the bin.
var binConfig types.Config

// resolvedConfigDir is where config.yaml and session.json live this run.
var resolvedConfigDir string

var rootCmd = &cobra.Command{
	Use:     "scenctl",
	Short:   "Scenctl manages the shared VR scenario board",
	Version: scenctl.Version,
	Long: `Scenctl edits the VR scenario board stored in the team's remote JSON
bin. Scenarios live on a grid; scenctl can pull and push the board,
add, edit, duplicate, move, and delete scenarios, reshape the grid,
and update its own portable build in place.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// version and the update helper never touch the bin config.
		switch cmd.Name() {
		case "version", "apply-update":
			return nil
		}

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		resolvedConfigDir = configDir

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		binConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().BoolVar(&flagYes, "yes", false, "skip confirmation prompts")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(duplicateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(applyUpdateCmd)
}
