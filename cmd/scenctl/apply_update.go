// Hidden helper command run by a freshly downloaded build to finish an
// update. Users never invoke it directly; update install spawns it.
package main

import (
	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/updater"
)

var applyPlanPath string

var applyUpdateCmd = &cobra.Command{
	Use:    "apply-update",
	Short:  "Finish a portable build update",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return updater.Apply(applyPlanPath)
	},
}

func init() {
	applyUpdateCmd.Flags().StringVar(&applyPlanPath, "plan", "", "install plan file")
	_ = applyUpdateCmd.MarkFlagRequired("plan")
}
