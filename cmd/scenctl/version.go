// Version command for the scenctl CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/pkg/scenctl"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scenctl version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("scenctl", scenctl.Version)
	},
}
