// Update commands check for, download, and install new portable builds.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vrsetup/scenctl/internal/paths"
	"github.com/vrsetup/scenctl/internal/updater"
	"github.com/vrsetup/scenctl/pkg/scenctl"
	"github.com/vrsetup/scenctl/pkg/types"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Manage scenctl portable build updates",
	Long: `Update checks the release feed for a newer portable build, downloads
it to the Downloads folder, and can swap the running executable for
the downloaded one.`,
}

var updateCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether a newer release exists",
	Args:  cobra.NoArgs,
	RunE:  runUpdateCheck,
}

var updateDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the latest portable build",
	Args:  cobra.NoArgs,
	RunE:  runUpdateDownload,
}

var updateInstallCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Replace this executable with a downloaded build and restart",
	Long: `Install hands the downloaded package the job of replacing the running
executable: scenctl exits, the new build waits for it, swaps the
files, and relaunches from the original location.

Example:
  scenctl update install ~/Downloads/scenctl-portable-2.0.0`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdateInstall,
}

func init() {
	updateCmd.AddCommand(updateCheckCmd)
	updateCmd.AddCommand(updateDownloadCmd)
	updateCmd.AddCommand(updateInstallCmd)
}

func runUpdateCheck(cmd *cobra.Command, args []string) error {
	info, err := updater.NewChecker().Check(cmd.Context(), scenctl.Version)
	if err != nil {
		return err
	}
	printUpdateInfo(info)
	return nil
}

func printUpdateInfo(info types.UpdateInfo) {
	if !info.HasUpdate {
		fmt.Printf("scenctl %s is up to date\n", info.CurrentVersion)
		return
	}
	fmt.Printf("Update available: %s -> %s\n", info.CurrentVersion, info.LatestVersion)
	if info.ReleaseNotes != "" {
		fmt.Println()
		fmt.Println(info.ReleaseNotes)
		fmt.Println()
	}
	if info.HasAsset() {
		fmt.Printf("Download with: scenctl update download (%s, %d bytes)\n", info.FileName, info.DownloadSize)
	} else {
		fmt.Printf("No portable build in this release; see %s\n", info.ReleaseURL)
	}
}

func runUpdateDownload(cmd *cobra.Command, args []string) error {
	info, err := updater.NewChecker().Check(cmd.Context(), scenctl.Version)
	if err != nil {
		return err
	}
	if !info.HasUpdate {
		fmt.Printf("scenctl %s is up to date\n", info.CurrentVersion)
		return nil
	}
	if !info.HasAsset() {
		return fmt.Errorf("%w; see %s", types.ErrNoAsset, info.ReleaseURL)
	}

	destDir, err := paths.DownloadsDir()
	if err != nil {
		return err
	}

	fmt.Printf("Downloading %s...\n", info.FileName)
	res, err := updater.NewDownloader(destDir).Download(cmd.Context(), info.DownloadURL, info.FileName, func(p updater.Progress) {
		fmt.Printf("\r  %3d%% (%d/%d bytes)", p.Percent, p.Transferred, p.Total)
	})
	fmt.Println()
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s (%d bytes)\n", res.FilePath, res.TotalSize)
	fmt.Printf("Install with: scenctl update install %s\n", res.FilePath)
	return nil
}

func runUpdateInstall(cmd *cobra.Command, args []string) error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating running executable: %w", err)
	}

	if !confirm(fmt.Sprintf("Replace %s with %s and restart?", self, args[0])) {
		fmt.Println("Aborted")
		return nil
	}

	if _, err := updater.InstallAndRestart(args[0], self); err != nil {
		return err
	}
	fmt.Println("Update handed off; scenctl will restart shortly")
	// Exit promptly so the helper can replace the executable.
	os.Exit(exitSuccess)
	return nil
}
