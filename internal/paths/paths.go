// Package paths resolves configuration, session, and download locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment variable for the configuration directory override.
const EnvConfigDir = "SCENCTL_CONFIG_DIR"

// File names kept inside the configuration directory.
const (
	ConfigFileName  = "config.yaml"
	SessionFileName = "session.json"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/scenctl (fallback ~/.config/scenctl)
// macOS:   ~/Library/Application Support/scenctl
// Windows: %APPDATA%/scenctl
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "scenctl"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "scenctl"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "scenctl"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > SCENCTL_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ConfigFile returns the config file path inside the given directory.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// SessionFile returns the grid session file path inside the given directory.
func SessionFile(configDir string) string {
	return filepath.Join(configDir, SessionFileName)
}

// DownloadsDir returns the user's download folder, where update packages
// land by default.
func DownloadsDir() (string, error) {
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads"), nil
}
