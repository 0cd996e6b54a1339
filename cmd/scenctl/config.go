// Config loading for the scenctl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/vrsetup/scenctl/internal/paths"
	"github.com/vrsetup/scenctl/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeyBinURL         = "bin_url"
	cfgKeyMasterKey      = "master_key"
	cfgKeyTimeoutSeconds = "timeout_seconds"

	envPrefix = "SCENCTL"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# scenctl configuration

# Remote JSON bin holding the scenario board
bin_url: https://api.jsonbin.io/v3/b/685483278a456b7966b15571

# Access key sent as X-Master-Key (also settable via SCENCTL_MASTER_KEY)
# master_key:

# Request timeout in seconds
timeout_seconds: 15
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. SCENCTL_* environment variables override file values.
func loadConfig(configDir string) (types.Config, error) {
	var cfg types.Config

	if err := ensureConfigDir(configDir); err != nil {
		return cfg, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return cfg, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBinURL, types.DefaultBinURL)
	v.SetDefault(cfgKeyTimeoutSeconds, types.DefaultTimeoutSeconds)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		// Missing config.yaml falls through to defaults.
	}

	cfg = types.Config{
		BinURL:         v.GetString(cfgKeyBinURL),
		MasterKey:      v.GetString(cfgKeyMasterKey),
		TimeoutSeconds: v.GetInt(cfgKeyTimeoutSeconds),
	}
	return cfg, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
