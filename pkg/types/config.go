package types

import "time"

// Default configuration values. The bin URL points at the team's shared
// scenario board; both are overridable via config.yaml or environment.
const (
	DefaultBinURL         = "https://api.jsonbin.io/v3/b/685483278a456b7966b15571"
	DefaultTimeoutSeconds = 15
)

// Config holds the remote bin connection settings.
type Config struct {
	BinURL         string `json:"bin_url" yaml:"bin_url"`
	MasterKey      string `json:"master_key" yaml:"master_key"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.BinURL == "" {
		return ErrBinURLEmpty
	}
	if c.TimeoutSeconds <= 0 {
		return ErrTimeoutInvalid
	}
	return nil
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
