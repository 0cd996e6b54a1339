package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid config",
			cfg:  Config{BinURL: DefaultBinURL, TimeoutSeconds: 15},
		},
		{
			name:    "empty bin url",
			cfg:     Config{TimeoutSeconds: 15},
			wantErr: ErrBinURLEmpty,
		},
		{
			name:    "zero timeout",
			cfg:     Config{BinURL: DefaultBinURL},
			wantErr: ErrTimeoutInvalid,
		},
		{
			name:    "negative timeout",
			cfg:     Config{BinURL: DefaultBinURL, TimeoutSeconds: -1},
			wantErr: ErrTimeoutInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigTimeout(t *testing.T) {
	cfg := Config{TimeoutSeconds: 15}
	assert.Equal(t, 15*time.Second, cfg.Timeout())
}
