package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kwbasket/kwbasket/internal/common"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.Equal(t, "Keyword Baskets", c.SpreadsheetName)
	assert.Equal(t, 1000, c.BatchSize)
	assert.True(t, c.EnableFormatting)
}

func TestConfigValidate(t *testing.T) {
	oauth := func() Config {
		c := DefaultConfig()
		c.ClientID = "id"
		c.ClientSecret = "secret"
		c.RefreshToken = "token"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid oauth",
			mutate: func(_ *Config) {},
		},
		{
			name: "valid service account",
			mutate: func(c *Config) {
				c.ClientID = ""
				c.ClientSecret = ""
				c.RefreshToken = ""
				c.ServiceAccountPath = "/tmp/key.json"
			},
		},
		{
			name: "no auth method",
			mutate: func(c *Config) {
				c.ClientID = ""
				c.ClientSecret = ""
				c.RefreshToken = ""
			},
			wantErr: common.ErrMissingConfig,
		},
		{
			name: "both auth methods",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/tmp/key.json"
			},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "incomplete oauth",
			mutate: func(c *Config) {
				c.RefreshToken = ""
			},
			wantErr: common.ErrMissingConfig,
		},
		{
			name: "zero batch size",
			mutate: func(c *Config) {
				c.BatchSize = 0
			},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "negative retry attempts",
			mutate: func(c *Config) {
				c.RetryAttempts = -1
			},
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := oauth()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
