package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Host:      "localhost",
		Port:      5432,
		Database:  "beeport2",
		User:      "sig32",
		SSLMode:   "disable",
		MaxConns:  4,
		IdleConns: 2,
	}
}

func TestDSN(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "host=localhost port=5432 dbname=beeport2 user=sig32 sslmode=disable", cfg.DSN())

	cfg.Password = "secret"
	assert.Equal(t, "host=localhost port=5432 dbname=beeport2 user=sig32 sslmode=disable password=secret", cfg.DSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing host", func(c *Config) { c.Host = "" }, true},
		{"port too low", func(c *Config) { c.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
		{"missing database", func(c *Config) { c.Database = "" }, true},
		{"missing user", func(c *Config) { c.User = "" }, true},
		{"bad max conns", func(c *Config) { c.MaxConns = 0 }, true},
		{"bad idle conns", func(c *Config) { c.IdleConns = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
