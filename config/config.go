// Package config holds the connection settings for the target server.
//
// The settings are established once per run and passed explicitly to every
// collaborator; nothing else in this module reads process environment
// variables.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

const (
	// EnvServerURL is the environment variable holding the server base URL.
	EnvServerURL = "AYON_SERVER_URL"
	// EnvAPIKey is the environment variable holding the API key.
	EnvAPIKey = "AYON_API_KEY"
)

// Config carries everything needed to talk to an AYON-compatible server.
type Config struct {
	ServerURL string
	APIKey    string
}

// Load builds a Config from the environment. If a .env file exists in the
// working directory its values are loaded first (without overriding
// variables already set). Missing variables produce empty fields, not an
// error: a request made with an empty key fails at request time, which is
// the behavior tests relying on these fixtures expect. Use Validate when
// an upfront error is wanted instead.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		ServerURL: os.Getenv(EnvServerURL),
		APIKey:    os.Getenv(EnvAPIKey),
	}
}

// Validate reports whether the configuration is complete enough to make
// authenticated requests.
func (c Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server URL is not set (" + EnvServerURL + ")")
	}
	if c.APIKey == "" {
		return errors.New("API key is not set (" + EnvAPIKey + ")")
	}
	return nil
}
