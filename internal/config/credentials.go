package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables holding the API key, in lookup order
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvLegacyAPIKey = "VITE_GEMINI_API_KEY"
)

// DefaultEnvFile is loaded from the working directory when present
const DefaultEnvFile = ".env"

// Credentials holds the secret used to authenticate API calls
type Credentials struct {
	APIKey string
	// Source names the variable the key was read from
	Source string
}

// HasKey reports whether an API key was found
func (c Credentials) HasKey() bool {
	return c.APIKey != ""
}

// LoadCredentials reads the API key from the environment, after loading
// envFiles (or DefaultEnvFile when none are given). Variables already set in
// the process environment win over file values. Missing env files are not an
// error; a missing key is reported through HasKey, not as an error.
func LoadCredentials(envFiles ...string) (Credentials, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}

	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Credentials{}, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	for _, name := range []string{EnvAPIKey, EnvLegacyAPIKey} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return Credentials{APIKey: v, Source: name}, nil
		}
	}

	return Credentials{}, nil
}
