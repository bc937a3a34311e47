package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFileName is loaded from the working directory and the board directory.
const EnvFileName = ".env"

// LoadEnv loads .env files from the working directory and then the board
// directory. Variables already set in the environment are never overridden,
// and missing files are skipped.
func (c *Config) LoadEnv() error {
	var files []string
	if cwd, err := os.Getwd(); err == nil {
		files = append(files, filepath.Join(cwd, EnvFileName))
	}
	if c.dir != "" {
		files = append(files, filepath.Join(c.dir, EnvFileName))
	}

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f] {
			continue
		}
		seen[f] = true
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Token returns the bot token from the configured environment variable.
// ok is false when the variable is unset or empty.
func (c *Config) Token() (token string, ok bool) {
	token = os.Getenv(c.Discord.TokenEnv)
	return token, token != ""
}
