// Package environment loads service configuration from environment variables,
// optionally seeded from a .env file, with support for namespacing and defaults.
package environment

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from the given .env files, or from ./.env when no
// path is passed. Variables already present in the process environment win.
// A missing file is not an error: deployed containers configure through the
// real environment only.
//
// Example:
//
//	if err := environment.LoadEnv(); err != nil {
//	    return fmt.Errorf("loading .env: %w", err)
//	}
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// GetEnvKeyPrefix constructs a namespaced key by joining prefix and key with
// an underscore. An empty prefix returns the key unchanged.
//
//	GetEnvKeyPrefix("CANARY", "REDIS_HOST") // "CANARY_REDIS_HOST"
//	GetEnvKeyPrefix("", "REDIS_HOST")       // "REDIS_HOST"
func GetEnvKeyPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", prefix, key)
}
