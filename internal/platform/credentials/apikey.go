// Package credentials loads the market data API key from local storage.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyAPIKey is returned when no usable key could be found.
var ErrEmptyAPIKey = errors.New("api key is empty")

// LoadAPIKey reads the key stored in path. Surrounding whitespace, including
// the trailing newline most editors add, is stripped.
func LoadAPIKey(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read api key file: %w", err)
	}
	key := strings.TrimSpace(string(b))
	if key == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyAPIKey, path)
	}
	return key, nil
}

// Resolve returns key when set, otherwise the contents of path.
func Resolve(key, path string) (string, error) {
	if k := strings.TrimSpace(key); k != "" {
		return k, nil
	}
	if path == "" {
		return "", ErrEmptyAPIKey
	}
	return LoadAPIKey(path)
}
