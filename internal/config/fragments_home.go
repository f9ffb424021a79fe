package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetFragmentsHome returns the fragments home directory.
// Priority order:
//  1. FRAGMENTS_HOME environment variable (if set)
//  2. A .fragments directory under the user's home directory
//  3. A .fragments directory under the current working directory (fallback)
//
// The directory is created if it doesn't exist.
func GetFragmentsHome() (string, error) {
	if home := os.Getenv("FRAGMENTS_HOME"); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create fragments home directory: %w", err)
		}
		return home, nil
	}

	base, err := os.UserHomeDir()
	if err != nil {
		base, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	fragmentsHome := filepath.Join(base, ".fragments")
	if err := os.MkdirAll(fragmentsHome, 0755); err != nil {
		return "", fmt.Errorf("create fragments home directory: %w", err)
	}
	return fragmentsHome, nil
}

// GetHistoryDBPath returns the absolute path to the history database.
// Always returns: $FRAGMENTS_HOME/history/loads.db
func GetHistoryDBPath() (string, error) {
	home, err := GetFragmentsHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history", "loads.db"), nil
}

// GetConfigPath returns the path of the user config file.
// Always returns: $FRAGMENTS_HOME/config.yaml
func GetConfigPath() (string, error) {
	home, err := GetFragmentsHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}
