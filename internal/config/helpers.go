package config

import (
	"os"
	"path/filepath"
)

// DefaultHomeDir returns the default home directory, ~/.neo4jqa.
// It falls back to a temporary directory if the user home cannot be determined.
func DefaultHomeDir() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".neo4jqa")
	}
	return filepath.Join(userHome, ".neo4jqa")
}

// DefaultConfigPath returns the default config file path for a given home directory
func DefaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.yaml")
}
