// Package util holds small helpers shared by the command line tools.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ to the user's home directory, then
// environment variables ($VAR or ${VAR}), and cleans the result.
// An empty path stays empty.
//
//	"~/.neo4jqa/config.yaml" -> "/home/user/.neo4jqa/config.yaml"
//	"$DATA_DIR/sample.yaml"  -> "/srv/data/sample.yaml"
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
	}

	return filepath.Clean(os.ExpandEnv(path)), nil
}

// ConfigPath picks the config file: an explicit path wins, then
// $NEO4JQA_HOME/config.yaml, then config.yaml under defaultHome.
func ConfigPath(explicit, defaultHome string) (string, error) {
	if explicit != "" {
		return ExpandPath(explicit)
	}
	home := os.Getenv("NEO4JQA_HOME")
	if home == "" {
		home = defaultHome
	}
	home, err := ExpandPath(home)
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}
