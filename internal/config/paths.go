package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the XDG-compliant configuration directory path for
// appName, honoring XDG_CONFIG_HOME when set.
func GetConfigPath(appName string) string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", appName)
}
