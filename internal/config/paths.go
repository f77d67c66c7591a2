package config

import (
	"os"
	"path/filepath"
)

// configSearchPaths lists the config file locations tried by Locate, in order.
func configSearchPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "statusbar", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "statusbar", "config.yaml"))
	}
	return append(paths, "/etc/statusbar/config.yaml")
}

// DefaultPath is the per-user config location written by `config init`.
// Empty if no home directory can be resolved.
func DefaultPath() string {
	paths := configSearchPaths()
	if len(paths) < 2 {
		return ""
	}
	return paths[0]
}
