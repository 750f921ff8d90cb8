package config

import (
	"os"
	"path/filepath"
)

// configNames are probed in order inside each candidate directory.
var configNames = []string{"squid.yaml", "squid.yml", "squid.json5", "squid.json"}

// DefaultPath returns the first existing config file among the standard
// locations, or "" when there is none. The working directory is searched
// first, then $XDG_CONFIG_HOME/squid (or ~/.config/squid).
func DefaultPath() string {
	dirs := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "squid"))
	} else if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", "squid"))
	}
	for _, dir := range dirs {
		for _, name := range configNames {
			p := filepath.Join(dir, name)
			if isFile(p) {
				return p
			}
		}
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
