package config

import (
	"os"
	"strings"
)

// FromEnv overlays SQUID_LOG_* environment variables onto cfg.
//
//	SQUID_LOG_LEVEL       default level
//	SQUID_LOG_SYMBOLS     emoji|letter|auto
//	SQUID_LOG_FORMAT      default|payload
//	SQUID_LOG_CATEGORIES  comma separated pattern=level pairs
func FromEnv(cfg *Config) {
	if v := os.Getenv("SQUID_LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("SQUID_LOG_SYMBOLS"); v != "" {
		cfg.Symbols = v
	}
	if v := os.Getenv("SQUID_LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("SQUID_LOG_CATEGORIES"); v != "" {
		for _, p := range strings.Split(v, ",") {
			pattern, level, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || pattern == "" {
				continue
			}
			if cfg.Categories == nil {
				cfg.Categories = map[string]string{}
			}
			cfg.Categories[strings.TrimSpace(pattern)] = strings.TrimSpace(level)
		}
	}
}
