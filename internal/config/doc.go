// Package config provides loading and environment overlay for the squid
// host configuration, and applies it to a log.Manager. It exposes a
// Default() baseline; files may be JSON, JSON5 or YAML.
//
// Example:
//
//	cfg := config.Default()
//	// Optionally load from file and overlay env vars
//	if fileCfg, err := config.Load("/etc/squid.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	handles, err := cfg.Apply(log.Default())
//	// Categories pick up per-pattern overrides
//	network := cfg.Category("net/http")
package config
