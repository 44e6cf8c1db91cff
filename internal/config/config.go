package config

import (
	"fmt"
)

// Config holds everything internal/app needs to run one interpretation.
type Config struct {
	// ModulePath is the path to the .tla (or .tla-subset) source file.
	ModulePath string

	// ConstExprs holds repeatable "-const name=expr" flags: each element
	// is one unparsed "name=expr" string, expr being raw TLA+ expression
	// text evaluated through the same rewriter/eval pipeline as the
	// module itself.
	ConstExprs []string

	// ConstFile is an optional path to a flat HCL attribute file
	// (internal/hclconst) supplying constants the friendlier way.
	// Empty means none was given.
	ConstFile string

	// MaxStates bounds internal/enumerate's Reachable exploration. Zero
	// means unbounded.
	MaxStates int

	LogFormat string
	LogLevel  string

	// HealthcheckPort, if positive, starts an HTTP health endpoint while
	// Reachable runs. Zero or negative disables it.
	HealthcheckPort int

	// ChooseTrace logs every domain element internal/eval's CHOOSE
	// selects, for debugging nondeterministic specs.
	ChooseTrace bool
}

// NewConfig validates cfg and returns a copy, the same shape as the
// teacher's app.NewConfig: reject missing required fields, leave
// everything else as given.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModulePath == "" {
		return nil, fmt.Errorf("config: ModulePath is required")
	}
	if cfg.MaxStates < 0 {
		return nil, fmt.Errorf("config: MaxStates cannot be negative")
	}

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("config: invalid LogFormat %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("config: invalid LogLevel %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return &cfg, nil
}
