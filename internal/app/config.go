package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
// Target, Format, and Output are CLI-side overrides; when empty, the build
// manifest (or its defaults) decides.
type Config struct {
	RootPath string // source tree root containing the unit trees

	Target string // platform override: generic, linux, windows, or mac
	Format string // emit format override: stages or compiledb
	Output string // artifact path override

	Watch bool // re-plan on source tree changes

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.RootPath == "" {
		return nil, errors.New("RootPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
