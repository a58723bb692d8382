package app

import (
	"fmt"
	"path/filepath"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Root is the project root directory.
	Root string
	// LogFormat is "text" or "json".
	LogFormat string
	// LogLevel is "debug", "info", "warn", or "error".
	LogLevel string
	// MaxWorkers caps concurrent pipeline executions; 0 means unbounded.
	MaxWorkers int
	// Watch keeps the process alive and rebuilds on source changes.
	Watch bool
}

// NewConfig validates and normalizes a Config.
func NewConfig(c Config) (*Config, error) {
	if c.Root == "" {
		return nil, fmt.Errorf("project root must not be empty")
	}
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	c.Root = root

	if c.MaxWorkers < 0 {
		return nil, fmt.Errorf("max-workers must not be negative")
	}
	return &c, nil
}
