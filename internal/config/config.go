// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings. Headless runs
// print the final display to stdout and only log errors unless debugging
// is enabled.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Debug:
		cfg.Level = log.DebugLevel
	case opts.Quiet, opts.Headless:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// EngineOptions returns the interpreter engine options for the given
// emulator options.
func EngineOptions(opts options.Emulator) []cpu.Option {
	var engineOptions []cpu.Option
	if opts.Seed != 0 {
		engineOptions = append(engineOptions, cpu.WithSeed(opts.Seed))
	}
	return engineOptions
}
