package config

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(options.Program{}))
	assert.NotNil(t, CreateLogger(options.Program{Flags: options.Flags{Debug: true}}))
	assert.NotNil(t, CreateLogger(options.Program{Flags: options.Flags{Headless: true}}))
}

func TestEngineOptions(t *testing.T) {
	assert.Len(t, EngineOptions(options.Emulator{}), 0)
	assert.Len(t, EngineOptions(options.Emulator{Seed: 42}), 1)
}
