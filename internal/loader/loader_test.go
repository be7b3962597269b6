package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestLoad(t *testing.T) {
	t.Run("load CHIP-8 file", func(t *testing.T) {
		tmpFile := createTempFile(t, "pong.ch8", []byte{0x12, 0x34, 0x56, 0x78})

		loader := New(log.NewTestLogger(t))
		rom, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal([]byte{0x12, 0x34, 0x56, 0x78}, rom))
	})

	t.Run("load file with unknown extension", func(t *testing.T) {
		tmpFile := createTempFile(t, "pong.bin", []byte{0x00, 0xE0})

		loader := New(log.NewTestLogger(t))
		rom, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom, 2)
	})

	t.Run("load maximum size", func(t *testing.T) {
		tmpFile := createTempFile(t, "big.ch8", make([]byte, machine.MaxROMSize))

		loader := New(log.NewTestLogger(t))
		rom, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom, machine.MaxROMSize)
	})

	t.Run("error on oversized file", func(t *testing.T) {
		tmpFile := createTempFile(t, "huge.ch8", make([]byte, machine.MaxROMSize+1))

		loader := New(log.NewTestLogger(t))
		_, err := loader.Load(tmpFile)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, machine.ErrROMTooLarge))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New(log.NewTestLogger(t))
		_, err := loader.Load("/nonexistent/file.ch8")
		assert.Error(t, err)
	})
}

func TestRead(t *testing.T) {
	rom, err := Read(bytes.NewReader([]byte{0xA2, 0x2A}))
	assert.NoError(t, err)
	assert.True(t, bytes.Equal([]byte{0xA2, 0x2A}, rom))

	rom, err = Read(bytes.NewReader(nil))
	assert.NoError(t, err)
	assert.Len(t, rom, 0)

	_, err = Read(bytes.NewReader(make([]byte, 2*machine.MaxROMSize)))
	assert.True(t, errors.Is(err, machine.ErrROMTooLarge))
}

func TestHasKnownExtension(t *testing.T) {
	assert.True(t, hasKnownExtension("games/PONG.CH8"))
	assert.True(t, hasKnownExtension("maze.c8"))
	assert.True(t, hasKnownExtension("test.rom"))
	assert.False(t, hasKnownExtension("test.nes"))
	assert.False(t, hasKnownExtension("test"))
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
