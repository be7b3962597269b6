// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// knownExtensions are the file extensions commonly used for CHIP-8 ROMs.
var knownExtensions = []string{".ch8", ".c8", ".rom"}

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads a raw CHIP-8 ROM file. ROMs have no header and are loaded
// verbatim at the program start address, files larger than the program
// space are rejected with machine.ErrROMTooLarge.
func (l *Loader) Load(path string) ([]byte, error) {
	if !hasKnownExtension(path) {
		l.logger.Warn("Unexpected file extension for a CHIP-8 ROM", log.String("file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	rom, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("loading rom %s: %w", path, err)
	}

	l.logger.Debug("Loaded ROM", log.String("file", path), log.Int("size", len(rom)))
	return rom, nil
}

// Read reads a ROM from the reader. At most one byte more than the program
// space is read to detect oversized ROMs.
func Read(reader io.Reader) ([]byte, error) {
	rom, err := io.ReadAll(io.LimitReader(reader, machine.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}
	if len(rom) > machine.MaxROMSize {
		return nil, fmt.Errorf("%w: more than %d bytes", machine.ErrROMTooLarge, machine.MaxROMSize)
	}
	return rom, nil
}

func hasKnownExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range knownExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
