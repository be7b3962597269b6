// Package dump writes human readable memory dumps and disassembly listings
// of a CHIP-8 machine.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/machine"
)

const bytesPerLine = 16

// ANSI colors used to highlight memory regions.
const (
	colorZero        = "\x1b[34m" // blue
	colorProgram     = "\x1b[32m" // green
	colorInterpreter = "\x1b[33m" // yellow
	colorReset       = "\x1b[0m"
)

// Memory writes a hex dump of the complete memory, 16 bytes per line.
// If color is set, zero bytes, the interpreter area and the program area
// are highlighted in different colors.
func Memory(w io.Writer, memory *[machine.MemorySize]byte, color bool) error {
	if _, err := fmt.Fprintln(w, "Memory Dump:"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var sb strings.Builder
	for address := 0; address < machine.MemorySize; address += bytesPerLine {
		sb.Reset()
		fmt.Fprintf(&sb, "0x%04X | ", address)

		for i := range bytesPerLine {
			value := memory[address+i]
			if !color {
				fmt.Fprintf(&sb, "%02X ", value)
				continue
			}
			fmt.Fprintf(&sb, "%s%02X%s ", regionColor(address+i, value), value, colorReset)
		}
		sb.WriteString("|\n")

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("writing line at $%04X: %w", address, err)
		}
	}
	return nil
}

func regionColor(address int, value byte) string {
	switch {
	case value == 0:
		return colorZero
	case address >= machine.ProgramStart:
		return colorProgram
	default:
		return colorInterpreter
	}
}

// Listing writes a disassembly of the memory range [start, end), one
// instruction word per line. A trailing odd byte is written as data.
func Listing(w io.Writer, memory *[machine.MemorySize]byte, start, end uint16) error {
	if end > machine.MemorySize {
		end = machine.MemorySize
	}

	address := start
	for ; address+instruction.Size <= end; address += instruction.Size {
		ins := instruction.Decode(memory[address], memory[address+1])
		if _, err := fmt.Fprintf(w, "%03X  %04X  %s\n", address, uint16(ins), ins); err != nil {
			return fmt.Errorf("writing listing at $%04X: %w", address, err)
		}
	}

	if address < end {
		if _, err := fmt.Fprintf(w, "%03X  %02X    .byte $%02X\n", address, memory[address], memory[address]); err != nil {
			return fmt.Errorf("writing listing at $%04X: %w", address, err)
		}
	}
	return nil
}
