package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestMemory(t *testing.T) {
	state, err := machine.New([]byte{0x00, 0xE0})
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, Memory(&buf, &state.Memory, false))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 1+machine.MemorySize/bytesPerLine)
	assert.Equal(t, "Memory Dump:", lines[0])
	assert.Equal(t, "0x0000 | "+strings.Repeat("00 ", 16)+"|", lines[1])
	assert.Equal(t, "0x0050 | F0 90 90 90 F0 20 60 20 20 70 F0 10 F0 80 F0 F0 |", lines[1+0x50/bytesPerLine])
	assert.True(t, strings.HasPrefix(lines[1+0x200/bytesPerLine], "0x0200 | 00 E0 00 "))
}

func TestMemory_Color(t *testing.T) {
	state, err := machine.New([]byte{0x00, 0xE0})
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, Memory(&buf, &state.Memory, true))

	output := buf.String()
	assert.Contains(t, output, colorZero+"00"+colorReset)
	assert.Contains(t, output, colorInterpreter+"F0"+colorReset)
	assert.Contains(t, output, colorProgram+"E0"+colorReset)
}

func TestListing(t *testing.T) {
	state, err := machine.New([]byte{0x00, 0xE0, 0xFF, 0xFF, 0xAB})
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, Listing(&buf, &state.Memory, machine.ProgramStart, machine.ProgramStart+5))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "200  00E0  "))
	assert.Equal(t, "202  FFFF  .word $FFFF", lines[1])
	assert.Equal(t, "204  AB    .byte $AB", lines[2])
}

func TestListing_ClampsEnd(t *testing.T) {
	var memory [machine.MemorySize]byte

	var buf bytes.Buffer
	assert.NoError(t, Listing(&buf, &memory, machine.MaxAddress-3, 0xFFFF))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
}
