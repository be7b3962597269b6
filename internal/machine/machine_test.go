package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	rom := []byte{0x12, 0x34, 0x56, 0x78}

	s, err := New(rom)
	assert.NoError(t, err)
	assert.NotNil(t, s)

	assert.Equal(t, uint16(ProgramStart), s.PC)
	assert.Equal(t, uint16(0), s.I)
	assert.Equal(t, uint8(0), s.SP)
	assert.Equal(t, byte(0), s.DelayTimer)
	assert.Equal(t, byte(0), s.SoundTimer)
	assert.Equal(t, 0, s.Display.Lit())

	for i, b := range rom {
		assert.Equal(t, b, s.Memory[ProgramStart+i])
	}
	assert.Equal(t, byte(0), s.Memory[ProgramStart+len(rom)])

	fnt := Font()
	for i, b := range fnt {
		assert.Equal(t, b, s.Memory[FontStart+i])
	}
	assert.Equal(t, byte(0), s.Memory[FontStart-1])
	assert.Equal(t, byte(0), s.Memory[FontStart+len(fnt)])
}

func TestNew_ROMSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty rom", 0, false},
		{"maximum size", MaxROMSize, false},
		{"one byte too large", MaxROMSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := make([]byte, tt.size)
			for i := range rom {
				rom[i] = 0xAA
			}

			s, err := New(rom)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrROMTooLarge))
				assert.True(t, s == nil)
				return
			}

			assert.NoError(t, err)
			if tt.size == MaxROMSize {
				assert.Equal(t, byte(0xAA), s.Memory[MaxAddress])
			}
		})
	}
}

func TestReset(t *testing.T) {
	s, err := New([]byte{0x00, 0xE0})
	assert.NoError(t, err)

	s.V[3] = 7
	s.I = 0x300
	s.SP = 2
	s.Stack[1] = 0x204
	s.DelayTimer = 10
	s.Display.Toggle(1, 1)
	s.Memory[0x400] = 0xFF

	assert.NoError(t, s.Reset([]byte{0x12, 0x00}))
	assert.Equal(t, byte(0), s.V[3])
	assert.Equal(t, uint16(0), s.I)
	assert.Equal(t, uint8(0), s.SP)
	assert.Equal(t, uint16(0), s.Stack[1])
	assert.Equal(t, byte(0), s.DelayTimer)
	assert.Equal(t, 0, s.Display.Lit())
	assert.Equal(t, byte(0), s.Memory[0x400])
	assert.Equal(t, byte(0x12), s.Memory[ProgramStart])
	assert.Equal(t, uint16(ProgramStart), s.PC)
}

func TestReset_TooLargeKeepsState(t *testing.T) {
	s, err := New([]byte{0x00, 0xE0})
	assert.NoError(t, err)
	s.V[1] = 9

	err = s.Reset(make([]byte, MaxROMSize+1))
	assert.True(t, errors.Is(err, ErrROMTooLarge))
	assert.Equal(t, byte(9), s.V[1])
}

func TestFlag(t *testing.T) {
	var s State

	s.SetFlag(true)
	assert.Equal(t, byte(1), s.Flag())
	assert.Equal(t, byte(1), s.V[FlagRegister])

	s.SetFlag(false)
	assert.Equal(t, byte(0), s.Flag())
}

func TestMemoryAccess(t *testing.T) {
	var s State

	assert.NoError(t, s.Store(MaxAddress, 0x42))
	b, err := s.Load(MaxAddress)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x42), b)

	err = s.Store(MemorySize, 1)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))

	_, err = s.Load(MemorySize)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))

	s.Memory[0x200] = 0xA2
	s.Memory[0x201] = 0xF0
	w, err := s.LoadWord(0x200)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xA2F0), w)

	_, err = s.LoadWord(MaxAddress)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
	assert.True(t, errors.Is(err, chip8.ErrMemoryOutOfBounds))
}

func TestCheckRange(t *testing.T) {
	assert.NoError(t, CheckRange(0xFF0, 16))
	assert.NoError(t, CheckRange(0xFFF, 0))
	assert.Error(t, CheckRange(0xFF0, 17))
	assert.Error(t, CheckRange(0x1000, 1))
}

func TestFontAddress(t *testing.T) {
	assert.Equal(t, uint16(0x050), FontAddress(0))
	assert.Equal(t, uint16(0x055), FontAddress(1))
	assert.Equal(t, uint16(0x09B), FontAddress(0xF))
	assert.Equal(t, uint16(0x09B), FontAddress(0x1F))
}
