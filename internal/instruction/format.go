package instruction

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// lookup returns the CHIP-8 instruction definition matching the word,
// or nil if the word is not part of the instruction set.
func lookup(word uint16) *chip8.Instruction {
	opcodes := chip8.Opcodes[int(word>>12)]
	for _, op := range opcodes {
		if op.Info.Mask&word == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// Defined returns whether the instruction is part of the CHIP-8 instruction set.
func (i Instruction) Defined() bool {
	return lookup(uint16(i)) != nil
}

// Mnemonic returns the instruction name, or an empty string for words that
// are not part of the instruction set.
func (i Instruction) Mnemonic() string {
	ins := lookup(uint16(i))
	if ins == nil {
		return ""
	}
	return ins.Name
}

// String returns the instruction as assembly text, for example "ld V1, $02".
// Words that are not part of the instruction set are rendered as a data word.
func (i Instruction) String() string {
	name := i.Mnemonic()
	if name == "" {
		return fmt.Sprintf(".word $%04X", uint16(i))
	}
	if params := i.params(name); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// params formats the operands of the instruction.
func (i Instruction) params(name string) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return ""
	case chip8.JpName:
		return i.formatJump()
	case chip8.CallName:
		return fmt.Sprintf("$%03X", i.NNN())
	case chip8.SeName, chip8.SneName:
		return i.formatCompare()
	case chip8.LdName:
		return i.formatLoad()
	case chip8.AddName:
		return i.formatAdd()
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return fmt.Sprintf("V%X, V%X", i.X(), i.Y())
	case chip8.ShrName, chip8.ShlName, chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", i.X())
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", i.X(), i.NN())
	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", i.X(), i.Y(), i.N())
	}
	return ""
}

// formatJump formats jump instructions (JP addr, JP V0, addr).
func (i Instruction) formatJump() string {
	if i.Opcode() == 0xB {
		return fmt.Sprintf("V0, $%03X", i.NNN())
	}
	return fmt.Sprintf("$%03X", i.NNN())
}

// formatCompare formats comparison instructions (SE, SNE).
func (i Instruction) formatCompare() string {
	switch i.Opcode() {
	case 0x3, 0x4:
		return fmt.Sprintf("V%X, $%02X", i.X(), i.NN())
	case 0x5, 0x9:
		return fmt.Sprintf("V%X, V%X", i.X(), i.Y())
	}
	return ""
}

// formatLoad formats all load variants, including the timer, key, font,
// BCD and register block forms of the F opcode group.
func (i Instruction) formatLoad() string {
	x := i.X()
	switch i.Opcode() {
	case 0x6:
		return fmt.Sprintf("V%X, $%02X", x, i.NN())
	case 0x8:
		return fmt.Sprintf("V%X, V%X", x, i.Y())
	case 0xA:
		return fmt.Sprintf("I, $%03X", i.NNN())
	case 0xF:
		switch i.NN() {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}

// formatAdd formats add instructions (ADD Vx, byte / ADD Vx, Vy / ADD I, Vx).
func (i Instruction) formatAdd() string {
	switch i.Opcode() {
	case 0x7:
		return fmt.Sprintf("V%X, $%02X", i.X(), i.NN())
	case 0x8:
		return fmt.Sprintf("V%X, V%X", i.X(), i.Y())
	case 0xF:
		return fmt.Sprintf("I, V%X", i.X())
	}
	return ""
}
