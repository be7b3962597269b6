// Package instruction decodes CHIP-8 instruction words into their bit fields
// and renders them as assembly text.
package instruction

// Size is the size of CHIP-8 instructions in bytes.
const Size = 2

// Instruction is a raw 16-bit CHIP-8 instruction word.
//
// The word is split into fixed bit fields:
//
//	bits 12-15: opcode nibble
//	bits  8-11: register index X
//	bits  4-7:  register index Y
//	bits  0-3:  immediate nibble N
//	bits  0-7:  immediate byte NN
//	bits  0-11: immediate address NNN
type Instruction uint16

// Decode combines two consecutive memory bytes big-endian into an instruction.
func Decode(hi, lo byte) Instruction {
	return Instruction(uint16(hi)<<8 | uint16(lo))
}

// Encode builds an instruction from an opcode nibble, two register indexes
// and an immediate nibble. Only the low 4 bits of each argument are used.
func Encode(opcode, x, y, n uint8) Instruction {
	return Instruction(uint16(opcode&0xF)<<12 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(n&0xF))
}

// EncodeNN builds an instruction from an opcode nibble, a register index and
// an immediate byte.
func EncodeNN(opcode, x, nn uint8) Instruction {
	return Instruction(uint16(opcode&0xF)<<12 | uint16(x&0xF)<<8 | uint16(nn))
}

// EncodeNNN builds an instruction from an opcode nibble and a 12-bit address.
func EncodeNNN(opcode uint8, nnn uint16) Instruction {
	return Instruction(uint16(opcode&0xF)<<12 | nnn&0x0FFF)
}

// Opcode returns the opcode nibble.
func (i Instruction) Opcode() uint8 {
	return uint8(i >> 12)
}

// X returns the register index X.
func (i Instruction) X() uint8 {
	return uint8(i>>8) & 0xF
}

// Y returns the register index Y.
func (i Instruction) Y() uint8 {
	return uint8(i>>4) & 0xF
}

// N returns the immediate nibble.
func (i Instruction) N() uint8 {
	return uint8(i) & 0xF
}

// NN returns the immediate byte.
func (i Instruction) NN() uint8 {
	return uint8(i)
}

// NNN returns the immediate 12-bit address.
func (i Instruction) NNN() uint16 {
	return uint16(i) & 0x0FFF
}

// Bytes returns the big-endian memory representation of the instruction.
func (i Instruction) Bytes() [Size]byte {
	return [Size]byte{byte(i >> 8), byte(i)}
}
