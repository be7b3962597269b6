package cpu

import (
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
)

type handler func(e *Engine, s *machine.State, keys keypad.Reader, ins instruction.Instruction) error

// handlers is indexed by the opcode nibble. The 0, 8, E and F groups
// dispatch further on a secondary field.
var handlers = [16]handler{
	0x0: (*Engine).system,
	0x1: (*Engine).jump,
	0x2: (*Engine).call,
	0x3: (*Engine).skipEqualImmediate,
	0x4: (*Engine).skipNotEqualImmediate,
	0x5: (*Engine).skipEqualRegister,
	0x6: (*Engine).loadImmediate,
	0x7: (*Engine).addImmediate,
	0x8: (*Engine).alu,
	0x9: (*Engine).skipNotEqualRegister,
	0xA: (*Engine).loadIndex,
	0xB: (*Engine).jumpOffset,
	0xC: (*Engine).randomByte,
	0xD: (*Engine).draw,
	0xE: (*Engine).keySkip,
	0xF: (*Engine).misc,
}

func (e *Engine) execute(s *machine.State, keys keypad.Reader, ins instruction.Instruction) error {
	return handlers[ins.Opcode()](e, s, keys, ins)
}

// system handles 00E0 (clear screen) and 00EE (return from subroutine).
func (e *Engine) system(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	switch ins {
	case 0x00E0:
		s.Display.Clear()
		return nil

	case 0x00EE:
		if s.SP == 0 {
			return ErrStackUnderflow
		}
		s.PC = s.Stack[s.SP]
		s.SP--
		return nil

	default:
		// 0NNN calls native machine code on the original hardware
		return e.skipUnimplemented(s, ins)
	}
}

// 1NNN
func (e *Engine) jump(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	s.PC = ins.NNN()
	return nil
}

// 2NNN
func (e *Engine) call(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	if s.SP >= machine.MaxStackPointer {
		return ErrStackOverflow
	}
	s.SP++
	s.Stack[s.SP] = s.PC
	s.PC = ins.NNN()
	return nil
}

// 3XNN
func (e *Engine) skipEqualImmediate(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	if s.V[ins.X()] == ins.NN() {
		s.PC += instruction.Size
	}
	return nil
}

// 4XNN
func (e *Engine) skipNotEqualImmediate(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	if s.V[ins.X()] != ins.NN() {
		s.PC += instruction.Size
	}
	return nil
}

// 5XY0
func (e *Engine) skipEqualRegister(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	if ins.N() != 0 {
		return e.skipUnimplemented(s, ins)
	}
	if s.V[ins.X()] == s.V[ins.Y()] {
		s.PC += instruction.Size
	}
	return nil
}

// 9XY0
func (e *Engine) skipNotEqualRegister(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	if ins.N() != 0 {
		return e.skipUnimplemented(s, ins)
	}
	if s.V[ins.X()] != s.V[ins.Y()] {
		s.PC += instruction.Size
	}
	return nil
}

// 6XNN
func (e *Engine) loadImmediate(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	s.V[ins.X()] = ins.NN()
	return nil
}

// 7XNN, the flag register is not affected.
func (e *Engine) addImmediate(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	s.V[ins.X()] += ins.NN()
	return nil
}

// alu handles the 8XYN register operations. Operands are read before any
// register is written and the flag output is written last, so VF used as
// an operand or destination ends up holding the flag.
func (e *Engine) alu(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	x := ins.X()
	vx, vy := s.V[x], s.V[ins.Y()]

	switch ins.N() {
	case 0x0:
		s.V[x] = vy
	case 0x1:
		s.V[x] = vx | vy
	case 0x2:
		s.V[x] = vx & vy
	case 0x3:
		s.V[x] = vx ^ vy
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		s.V[x] = byte(sum)
		s.SetFlag(sum > 0xFF)
	case 0x5:
		s.V[x] = vx - vy
		s.SetFlag(vx >= vy)
	case 0x6:
		// VY is ignored, the original interpreter shifts VX in place
		s.V[x] = vx >> 1
		s.SetFlag(vx&0x01 != 0)
	case 0x7:
		s.V[x] = vy - vx
		s.SetFlag(vy >= vx)
	case 0xE:
		s.V[x] = vx << 1
		s.SetFlag(vx&0x80 != 0)
	default:
		return e.skipUnimplemented(s, ins)
	}
	return nil
}

// ANNN
func (e *Engine) loadIndex(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	s.I = ins.NNN()
	return nil
}

// BNNN
func (e *Engine) jumpOffset(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	s.PC = uint16(s.V[0]) + ins.NNN()
	return nil
}

// CXNN
func (e *Engine) randomByte(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	s.V[ins.X()] = e.random() & ins.NN()
	return nil
}

// draw handles DXYN. The sprite is N bytes read from I, drawn at VX, VY.
// The start position wraps around the display, pixels that would extend
// past the right or bottom edge are clipped. VF is set if any pixel that
// was on got turned off.
func (e *Engine) draw(s *machine.State, _ keypad.Reader, ins instruction.Instruction) error {
	rows := int(ins.N())
	if err := machine.CheckRange(s.I, rows); err != nil {
		return err
	}

	originX := int(s.V[ins.X()]) % machine.DisplayWidth
	originY := int(s.V[ins.Y()]) % machine.DisplayHeight
	var collision bool

	for row := range rows {
		y := originY + row
		if y >= machine.DisplayHeight {
			break
		}

		data := s.Memory[int(s.I)+row]
		for bit := range 8 {
			x := originX + bit
			if x >= machine.DisplayWidth {
				break
			}
			if data&(0x80>>bit) == 0 {
				continue
			}
			if s.Display.Toggle(x, y) {
				collision = true
			}
		}
	}

	s.SetFlag(collision)
	return nil
}

// keySkip handles EX9E and EXA1. Only the low nibble of VX selects the key.
func (e *Engine) keySkip(s *machine.State, keys keypad.Reader, ins instruction.Instruction) error {
	key := s.V[ins.X()] & 0xF

	switch ins.NN() {
	case 0x9E:
		if keys.IsDown(key) {
			s.PC += instruction.Size
		}
	case 0xA1:
		if !keys.IsDown(key) {
			s.PC += instruction.Size
		}
	default:
		return e.skipUnimplemented(s, ins)
	}
	return nil
}

// misc handles the FXNN timer, key, index and memory instructions.
func (e *Engine) misc(s *machine.State, keys keypad.Reader, ins instruction.Instruction) error {
	x := ins.X()

	switch ins.NN() {
	case 0x07:
		s.V[x] = s.DelayTimer

	case 0x0A:
		return waitForKey(s, keys, x)

	case 0x15:
		s.DelayTimer = s.V[x]

	case 0x18:
		s.SoundTimer = s.V[x]

	case 0x1E:
		s.I += uint16(s.V[x])

	case 0x29:
		s.I = machine.FontAddress(s.V[x])

	case 0x33:
		return storeBCD(s, x)

	case 0x55:
		return storeRegisters(s, x)

	case 0x65:
		return loadRegisters(s, x)

	default:
		return e.skipUnimplemented(s, ins)
	}
	return nil
}

// waitForKey handles FX0A. Without a key press the program counter is
// rewound so that the same instruction is decoded again on the next step.
func waitForKey(s *machine.State, keys keypad.Reader, x uint8) error {
	key, ok := keys.LastPressed()
	if !ok {
		s.PC -= instruction.Size
		return nil
	}
	s.V[x] = key
	return nil
}

// storeBCD handles FX33, storing hundreds, tens and ones of VX at I.
func storeBCD(s *machine.State, x uint8) error {
	if err := machine.CheckRange(s.I, 3); err != nil {
		return err
	}
	v := s.V[x]
	s.Memory[s.I] = v / 100
	s.Memory[s.I+1] = v / 10 % 10
	s.Memory[s.I+2] = v % 10
	return nil
}

// storeRegisters handles FX55. I is not modified.
func storeRegisters(s *machine.State, x uint8) error {
	count := int(x) + 1
	if err := machine.CheckRange(s.I, count); err != nil {
		return err
	}
	copy(s.Memory[s.I:int(s.I)+count], s.V[:count])
	return nil
}

// loadRegisters handles FX65. I is not modified.
func loadRegisters(s *machine.State, x uint8) error {
	count := int(x) + 1
	if err := machine.CheckRange(s.I, count); err != nil {
		return err
	}
	copy(s.V[:count], s.Memory[s.I:int(s.I)+count])
	return nil
}
