package machine

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Reserved for the interpreter
//	0x050-0x09F: Built-in hex digit font (16 glyphs, 5 bytes each)
//	0x0A0-0x1FF: Reserved for the interpreter
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = MemorySize - 1

	// FontStart is the address of the first font glyph.
	FontStart = 0x050

	// FontGlyphSize is the number of bytes per font glyph.
	FontGlyphSize = 5

	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	ProgramStart = 0x200

	// MaxROMSize is the largest ROM that fits into the program space.
	MaxROMSize = MemorySize - ProgramStart

	// LastInstructionAddress is the highest address an instruction can be fetched from.
	LastInstructionAddress = MemorySize - 2
)

// Register and stack dimensions.
const (
	RegisterCount = 16
	StackSize     = 16

	// FlagRegister is the index of VF, which arithmetic, shift and draw
	// opcodes overwrite with their flag output.
	FlagRegister = 0xF

	// MaxStackPointer is the deepest the stack pointer may go. Slot 0 is
	// never written, a pointer of 0 means the stack is empty.
	MaxStackPointer = StackSize - 1
)

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)
