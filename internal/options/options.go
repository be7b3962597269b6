// Package options contains the program options.
package options

const (
	// DefaultClock is the default instruction rate in Hz.
	DefaultClock = 700

	// MaxClock is the highest supported instruction rate in Hz.
	MaxClock = 1_000_000
)

// Parameters contains file path options.
type Parameters struct {
	Input       string `flag:"i" usage:"input ROM file"`
	Breakpoints string `flag:"break" usage:"comma separated hex addresses to stop execution at (e.g. 200,2a4)"`
}

// Flags contains behavior options.
type Flags struct {
	Clock    int    `flag:"clock" usage:"instructions per second" default:"700"`
	Seed     uint64 `flag:"seed" usage:"seed for the random number generator, 0 uses the current time"`
	Cycles   int    `flag:"cycles" usage:"number of instructions to execute in headless mode"`
	Headless bool   `flag:"headless" usage:"run without terminal input and output, print the final display"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains diagnostic output options.
type OutputFlags struct {
	Dump    bool `flag:"dump" usage:"print a memory dump after loading the ROM"`
	Disasm  bool `flag:"disasm" usage:"print a disassembly listing of the ROM"`
	NoColor bool `flag:"nocolor" usage:"disable colored memory dump output"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Emulator defines options to control the emulator run loop.
type Emulator struct {
	Clock       int      // instructions per second
	Seed        uint64   // random seed, 0 seeds from the current time
	Cycles      int      // instructions to execute in headless mode
	Breakpoints []uint16 // addresses to stop at
	Headless    bool
}

// NewEmulator returns a new options instance with default options.
func NewEmulator() Emulator {
	return Emulator{
		Clock: DefaultClock,
	}
}
