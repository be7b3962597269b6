// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns program and emulator options
func ParseFlags() (options.Program, options.Emulator, error) {
	return parseArgs(os.Args)
}

func parseArgs(osArgs []string) (options.Program, options.Emulator, error) {
	flags := flag.NewFlagSet(osArgs[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(osArgs[1:])
	if errors.Is(err, flag.ErrHelp) {
		return opts, options.Emulator{}, &UsageError{flags: flags}
	}
	if err != nil {
		return opts, options.Emulator{}, &UsageError{flags: flags, msg: err.Error()}
	}

	args := flags.Args()
	if len(args) == 0 && opts.Input == "" {
		return opts, options.Emulator{}, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, options.Emulator{}, err
	}
	if opts.Input == "" {
		opts.Input = args[0]
	}

	emulatorOptions, err := createEmulatorOptions(opts)
	if err != nil {
		return opts, options.Emulator{}, err
	}
	return opts, emulatorOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the command usage and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// createEmulatorOptions validates the program options and converts them
// into emulator options.
func createEmulatorOptions(opts options.Program) (options.Emulator, error) {
	emulatorOptions := options.NewEmulator()

	if opts.Clock <= 0 || opts.Clock > options.MaxClock {
		return emulatorOptions, fmt.Errorf("invalid clock rate %d: must be between 1 and %d", opts.Clock, options.MaxClock)
	}
	if opts.Cycles < 0 {
		return emulatorOptions, fmt.Errorf("invalid cycle count %d: must not be negative", opts.Cycles)
	}
	if opts.Headless && opts.Cycles == 0 {
		return emulatorOptions, errors.New("headless mode requires a cycle count, set -cycles")
	}

	breakpoints, err := parseBreakpoints(opts.Breakpoints)
	if err != nil {
		return emulatorOptions, err
	}

	emulatorOptions.Clock = opts.Clock
	emulatorOptions.Seed = opts.Seed
	emulatorOptions.Cycles = opts.Cycles
	emulatorOptions.Headless = opts.Headless
	emulatorOptions.Breakpoints = breakpoints
	return emulatorOptions, nil
}

// parseBreakpoints parses a comma separated list of hex addresses. A "$" or
// "0x" prefix is accepted.
func parseBreakpoints(s string) ([]uint16, error) {
	if s == "" {
		return nil, nil
	}

	var addresses []uint16
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		field = strings.TrimPrefix(field, "$")
		field = strings.TrimPrefix(strings.ToLower(field), "0x")
		if field == "" {
			continue
		}

		value, err := strconv.ParseUint(field, 16, 16)
		if err != nil || value > 0xFFF {
			return nil, fmt.Errorf("invalid breakpoint address '%s'", field)
		}
		addresses = append(addresses, uint16(value))
	}
	return addresses, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated hex addresses to stop execution at (e.g. 200,2a4)")
	flags.IntVar(&opts.Clock, "clock", options.DefaultClock, "instructions per second")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 uses the current time")
	flags.IntVar(&opts.Cycles, "cycles", 0, "number of instructions to execute in headless mode")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal input and output, print the final display")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Dump, "dump", false, "print a memory dump after loading the ROM")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the ROM")
	flags.BoolVar(&opts.NoColor, "nocolor", false, "disable colored memory dump output")
}
