// Package main implements a CHIP-8 ROM memory dump and disassembly tool
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/dump"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input string

	noColor   bool
	noMemory  bool
	noListing bool
	quiet     bool
}

func main() {
	opts := readArguments()

	if !opts.quiet {
		printBanner()
	}

	logger := newLogger(opts.quiet)

	if err := dumpFile(logger, os.Stdout, opts); err != nil {
		logger.Error("Dumping failed", log.Err(err))
		os.Exit(1)
	}
}

// newLogger creates a logger with the same settings as the emulator binary.
func newLogger(quiet bool) *log.Logger {
	return config.CreateLogger(options.Program{
		Flags: options.Flags{Quiet: quiet},
	})
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := optionFlags{}

	flags.BoolVar(&opts.noColor, "nocolor", false, "disable colored memory dump output")
	flags.BoolVar(&opts.noMemory, "nomemory", false, "do not output the memory dump")
	flags.BoolVar(&opts.noListing, "nolisting", false, "do not output the disassembly listing")
	flags.BoolVar(&opts.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner()
		fmt.Printf("usage: chip8dump [opts] <ROM file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	opts.input = args[0]

	return opts
}

func printBanner() {
	fmt.Println("[---------------------------------------]")
	fmt.Println("[ chip8dump - CHIP-8 ROM memory dumper ]")
	fmt.Printf("[---------------------------------------]\n\n")

	versionString := version
	if commit != "" {
		versionString += " (" + commit + ")"
	}
	if date != "" {
		versionString += " built " + date
	}
	fmt.Printf("version: %s\n\n", versionString)
}

func dumpFile(logger *log.Logger, writer io.Writer, opts optionFlags) error {
	rom, err := loader.New(logger).Load(opts.input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	state, err := machine.New(rom)
	if err != nil {
		return fmt.Errorf("initializing machine: %w", err)
	}

	if !opts.noMemory {
		if err := dump.Memory(writer, &state.Memory, !opts.noColor); err != nil {
			return fmt.Errorf("writing memory dump: %w", err)
		}
	}

	if !opts.noListing {
		if !opts.noMemory {
			if _, err := fmt.Fprintln(writer); err != nil {
				return fmt.Errorf("writing separator: %w", err)
			}
		}
		end := uint16(machine.ProgramStart + len(rom))
		if err := dump.Listing(writer, &state.Memory, machine.ProgramStart, end); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
	}
	return nil
}
