// Package pipeline orchestrates the emulator workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/dump"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates loading a ROM, printing diagnostics and running it.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new emulator pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(logger),
	}
}

// Execute runs the complete pipeline for the configured input file.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, emuOpts options.Emulator, writer io.Writer) error {
	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	return p.ExecuteWithROM(ctx, rom, opts, emuOpts, writer)
}

// ExecuteWithROM runs the pipeline with an already loaded ROM.
// Diagnostic output without headless mode prints the initial machine state
// and returns without running the program. In headless mode the program is
// run for the configured number of cycles, then the final display and any
// requested diagnostics are written.
func (p *Pipeline) ExecuteWithROM(ctx context.Context, rom []byte, opts options.Program,
	emuOpts options.Emulator, writer io.Writer) error {

	p.printInfo(opts, rom, emuOpts)

	if emuOpts.Headless {
		return p.runHeadless(ctx, rom, opts, emuOpts, writer)
	}

	if opts.Dump || opts.Disasm {
		state, err := machine.New(rom)
		if err != nil {
			return fmt.Errorf("initializing machine: %w", err)
		}
		return writeDiagnostics(writer, state, len(rom), opts)
	}

	return p.runInteractive(ctx, rom, emuOpts, writer)
}

func (p *Pipeline) runHeadless(ctx context.Context, rom []byte, opts options.Program,
	emuOpts options.Emulator, writer io.Writer) error {

	emu, err := emulator.New(p.logger, rom, emuOpts, emulator.Devices{}, config.EngineOptions(emuOpts)...)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}

	runErr := emu.RunCycles(ctx, emuOpts.Cycles)
	p.printResult(emu)

	if _, err := io.WriteString(writer, emu.State().Display.String()); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	if err := writeDiagnostics(writer, emu.State(), len(rom), opts); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
}

func (p *Pipeline) runInteractive(ctx context.Context, rom []byte, emuOpts options.Emulator, writer io.Writer) error {
	keys := keypad.New()
	host := terminal.NewHost(p.logger, keys, keypad.DefaultMap)
	renderer := terminal.NewRenderer(writer)

	devices := emulator.Devices{
		Renderer: renderer,
		Beeper:   terminal.NewBell(writer),
		Input:    host,
		Keypad:   keys,
	}
	emu, err := emulator.New(p.logger, rom, emuOpts, devices, config.EngineOptions(emuOpts)...)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}

	if err := p.checkTerminalSize(host); err != nil {
		return err
	}
	if err := host.Start(); err != nil {
		return fmt.Errorf("starting terminal input: %w", err)
	}
	defer host.Stop()

	if err := renderer.Init(); err != nil {
		return err
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			p.logger.Error("Closing renderer failed", log.Err(err))
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-host.Quit():
			cancel()
		case <-ctx.Done():
		}
	}()

	runErr := emu.Run(ctx)
	host.Stop()
	p.printResult(emu)

	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
}

// checkTerminalSize warns if the terminal is too small to show the whole
// display.
func (p *Pipeline) checkTerminalSize(host *terminal.Host) error {
	width, height, err := host.Size()
	if err != nil {
		return fmt.Errorf("checking terminal: %w", err)
	}
	if width < machine.DisplayWidth || height < machine.DisplayHeight/2 {
		p.logger.Warn("Terminal is smaller than the display",
			log.Int("width", width),
			log.Int("height", height))
	}
	return nil
}

func writeDiagnostics(writer io.Writer, state *machine.State, romSize int, opts options.Program) error {
	if opts.Dump {
		if err := dump.Memory(writer, &state.Memory, !opts.NoColor); err != nil {
			return fmt.Errorf("writing memory dump: %w", err)
		}
	}
	if opts.Disasm {
		end := uint16(machine.ProgramStart + romSize)
		if err := dump.Listing(writer, &state.Memory, machine.ProgramStart, end); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
	}
	return nil
}

// printInfo prints information about the ROM being processed.
func (p *Pipeline) printInfo(opts options.Program, rom []byte, emuOpts options.Emulator) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
		log.Int("clock", emuOpts.Clock),
	)
	if len(emuOpts.Breakpoints) > 0 {
		p.logger.Info("Breakpoints set", log.Int("count", len(emuOpts.Breakpoints)))
	}
}

func (p *Pipeline) printResult(emu *emulator.Emulator) {
	state := emu.State()
	p.logger.Debug("Execution stopped",
		log.Hex("pc", state.PC),
		log.Hex("i", state.I),
		log.Int("steps", int(emu.Steps())),
		log.Int("unimplemented", emu.Unimplemented()),
	)
}

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
