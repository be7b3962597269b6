// Package emulator drives the interpreter engine in real time or for a fixed
// number of cycles, and connects it to display, sound and input devices.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// ErrBreakpoint is returned when execution reaches a breakpoint address.
var ErrBreakpoint = errors.New("breakpoint reached")

const (
	pollInterval = time.Millisecond
	maxCatchUp   = 100 * time.Millisecond
)

// Renderer presents the display.
type Renderer interface {
	Render(display *machine.Display) error
}

// Beeper switches the tone on or off.
type Beeper interface {
	Beep(on bool) error
}

// Input is updated once per frame, it can release keys that are no longer
// held down.
type Input interface {
	Update(now time.Time)
}

// Devices contains the optional host devices of the emulator.
type Devices struct {
	Renderer Renderer
	Beeper   Beeper
	Input    Input
	Keypad   *keypad.State // created if nil
}

// Emulator owns the machine state and runs programs on it.
type Emulator struct {
	logger  *log.Logger
	opts    options.Emulator
	devices Devices

	state  *machine.State
	engine *cpu.Engine
	keys   *keypad.State
	timers timer.Clock

	breakpoints set.Set[uint16]
	resume      bool // the breakpoint at the current PC was already reported

	sounding bool
	steps    uint64
}

// New creates an emulator with the ROM loaded into a freshly initialized
// machine.
func New(logger *log.Logger, rom []byte, opts options.Emulator, devices Devices,
	engineOptions ...cpu.Option) (*Emulator, error) {

	if opts.Clock <= 0 || opts.Clock > options.MaxClock {
		return nil, fmt.Errorf("invalid clock rate %d", opts.Clock)
	}

	state, err := machine.New(rom)
	if err != nil {
		return nil, fmt.Errorf("initializing machine: %w", err)
	}

	keys := devices.Keypad
	if keys == nil {
		keys = keypad.New()
	}

	breakpoints := set.New[uint16]()
	for _, address := range opts.Breakpoints {
		breakpoints.Add(address)
	}

	return &Emulator{
		logger:      logger,
		opts:        opts,
		devices:     devices,
		state:       state,
		engine:      cpu.New(logger, engineOptions...),
		keys:        keys,
		breakpoints: breakpoints,
	}, nil
}

// State returns the machine state.
func (e *Emulator) State() *machine.State {
	return e.state
}

// Keypad returns the keypad that the host feeds key presses into.
func (e *Emulator) Keypad() *keypad.State {
	return e.keys
}

// Steps returns the number of executed instructions.
func (e *Emulator) Steps() uint64 {
	return e.steps
}

// Unimplemented returns the number of skipped unknown instruction words.
func (e *Emulator) Unimplemented() int {
	return e.engine.Unimplemented()
}

// Run executes the program at the configured clock rate until the context
// is cancelled, an instruction faults or a breakpoint is reached. Timers are
// decremented at 60 Hz based on the elapsed wall clock time and the display
// is rendered once per timer tick.
func (e *Emulator) Run(ctx context.Context) error {
	interval := max(time.Second/time.Duration(e.opts.Clock), time.Nanosecond)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	if err := e.render(); err != nil {
		return err
	}

	e.timers.Reset()
	last := time.Now()
	var pending time.Duration

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running emulator: %w", ctx.Err())

		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now

			pending = min(pending+elapsed, maxCatchUp)
			for pending >= interval {
				pending -= interval
				if err := e.step(); err != nil {
					return err
				}
			}

			if err := e.frame(now, e.timers.Advance(elapsed)); err != nil {
				return err
			}
		}
	}
}

// RunCycles executes count instructions without any wall clock timing.
// The timers are ticked once every clock/60 instructions, which makes runs
// deterministic for a given ROM, seed and input.
func (e *Emulator) RunCycles(ctx context.Context, count int) error {
	stepsPerTick := uint64(max(e.opts.Clock/timer.Rate, 1))

	for range count {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running emulator: %w", err)
		}
		if err := e.step(); err != nil {
			return err
		}
		if e.steps%stepsPerTick != 0 {
			continue
		}
		if err := e.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emulator) step() error {
	pc := e.state.PC
	if e.breakpoints.Contains(pc) && !e.resume {
		e.resume = true
		e.logger.Info("Breakpoint reached", log.Hex("address", pc))
		return fmt.Errorf("%w at $%03X", ErrBreakpoint, pc)
	}
	e.resume = false

	if err := e.engine.Step(e.state, e.keys); err != nil {
		return fmt.Errorf("executing instruction: %w", err)
	}
	e.steps++
	return e.updateSound()
}

// frame applies due timer ticks, updates the input and renders the display.
func (e *Emulator) frame(now time.Time, ticks int) error {
	if ticks == 0 {
		return nil
	}
	for range ticks {
		if err := e.tick(); err != nil {
			return err
		}
	}
	if e.devices.Input != nil {
		e.devices.Input.Update(now)
	}
	return e.render()
}

func (e *Emulator) tick() error {
	if timer.Tick(e.state) {
		e.logger.Debug("Sound timer expired")
	}
	return e.updateSound()
}

// updateSound notifies the beeper about tone start and stop edges.
func (e *Emulator) updateSound() error {
	sounding := timer.Sounding(e.state)
	if sounding == e.sounding {
		return nil
	}
	e.sounding = sounding

	if e.devices.Beeper == nil {
		return nil
	}
	if err := e.devices.Beeper.Beep(sounding); err != nil {
		return fmt.Errorf("updating sound: %w", err)
	}
	return nil
}

func (e *Emulator) render() error {
	if e.devices.Renderer == nil {
		return nil
	}
	if err := e.devices.Renderer.Render(&e.state.Display); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}
	return nil
}
