// Package cpu implements the CHIP-8 interpreter engine that executes one
// fetch-decode-execute step at a time against a machine state.
package cpu

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

var (
	// ErrStackOverflow is returned when a call is executed with a full stack.
	ErrStackOverflow = chip8.ErrStackOverflow

	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = chip8.ErrStackUnderflow
)

// Fault describes an instruction that could not be executed. The machine
// state is left as it was before the faulting step.
type Fault struct {
	PC          uint16                  // address of the faulting instruction
	Instruction instruction.Instruction // zero if the fetch itself failed
	Fetch       bool                    // the instruction could not be fetched
	Err         error
}

func (f *Fault) Error() string {
	if f.Fetch {
		return fmt.Sprintf("fetching instruction at $%04X: %v", f.PC, f.Err)
	}
	return fmt.Sprintf("executing '%s' ($%04X) at $%04X: %v", f.Instruction, uint16(f.Instruction), f.PC, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// RandomSource returns a uniformly distributed random byte per call.
type RandomSource func() byte

// Option configures an Engine.
type Option func(*Engine)

// WithRandom sets the random byte source used by the RND instruction.
func WithRandom(src RandomSource) Option {
	return func(e *Engine) {
		e.random = src
	}
}

// WithSeed makes the RND instruction reproducible by seeding the default
// random number generator.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.random = seededSource(seed)
	}
}

// Engine executes CHIP-8 instructions. It holds no machine state itself and
// must not be used concurrently.
type Engine struct {
	logger *log.Logger
	random RandomSource

	unimplemented     int
	unimplementedSeen set.Set[uint16]
}

// New returns a new interpreter engine. Without options the RND instruction
// is seeded from the current time.
func New(logger *log.Logger, options ...Option) *Engine {
	e := &Engine{
		logger:            logger,
		random:            seededSource(uint64(time.Now().UnixNano())),
		unimplementedSeen: set.New[uint16](),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func seededSource(seed uint64) RandomSource {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	return func() byte {
		return byte(rng.UintN(256))
	}
}

// Step executes exactly one instruction. The program counter is advanced
// past the instruction before it is executed, so instructions that set the
// program counter explicitly are not advanced twice.
// A nil keypad behaves like a keypad with no keys pressed.
func (e *Engine) Step(state *machine.State, keys keypad.Reader) error {
	if keys == nil {
		keys = noKeys{}
	}

	pc := state.PC
	word, err := state.LoadWord(pc)
	if err != nil {
		return &Fault{PC: pc, Fetch: true, Err: err}
	}
	ins := instruction.Instruction(word)
	state.PC += instruction.Size

	if err := e.execute(state, keys, ins); err != nil {
		state.PC = pc
		return &Fault{PC: pc, Instruction: ins, Err: err}
	}
	return nil
}

// Run executes up to count instructions and returns the number of
// instructions that were executed successfully. It stops early on a fault
// or when the context is cancelled.
func (e *Engine) Run(ctx context.Context, state *machine.State, keys keypad.Reader, count int) (int, error) {
	for i := range count {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("running instructions: %w", err)
		}
		if err := e.Step(state, keys); err != nil {
			return i, err
		}
	}
	return count, nil
}

// Unimplemented returns the number of executed instruction words that are
// not part of the instruction set and were skipped.
func (e *Engine) Unimplemented() int {
	return e.unimplemented
}

// skipUnimplemented treats an unknown instruction as a no-op. The cycle is
// consumed since the program counter has already been advanced.
func (e *Engine) skipUnimplemented(state *machine.State, ins instruction.Instruction) error {
	e.unimplemented++
	word := uint16(ins)
	if e.unimplementedSeen.Contains(word) {
		return nil
	}
	e.unimplementedSeen.Add(word)

	if e.logger != nil {
		e.logger.Debug("Skipping unimplemented instruction",
			log.Hex("address", state.PC-instruction.Size),
			log.Hex("opcode", word))
	}
	return nil
}

type noKeys struct{}

func (noKeys) IsDown(uint8) bool { return false }

func (noKeys) LastPressed() (uint8, bool) { return 0, false }
