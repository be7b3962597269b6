package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// DefaultHold is how long a key counts as held down after the terminal
// reported it. Terminals only report key presses, releases are synthesized.
const DefaultHold = 150 * time.Millisecond

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// Host reads raw keyboard input from the terminal and feeds it into a
// keypad. Only instantiated for interactive use.
type Host struct {
	logger  *log.Logger
	keys    *keypad.State
	mapping keypad.Map
	hold    time.Duration

	mu       sync.Mutex
	deadline [keypad.KeyCount]time.Time

	quit     chan struct{}
	quitOnce sync.Once
	stopped  atomic.Bool // input received after Stop is dropped

	fd       int
	oldState *term.State
}

// NewHost creates a host adapter that maps terminal input to keypad presses.
func NewHost(logger *log.Logger, keys *keypad.State, mapping keypad.Map) *Host {
	return &Host{
		logger:  logger,
		keys:    keys,
		mapping: mapping,
		hold:    DefaultHold,
		quit:    make(chan struct{}),
		fd:      int(os.Stdin.Fd()),
	}
}

// Start puts stdin into raw mode and begins reading it in a goroutine.
// Call Stop to restore the terminal.
func (h *Host) Start() error {
	if !term.IsTerminal(h.fd) {
		return errors.New("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	h.oldState = oldState

	go h.read(os.Stdin)
	return nil
}

// Stop restores the terminal state. The reader goroutine can stay blocked
// on stdin until the next input arrives, which is then discarded.
func (h *Host) Stop() {
	h.stopped.Store(true)
	if h.oldState == nil {
		return
	}
	if err := term.Restore(h.fd, h.oldState); err != nil {
		h.logger.Error("Restoring terminal failed", log.Err(err))
	}
	h.oldState = nil
}

// Quit returns a channel that is closed when the user requested to exit
// with Escape or Ctrl-C.
func (h *Host) Quit() <-chan struct{} {
	return h.quit
}

// Size returns the terminal dimensions in characters.
func (h *Host) Size() (int, int, error) {
	width, height, err := term.GetSize(h.fd)
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return width, height, nil
}

func (h *Host) read(r io.Reader) {
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		if h.stopped.Load() {
			return
		}
		now := time.Now()
		for _, b := range buf[:n] {
			h.Feed(b, now)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				h.logger.Error("Reading terminal input failed", log.Err(err))
			}
			return
		}
	}
}

// Feed processes a single input byte received at the given time.
// Input after Stop is ignored.
func (h *Host) Feed(b byte, now time.Time) {
	if h.stopped.Load() {
		return
	}
	if b == keyCtrlC || b == keyEscape {
		h.quitOnce.Do(func() { close(h.quit) })
		return
	}

	key, ok := h.mapping.Lookup(rune(b))
	if !ok {
		return
	}

	h.mu.Lock()
	h.deadline[key] = now.Add(h.hold)
	h.mu.Unlock()
	h.keys.Press(key)
}

// Update releases all keys whose hold window expired. It is called by the
// emulator loop once per frame.
func (h *Host) Update(now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for key, deadline := range h.deadline {
		if deadline.IsZero() || now.Before(deadline) {
			continue
		}
		h.deadline[key] = time.Time{}
		h.keys.Release(uint8(key))
	}
}
