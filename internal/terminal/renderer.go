// Package terminal implements a text terminal front-end for the emulator:
// display rendering with ANSI escape sequences, a raw mode keyboard host
// and a terminal bell for sound.
package terminal

import (
	"bytes"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/machine"
)

const (
	escHome       = "\x1b[H"
	escClear      = "\x1b[2J"
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
)

// Renderer draws the display using half block characters, so that every
// text row shows two pixel rows.
type Renderer struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewRenderer returns a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Init clears the terminal and hides the cursor.
func (r *Renderer) Init() error {
	if _, err := io.WriteString(r.w, escClear+escHome+escHideCursor); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	return nil
}

// Close shows the cursor again.
func (r *Renderer) Close() error {
	if _, err := io.WriteString(r.w, escShowCursor+"\r\n"); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// Render draws a frame. Lines are terminated with CR LF since the terminal
// is in raw mode while the emulator runs.
func (r *Renderer) Render(display *machine.Display) error {
	r.buf.Reset()
	r.buf.WriteString(escHome)

	for y := 0; y < machine.DisplayHeight; y += 2 {
		for x := range machine.DisplayWidth {
			r.buf.WriteRune(halfBlock(display.Pixel(x, y), display.Pixel(x, y+1)))
		}
		r.buf.WriteString("\r\n")
	}

	if _, err := r.w.Write(r.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// Bell signals sound by ringing the terminal bell when a tone starts.
type Bell struct {
	w io.Writer
}

// NewBell returns a bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Beep rings the bell when the tone is switched on. Terminals can not hold
// a tone, so switching it off is a no-op.
func (b *Bell) Beep(on bool) error {
	if !on {
		return nil
	}
	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("ringing bell: %w", err)
	}
	return nil
}
