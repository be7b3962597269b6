package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRenderer_Render(t *testing.T) {
	var display machine.Display
	display.Toggle(0, 0)
	display.Toggle(1, 1)
	display.Toggle(2, 0)
	display.Toggle(2, 1)

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	assert.NoError(t, r.Render(&display))

	output := strings.TrimPrefix(buf.String(), escHome)
	lines := strings.Split(strings.TrimSuffix(output, "\r\n"), "\r\n")
	assert.Len(t, lines, machine.DisplayHeight/2)
	assert.True(t, strings.HasPrefix(lines[0], "▀▄█ "))
	assert.Equal(t, strings.Repeat(" ", machine.DisplayWidth), lines[1])
}

func TestRenderer_InitClose(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	assert.NoError(t, r.Init())
	assert.Contains(t, buf.String(), escHideCursor)
	assert.NoError(t, r.Close())
	assert.Contains(t, buf.String(), escShowCursor)
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)

	assert.NoError(t, b.Beep(false))
	assert.Equal(t, 0, buf.Len())
	assert.NoError(t, b.Beep(true))
	assert.Equal(t, "\a", buf.String())
}

func TestHost_FeedAndUpdate(t *testing.T) {
	keys := keypad.New()
	h := NewHost(log.NewTestLogger(t), keys, keypad.DefaultMap)
	now := time.Now()

	h.Feed('w', now)
	assert.True(t, keys.IsDown(0x5))
	key, ok := keys.LastPressed()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x5), key)

	h.Update(now.Add(DefaultHold / 2))
	assert.True(t, keys.IsDown(0x5))

	h.Update(now.Add(DefaultHold))
	assert.False(t, keys.IsDown(0x5))
}

func TestHost_UnmappedKey(t *testing.T) {
	keys := keypad.New()
	h := NewHost(log.NewTestLogger(t), keys, keypad.DefaultMap)

	h.Feed('p', time.Now())
	_, ok := keys.LastPressed()
	assert.False(t, ok)
}

func TestHost_Quit(t *testing.T) {
	h := NewHost(log.NewTestLogger(t), keypad.New(), keypad.DefaultMap)

	select {
	case <-h.Quit():
		t.Fatal("quit channel closed too early")
	default:
	}

	h.Feed(keyEscape, time.Now())
	h.Feed(keyCtrlC, time.Now())

	select {
	case <-h.Quit():
	default:
		t.Fatal("quit channel not closed")
	}
}

func TestHost_InputAfterStop(t *testing.T) {
	keys := keypad.New()
	h := NewHost(log.NewTestLogger(t), keys, keypad.DefaultMap)
	h.Stop()

	h.Feed('w', time.Now())
	assert.False(t, keys.IsDown(0x5))

	h.read(strings.NewReader("1"))
	assert.False(t, keys.IsDown(0x1))
	_, ok := keys.LastPressed()
	assert.False(t, ok)

	h.Feed(keyEscape, time.Now())
	select {
	case <-h.Quit():
		t.Fatal("quit channel closed after stop")
	default:
	}
}

func TestHost_Read(t *testing.T) {
	keys := keypad.New()
	h := NewHost(log.NewTestLogger(t), keys, keypad.DefaultMap)

	h.read(strings.NewReader("1v"))
	assert.True(t, keys.IsDown(0x1))
	assert.True(t, keys.IsDown(0xF))
}
