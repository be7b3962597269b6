package machine

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisplay_Toggle(t *testing.T) {
	var d Display

	assert.False(t, d.Toggle(3, 4))
	assert.True(t, d.Pixel(3, 4))
	assert.Equal(t, 1, d.Lit())

	assert.True(t, d.Toggle(3, 4))
	assert.False(t, d.Pixel(3, 4))
	assert.Equal(t, 0, d.Lit())
}

func TestDisplay_OutOfBounds(t *testing.T) {
	var d Display

	assert.False(t, d.Toggle(DisplayWidth, 0))
	assert.False(t, d.Toggle(0, DisplayHeight))
	assert.False(t, d.Toggle(-1, 0))
	assert.False(t, d.Pixel(DisplayWidth, 0))
	assert.Equal(t, 0, d.Lit())
}

func TestDisplay_Clear(t *testing.T) {
	var d Display
	for x := range DisplayWidth {
		d.Toggle(x, x%DisplayHeight)
	}
	assert.Equal(t, DisplayWidth, d.Lit())

	d.Clear()
	assert.Equal(t, 0, d.Lit())
}

func TestDisplay_String(t *testing.T) {
	var d Display
	d.Toggle(0, 0)
	d.Toggle(DisplayWidth-1, DisplayHeight-1)

	lines := strings.Split(strings.TrimSuffix(d.String(), "\n"), "\n")
	assert.Len(t, lines, DisplayHeight)
	assert.Equal(t, "#"+strings.Repeat(".", DisplayWidth-1), lines[0])
	assert.Equal(t, strings.Repeat(".", DisplayWidth-1)+"#", lines[DisplayHeight-1])
}
