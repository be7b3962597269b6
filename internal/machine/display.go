package machine

import "strings"

// Display is the 64x32 monochrome frame buffer, stored row-major with the
// origin in the top left corner.
type Display [DisplayHeight][DisplayWidth]bool

// Clear turns every pixel off.
func (d *Display) Clear() {
	*d = Display{}
}

// Pixel returns whether the pixel at x, y is on. Coordinates outside of the
// display are reported as off.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return d[y][x]
}

// Toggle XORs the pixel at x, y and returns true if the pixel was on before
// and got turned off. Coordinates outside of the display are dropped.
func (d *Display) Toggle(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	erased := d[y][x]
	d[y][x] = !erased
	return erased
}

// Lit returns the number of pixels that are on.
func (d *Display) Lit() int {
	var count int
	for y := range d {
		for x := range d[y] {
			if d[y][x] {
				count++
			}
		}
	}
	return count
}

// String renders the display as text, one line per row, using '#' for
// pixels that are on and '.' for pixels that are off.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow(DisplayHeight * (DisplayWidth + 1))
	for y := range d {
		for x := range d[y] {
			if d[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
