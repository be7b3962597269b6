package keypad

import "unicode"

// Map translates host keys to hex keypad keys.
type Map map[rune]uint8

// DefaultMap maps the left hand block of a QWERTY keyboard onto the
// COSMAC VIP keypad layout:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var DefaultMap = Map{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Lookup returns the hex key for a host key. Letters are matched case
// insensitively.
func (m Map) Lookup(r rune) (uint8, bool) {
	key, ok := m[unicode.ToLower(r)]
	return key, ok
}
