// Package keymap maps physical keyboard keys to the 16 key CHIP-8 keypad.
package keymap

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Layout maps the character printed on a physical key to a keypad index
type Layout map[rune]uint8

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
var qwerty = Layout{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// The same physical keys on a Colemak keyboard
var colemak = Layout{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'f': 0x6, 'p': 0xD,
	'a': 0x7, 'r': 0x8, 's': 0x9, 't': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

var layouts = map[string]Layout{
	"qwerty":  qwerty,
	"colemak": colemak,
}

// Default is the name of the layout used when none is configured
const Default = "qwerty"

// Lookup returns the layout with the given name, ignoring case
func Lookup(name string) (Layout, error) {
	layout, ok := layouts[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown key mapping '%s', valid options: %s", name, strings.Join(Names(), ", "))
	}
	return layout, nil
}

// Names returns the names of all layouts in sorted order
func Names() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Key returns the keypad index for the character r
func (l Layout) Key(r rune) (uint8, bool) {
	code, ok := l[unicode.ToLower(r)]
	return code, ok
}
