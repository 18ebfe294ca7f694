package keymap

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		layout string
		key    rune
		want   uint8
	}{
		{"qwerty", '1', 0x1},
		{"qwerty", '4', 0xC},
		{"qwerty", 'x', 0x0},
		{"QWERTY", 'V', 0xF},
		{"qwerty", 'e', 0x6},
		{"colemak", 'f', 0x6},
		{"colemak", 'P', 0xD},
		{"Colemak", 't', 0xE},
	}

	for _, tt := range tests {
		t.Run(tt.layout+"/"+string(tt.key), func(t *testing.T) {
			layout, err := Lookup(tt.layout)
			assert.NoError(t, err)

			code, ok := layout.Key(tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestLookup_CoversKeypad(t *testing.T) {
	for _, name := range Names() {
		layout, err := Lookup(name)
		assert.NoError(t, err)

		seen := map[uint8]bool{}
		for _, code := range layout {
			seen[code] = true
		}
		assert.Len(t, seen, 16)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("dvorak")
	assert.True(t, err != nil)

	layout, _ := Lookup(Default)
	_, ok := layout.Key('p')
	assert.False(t, ok)
}
