package ebitengine

import (
	"testing"

	"github.com/mnafees/chip8vm/internal"
	"github.com/mnafees/chip8vm/pkg/keymap"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestGame_RenderPixels(t *testing.T) {
	vm, err := internal.NewC8VM(log.NewTestLogger(t))
	assert.NoError(t, err)
	// LD I, font 0 (V0 = 0); DRW V0, V0, 5
	assert.NoError(t, vm.LoadProgram([]byte{0xF0, 0x29, 0xD0, 0x05}))
	assert.NoError(t, vm.Step())
	assert.NoError(t, vm.Step())

	layout, err := keymap.Lookup(keymap.Default)
	assert.NoError(t, err)
	g := NewGame(vm, layout, 2, 700, nil, log.NewTestLogger(t))
	g.renderPixels()

	lit := g.pixels[0:4]
	assert.Equal(t, []byte{spriteColor.R, spriteColor.G, spriteColor.B, spriteColor.A}, lit)
	unlit := g.pixels[4*4 : 5*4] // glyph 0 is 4 pixels wide
	assert.Equal(t, []byte{screenColor.R, screenColor.G, screenColor.B, screenColor.A}, unlit)

	w, h := g.Layout(0, 0)
	assert.Equal(t, internal.ScreenWidth*2, w)
	assert.Equal(t, internal.ScreenHeight*2, h)
}

func TestKeyRunes_CoverLayouts(t *testing.T) {
	available := map[rune]bool{}
	for _, r := range keyRunes {
		available[r] = true
	}

	for _, name := range keymap.Names() {
		layout, err := keymap.Lookup(name)
		assert.NoError(t, err)
		for r := range layout {
			assert.True(t, available[r])
		}
	}
}
