// Package ebitengine implements an Ebitengine frontend for the VM.
package ebitengine

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/mnafees/chip8vm/internal"
	"github.com/mnafees/chip8vm/pkg/host"
	"github.com/mnafees/chip8vm/pkg/keymap"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/colornames"
)

var (
	screenColor = colornames.Midnightblue
	spriteColor = colornames.Lightsteelblue
)

// Buzzer is switched on while the sound timer is running
type Buzzer interface {
	Set(active bool)
}

// physical keys that can carry a keypad mapping
var keyRunes = map[ebiten.Key]rune{
	ebiten.KeyDigit0: '0', ebiten.KeyDigit1: '1', ebiten.KeyDigit2: '2', ebiten.KeyDigit3: '3',
	ebiten.KeyDigit4: '4', ebiten.KeyDigit5: '5', ebiten.KeyDigit6: '6', ebiten.KeyDigit7: '7',
	ebiten.KeyDigit8: '8', ebiten.KeyDigit9: '9',
	ebiten.KeyA: 'a', ebiten.KeyB: 'b', ebiten.KeyC: 'c', ebiten.KeyD: 'd', ebiten.KeyE: 'e',
	ebiten.KeyF: 'f', ebiten.KeyG: 'g', ebiten.KeyH: 'h', ebiten.KeyI: 'i', ebiten.KeyJ: 'j',
	ebiten.KeyK: 'k', ebiten.KeyL: 'l', ebiten.KeyM: 'm', ebiten.KeyN: 'n', ebiten.KeyO: 'o',
	ebiten.KeyP: 'p', ebiten.KeyQ: 'q', ebiten.KeyR: 'r', ebiten.KeyS: 's', ebiten.KeyT: 't',
	ebiten.KeyU: 'u', ebiten.KeyV: 'v', ebiten.KeyW: 'w', ebiten.KeyX: 'x', ebiten.KeyY: 'y',
	ebiten.KeyZ: 'z',
}

// Game drives the VM from the Ebitengine update loop
type Game struct {
	vm     *internal.C8VM
	layout keymap.Layout
	scale  int
	pacer  *host.Pacer
	buzzer Buzzer
	logger *log.Logger

	canvas *ebiten.Image
	pixels []byte
}

// NewGame returns a game for the VM. buzzer may be nil.
func NewGame(vm *internal.C8VM, layout keymap.Layout, scale, instructionsPerSecond int,
	buzzer Buzzer, logger *log.Logger) *Game {

	return &Game{
		vm:     vm,
		layout: layout,
		scale:  scale,
		pacer:  host.NewPacer(instructionsPerSecond, time.Now()),
		buzzer: buzzer,
		logger: logger,
		pixels: make([]byte, internal.ScreenWidth*internal.ScreenHeight*4),
	}
}

// Run opens the window and blocks until it is closed or the VM halts
func (g *Game) Run(title string) error {
	ebiten.SetWindowSize(internal.ScreenWidth*g.scale, internal.ScreenHeight*g.scale)
	ebiten.SetWindowTitle(title)
	err := ebiten.RunGame(g)
	if g.buzzer != nil {
		g.buzzer.Set(false)
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := g.vm.Reset(); err != nil {
			return err
		}
		g.logger.Info("Program restarted")
	}

	for key, r := range keyRunes {
		if code, ok := g.layout.Key(r); ok {
			g.vm.SetKey(code, ebiten.IsKeyPressed(key))
		}
	}

	if err := g.pacer.Advance(time.Now(), g.vm); err != nil {
		return err
	}
	if g.buzzer != nil {
		g.buzzer.Set(g.vm.SoundActive())
	}
	return nil
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(internal.ScreenWidth, internal.ScreenHeight)
	}
	if g.vm.IsDrawFlagSet() {
		g.renderPixels()
		g.canvas.WritePixels(g.pixels)
		g.vm.UnsetDrawFlag()
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.canvas, op)
}

// Layout implements ebiten.Game
func (g *Game) Layout(_, _ int) (int, int) {
	return internal.ScreenWidth * g.scale, internal.ScreenHeight * g.scale
}

// renderPixels converts the framebuffer to RGBA
func (g *Game) renderPixels() {
	for y := 0; y < internal.ScreenHeight; y++ {
		for x := 0; x < internal.ScreenWidth; x++ {
			c := screenColor
			if g.vm.PixelAt(x, y) {
				c = spriteColor
			}
			setRGBA(g.pixels[(y*internal.ScreenWidth+x)*4:], c)
		}
	}
}

func setRGBA(p []byte, c color.RGBA) {
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}
