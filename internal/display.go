package internal

import "strings"

// Screen dimensions in pixels
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Display is the 64 px x 32 px monochrome framebuffer. Only the VM mutates
// it, frontends read it through PixelAt.
type Display struct {
	pixels [ScreenWidth][ScreenHeight]uint8
}

// Clear turns every pixel off
func (d *Display) Clear() {
	d.pixels = [ScreenWidth][ScreenHeight]uint8{}
}

// DrawSprite XORs an 8 pixel wide sprite onto the screen at (x, y). The
// origin and every pixel wrap around the screen edges. It reports whether
// any lit pixel was turned off.
func (d *Display) DrawSprite(x, y uint8, sprite []byte) bool {
	ox := int(x) % ScreenWidth
	oy := int(y) % ScreenHeight
	collided := false
	for row, spriteByte := range sprite {
		py := (oy + row) % ScreenHeight
		for bitIdx := 0; bitIdx < 8; bitIdx++ {
			bit := (spriteByte >> (7 - bitIdx)) & 0x1
			if bit == 0 {
				continue
			}
			px := &d.pixels[(ox+bitIdx)%ScreenWidth][py]
			if *px == 1 {
				collided = true
			}
			*px ^= 1
		}
	}
	return collided
}

// PixelAt reports whether the pixel at (x, y) is lit. Coordinates outside
// the screen report false.
func (d *Display) PixelAt(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return d.pixels[x][y] == 1
}

// String renders the screen with half block characters, two pixel rows per
// line of text.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow(ScreenHeight / 2 * (ScreenWidth*3 + 1))
	for y := 0; y < ScreenHeight; y += 2 {
		for x := 0; x < ScreenWidth; x++ {
			top, bottom := d.pixels[x][y] == 1, d.pixels[x][y+1] == 1
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
