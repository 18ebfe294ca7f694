// Package beep plays the CHIP-8 buzzer tone through oto.
package beep

import (
	"encoding/binary"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Tone settings
const (
	SampleRate = 44100
	Frequency  = 440
	volume     = 0x2000
)

// squareWave generates a mono signed 16-bit little endian square wave
type squareWave struct {
	phase    float64
	phaseInc float64
}

func newSquareWave(sampleRate, frequency int) *squareWave {
	return &squareWave{phaseInc: float64(frequency) / float64(sampleRate)}
}

func (w *squareWave) Read(p []byte) (int, error) {
	n := len(p) / 2 * 2
	for i := 0; i < n; i += 2 {
		sample := int16(volume)
		if w.phase > 0.5 {
			sample = -volume
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(sample))
		w.phase += w.phaseInc
		if w.phase >= 1 {
			w.phase--
		}
	}
	return n, nil
}

// Beeper starts and stops the tone following the VM sound timer
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
	active bool
}

// New opens the audio device
func New() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &Beeper{
		ctx:    ctx,
		player: ctx.NewPlayer(newSquareWave(SampleRate, Frequency)),
	}, nil
}

// Set plays the tone while active is true
func (b *Beeper) Set(active bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if active == b.active {
		return
	}
	b.active = active
	if active {
		b.player.Play()
	} else {
		b.player.Pause()
	}
}

// Close stops the tone and releases the player
func (b *Beeper) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.active = false
	return b.player.Close()
}
