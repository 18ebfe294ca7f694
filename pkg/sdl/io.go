// Package sdl implements the SDL2 frontend: window, keyboard and buzzer.
package sdl

import (
	"fmt"
	"time"

	"github.com/mnafees/chip8vm/internal"
	"github.com/mnafees/chip8vm/pkg/host"
	"github.com/mnafees/chip8vm/pkg/keymap"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA

	audioFrequency = 44100
	toneFrequency  = 440
	toneVolume     = 32
)

// IO is the input/output abstraction layer for the VM
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface
	audio   sdl.AudioDeviceID
	tone    []byte // one period of the buzzer square wave

	vm     *internal.C8VM
	layout keymap.Layout
	scale  int32
	pacer  *host.Pacer
	logger *log.Logger
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(vm *internal.C8VM, layout keymap.Layout, scale, instructionsPerSecond int, logger *log.Logger) *IO {
	return &IO{
		vm:     vm,
		layout: layout,
		scale:  int32(scale),
		pacer:  host.NewPacer(instructionsPerSecond, time.Now()),
		logger: logger,
	}
}

// SetupWindow initialises and sets up the main SDL window and audio device
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*io.scale, internal.ScreenHeight*io.scale, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return fmt.Errorf("filling window surface: %w", err)
	}

	if err := io.setupAudio(); err != nil {
		// the emulator is usable without sound
		io.logger.Warn("Audio unavailable", log.String("error", err.Error()))
	}
	return nil
}

func (io *IO) setupAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     audioFrequency,
		Format:   sdl.AUDIO_S8,
		Channels: 1,
		Samples:  1024,
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	io.audio = dev

	period := audioFrequency / toneFrequency
	io.tone = make([]byte, period)
	for i := range io.tone {
		sample := int8(toneVolume)
		if i >= period/2 {
			sample = -toneVolume
		}
		io.tone[i] = byte(sample)
	}
	sdl.PauseAudioDevice(dev, false)
	return nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.audio != 0 {
		sdl.CloseAudioDevice(io.audio)
	}
	if io.window != nil {
		_ = io.window.Destroy()
	}
	sdl.Quit()
}

// Loop is the main application loop. It returns when the window is closed
// or the VM halts.
func (io *IO) Loop() error {
	for {
		if err := io.pacer.Advance(time.Now(), io.vm); err != nil {
			return err
		}

		if io.vm.IsDrawFlagSet() {
			if err := io.draw(); err != nil {
				return err
			}
		}
		io.updateAudio()

		if !io.handleEvents() {
			return nil
		}
		sdl.Delay(1)
	}
}

// handleEvents processes pending SDL events and reports whether to keep running
func (io *IO) handleEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			keycode := t.Keysym.Sym
			switch t.GetType() {
			case sdl.KEYDOWN:
				switch keycode {
				case sdl.K_ESCAPE:
					return false
				case sdl.K_F5:
					io.reset()
				default:
					io.setKey(keycode, true)
				}
			case sdl.KEYUP:
				io.setKey(keycode, false)
			}
		case *sdl.QuitEvent:
			return false
		}
	}
	return true
}

func (io *IO) reset() {
	if err := io.vm.Reset(); err != nil {
		io.logger.Error("Reset failed", log.String("error", err.Error()))
		return
	}
	io.logger.Info("Program restarted")
}

// Draws the current sprite configuration on screen
func (io *IO) draw() error {
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return err
	}
	for w := int32(0); w < internal.ScreenWidth; w++ {
		for h := int32(0); h < internal.ScreenHeight; h++ {
			if io.vm.PixelAt(int(w), int(h)) {
				rect := &sdl.Rect{X: w * io.scale, Y: h * io.scale, W: io.scale, H: io.scale}
				if err := io.surface.FillRect(rect, spriteColor); err != nil {
					return err
				}
			}
		}
	}
	io.vm.UnsetDrawFlag()
	return io.window.UpdateSurface()
}

// updateAudio keeps roughly two tone periods queued while the sound timer runs
func (io *IO) updateAudio() {
	if io.audio == 0 {
		return
	}
	if !io.vm.SoundActive() {
		sdl.ClearQueuedAudio(io.audio)
		return
	}
	if sdl.GetQueuedAudioSize(io.audio) < uint32(2*len(io.tone)) {
		if err := sdl.QueueAudio(io.audio, io.tone); err != nil {
			io.logger.Warn("Queueing audio failed", log.String("error", err.Error()))
		}
	}
}

func (io *IO) setKey(keycode sdl.Keycode, pressed bool) {
	if keycode < 0 || keycode > 0x7F {
		return
	}
	if code, ok := io.layout.Key(rune(keycode)); ok {
		io.vm.SetKey(code, pressed)
	}
}
