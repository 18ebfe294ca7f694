package internal

// TimerFrequency is the rate in Hz at which the host should call TickTimers
const TimerFrequency = 60

// Timers holds the delay and sound timers
type Timers struct {
	delay uint8
	sound uint8
}

// Tick decrements each nonzero timer by one
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// Delay returns the value of DT
func (t *Timers) Delay() uint8 {
	return t.delay
}

// Sound returns the value of ST
func (t *Timers) Sound() uint8 {
	return t.sound
}

// SetDelay sets DT
func (t *Timers) SetDelay(v uint8) {
	t.delay = v
}

// SetSound sets ST
func (t *Timers) SetSound(v uint8) {
	t.sound = v
}

// SoundActive reports whether the buzzer should be sounding
func (t *Timers) SoundActive() bool {
	return t.sound > 0
}
