// Package host drives a VM from a frontend loop at independent instruction
// and timer rates.
package host

import "time"

// Default rates
const (
	DefaultInstructionsPerSecond = 700
	TimerFrequency               = 60

	// maxBacklog limits how much emulated time is replayed after the host
	// loop was stalled, for example while a window was being dragged.
	maxBacklog = 100 * time.Millisecond
)

// Machine is the part of the VM a host loop drives
type Machine interface {
	Step() error
	TickTimers()
}

// Pacer converts wall clock time into instruction steps and timer ticks
type Pacer struct {
	instrInterval time.Duration
	timerInterval time.Duration

	nextInstr time.Time
	nextTimer time.Time
}

// NewPacer returns a pacer that runs instructionsPerSecond instructions and
// TimerFrequency timer ticks per second, starting at now.
func NewPacer(instructionsPerSecond int, now time.Time) *Pacer {
	if instructionsPerSecond <= 0 {
		instructionsPerSecond = DefaultInstructionsPerSecond
	}
	return &Pacer{
		instrInterval: time.Second / time.Duration(instructionsPerSecond),
		timerInterval: time.Second / TimerFrequency,
		nextInstr:     now,
		nextTimer:     now,
	}
}

// Due returns how many instructions and timer ticks are due at now and
// advances the schedule past them.
func (p *Pacer) Due(now time.Time) (steps, ticks int) {
	steps = due(&p.nextInstr, p.instrInterval, now)
	ticks = due(&p.nextTimer, p.timerInterval, now)
	return steps, ticks
}

func due(next *time.Time, interval time.Duration, now time.Time) int {
	if now.Before(*next) {
		return 0
	}
	if now.Sub(*next) > maxBacklog {
		*next = now.Add(-maxBacklog)
	}
	n := int(now.Sub(*next)/interval) + 1
	*next = next.Add(time.Duration(n) * interval)
	return n
}

// Advance runs every instruction and timer tick due at now. Timer ticks are
// interleaved with the instructions so that programs polling the delay timer
// observe it counting down.
func (p *Pacer) Advance(now time.Time, m Machine) error {
	steps, ticks := p.Due(now)
	for ticks > 0 || steps > 0 {
		if ticks > 0 {
			m.TickTimers()
			ticks--
		}
		batch := steps
		if ticks > 0 {
			batch = steps / (ticks + 1)
		}
		for ; batch > 0; batch-- {
			if err := m.Step(); err != nil {
				return err
			}
			steps--
		}
	}
	return nil
}
