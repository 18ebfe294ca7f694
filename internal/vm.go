package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// InstructionSize is the length of an opcode in bytes
const InstructionSize = 2

// State is the execution state of the VM
type State uint8

// VM execution states
const (
	Running State = iota
	WaitingForKey
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForKey:
		return "waiting for key"
	case Halted:
		return "halted"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	opcode  uint16    // 16-bit opcode of the current instruction
	regs    Registers // V0-VF, I, PC and the call stack
	mem     Memory    // 4 KB global memory
	timers  Timers    // delay and sound timers
	display Display   // 64 px x 32 px display
	keypad  Keypad    // 16 key input latch

	state   State
	waitReg uint8      // destination register of a pending Fx0A
	halt    *HaltError // set once the VM has halted

	drawFlag bool   // set whenever the display changed
	program  []byte // loaded program image, kept for Reset

	random func() uint8
	logger *log.Logger
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM in its reset state
func NewC8VM(logger *log.Logger) (*C8VM, error) {
	vm := &C8VM{
		logger: logger,
		random: func() uint8 { return uint8(rand.IntN(256)) },
	}
	if err := vm.Reset(); err != nil {
		return nil, err
	}
	return vm, nil
}

// Reset restores the power-on state: registers zeroed, stack empty, PC at
// ProgramStart, font loaded. A previously loaded program is loaded again.
func (vm *C8VM) Reset() error {
	vm.regs.reset()
	vm.mem = Memory{}
	vm.timers = Timers{}
	vm.display.Clear()
	vm.keypad.Reset()
	vm.state = Running
	vm.halt = nil
	vm.opcode = 0
	vm.drawFlag = true

	if err := vm.mem.LoadFont(fontset); err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	if err := vm.mem.LoadProgram(vm.program); err != nil {
		return fmt.Errorf("reloading program: %w", err)
	}
	return nil
}

// LoadProgram loads a program image into the VM's memory
func (vm *C8VM) LoadProgram(program []byte) error {
	if err := vm.mem.LoadProgram(program); err != nil {
		return err
	}
	vm.program = append(vm.program[:0], program...)
	vm.logger.Info("Program loaded",
		log.String("start", fmt.Sprintf("%03X", ProgramStart)),
		log.Int("size", len(program)))
	return nil
}

// LoadProgramFile loads a given CHIP-8 program file into the VM's memory
func (vm *C8VM) LoadProgramFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	if err := vm.LoadProgram(data); err != nil {
		return fmt.Errorf("loading program '%s': %w", filename, err)
	}
	return nil
}

// Step executes a single instruction. Once the VM has halted every call
// returns the same *HaltError.
func (vm *C8VM) Step() error {
	switch vm.state {
	case Halted:
		return vm.halt

	case WaitingForKey:
		key, ok := vm.keypad.AnyDown()
		if !ok {
			return nil
		}
		vm.regs.V[vm.waitReg] = key
		vm.regs.SetPC(vm.regs.PC + InstructionSize)
		vm.state = Running
		vm.logger.Debug("Key press received",
			log.String("key", fmt.Sprintf("%X", key)),
			log.String("register", fmt.Sprintf("V%X", vm.waitReg)))
		return nil
	}

	pc := vm.regs.PC
	vm.opcode = 0
	opcode, err := vm.fetch(pc)
	if err != nil {
		return vm.fail(pc, err)
	}
	vm.opcode = opcode

	inst, err := Decode(opcode)
	if err != nil {
		return vm.fail(pc, err)
	}

	if vm.logger.Enabled(context.Background(), log.DebugLevel) {
		vm.logger.Debug("Executing",
			log.String("pc", fmt.Sprintf("%03X", pc)),
			log.String("opcode", fmt.Sprintf("%04X", opcode)),
			log.String("instruction", inst.String()))
	}

	if err := vm.execute(pc, inst); err != nil {
		return vm.fail(pc, err)
	}
	return nil
}

// TickTimers decrements the delay and sound timers, call at TimerFrequency
func (vm *C8VM) TickTimers() {
	vm.timers.Tick()
}

// SetKey sets or clears the respective key in the input latch
func (vm *C8VM) SetKey(code uint8, pressed bool) {
	vm.keypad.SetKey(code, pressed)
}

// PixelAt reports whether the pixel at (x, y) is lit
func (vm *C8VM) PixelAt(x, y int) bool {
	return vm.display.PixelAt(x, y)
}

// Display returns a copy of the framebuffer
func (vm *C8VM) Display() Display {
	return vm.display
}

// Registers returns a copy of the register file
func (vm *C8VM) Registers() Registers {
	return vm.regs
}

// State returns the execution state
func (vm *C8VM) State() State {
	return vm.state
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.timers.Delay()
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.timers.Sound()
}

// SoundActive reports whether the buzzer should be sounding
func (vm *C8VM) SoundActive() bool {
	return vm.timers.SoundActive()
}

// IsDrawFlagSet returns whether the display changed since the last UnsetDrawFlag
func (vm *C8VM) IsDrawFlagSet() bool {
	return vm.drawFlag
}

// UnsetDrawFlag unsets the draw flag
func (vm *C8VM) UnsetDrawFlag() {
	vm.drawFlag = false
}

func (vm *C8VM) fetch(pc uint16) (uint16, error) {
	hi, err := vm.mem.Read(pc)
	if err != nil {
		return 0, err
	}
	lo, err := vm.mem.Read(pc + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (vm *C8VM) fail(pc uint16, err error) error {
	vm.state = Halted
	vm.halt = &HaltError{
		Err:    err,
		PC:     pc,
		Opcode: vm.opcode,
		Depth:  vm.regs.Depth(),
	}
	if errors.Is(err, ErrMemoryOutOfRange) {
		vm.logger.Error("Memory invariant violated", log.String("error", vm.halt.Error()))
	} else {
		vm.logger.Error("VM halted", log.String("error", vm.halt.Error()))
	}
	return vm.halt
}

func (vm *C8VM) skipIf(pc uint16, cond bool) {
	if cond {
		vm.regs.SetPC(pc + 2*InstructionSize)
		return
	}
	vm.regs.SetPC(pc + InstructionSize)
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// execute runs a decoded instruction fetched from pc. Flag results are
// computed from operands captured before VF is written.
func (vm *C8VM) execute(pc uint16, inst Instruction) error {
	r := &vm.regs
	x, y := inst.X, inst.Y
	vx, vy := r.V[x], r.V[y]
	next := pc + InstructionSize

	switch inst.Op {
	case OpCLS:
		vm.display.Clear()
		vm.drawFlag = true
	case OpRET:
		addr, err := r.Pop()
		if err != nil {
			return err
		}
		r.SetPC(addr)
		return nil
	case OpJP:
		r.SetPC(inst.NNN)
		return nil
	case OpCALL:
		if err := r.Push(next); err != nil {
			return err
		}
		r.SetPC(inst.NNN)
		return nil
	case OpSEByte:
		vm.skipIf(pc, vx == inst.KK)
		return nil
	case OpSNEByte:
		vm.skipIf(pc, vx != inst.KK)
		return nil
	case OpSEReg:
		vm.skipIf(pc, vx == vy)
		return nil
	case OpLDByte:
		r.V[x] = inst.KK
	case OpADDByte:
		r.V[x] = vx + inst.KK
	case OpLDReg:
		r.V[x] = vy
	case OpOR:
		r.V[x] = vx | vy
	case OpAND:
		r.V[x] = vx & vy
	case OpXOR:
		r.V[x] = vx ^ vy
	case OpADDReg:
		sum := uint16(vx) + uint16(vy)
		r.V[x] = uint8(sum)
		r.V[0xF] = boolToFlag(sum > 0xFF)
	case OpSUB:
		r.V[x] = vx - vy
		r.V[0xF] = boolToFlag(vx >= vy)
	case OpSHR:
		r.V[x] = vx >> 1
		r.V[0xF] = vx & 0x01
	case OpSUBN:
		r.V[x] = vy - vx
		r.V[0xF] = boolToFlag(vy >= vx)
	case OpSHL:
		r.V[x] = vx << 1
		r.V[0xF] = vx >> 7
	case OpSNEReg:
		vm.skipIf(pc, vx != vy)
		return nil
	case OpLDI:
		r.SetI(inst.NNN)
	case OpJPV0:
		r.SetPC(inst.NNN + uint16(r.V[0]))
		return nil
	case OpRND:
		r.V[x] = vm.random() & inst.KK
	case OpDRW:
		if err := vm.draw(vx, vy, inst.N); err != nil {
			return err
		}
	case OpSKP:
		vm.skipIf(pc, vm.keypad.IsDown(vx))
		return nil
	case OpSKNP:
		vm.skipIf(pc, !vm.keypad.IsDown(vx))
		return nil
	case OpLDVxDT:
		r.V[x] = vm.timers.Delay()
	case OpLDVxK:
		vm.state = WaitingForKey
		vm.waitReg = x
		vm.logger.Debug("Waiting for key press", log.String("register", fmt.Sprintf("V%X", x)))
		return nil
	case OpLDDTVx:
		vm.timers.SetDelay(vx)
	case OpLDSTVx:
		vm.timers.SetSound(vx)
	case OpADDI:
		r.SetI(r.I + uint16(vx))
	case OpLDF:
		r.SetI(FontAddress(vx))
	case OpLDB:
		digits := [3]uint8{vx / 100, (vx / 10) % 10, vx % 10}
		for i, d := range digits {
			if err := vm.mem.Write(r.I+uint16(i), d); err != nil {
				return err
			}
		}
	case OpLDMemVx:
		for i := uint16(0); i <= uint16(x); i++ {
			if err := vm.mem.Write(r.I+i, r.V[i]); err != nil {
				return err
			}
		}
	case OpLDVxMem:
		for i := uint16(0); i <= uint16(x); i++ {
			b, err := vm.mem.Read(r.I + i)
			if err != nil {
				return err
			}
			r.V[i] = b
		}
	default:
		return fmt.Errorf("%w: %04X", ErrInvalidOpcode, inst.Opcode)
	}

	r.SetPC(next)
	return nil
}

// draw reads an n byte sprite from I and XORs it onto the display at (x, y),
// setting VF on collision.
func (vm *C8VM) draw(x, y, n uint8) error {
	var sprite [15]byte
	for row := uint8(0); row < n; row++ {
		b, err := vm.mem.Read(vm.regs.I + uint16(row))
		if err != nil {
			return err
		}
		sprite[row] = b
	}
	collided := vm.display.DrawSprite(x, y, sprite[:n])
	vm.regs.V[0xF] = boolToFlag(collided)
	vm.drawFlag = true
	return nil
}
