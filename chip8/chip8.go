package chip8

import (
	"math/rand"
	"os"
	"time"
)

/// Address programs are loaded to and where execution begins.
///
const ProgramStart = 0x200

/// CHIP_8 virtual machine emulator with SUPER-CHIP high-res video.
///
type CHIP_8 struct {
	/// Memory addressable by CHIP-8. The font sprites live at the base
	/// and the program is loaded at 0x200. Every access is masked to
	/// 12 bits.
	///
	Memory [0x1000]byte

	/// Video memory. One ARGB color per cell, 128x64 cells regardless of
	/// the active mode.
	///
	Video [VideoWidth * VideoHeight]uint32

	/// Foreground and Background are the only colors ever written to
	/// video memory. Use SetColors to change them.
	///
	Foreground, Background uint32

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint

	/// I is the address register.
	///
	I uint

	/// V are the 16 virtual registers. VF is the carry, borrow and
	/// collision flag.
	///
	V [16]byte

	/// Stack of subroutine return addresses.
	///
	Stack Stack

	/// DT is the delay timer.
	///
	DT Timer

	/// True if the CHIP-8 is in high-res (128x64) mode.
	///
	HighRes bool

	/// Waiting is true while an LD Vx, K instruction has not seen a key.
	///
	Waiting bool

	/// IO supplies the key state and beeper.
	///
	IO IO

	/// Now returns the current time in ns. Defaults to the wall clock.
	///
	Now func() int64

	/// Clock is the time (in ns) when emulation begins.
	///
	Clock int64

	/// Cycles is how many instructions have been executed since Clock.
	///
	Cycles int64

	/// Speed is how many instructions Process executes per second.
	///
	Speed int64

	/// Breakpoints checked by Process.
	///
	Breakpoints []Breakpoint

	rng *rand.Rand
}

/// New returns a CHIP-8 virtual machine with empty memory. If io is nil
/// a Keypad is used.
///
func New(io IO) *CHIP_8 {
	if io == nil {
		io = &Keypad{}
	}

	vm := &CHIP_8{
		Foreground: DefaultForeground,
		Background: DefaultBackground,
		IO:         io,
		Now:        wallClock,
		Speed:      DefaultSpeed,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	vm.writeFont()
	vm.Reset()

	return vm
}

/// LoadROM creates a new virtual machine and loads a program into it.
///
func LoadROM(program []byte, io IO) (*CHIP_8, error) {
	vm := New(io)

	if err := vm.Load(program); err != nil {
		return nil, err
	}

	return vm, nil
}

/// LoadFile reads a ROM file and returns a new virtual machine running it.
///
func LoadFile(file string, io IO) (*CHIP_8, error) {
	program, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return LoadROM(program, io)
}

/// Load replaces memory with the font and the program (at 0x200), then
/// resets the virtual machine.
///
func (vm *CHIP_8) Load(program []byte) error {
	if len(program) > len(vm.Memory)-ProgramStart {
		return ErrProgramTooLarge
	}

	vm.Memory = [0x1000]byte{}

	vm.writeFont()
	copy(vm.Memory[ProgramStart:], program)

	vm.Reset()

	return nil
}

/// Reset the CHIP-8 registers and display. Memory is left alone.
///
func (vm *CHIP_8) Reset() {
	vm.PC = ProgramStart
	vm.I = 0
	vm.V = [16]byte{}

	vm.Stack.Reset()
	vm.DT = Timer{}

	vm.HighRes = false
	vm.Waiting = false

	vm.Clear()

	// reset the clock and cycles executed
	vm.Clock = vm.Now()
	vm.Cycles = 0
}

/// Seed the random number generator used by RND.
///
func (vm *CHIP_8) Seed(seed int64) {
	vm.rng = rand.New(rand.NewSource(seed))
}

func wallClock() int64 {
	return time.Now().UnixNano()
}

/// Step the CHIP-8 virtual machine a single instruction. An error is
/// returned only for an illegal instruction, in which case the virtual
/// machine should not be stepped again.
///
func (vm *CHIP_8) Step() error {
	pc := vm.PC

	// fetch the next instruction
	inst := vm.fetch()

	// 12-bit address operand
	a := inst & 0xFFF

	// byte and nibble operands
	b := byte(inst & 0xFF)
	n := inst & 0xF

	// x and y register operands
	x := inst >> 8 & 0xF
	y := inst >> 4 & 0xF

	var err error

	// instruction decoding
	switch {
	case inst == 0x00E0:
		vm.Clear()
	case inst == 0x00EE:
		err = vm.ret()
	case inst == 0x00FE:
		vm.low()
	case inst == 0x00FF:
		vm.high()
	case inst&0xFFF0 == 0x00C0:
		vm.ScrollDown(n)
	case inst&0xF000 == 0x1000:
		vm.jump(a)
	case inst&0xF000 == 0x2000:
		err = vm.call(a)
	case inst&0xF000 == 0x3000:
		vm.skipIf(x, b)
	case inst&0xF000 == 0x4000:
		vm.skipIfNot(x, b)
	case inst&0xF00F == 0x5000:
		vm.skipIfXY(x, y)
	case inst&0xF000 == 0x6000:
		vm.loadX(x, b)
	case inst&0xF000 == 0x7000:
		vm.addX(x, b)
	case inst&0xF00F == 0x8000:
		vm.loadXY(x, y)
	case inst&0xF00F == 0x8001:
		vm.or(x, y)
	case inst&0xF00F == 0x8002:
		vm.and(x, y)
	case inst&0xF00F == 0x8003:
		vm.xor(x, y)
	case inst&0xF00F == 0x8004:
		vm.addXY(x, y)
	case inst&0xF00F == 0x8005:
		vm.subXY(x, y)
	case inst&0xF00F == 0x8006:
		vm.shr(x)
	case inst&0xF00F == 0x8007:
		vm.subYX(x, y)
	case inst&0xF00F == 0x800E:
		vm.shl(x)
	case inst&0xF00F == 0x9000:
		vm.skipIfNotXY(x, y)
	case inst&0xF000 == 0xA000:
		vm.loadI(a)
	case inst&0xF000 == 0xB000:
		vm.jumpV0(a)
	case inst&0xF000 == 0xC000:
		vm.rnd(x, b)
	case inst&0xF000 == 0xD000:
		vm.DrawSprite(uint(vm.V[x]), uint(vm.V[y]), n)
	case inst&0xF0FF == 0xE09E:
		vm.skipIfPressed(x)
	case inst&0xF0FF == 0xE0A1:
		vm.skipIfNotPressed(x)
	case inst&0xF0FF == 0xF007:
		vm.loadXDT(x)
	case inst&0xF0FF == 0xF00A:
		vm.loadXK(x)
	case inst&0xF0FF == 0xF015:
		vm.loadDTX(x)
	case inst&0xF0FF == 0xF018:
		vm.IO.PlayBeep()
	case inst&0xF0FF == 0xF01E:
		vm.addIX(x)
	case inst&0xF0FF == 0xF029:
		vm.loadF(x)
	case inst&0xF0FF == 0xF033:
		vm.loadB(x)
	case inst&0xF0FF == 0xF055:
		vm.saveRegs(x)
	case inst&0xF0FF == 0xF065:
		vm.loadRegs(x)
	default:
		err = ErrUnknownOpcode
	}

	if err != nil {
		return &IllegalInstruction{
			Address:  pc,
			Opcode:   byte(inst >> 8),
			Argument: b,
			Err:      err,
		}
	}

	// increment the cycle count
	vm.Cycles += 1

	return nil
}

/// Fetch the next 16-bit instruction to execute.
///
func (vm *CHIP_8) fetch() uint {
	i := vm.PC

	// advance the program counter
	vm.PC = (vm.PC + 2) & 0xFFF

	// return the 16-bit instruction
	return uint(vm.Memory[i&0xFFF])<<8 | uint(vm.Memory[(i+1)&0xFFF])
}

/// skip the next instruction.
///
func (vm *CHIP_8) skip() {
	vm.PC = (vm.PC + 2) & 0xFFF
}

/// call a subroutine at address.
///
func (vm *CHIP_8) call(address uint) error {
	if !vm.Stack.Push(vm.PC) {
		return ErrStackOverflow
	}

	// jump to address
	vm.PC = address

	return nil
}

/// return from subroutine.
///
func (vm *CHIP_8) ret() error {
	pc, ok := vm.Stack.Pop()
	if !ok {
		return ErrStackUnderflow
	}

	// restore program counter
	vm.PC = pc

	return nil
}

/// set low res mode.
///
func (vm *CHIP_8) low() {
	vm.HighRes = false
}

/// set high res mode.
///
func (vm *CHIP_8) high() {
	vm.HighRes = true
}

/// jump to address.
///
func (vm *CHIP_8) jump(address uint) {
	vm.PC = address & 0xFFF
}

/// jump to address + v0.
///
func (vm *CHIP_8) jumpV0(address uint) {
	vm.PC = (address + uint(vm.V[0])) & 0xFFF
}

/// skip next instruction if vx == n.
///
func (vm *CHIP_8) skipIf(x uint, b byte) {
	if vm.V[x] == b {
		vm.skip()
	}
}

/// skip next instruction if vx != n.
///
func (vm *CHIP_8) skipIfNot(x uint, b byte) {
	if vm.V[x] != b {
		vm.skip()
	}
}

/// skip next instruction if vx == vy.
///
func (vm *CHIP_8) skipIfXY(x, y uint) {
	if vm.V[x] == vm.V[y] {
		vm.skip()
	}
}

/// skip next instruction if vx != vy.
///
func (vm *CHIP_8) skipIfNotXY(x, y uint) {
	if vm.V[x] != vm.V[y] {
		vm.skip()
	}
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *CHIP_8) skipIfPressed(x uint) {
	if vm.IO.TestKey(int(vm.V[x])) {
		vm.skip()
	}
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *CHIP_8) skipIfNotPressed(x uint) {
	if !vm.IO.TestKey(int(vm.V[x])) {
		vm.skip()
	}
}

/// load n into vx.
///
func (vm *CHIP_8) loadX(x uint, b byte) {
	vm.V[x] = b
}

/// load y into vx.
///
func (vm *CHIP_8) loadXY(x, y uint) {
	vm.V[x] = vm.V[y]
}

/// load delay timer into vx.
///
func (vm *CHIP_8) loadXDT(x uint) {
	vm.V[x] = vm.DT.Read(vm.Now())
}

/// load vx into delay timer.
///
func (vm *CHIP_8) loadDTX(x uint) {
	vm.DT.Load(vm.V[x], vm.Now())
}

/// load vx with the first key held down. If no key is down, the program
/// counter is rewound so the next step polls again.
///
func (vm *CHIP_8) loadXK(x uint) {
	for key := 0; key < 16; key++ {
		if vm.IO.TestKey(key) {
			vm.V[x] = byte(key)
			vm.Waiting = false
			return
		}
	}

	vm.PC = (vm.PC - 2) & 0xFFF
	vm.Waiting = true
}

/// load address register.
///
func (vm *CHIP_8) loadI(address uint) {
	vm.I = address & 0xFFF
}

/// load address with BCD of vx.
///
func (vm *CHIP_8) loadB(x uint) {
	n := vm.V[x]

	// write to memory
	vm.Memory[vm.I&0xFFF] = n / 100
	vm.Memory[(vm.I+1)&0xFFF] = n / 10 % 10
	vm.Memory[(vm.I+2)&0xFFF] = n % 10
}

/// load font sprite for vx into I.
///
func (vm *CHIP_8) loadF(x uint) {
	vm.I = uint(vm.V[x]) * GlyphSize
}

/// or vx with vy into vx.
///
func (vm *CHIP_8) or(x, y uint) {
	vm.V[x] |= vm.V[y]
}

/// and vx with vy into vx.
///
func (vm *CHIP_8) and(x, y uint) {
	vm.V[x] &= vm.V[y]
}

/// xor vx with vy into vx.
///
func (vm *CHIP_8) xor(x, y uint) {
	vm.V[x] ^= vm.V[y]
}

/// shl vx 1 bit, set carry to MSB of vx before shift.
///
func (vm *CHIP_8) shl(x uint) {
	msb := vm.V[x] >> 7

	vm.V[x] <<= 1
	vm.V[0xF] = msb
}

/// shr vx 1 bit, set carry to LSB of vx before shift.
///
func (vm *CHIP_8) shr(x uint) {
	lsb := vm.V[x] & 1

	vm.V[x] >>= 1
	vm.V[0xF] = lsb
}

/// add n to vx.
///
func (vm *CHIP_8) addX(x uint, b byte) {
	vm.V[x] += b
}

/// add vy to vx and set carry.
///
func (vm *CHIP_8) addXY(x, y uint) {
	sum := uint(vm.V[x]) + uint(vm.V[y])

	vm.V[x] = byte(sum)
	vm.V[0xF] = flag(sum > 0xFF)
}

/// add vx to i.
///
func (vm *CHIP_8) addIX(x uint) {
	vm.I = (vm.I + uint(vm.V[x])) & 0xFFF
}

/// subtract vy from vx, set VF if it borrowed.
///
func (vm *CHIP_8) subXY(x, y uint) {
	borrow := vm.V[y] > vm.V[x]

	vm.V[x] -= vm.V[y]
	vm.V[0xF] = flag(borrow)
}

/// subtract vx from vy and store in vx, set VF if it borrowed.
///
func (vm *CHIP_8) subYX(x, y uint) {
	borrow := vm.V[x] > vm.V[y]

	vm.V[x] = vm.V[y] - vm.V[x]
	vm.V[0xF] = flag(borrow)
}

/// load a random number & n into vx.
///
func (vm *CHIP_8) rnd(x uint, b byte) {
	vm.V[x] = byte(vm.rng.Intn(256)) & b
}

/// save registers v0..vx to I, leaving I past the last byte.
///
func (vm *CHIP_8) saveRegs(x uint) {
	for i := uint(0); i <= x; i++ {
		vm.Memory[vm.I&0xFFF] = vm.V[i]
		vm.I = (vm.I + 1) & 0xFFF
	}
}

/// load registers v0..vx from I, leaving I past the last byte.
///
func (vm *CHIP_8) loadRegs(x uint) {
	for i := uint(0); i <= x; i++ {
		vm.V[i] = vm.Memory[vm.I&0xFFF]
		vm.I = (vm.I + 1) & 0xFFF
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}

	return 0
}
