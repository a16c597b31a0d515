package chip8

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/// testClock is a manually advanced time source.
///
type testClock struct {
	ns int64
}

func (c *testClock) now() int64 {
	return c.ns
}

/// newTestVM loads a program into a new VM with a fake clock and keypad.
///
func newTestVM(t *testing.T, program ...byte) (*CHIP_8, *Keypad, *testClock) {
	t.Helper()

	keys := &Keypad{}
	clock := &testClock{ns: 1_000_000_000}

	vm := New(keys)
	vm.Now = clock.now
	vm.Seed(1)

	require.NoError(t, vm.Load(program))

	return vm, keys, clock
}

/// exec runs a single instruction placed at the program counter.
///
func exec(t *testing.T, vm *CHIP_8, inst uint16) {
	t.Helper()

	vm.Memory[vm.PC] = byte(inst >> 8)
	vm.Memory[vm.PC+1] = byte(inst)

	require.NoError(t, vm.Step())
}

func TestLoadAndAdd(t *testing.T) {
	vm, _, _ := newTestVM(t, 0x60, 0x05, 0x70, 0x0A)

	require.NoError(t, vm.Step())
	require.NoError(t, vm.Step())

	assert.Equal(t, byte(15), vm.V[0])
	assert.Equal(t, uint(0x204), vm.PC)
}

func TestLoadWritesFont(t *testing.T) {
	vm, _, _ := newTestVM(t, 0xAA, 0xBB)

	// glyph 0 is F999F
	assert.Equal(t, []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}, vm.Memory[0:5])

	// glyph F is F8F88
	assert.Equal(t, []byte{0xF0, 0x80, 0xF0, 0x80, 0x80}, vm.Memory[75:80])

	assert.Equal(t, byte(0xAA), vm.Memory[0x200])
	assert.Equal(t, byte(0xBB), vm.Memory[0x201])
}

func TestLoadTooLarge(t *testing.T) {
	vm := New(nil)

	assert.ErrorIs(t, vm.Load(make([]byte, 0x1000-0x200+1)), ErrProgramTooLarge)
	assert.NoError(t, vm.Load(make([]byte, 0x1000-0x200)))

	_, err := LoadROM(make([]byte, 0x1000), nil)
	assert.ErrorIs(t, err, ErrProgramTooLarge)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.ch8", nil)
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	vm, _, _ := newTestVM(t, 0x60, 0x05, 0x22, 0x00)

	vm.V[3] = 9
	vm.I = 0x123
	vm.HighRes = true
	vm.Stack.Push(0x300)
	vm.Video[10] = vm.Foreground
	vm.Memory[0x800] = 0x42

	vm.Reset()

	assert.Equal(t, [16]byte{}, vm.V)
	assert.Equal(t, uint(0x200), vm.PC)
	assert.Equal(t, uint(0), vm.I)
	assert.True(t, vm.Stack.Empty())
	assert.False(t, vm.HighRes)
	assert.Equal(t, vm.Background, vm.Video[10])

	// memory is untouched
	assert.Equal(t, byte(0x42), vm.Memory[0x800])
	assert.Equal(t, byte(0x60), vm.Memory[0x200])
	assert.Equal(t, byte(0xF0), vm.Memory[0])
}

func TestAddCarry(t *testing.T) {
	vm, _, _ := newTestVM(t, 0x80, 0x14)

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			vm.PC = 0x200
			vm.V[0] = byte(a)
			vm.V[1] = byte(b)

			require.NoError(t, vm.Step())

			sum := a + b
			require.Equal(t, byte(sum%256), vm.V[0], "%d + %d", a, b)
			require.Equal(t, flag(sum >= 256), vm.V[0xF], "%d + %d", a, b)
		}
	}
}

// VF is 1 when the subtraction borrows, the opposite of most other
// CHIP-8 interpreters.
func TestSubBorrowPolarity(t *testing.T) {
	table := []struct {
		name string
		inst uint16
		diff func(x, y int) int
	}{
		{"SUB", 0x8015, func(x, y int) int { return x - y }},
		{"SUBN", 0x8017, func(x, y int) int { return y - x }},
	}

	for _, entry := range table {
		vm, _, _ := newTestVM(t, byte(entry.inst>>8), byte(entry.inst))

		for x := 0; x < 256; x++ {
			for y := 0; y < 256; y++ {
				vm.PC = 0x200
				vm.V[0] = byte(x)
				vm.V[1] = byte(y)

				require.NoError(t, vm.Step())

				d := entry.diff(x, y)
				require.Equal(t, byte(d&0xFF), vm.V[0], "%s %d, %d", entry.name, x, y)
				require.Equal(t, flag(d < 0), vm.V[0xF], "%s %d, %d", entry.name, x, y)
			}
		}
	}

	vm, _, _ := newTestVM(t)

	vm.V[0], vm.V[1] = 5, 10
	exec(t, vm, 0x8015)
	assert.Equal(t, byte(251), vm.V[0])
	assert.Equal(t, byte(1), vm.V[0xF], "borrow sets VF")

	vm.V[0], vm.V[1] = 10, 5
	exec(t, vm, 0x8015)
	assert.Equal(t, byte(5), vm.V[0])
	assert.Equal(t, byte(0), vm.V[0xF], "no borrow clears VF")

	vm.V[0], vm.V[1] = 7, 7
	exec(t, vm, 0x8015)
	assert.Equal(t, byte(0), vm.V[0])
	assert.Equal(t, byte(0), vm.V[0xF], "equal operands do not borrow")
}

func TestArithmetic(t *testing.T) {
	table := []struct {
		name   string
		inst   uint16
		x, y   byte
		vf     byte
		result byte
		flag   byte
	}{
		{"LD", 0x8010, 0x12, 0x34, 0xAA, 0x34, 0xAA},
		{"OR", 0x8011, 0xF0, 0x0F, 0xAA, 0xFF, 0xAA},
		{"AND", 0x8012, 0xF3, 0x3F, 0xAA, 0x33, 0xAA},
		{"XOR", 0x8013, 0xFF, 0x0F, 0xAA, 0xF0, 0xAA},
		{"SHR odd", 0x8016, 0x05, 0x00, 0xAA, 0x02, 1},
		{"SHR even", 0x8016, 0x04, 0x00, 0xAA, 0x02, 0},
		{"SHR ignores vy", 0x8016, 0x81, 0xFF, 0xAA, 0x40, 1},
		{"SHL msb", 0x801E, 0x81, 0x00, 0xAA, 0x02, 1},
		{"SHL no msb", 0x801E, 0x41, 0x00, 0xAA, 0x82, 0},
		{"ADD imm wraps", 0x70FF, 0x02, 0x00, 0xAA, 0x01, 0xAA},
		{"LD imm", 0x6042, 0x00, 0x00, 0xAA, 0x42, 0xAA},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			vm, _, _ := newTestVM(t)

			vm.V[0] = entry.x
			vm.V[1] = entry.y
			vm.V[0xF] = entry.vf

			exec(t, vm, entry.inst)

			assert.Equal(t, entry.result, vm.V[0])
			assert.Equal(t, entry.flag, vm.V[0xF])
		})
	}
}

func TestSkips(t *testing.T) {
	table := []struct {
		name string
		inst uint16
		x, y byte
		skip bool
	}{
		{"SE imm taken", 0x3042, 0x42, 0, true},
		{"SE imm", 0x3042, 0x41, 0, false},
		{"SNE imm taken", 0x4042, 0x41, 0, true},
		{"SNE imm", 0x4042, 0x42, 0, false},
		{"SE reg taken", 0x5010, 9, 9, true},
		{"SE reg", 0x5010, 9, 8, false},
		{"SNE reg taken", 0x9010, 9, 8, true},
		{"SNE reg", 0x9010, 9, 9, false},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			vm, _, _ := newTestVM(t)

			vm.V[0] = entry.x
			vm.V[1] = entry.y

			exec(t, vm, entry.inst)

			if entry.skip {
				assert.Equal(t, uint(0x204), vm.PC)
			} else {
				assert.Equal(t, uint(0x202), vm.PC)
			}
		})
	}
}

func TestJumpsMaskAddress(t *testing.T) {
	vm, _, _ := newTestVM(t)

	exec(t, vm, 0x1ABC)
	assert.Equal(t, uint(0xABC), vm.PC)

	exec(t, vm, 0xAFFF)
	assert.Equal(t, uint(0xFFF), vm.I)

	vm.PC = 0x200
	vm.V[0] = 0xFF
	exec(t, vm, 0xBFFF)
	assert.Equal(t, uint((0xFFF+0xFF)&0xFFF), vm.PC)

	vm.PC = 0x200
	vm.V[0] = 0x10
	exec(t, vm, 0xB300)
	assert.Equal(t, uint(0x310), vm.PC)
}

func TestCallReturn(t *testing.T) {
	vm, _, _ := newTestVM(t, 0x23, 0x00)

	vm.Memory[0x300] = 0x00
	vm.Memory[0x301] = 0xEE

	require.NoError(t, vm.Step())
	assert.Equal(t, uint(0x300), vm.PC)
	assert.Equal(t, uint(1), vm.Stack.SP)

	require.NoError(t, vm.Step())
	assert.Equal(t, uint(0x202), vm.PC)
	assert.True(t, vm.Stack.Empty())
}

func TestStackUnderflow(t *testing.T) {
	vm, _, _ := newTestVM(t, 0x00, 0xEE)

	err := vm.Step()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStackUnderflow)

	var illegal *IllegalInstruction
	require.True(t, errors.As(err, &illegal))
	assert.Equal(t, uint(0x200), illegal.Address)
	assert.Equal(t, byte(0x00), illegal.Opcode)
	assert.Equal(t, byte(0xEE), illegal.Argument)
}

func TestStackOverflow(t *testing.T) {
	// CALL 200 forever
	vm, _, _ := newTestVM(t, 0x22, 0x00)

	for i := 0; i < StackLimit; i++ {
		require.NoError(t, vm.Step())
	}

	err := vm.Step()
	assert.ErrorIs(t, err, ErrStackOverflow)
	assert.Equal(t, uint(StackLimit), vm.Stack.SP)
}

func TestUnknownOpcodes(t *testing.T) {
	for _, inst := range []uint16{0x0000, 0x0123, 0x00E1, 0x01E0, 0x5121, 0x9018, 0x8008, 0x800F, 0xE09F, 0xE1A2, 0xF000, 0xF0FF, 0xF156} {
		vm, _, _ := newTestVM(t, byte(inst>>8), byte(inst))

		err := vm.Step()

		var illegal *IllegalInstruction
		require.True(t, errors.As(err, &illegal), "%04X", inst)
		assert.ErrorIs(t, err, ErrUnknownOpcode, "%04X", inst)
		assert.Equal(t, uint(0x200), illegal.Address)
		assert.Equal(t, byte(inst>>8), illegal.Opcode)
		assert.Equal(t, byte(inst), illegal.Argument)
		assert.Contains(t, err.Error(), "at 0200")
	}
}

func TestRandomMask(t *testing.T) {
	vm, _, _ := newTestVM(t)

	for i := 0; i < 100; i++ {
		vm.PC = 0x200
		exec(t, vm, 0xC00F)
		assert.Zero(t, vm.V[0]&0xF0)

		vm.PC = 0x200
		exec(t, vm, 0xC100)
		assert.Zero(t, vm.V[1])
	}
}

func TestKeySkips(t *testing.T) {
	vm, keys, _ := newTestVM(t)

	vm.V[2] = 0xA

	exec(t, vm, 0xE29E)
	assert.Equal(t, uint(0x202), vm.PC, "not pressed, no skip")

	vm.PC = 0x200
	exec(t, vm, 0xE2A1)
	assert.Equal(t, uint(0x204), vm.PC, "not pressed, skip")

	keys.Press(0xA)

	vm.PC = 0x200
	exec(t, vm, 0xE29E)
	assert.Equal(t, uint(0x204), vm.PC, "pressed, skip")

	vm.PC = 0x200
	exec(t, vm, 0xE2A1)
	assert.Equal(t, uint(0x202), vm.PC, "pressed, no skip")
}

func TestWaitForKey(t *testing.T) {
	// LD V3, K ; LD V4, #01
	vm, keys, _ := newTestVM(t, 0xF3, 0x0A, 0x64, 0x01)

	for i := 0; i < 3; i++ {
		require.NoError(t, vm.Step())

		assert.True(t, vm.Waiting)
		assert.Equal(t, uint(0x200), vm.PC)
		assert.Equal(t, byte(0), vm.V[4], "nothing after the wait executes")
	}

	keys.Press(0xC)
	keys.Press(0x5)

	require.NoError(t, vm.Step())
	assert.False(t, vm.Waiting)
	assert.Equal(t, byte(0x5), vm.V[3], "lowest key wins")
	assert.Equal(t, uint(0x202), vm.PC)

	require.NoError(t, vm.Step())
	assert.Equal(t, byte(1), vm.V[4])
}

func TestBeep(t *testing.T) {
	vm, keys, _ := newTestVM(t, 0xF0, 0x18, 0xF1, 0x18)

	beeps := 0
	keys.Beep = func() { beeps++ }

	require.NoError(t, vm.Step())
	assert.Equal(t, 1, beeps)

	require.NoError(t, vm.Step())
	assert.Equal(t, 2, beeps)
}

func TestDelayTimerInstructions(t *testing.T) {
	vm, _, clock := newTestVM(t)

	vm.V[0] = 10
	exec(t, vm, 0xF015)

	clock.ns += int64(3 * Tick)

	exec(t, vm, 0xF107)
	assert.Equal(t, byte(7), vm.V[1])

	clock.ns += int64(time.Second)

	exec(t, vm, 0xF207)
	assert.Equal(t, byte(0), vm.V[2])
}

func TestIndexInstructions(t *testing.T) {
	vm, _, _ := newTestVM(t)

	vm.I = 0xFFE
	vm.V[0] = 3
	exec(t, vm, 0xF01E)
	assert.Equal(t, uint(0x001), vm.I, "I wraps at 12 bits")

	vm.V[5] = 0xB
	exec(t, vm, 0xF529)
	assert.Equal(t, uint(0xB*5), vm.I)
	assert.Equal(t, byte(0xE0), vm.Memory[vm.I], "glyph B")
}

func TestBCD(t *testing.T) {
	table := []struct {
		value  byte
		digits []byte
	}{
		{234, []byte{2, 3, 4}},
		{0, []byte{0, 0, 0}},
		{9, []byte{0, 0, 9}},
		{70, []byte{0, 7, 0}},
		{255, []byte{2, 5, 5}},
	}

	for _, entry := range table {
		vm, _, _ := newTestVM(t)

		vm.I = 0x300
		vm.V[7] = entry.value
		exec(t, vm, 0xF733)

		assert.Equal(t, entry.digits, vm.Memory[0x300:0x303], "%d", entry.value)
		assert.Equal(t, uint(0x300), vm.I)
	}
}

func TestSaveLoadRegisters(t *testing.T) {
	vm, _, _ := newTestVM(t)

	vm.V = [16]byte{0x11, 0x22, 0x33, 0x44, 0x55}
	vm.I = 0x400

	exec(t, vm, 0xF355)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44, 0x00}, vm.Memory[0x400:0x405])
	assert.Equal(t, uint(0x404), vm.I)

	vm.V = [16]byte{}
	vm.I = 0x400

	exec(t, vm, 0xF365)
	assert.Equal(t, [16]byte{0x11, 0x22, 0x33, 0x44}, vm.V)
	assert.Equal(t, uint(0x404), vm.I)
}

func TestSaveRegistersWraps(t *testing.T) {
	vm, _, _ := newTestVM(t)

	vm.V[0], vm.V[1] = 0xAB, 0xCD
	vm.I = 0xFFF

	exec(t, vm, 0xF155)
	assert.Equal(t, byte(0xAB), vm.Memory[0xFFF])
	assert.Equal(t, byte(0xCD), vm.Memory[0x000])
	assert.Equal(t, uint(0x001), vm.I)
}

func TestDisplayModeInstructions(t *testing.T) {
	vm, _, _ := newTestVM(t)

	vm.Video[0] = vm.Foreground

	exec(t, vm, 0x00FF)
	assert.True(t, vm.HighRes)
	assert.Equal(t, vm.Foreground, vm.Video[0], "mode switch keeps the display")

	exec(t, vm, 0x00FE)
	assert.False(t, vm.HighRes)

	exec(t, vm, 0x00E0)
	assert.Equal(t, vm.Background, vm.Video[0])
}

func TestFetchWraps(t *testing.T) {
	vm, _, _ := newTestVM(t)

	// LD V0, #12 split across the end of memory
	vm.PC = 0xFFF
	vm.Memory[0xFFF] = 0x60
	vm.Memory[0x000] = 0x12

	require.NoError(t, vm.Step())
	assert.Equal(t, byte(0x12), vm.V[0])
	assert.Equal(t, uint(0x001), vm.PC)
}
