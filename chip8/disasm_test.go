package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMnemonic(t *testing.T) {
	table := []struct {
		inst uint
		text string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x00FE, "LOW"},
		{0x00FF, "HIGH"},
		{0x00C4, "SCD    4"},
		{0x1ABC, "JP     #ABC"},
		{0x2300, "CALL   #300"},
		{0x3A12, "SE     VA, #12"},
		{0x5120, "SE     V1, V2"},
		{0x8125, "SUB    V1, V2"},
		{0x8106, "SHR    V1"},
		{0xA123, "LD     I, #123"},
		{0xB200, "JP     V0, #200"},
		{0xD125, "DRW    V1, V2, 5"},
		{0xE39E, "SKP    V3"},
		{0xF40A, "LD     V4, K"},
		{0xF533, "LD     B, V5"},
		{0xF655, "LD     [I], V6"},
		{0x5121, "DW     #5121"},
		{0xF0FF, "DW     #F0FF"},
	}

	for _, entry := range table {
		assert.Equal(t, entry.text, Mnemonic(entry.inst), "%04X", entry.inst)
	}
}

// Everything the disassembler shows as data must be rejected by Step and
// everything else must be accepted.
func TestMnemonicMatchesStep(t *testing.T) {
	vm, _, _ := newTestVM(t)

	for inst := uint(0); inst <= 0xFFFF; inst++ {
		vm.PC = 0x200
		vm.Memory[0x200] = byte(inst >> 8)
		vm.Memory[0x201] = byte(inst)

		// keep calls and returns from touching the stack limits
		vm.Stack.Reset()
		vm.Stack.Push(0x300)

		err := vm.Step()
		data := Mnemonic(inst)[:2] == "DW"

		if data != (err != nil) {
			t.Fatalf("%04X: %q but step returned %v", inst, Mnemonic(inst), err)
		}
	}
}

func TestDisassemble(t *testing.T) {
	vm, _, _ := newTestVM(t, 0x60, 0x05, 0x70, 0x0A)

	assert.Equal(t, "0200 - LD     V0, #05", vm.Disassemble(0x200))
	assert.Equal(t, "0202 - ADD    V0, #0A", vm.Disassemble(0x202))
}
