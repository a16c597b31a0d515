package chip8

import "fmt"

/// Disassemble the CHIP-8 instruction at an address, prefixed with the
/// address. Byte pairs Step would reject are shown as data.
///
func (vm *CHIP_8) Disassemble(address uint) string {
	address &= 0xFFF

	// fetch the instruction at this location
	inst := uint(vm.Memory[address])<<8 | uint(vm.Memory[(address+1)&0xFFF])

	return fmt.Sprintf("%04X - %s", address, Mnemonic(inst))
}

/// Mnemonic decodes a 16-bit instruction into assembly.
///
func Mnemonic(inst uint) string {
	a := inst & 0xFFF
	b := inst & 0xFF
	n := inst & 0xF
	x := inst >> 8 & 0xF
	y := inst >> 4 & 0xF

	switch {
	case inst == 0x00E0:
		return "CLS"
	case inst == 0x00EE:
		return "RET"
	case inst == 0x00FE:
		return "LOW"
	case inst == 0x00FF:
		return "HIGH"
	case inst&0xFFF0 == 0x00C0:
		return fmt.Sprintf("SCD    %d", n)
	case inst&0xF000 == 0x1000:
		return fmt.Sprintf("JP     #%03X", a)
	case inst&0xF000 == 0x2000:
		return fmt.Sprintf("CALL   #%03X", a)
	case inst&0xF000 == 0x3000:
		return fmt.Sprintf("SE     V%X, #%02X", x, b)
	case inst&0xF000 == 0x4000:
		return fmt.Sprintf("SNE    V%X, #%02X", x, b)
	case inst&0xF00F == 0x5000:
		return fmt.Sprintf("SE     V%X, V%X", x, y)
	case inst&0xF000 == 0x6000:
		return fmt.Sprintf("LD     V%X, #%02X", x, b)
	case inst&0xF000 == 0x7000:
		return fmt.Sprintf("ADD    V%X, #%02X", x, b)
	case inst&0xF00F == 0x8000:
		return fmt.Sprintf("LD     V%X, V%X", x, y)
	case inst&0xF00F == 0x8001:
		return fmt.Sprintf("OR     V%X, V%X", x, y)
	case inst&0xF00F == 0x8002:
		return fmt.Sprintf("AND    V%X, V%X", x, y)
	case inst&0xF00F == 0x8003:
		return fmt.Sprintf("XOR    V%X, V%X", x, y)
	case inst&0xF00F == 0x8004:
		return fmt.Sprintf("ADD    V%X, V%X", x, y)
	case inst&0xF00F == 0x8005:
		return fmt.Sprintf("SUB    V%X, V%X", x, y)
	case inst&0xF00F == 0x8006:
		return fmt.Sprintf("SHR    V%X", x)
	case inst&0xF00F == 0x8007:
		return fmt.Sprintf("SUBN   V%X, V%X", x, y)
	case inst&0xF00F == 0x800E:
		return fmt.Sprintf("SHL    V%X", x)
	case inst&0xF00F == 0x9000:
		return fmt.Sprintf("SNE    V%X, V%X", x, y)
	case inst&0xF000 == 0xA000:
		return fmt.Sprintf("LD     I, #%03X", a)
	case inst&0xF000 == 0xB000:
		return fmt.Sprintf("JP     V0, #%03X", a)
	case inst&0xF000 == 0xC000:
		return fmt.Sprintf("RND    V%X, #%02X", x, b)
	case inst&0xF000 == 0xD000:
		return fmt.Sprintf("DRW    V%X, V%X, %d", x, y, n)
	case inst&0xF0FF == 0xE09E:
		return fmt.Sprintf("SKP    V%X", x)
	case inst&0xF0FF == 0xE0A1:
		return fmt.Sprintf("SKNP   V%X", x)
	case inst&0xF0FF == 0xF007:
		return fmt.Sprintf("LD     V%X, DT", x)
	case inst&0xF0FF == 0xF00A:
		return fmt.Sprintf("LD     V%X, K", x)
	case inst&0xF0FF == 0xF015:
		return fmt.Sprintf("LD     DT, V%X", x)
	case inst&0xF0FF == 0xF018:
		return fmt.Sprintf("LD     ST, V%X", x)
	case inst&0xF0FF == 0xF01E:
		return fmt.Sprintf("ADD    I, V%X", x)
	case inst&0xF0FF == 0xF029:
		return fmt.Sprintf("LD     F, V%X", x)
	case inst&0xF0FF == 0xF033:
		return fmt.Sprintf("LD     B, V%X", x)
	case inst&0xF0FF == 0xF055:
		return fmt.Sprintf("LD     [I], V%X", x)
	case inst&0xF0FF == 0xF065:
		return fmt.Sprintf("LD     V%X, [I]", x)
	}

	// not an instruction
	return fmt.Sprintf("DW     #%04X", inst)
}
