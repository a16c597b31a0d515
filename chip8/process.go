package chip8

import "time"

/// Instructions per second. The RCA 1802 ran at 4-5 MHz, and each
/// instruction took 16-24 clock cycles. Best estimations are the 1802
/// could interpret 500 CHIP-8 instructions per second.
///
const (
	DefaultSpeed = 500
	MinSpeed     = 60
	MaxSpeed     = 5000
)

/// Process CHIP-8 emulation. This will execute until the clock is caught
/// up, a breakpoint is hit (*Breakpoint) or an illegal instruction is
/// executed (*IllegalInstruction).
///
func (vm *CHIP_8) Process(paused bool) error {
	count := vm.due()

	// if paused, count cycles without stepping
	if paused {
		vm.Cycles = count
		return nil
	}

	for vm.Cycles < count {
		if err := vm.Step(); err != nil {
			return err
		}

		// if waiting for a key, catch up
		if vm.Waiting {
			vm.Cycles = count
			break
		}

		if b := vm.hitBreakpoint(vm.PC); b != nil {
			vm.Cycles = count
			return b
		}
	}

	return nil
}

/// due is how many cycles should have executed by now.
///
func (vm *CHIP_8) due() int64 {
	return (vm.Now() - vm.Clock) * vm.Speed / int64(time.Second)
}

/// IncSpeed doubles the emulation speed.
///
func (vm *CHIP_8) IncSpeed() {
	vm.SetSpeed(vm.Speed * 2)
}

/// DecSpeed halves the emulation speed.
///
func (vm *CHIP_8) DecSpeed() {
	vm.SetSpeed(vm.Speed / 2)
}

/// SetSpeed clamps and sets the instructions per second. The clock is
/// rebased so the cycles already executed are not made up again.
///
func (vm *CHIP_8) SetSpeed(speed int64) {
	if speed < MinSpeed {
		speed = MinSpeed
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}

	vm.Speed = speed
	vm.Clock = vm.Now() - vm.Cycles*int64(time.Second)/speed
}

/// ToggleBreakpoint adds or removes a breakpoint at an address.
///
func (vm *CHIP_8) ToggleBreakpoint(address uint) {
	for i, b := range vm.Breakpoints {
		if b.Address == address {
			vm.Breakpoints = append(vm.Breakpoints[:i], vm.Breakpoints[i+1:]...)
			return
		}
	}

	vm.Breakpoints = append(vm.Breakpoints, Breakpoint{Address: address})
}

/// SetOverBreakpoint sets a one-time breakpoint after the CALL at the
/// program counter so it can be stepped over. Returns false if the
/// instruction at the program counter isn't a CALL.
///
func (vm *CHIP_8) SetOverBreakpoint() bool {
	if vm.Memory[vm.PC&0xFFF]&0xF0 != 0x20 {
		return false
	}

	vm.Breakpoints = append(vm.Breakpoints, Breakpoint{
		Address: (vm.PC + 2) & 0xFFF,
		Once:    true,
	})

	return true
}

/// hitBreakpoint returns the breakpoint at address, if any, removing it
/// when it is a one-time breakpoint.
///
func (vm *CHIP_8) hitBreakpoint(address uint) *Breakpoint {
	for i, b := range vm.Breakpoints {
		if b.Address == address {
			if b.Once {
				vm.Breakpoints = append(vm.Breakpoints[:i], vm.Breakpoints[i+1:]...)
			}

			return &b
		}
	}

	return nil
}
