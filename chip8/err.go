package chip8

import (
	"errors"
	"fmt"
)

var (
	// Fatal instruction errors, wrapped by IllegalInstruction.
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")

	// Load errors.
	ErrProgramTooLarge = errors.New("program too large")
)

/// IllegalInstruction is returned by Step when the byte pair at the
/// program counter cannot be executed. The run should not continue.
///
type IllegalInstruction struct {
	/// Address of the failing instruction.
	///
	Address uint

	/// Opcode and Argument are the raw bytes fetched.
	///
	Opcode, Argument byte

	/// Err is one of ErrUnknownOpcode, ErrStackOverflow or ErrStackUnderflow.
	///
	Err error
}

func (e *IllegalInstruction) Error() string {
	return fmt.Sprintf("illegal instruction %02X%02X at %04X: %v", e.Opcode, e.Argument, e.Address, e.Err)
}

func (e *IllegalInstruction) Unwrap() error {
	return e.Err
}

/// Breakpoint is returned by Process when the program counter lands on
/// an address with a breakpoint set.
///
type Breakpoint struct {
	Address uint

	/// Once breakpoints are removed after they are hit.
	///
	Once bool
}

func (b *Breakpoint) Error() string {
	return fmt.Sprintf("breakpoint at %04X", b.Address)
}
