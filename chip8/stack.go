package chip8

/// Maximum number of nested subroutine calls.
///
const StackLimit = 16

/// Stack holds return addresses for CALL/RET. SP is the number of
/// addresses pushed and is always in [0, StackLimit].
///
type Stack struct {
	Data [StackLimit]uint16
	SP   uint
}

/// Push a return address. Returns false if the stack is full.
///
func (s *Stack) Push(address uint) bool {
	if s.Full() {
		return false
	}

	s.Data[s.SP] = uint16(address)
	s.SP++

	return true
}

/// Pop the last return address. Returns false if the stack is empty.
///
func (s *Stack) Pop() (uint, bool) {
	if s.Empty() {
		return 0, false
	}

	s.SP--

	return uint(s.Data[s.SP]), true
}

func (s *Stack) Empty() bool {
	return s.SP == 0
}

func (s *Stack) Full() bool {
	return s.SP == StackLimit
}

func (s *Stack) Reset() {
	s.SP = 0
}
