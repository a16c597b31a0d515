package chip8

/// IO is implemented by whatever hosts the CHIP-8. The virtual machine
/// polls it synchronously from the key and sound instructions and
/// never holds on to anything it returns.
///
type IO interface {
	/// TestKey returns true if the hex key (0-F) is held down.
	///
	TestKey(key int) bool

	/// PlayBeep is called once per sound timer write.
	///
	PlayBeep()
}

/// Keypad is a simple IO that tracks the 16 hex keys and forwards beeps
/// to an optional callback.
///
type Keypad struct {
	Keys [16]bool

	/// Beep is called by PlayBeep when not nil.
	///
	Beep func()
}

/// Press a key. Keys outside 0-F are ignored.
///
func (k *Keypad) Press(key uint) {
	if key < 16 {
		k.Keys[key] = true
	}
}

/// Release a key. Keys outside 0-F are ignored.
///
func (k *Keypad) Release(key uint) {
	if key < 16 {
		k.Keys[key] = false
	}
}

/// TestKey implements IO.
///
func (k *Keypad) TestKey(key int) bool {
	return key >= 0 && key < 16 && k.Keys[key]
}

/// PlayBeep implements IO.
///
func (k *Keypad) PlayBeep() {
	if k.Beep != nil {
		k.Beep()
	}
}
