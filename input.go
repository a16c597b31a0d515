package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// ProcessEvents from SDL and map keys to the CHIP-8 keypad. Returns
/// false when the user quits.
///
func ProcessEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			key, ok := KeyMap[ev.Keysym.Scancode]

			switch {
			case ok && ev.Type == sdl.KEYDOWN:
				Keys.Press(key)
			case ok && ev.Type == sdl.KEYUP:
				Keys.Release(key)
			case ev.Type == sdl.KEYDOWN:
				if !EmulationKey(ev.Keysym.Scancode, CtrlDown()) {
					return false
				}
			}
		}
	}

	return true
}

/// EmulationKey handles keys that control the emulator instead of the
/// CHIP-8. Returns false if the key quits.
///
func EmulationKey(scancode sdl.Scancode, ctrl bool) bool {
	switch scancode {
	case sdl.SCANCODE_ESCAPE:
		return false
	case sdl.SCANCODE_BACKSPACE:
		VM.Reset()

		// holding control during reset will reboot paused
		if ctrl {
			Paused = true
		}
	case sdl.SCANCODE_UP, sdl.SCANCODE_PAGEUP:
		Log.ScrollUp()
	case sdl.SCANCODE_DOWN, sdl.SCANCODE_PAGEDOWN:
		Log.ScrollDown(LogLines)
	case sdl.SCANCODE_HOME:
		Log.Home()
	case sdl.SCANCODE_END:
		Log.End()
	case sdl.SCANCODE_F1, sdl.SCANCODE_H:
		DebugHelp()
	case sdl.SCANCODE_F2:
		Load()
	case sdl.SCANCODE_F3:
		LoadDialog()
	case sdl.SCANCODE_LEFTBRACKET:
		VM.DecSpeed()
		DebugSpeed()
	case sdl.SCANCODE_RIGHTBRACKET:
		VM.IncSpeed()
		DebugSpeed()
	case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
		Paused = !Paused
	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		if Paused {
			Run(VM.Step())
		}
	case sdl.SCANCODE_F7, sdl.SCANCODE_F11:
		if Paused {
			if VM.SetOverBreakpoint() {
				Paused = false
			} else {
				Run(VM.Step())
			}
		}
	case sdl.SCANCODE_F9:
		VM.ToggleBreakpoint(VM.PC)
		DebugBreakpoints()
	}

	return true
}

/// CtrlDown is true while either control key is held.
///
func CtrlDown() bool {
	state := sdl.GetKeyboardState()

	return state[sdl.SCANCODE_LCTRL] != 0 || state[sdl.SCANCODE_RCTRL] != 0
}
