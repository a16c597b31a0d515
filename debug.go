package main

import (
	"fmt"
	"log"

	"github.com/veandco/go-sdl2/sdl"
)

/// Number of log lines shown in the debug panel.
///
const LogLines = 16

var (
	/// True if pausing emulation (single stepping).
	///
	Paused bool

	/// Current debug window address.
	///
	Address uint
)

/// Show the HELP text in the log.
///
func DebugHelp() {
	for _, line := range []string{
		"Virtual keys:",
		"  1-2-3-4",
		"  Q-W-E-R",
		"  A-S-D-F",
		"  Z-X-C-V",
		"",
		"Emulation keys:",
		"  ESC      - Quit",
		"  BS       - Reset (+CTRL paused)",
		"  Up/Dn    - Scroll log",
		"  F1       - Help",
		"  F2       - Reload ROM",
		"  F3       - Open ROM",
		"  [ / ]    - Speed down/up",
		"  F5/SPACE - Pause",
		"  F6/F10   - Step",
		"  F7/F11   - Step over",
		"  F9       - Breakpoint",
	} {
		Log.Log(line)
	}
}

/// DebugSpeed logs the emulation speed.
///
func DebugSpeed() {
	log.Printf("speed %d instructions/s", VM.Speed)
}

/// DebugBreakpoints logs all the breakpoints set.
///
func DebugBreakpoints() {
	if len(VM.Breakpoints) == 0 {
		log.Print("no breakpoints")
	}

	for _, b := range VM.Breakpoints {
		log.Printf("breakpoint at %04X", b.Address)
	}
}

/// DebugAssembly renders the disassembled instructions around
/// the CHIP-8 program counter.
///
func DebugAssembly(x, y int32) {
	if Address+30 <= VM.PC || Address+2 >= VM.PC || (Address^VM.PC)&1 == 1 {
		Address = (VM.PC - 2) & 0xFFF
	}

	// show the disassembled instructions
	for i := uint(0); i < 32; i += 2 {
		line := y + int32(i)*5

		if Address+i == VM.PC {
			if Paused {
				Renderer.SetDrawColor(176, 32, 57, 255)
			} else {
				Renderer.SetDrawColor(57, 102, 176, 255)
			}

			// highlight the current instruction
			Renderer.FillRect(&sdl.Rect{
				X: x,
				Y: line - 1,
				W: 200,
				H: 10,
			})
		}

		DrawText(VM.Disassemble(Address+i), x, line)
	}
}

/// Show the current value of all the CHIP-8 registers.
///
func DebugRegisters(x, y int32) {
	for i := int32(0); i < 16; i++ {
		DrawText(fmt.Sprintf("  V%X - #%02X", i, VM.V[i]), x, y+i*10)
	}

	// shift over for the other registers
	x += 72

	DrawText(fmt.Sprintf("PC - #%04X", VM.PC), x, y)
	DrawText(fmt.Sprintf("SP - #%02X", VM.Stack.SP), x, y+10)
	DrawText(fmt.Sprintf("I  - #%04X", VM.I), x, y+30)
	DrawText(fmt.Sprintf("DT - #%02X", VM.DT.Read(VM.Now())), x, y+50)

	if VM.HighRes {
		DrawText("HIGH", x, y+70)
	} else {
		DrawText("LOW", x, y+70)
	}

	if VM.Waiting {
		DrawText("KEY?", x, y+80)
	}
}

/// Show the current log text.
///
func DebugLog(x, y int32) {
	for _, line := range Log.Window(LogLines) {
		if len(line) >= 45 {
			DrawText(line[:42]+"...", x, y)
		} else {
			DrawText(line, x, y)
		}

		// advance to the next line
		y += 10
	}
}
