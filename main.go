package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/massung/CHIP-8/chip8"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// The CHIP-8 virtual machine.
	///
	VM *chip8.CHIP_8

	/// Keys is the CHIP-8 keypad, driven by SDL keyboard events.
	///
	Keys = &chip8.Keypad{}

	/// File is the ROM currently loaded.
	///
	File string

	/// Scale is the number of window pixels per video cell.
	///
	Scale int32 = 4

	/// The SDL Window and Renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var speed int64
	var fg, bg string

	flag.StringVar(&File, "rom", "", "CHIP-8 ROM to load (asks if not given)")
	flag.Int64Var(&speed, "speed", chip8.DefaultSpeed, "Instructions per second")
	flag.Var(scaleFlag{&Scale}, "scale", "Window pixels per video cell")
	flag.StringVar(&fg, "fg", "111D2B", "Foreground color (RRGGBB)")
	flag.StringVar(&bg, "bg", "8F9185", "Background color (RRGGBB)")
	flag.BoolVar(&Paused, "paused", false, "Start paused")

	flag.Parse()

	// log to stderr and the debug panel
	log.SetFlags(0)
	log.SetPrefix("chip8: ")
	log.SetOutput(io.MultiWriter(os.Stderr, Log))

	if flag.NArg() != 0 {
		log.Fatalf("unknown arguments: %v", flag.Args())
	}

	foreground, err := ParseColor(fg)
	if err != nil {
		log.Fatalf("-fg: %v", err)
	}

	background, err := ParseColor(bg)
	if err != nil {
		log.Fatalf("-bg: %v", err)
	}

	// create a new CHIP-8 virtual machine
	VM = chip8.New(Keys)
	VM.SetColors(foreground, background)
	VM.SetSpeed(speed)

	// initialize SDL
	if err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		log.Fatal(err)
	}
	defer sdl.Quit()

	// create the main window and renderer
	w, h := WindowSize()
	if Window, Renderer, err = sdl.CreateWindowAndRenderer(w, h, uint32(sdl.WINDOW_OPENGL)); err != nil {
		log.Fatal(err)
	}

	// set the icon
	if icon, err := sdl.LoadBMP("data/chip_8.bmp"); err == nil {
		mask := sdl.MapRGB(icon.Format, 255, 0, 255)

		// create the mask color key and set the icon
		icon.SetColorKey(true, mask)
		Window.SetIcon(icon)
	}

	// set the title
	Window.SetTitle("CHIP-8")

	// initialize subsystems
	InitScreen()
	InitAudio()
	InitFont()

	if File == "" {
		LoadDialog()
	} else {
		Load()
	}

	// refresh rate
	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	// loop until window closed or user quit
	for ProcessEvents() {
		<-video.C

		Run(VM.Process(Paused))
		Refresh()
	}
}

/// Run handles the result of executing instructions.
///
func Run(err error) {
	var b *chip8.Breakpoint
	var illegal *chip8.IllegalInstruction

	switch {
	case err == nil:
	case errors.As(err, &b):
		Paused = true
		log.Printf("%v", b)
	case errors.As(err, &illegal):
		Paused = true
		log.Printf("%v", illegal)
		log.Printf("%s", VM.Disassemble(illegal.Address))

		dialog.Message("%s", illegal.Error()).Title("CHIP-8").Error()
	default:
		Paused = true
		log.Print(err)
	}
}

/// Load (or reload) the current ROM file.
///
func Load() {
	program, err := os.ReadFile(File)
	if err != nil {
		log.Print(err)
		return
	}

	if err = VM.Load(program); err != nil {
		log.Printf("%s: %v", File, err)
		return
	}

	Window.SetTitle(fmt.Sprintf("CHIP-8 - %s", File))

	log.Printf("loaded %s (%d bytes)", File, len(program))
}

/// LoadDialog asks for a ROM file and loads it.
///
func LoadDialog() {
	file, err := dialog.File().Title("Load ROM").Filter("CHIP-8 ROMs", "ch8", "c8", "sc8").Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			log.Print(err)
		}
		return
	}

	File = file
	Load()
}

/// ParseColor converts an RRGGBB hex string to an opaque ARGB color.
///
func ParseColor(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "#")

	if len(s) != 6 {
		return 0, fmt.Errorf("color %q is not RRGGBB", s)
	}

	rgb, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q is not RRGGBB", s)
	}

	return 0xFF000000 | uint32(rgb), nil
}

/// scaleFlag parses -scale, keeping it in [1, 16].
///
type scaleFlag struct {
	scale *int32
}

func (f scaleFlag) String() string {
	if f.scale == nil {
		return "4"
	}
	return strconv.Itoa(int(*f.scale))
}

func (f scaleFlag) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 16 {
		return fmt.Errorf("scale must be 1-16")
	}

	*f.scale = int32(n)

	return nil
}

/// WindowSize returns the size of the window for the video scale.
///
func WindowSize() (int32, int32) {
	sw, sh := ScreenSize()

	return sw + 232, sh + 188
}

/// Refresh redraws the whole window.
///
func Refresh() {
	Renderer.SetDrawColor(32, 42, 53, 255)
	Renderer.Clear()

	sw, sh := ScreenSize()

	// frame various portions of the app
	Frame(8, 8, sw+4, sh+4)
	Frame(sw+20, 8, 204, sh+4)
	Frame(8, sh+20, 146, 164)
	Frame(162, sh+20, sw+62, 164)

	// update the video screen and copy it
	RefreshScreen()
	CopyScreen(10, 10)

	// debug assembly, virtual registers and log
	DebugAssembly(sw+24, 12)
	DebugRegisters(12, sh+24)
	DebugLog(166, sh+24)

	// show the new frame
	Renderer.Present()
}

func Frame(x, y, w, h int32) {
	Renderer.SetDrawColor(0, 0, 0, 255)
	Renderer.DrawLine(x, y, x+w, y)
	Renderer.DrawLine(x, y, x, y+h)

	// highlight
	Renderer.SetDrawColor(95, 112, 120, 255)
	Renderer.DrawLine(x+w, y, x+w, y+h)
	Renderer.DrawLine(x, y+h, x+w, y+h)
}
