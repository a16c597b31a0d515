package main

import (
	"log"

	"github.com/massung/CHIP-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Screen is the render target the CHIP-8 video memory is drawn to.
	///
	Screen *sdl.Texture
)

/// InitScreen creates the render target for the CHIP-8 video memory.
///
func InitScreen() {
	var err error

	// one texel per video cell, whatever the resolution mode
	Screen, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.VideoWidth, chip8.VideoHeight)
	if err != nil {
		log.Fatal(err)
	}
}

/// ScreenSize is the size of the scaled screen in the window.
///
func ScreenSize() (int32, int32) {
	return chip8.VideoWidth * Scale, chip8.VideoHeight * Scale
}

/// RefreshScreen with the CHIP-8 video memory.
///
func RefreshScreen() {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		log.Fatal(err)
	}

	// the background color for the screen
	SetDrawColor(VM.Background)
	Renderer.Clear()

	// set the pixel color
	SetDrawColor(VM.Foreground)

	// only foreground cells need drawing
	for i, c := range VM.Pixels() {
		if c == VM.Foreground {
			x := int32(i % chip8.VideoWidth)
			y := int32(i / chip8.VideoWidth)

			Renderer.DrawPoint(x, y)
		}
	}

	// restore the render target
	Renderer.SetRenderTarget(nil)
}

/// CopyScreen to the window, stretched by Scale.
///
func CopyScreen(x, y int32) {
	w, h := ScreenSize()

	Renderer.Copy(Screen, nil, &sdl.Rect{X: x, Y: y, W: w, H: h})
}

/// SetDrawColor from an ARGB color.
///
func SetDrawColor(argb uint32) {
	Renderer.SetDrawColor(uint8(argb>>16), uint8(argb>>8), uint8(argb), uint8(argb>>24))
}
