package main

import (
	"log"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Texture containing a predefined font for debugging, etc. Nil if
	/// the font bitmap couldn't be loaded, in which case no text is drawn.
	///
	Font *sdl.Texture
)

/// InitFont loads the bitmap surface with font on it.
///
func InitFont() {
	surface, err := sdl.LoadBMP("data/font.bmp")
	if err != nil {
		log.Printf("no debug font: %v", err)
		return
	}
	defer surface.Free()

	// get the magenta color
	mask := sdl.MapRGB(surface.Format, 255, 0, 255)

	// set the mask color key
	surface.SetColorKey(true, mask)

	// create the texture
	if Font, err = Renderer.CreateTextureFromSurface(surface); err != nil {
		log.Printf("no debug font: %v", err)
	}
}

/// DrawText using the loaded font. The font only has upper case glyphs.
///
func DrawText(s string, x, y int32) {
	if Font == nil {
		return
	}

	src := sdl.Rect{W: 5, H: 7}
	dst := sdl.Rect{
		X: x,
		Y: y,
		W: 5,
		H: 7,
	}

	// loop over all the characters in the string
	for _, c := range strings.ToUpper(s) {
		if c > 32 && c < 94 {
			src.X = (c - 33) * 6

			// draw the character to the renderer
			Renderer.Copy(Font, &src, &dst)
		}

		// advance
		dst.X += 7
	}
}
