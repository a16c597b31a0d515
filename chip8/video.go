package chip8

/// Size of the video backing grid. It always holds a full 128x64 high-res
/// frame; in low-res mode every pixel is a 2x2 block of cells.
///
const (
	VideoWidth  = 128
	VideoHeight = 64
)

/// Default pixel colors (ARGB).
///
const (
	DefaultForeground uint32 = 0xFFFFFFFF
	DefaultBackground uint32 = 0xFF000000
)

/// GetResolution returns the width and height of the active mode.
///
func (vm *CHIP_8) GetResolution() (uint, uint) {
	if vm.HighRes {
		return 128, 64
	}

	return 64, 32
}

/// scale is the number of cells per pixel edge in the active mode.
///
func (vm *CHIP_8) scale() uint {
	if vm.HighRes {
		return 1
	}

	return 2
}

/// Pixels returns the backing grid, row major, 128 cells per row. Every
/// cell is either the foreground or background color.
///
func (vm *CHIP_8) Pixels() []uint32 {
	return vm.Video[:]
}

/// SetColors changes the foreground and background colors, repainting
/// every cell already drawn.
///
func (vm *CHIP_8) SetColors(fg, bg uint32) {
	for i, c := range vm.Video {
		if c == vm.Foreground {
			vm.Video[i] = fg
		} else {
			vm.Video[i] = bg
		}
	}

	vm.Foreground = fg
	vm.Background = bg
}

/// Clear fills the video memory with the background color.
///
func (vm *CHIP_8) Clear() {
	for i := range vm.Video {
		vm.Video[i] = vm.Background
	}
}

/// ScrollDown moves the display down n pixel rows of the active mode.
/// Rows pushed off the bottom are lost and the top is cleared.
///
func (vm *CHIP_8) ScrollDown(n uint) {
	rows := n * vm.scale()
	if rows > VideoHeight {
		rows = VideoHeight
	}

	// shift the remaining scan lines down (copy handles the overlap)
	copy(vm.Video[rows*VideoWidth:], vm.Video[:(VideoHeight-rows)*VideoWidth])

	// blank the vacated scan lines
	for i := uint(0); i < rows*VideoWidth; i++ {
		vm.Video[i] = vm.Background
	}
}

/// DrawSprite XORs an 8-pixel wide, n row sprite at I onto the display
/// at x, y. Pixels wrap around the edges of the active mode. VF is set
/// if any foreground pixel was erased.
///
func (vm *CHIP_8) DrawSprite(x, y, n uint) {
	w, h := vm.GetResolution()
	s := vm.scale()

	collision := false

	for row := uint(0); row < n; row++ {
		bits := vm.Memory[(vm.I+row)&0xFFF]

		// wrapped scan line
		py := (y + row) % h

		for bit := uint(0); bit < 8; bit++ {
			if bits&(0x80>>bit) == 0 {
				continue
			}

			px := (x + bit) % w

			if vm.toggle(px*s, py*s, s) {
				collision = true
			}
		}
	}

	if collision {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}
}

/// toggle flips an s x s block of cells with its top-left corner at
/// cx, cy. Returns true if the block was on.
///
func (vm *CHIP_8) toggle(cx, cy, s uint) bool {
	on := vm.Video[cy*VideoWidth+cx] == vm.Foreground

	c := vm.Foreground
	if on {
		c = vm.Background
	}

	for dy := uint(0); dy < s; dy++ {
		for dx := uint(0); dx < s; dx++ {
			vm.Video[(cy+dy)*VideoWidth+cx+dx] = c
		}
	}

	return on
}
