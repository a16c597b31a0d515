package chip8

/// Hex digit glyphs 0-F, 5 rows each. Only the low nibble of each row is
/// declared; it is shifted into the high nibble when written to memory.
///
var fontGlyphs = [80]byte{
	0xF, 0x9, 0x9, 0x9, 0xF, // 0
	0x2, 0x6, 0x2, 0x2, 0x7, // 1
	0xF, 0x1, 0xF, 0x8, 0xF, // 2
	0xF, 0x1, 0xF, 0x1, 0xF, // 3
	0x9, 0x9, 0xF, 0x1, 0x1, // 4
	0xF, 0x8, 0xF, 0x1, 0xF, // 5
	0xF, 0x8, 0xF, 0x9, 0xF, // 6
	0xF, 0x1, 0x2, 0x4, 0x4, // 7
	0xF, 0x9, 0xF, 0x9, 0xF, // 8
	0xF, 0x9, 0xF, 0x1, 0xF, // 9
	0xF, 0x9, 0xF, 0x9, 0x9, // A
	0xE, 0x9, 0xE, 0x9, 0xE, // B
	0xF, 0x8, 0x8, 0x8, 0xF, // C
	0xE, 0x9, 0x9, 0x9, 0xE, // D
	0xF, 0x8, 0xF, 0x8, 0xF, // E
	0xF, 0x8, 0xF, 0x8, 0x8, // F
}

/// Size in bytes of a single font glyph.
///
const GlyphSize = 5

/// writeFont copies the glyphs to the base of memory.
///
func (vm *CHIP_8) writeFont() {
	for i, row := range fontGlyphs {
		vm.Memory[i] = row << 4
	}
}
