package petscii

// Color control bytes mapped to the C64 palette order: black, white, red,
// cyan, purple, green, blue, yellow, orange, brown, light red, dark gray,
// gray, light green, light blue, light gray.
var colorCodes = map[byte]uint8{
	0x05: 1,  // white
	0x1C: 2,  // red
	0x1E: 5,  // green
	0x1F: 6,  // blue
	0x81: 8,  // orange
	0x90: 0,  // black
	0x95: 9,  // brown
	0x96: 10, // light red
	0x97: 11, // dark gray
	0x98: 12, // gray
	0x99: 13, // light green
	0x9A: 14, // light blue
	0x9B: 15, // light gray
	0x9C: 4,  // purple
	0x9E: 7,  // yellow
	0x9F: 3,  // cyan
}

var colorControls = func() map[uint8]byte {
	m := make(map[uint8]byte, len(colorCodes))
	for ctrl, idx := range colorCodes {
		m[idx] = ctrl
	}
	return m
}()

// ColorControl returns the control byte that selects palette index idx.
func ColorControl(idx uint8) (byte, bool) {
	b, ok := colorControls[idx]
	return b, ok
}

// ToScreenCode remaps a printable PETSCII byte to its screen code, the
// glyph index cells store. Returns false for bytes that are not printable.
func ToScreenCode(b byte) (byte, bool) {
	switch {
	case b >= 0x20 && b <= 0x3F:
		return b, true
	case b >= 0x40 && b <= 0x5F:
		return b - 0x40, true
	case b >= 0x60 && b <= 0x7F:
		return b - 0x20, true
	case b >= 0xA0 && b <= 0xBF:
		return b - 0x40, true
	case b >= 0xC0 && b <= 0xFE:
		return b - 0x80, true
	case b == 0xFF:
		return 0x5E, true // pi
	}
	return 0, false
}

// FromScreenCode is the canonical inverse of ToScreenCode. Where several
// PETSCII bytes map to one screen code it picks the lowest-range one.
func FromScreenCode(code byte) byte {
	switch {
	case code < 0x20:
		return code + 0x40
	case code < 0x40:
		return code
	case code < 0x60:
		return code + 0x20
	default:
		return code + 0x40
	}
}
