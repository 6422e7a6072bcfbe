package color

import "fmt"

// RGB is a single 24-bit color value.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// From63 converts a 6-bit DAC component (0..63) to its 8-bit value.
func From63(v uint8) uint8 {
	return v<<2 | v>>4
}

// To63 converts an 8-bit component down to the 6-bit DAC range.
func To63(v uint8) uint8 {
	return v >> 2
}
