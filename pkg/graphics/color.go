package graphics

// maxByte is the maximum value of a byte, used for color normalization.
const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA constructs a Color from red, green, blue bytes and alpha (0-1).
func RGBA(r, g, b uint8, a float64) Color {
	return Color(uint32(alpha01ToByte(a))<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGBA8 constructs a Color from red, green, blue, alpha bytes (all 0-255).
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// RGBAF returns normalized color components (0.0 to 1.0).
func (c Color) RGBAF() (r, g, b, a float64) {
	return float64(uint8(c>>16)) / maxByte,
		float64(uint8(c>>8)) / maxByte,
		float64(uint8(c)) / maxByte,
		float64(uint8(c>>24)) / maxByte
}

// Bytes returns the raw color components.
func (c Color) Bytes() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// Alpha returns the alpha component normalized to 0-1.
func (c Color) Alpha() float64 {
	return float64(uint8(c>>24)) / maxByte
}

// WithAlpha returns the color with its alpha replaced (0-1).
func (c Color) WithAlpha(a float64) Color {
	return Color(uint32(alpha01ToByte(a))<<24 | uint32(c)&0x00FFFFFF)
}

// Darken returns the color scaled toward black, alpha unchanged.
func (c Color) Darken() Color {
	r, g, b, a := c.Bytes()
	scale := func(v uint8) uint8 { return uint8(float64(v) * 0.8) }
	return RGBA8(scale(r), scale(g), scale(b), a)
}

// Lighten returns the color moved toward white, alpha unchanged.
func (c Color) Lighten() Color {
	r, g, b, a := c.Bytes()
	lift := func(v uint8) uint8 { return v + uint8(0.15*float64(maxByte-float64(v))) }
	return RGBA8(lift(r), lift(g), lift(b), a)
}

func alpha01ToByte(a float64) uint8 {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 0xFF
	}
	return uint8(a*maxByte + 0.5)
}

// Common colors.
const (
	Transparent Color = 0x00000000
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
	Purple      Color = 0xFF800080
)
