// Package theme holds the environment value table threaded through
// every pass: theme colors, standard metrics, and optional overrides
// loaded from mason.yaml.
package theme

import "github.com/go-mason/mason/pkg/graphics"

// Key names a value in the environment.
type Key string

// Standard keys.
const (
	// TextColor is the default foreground for text and strokes.
	TextColor Key = "text_color"
	// WindowBackgroundColor fills the window before widgets paint.
	WindowBackgroundColor Key = "window_background_color"
	// ButtonColor fills button backgrounds.
	ButtonColor Key = "button_color"
	// ButtonBorderColor strokes button outlines.
	ButtonBorderColor Key = "button_border_color"
	// ButtonBorderWidth is the button outline stroke width.
	ButtonBorderWidth Key = "button_border_width"
	// BasicWidgetHeight is the default square size for leaf widgets
	// laid out under unbounded constraints.
	BasicWidgetHeight Key = "basic_widget_height"
)

// Env is the environment passed to every widget method. Values are
// read-mostly; widgets never mutate the Env they receive.
type Env struct {
	values map[Key]any
}

// WithTheme returns an Env populated with the default theme.
func WithTheme() *Env {
	e := &Env{values: make(map[Key]any)}
	e.SetColor(TextColor, graphics.RGB(0xE0, 0xE0, 0xE0))
	e.SetColor(WindowBackgroundColor, graphics.RGB(0x29, 0x29, 0x29))
	e.SetColor(ButtonColor, graphics.RGB(0x40, 0x40, 0x48))
	e.SetColor(ButtonBorderColor, graphics.RGB(0x3A, 0x3A, 0x3A))
	e.SetFloat(ButtonBorderWidth, 2)
	e.SetFloat(BasicWidgetHeight, 24)
	return e
}

// Color returns the color stored under key, or transparent if unset.
func (e *Env) Color(key Key) graphics.Color {
	if c, ok := e.values[key].(graphics.Color); ok {
		return c
	}
	return graphics.Transparent
}

// Float returns the float stored under key, or 0 if unset.
func (e *Env) Float(key Key) float64 {
	if f, ok := e.values[key].(float64); ok {
		return f
	}
	return 0
}

// SetColor stores a color value.
func (e *Env) SetColor(key Key, c graphics.Color) {
	e.values[key] = c
}

// SetFloat stores a float value.
func (e *Env) SetFloat(key Key, f float64) {
	e.values[key] = f
}
