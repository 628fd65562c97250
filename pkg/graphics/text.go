package graphics

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// MeasureText returns the box a single line of text occupies when drawn
// with the built-in face. The origin passed to DrawText is the top-left
// corner of this box.
func MeasureText(text string) Size {
	face := basicfont.Face7x13
	advance := font.MeasureString(face, text)
	return Size{
		Width:  float64(advance.Ceil()),
		Height: float64(face.Height),
	}
}
