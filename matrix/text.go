package matrix

import (
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var _ drivers.Displayer = (*Framebuffer)(nil)

var (
	colorOn  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorOff = color.RGBA{A: 0xff}
)

// Size returns the matrix dimensions.
func (f *Framebuffer) Size() (x, y int16) {
	return Width, Height
}

// SetPixel sets the pixel at (x, y) from c. Pixels outside the matrix are
// ignored so fonts and sprites are clipped at the edges.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if !inColumns(int(x)) || !inRows(int(y)) {
		return
	}
	f.point(int(x), int(y), image1bit.BitModel.Convert(c).(image1bit.Bit))
}

// Display is a no-op; the framebuffer is pushed by the display driver.
func (f *Framebuffer) Display() error {
	return nil
}

// DrawText renders s with a tinyfont font. baseline is the row the glyphs sit
// on. Text is clipped at the matrix edges rather than rejected, which allows
// scrolling text in from either side. It returns the width of s in pixels.
func (f *Framebuffer) DrawText(font tinyfont.Fonter, column, baseline int, s string, v image1bit.Bit) int {
	c := colorOff
	if v {
		c = colorOn
	}
	tinyfont.WriteLine(f, font, int16(column), int16(baseline), s, c)
	_, w := tinyfont.LineWidth(font, s)
	return int(w)
}
