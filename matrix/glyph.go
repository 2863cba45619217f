package matrix

import (
	"fmt"

	"github.com/flavioheleno/tm1640/font5x7"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// DrawCharacter copies the 5x7 glyph of ch into columns [column, column+5).
//
// Glyph rows 0-6 land on matrix rows 1-7; row 0 is left blank as a top margin.
// The glyph columns replace the whole column bytes, so anything previously
// drawn in those columns is erased.
//
// row and v are accepted for symmetry with the other primitives but are not
// used: glyphs are always drawn lit at the fixed vertical offset.
func (f *Framebuffer) DrawCharacter(column, row int, ch rune, v image1bit.Bit) error {
	g, ok := font5x7.Lookup(ch)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCharacter, ch)
	}
	if !checkSpan(column, font5x7.Width, Width) {
		return fmt.Errorf("%w: character at column %d", ErrOutOfRange, column)
	}
	for i, b := range g {
		f.Pix[column+i] = b << 1
	}
	return nil
}
