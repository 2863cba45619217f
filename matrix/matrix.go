// Package matrix provides the framebuffer and drawing primitives for a 16x8
// monochrome LED matrix.
//
// The framebuffer stores one byte per column. Bit r of column byte c is the
// pixel at column c, row r, with row 0 at the top. This is the layout of
// image1bit.VerticalLSB for an 8 pixel high image, so a Framebuffer is also a
// draw.Image and can be the destination of image/draw operations.
//
// All drawing primitives only mutate memory. Pushing the framebuffer to the
// hardware is the job of the display driver.
package matrix

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const (
	// Width is the number of columns of the matrix.
	Width = 16
	// Height is the number of rows of the matrix.
	Height = 8
)

var (
	// ErrOutOfRange is returned when a primitive would address a pixel outside
	// the matrix. The framebuffer is left untouched.
	ErrOutOfRange = errors.New("matrix: out of range")
	// ErrInvalidCharacter is returned when the font has no glyph for a character.
	ErrInvalidCharacter = errors.New("matrix: invalid character")
)

// Framebuffer is the in-memory state of the matrix.
type Framebuffer struct {
	*image1bit.VerticalLSB
}

// New returns a framebuffer with every pixel off.
func New() *Framebuffer {
	return &Framebuffer{VerticalLSB: image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height))}
}

// Bytes returns the column bytes backing the framebuffer. The slice aliases
// the framebuffer memory and always has Width elements.
func (f *Framebuffer) Bytes() []byte {
	return f.Pix[:Width]
}

// Column returns the byte of column c.
func (f *Framebuffer) Column(c int) (byte, error) {
	if !inColumns(c) {
		return 0, fmt.Errorf("%w: column %d", ErrOutOfRange, c)
	}
	return f.Pix[c], nil
}

// Fill sets every column byte to v. 0x00 turns every pixel off, 0xFF turns
// every pixel on.
func (f *Framebuffer) Fill(v byte) {
	for i := range f.Bytes() {
		f.Pix[i] = v
	}
}

// Invert flips every pixel.
func (f *Framebuffer) Invert() {
	for i := range f.Bytes() {
		f.Pix[i] ^= 0xFF
	}
}

// String renders the framebuffer as Height lines of '#' (on) and '.' (off).
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for r := 0; r < Height; r++ {
		for c := 0; c < Width; c++ {
			if f.Pix[c]&(1<<uint(r)) != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func inColumns(c int) bool {
	return c >= 0 && c < Width
}

func inRows(r int) bool {
	return r >= 0 && r < Height
}

func checkPoint(c, r int) error {
	if !inColumns(c) || !inRows(r) {
		return fmt.Errorf("%w: point (%d, %d)", ErrOutOfRange, c, r)
	}
	return nil
}

// checkSpan validates a run of length pixels starting at start on an axis of
// size n. A zero length run is valid as long as start is on the axis.
func checkSpan(start, length, n int) bool {
	return start >= 0 && start < n && length >= 0 && start+length <= n
}

func bit(v image1bit.Bit) byte {
	if v {
		return 1
	}
	return 0
}
