package matrix

import (
	"fmt"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// DrawPoint sets the pixel at (column, row) to v.
func (f *Framebuffer) DrawPoint(column, row int, v image1bit.Bit) error {
	if err := checkPoint(column, row); err != nil {
		return err
	}
	f.point(column, row, v)
	return nil
}

func (f *Framebuffer) point(c, r int, v image1bit.Bit) {
	f.Pix[c] = f.Pix[c]&^(1<<uint(r)) | bit(v)<<uint(r)
}

// DrawLine draws a line from (c0, r0) to (c1, r1), both ends included, with
// Bresenham's algorithm.
func (f *Framebuffer) DrawLine(c0, r0, c1, r1 int, v image1bit.Bit) error {
	if err := checkPoint(c0, r0); err != nil {
		return err
	}
	if err := checkPoint(c1, r1); err != nil {
		return err
	}
	f.line(c0, r0, c1, r1, v)
	return nil
}

func (f *Framebuffer) line(c0, r0, c1, r1 int, v image1bit.Bit) {
	dc, dr := abs(c1-c0), abs(r1-r0)
	sc, sr := -1, -1
	if c0 < c1 {
		sc = 1
	}
	if r0 < r1 {
		sr = 1
	}

	e := -dr / 2
	if dc > dr {
		e = dc / 2
	}

	for {
		f.point(c0, r0, v)
		if c0 == c1 && r0 == r1 {
			return
		}
		// Both tests use the error from the start of the step.
		e2 := e
		if e2 > -dc {
			e -= dr
			c0 += sc
		}
		if e2 < dr {
			e += dc
			r0 += sr
		}
	}
}

// DrawLineH draws length pixels on row, starting at column and going right.
func (f *Framebuffer) DrawLineH(column, row, length int, v image1bit.Bit) error {
	if !inRows(row) || !checkSpan(column, length, Width) {
		return fmt.Errorf("%w: horizontal line at (%d, %d) length %d", ErrOutOfRange, column, row, length)
	}
	f.lineH(column, row, length, v)
	return nil
}

func (f *Framebuffer) lineH(c, r, length int, v image1bit.Bit) {
	for i := c; i < c+length; i++ {
		f.point(i, r, v)
	}
}

// DrawLineV draws length pixels in column, starting at row and going down.
// The run is applied to the column byte as a single mask.
func (f *Framebuffer) DrawLineV(column, row, length int, v image1bit.Bit) error {
	if !inColumns(column) || !checkSpan(row, length, Height) {
		return fmt.Errorf("%w: vertical line at (%d, %d) length %d", ErrOutOfRange, column, row, length)
	}
	f.lineV(column, row, length, v)
	return nil
}

func (f *Framebuffer) lineV(c, r, length int, v image1bit.Bit) {
	mask := byte((1<<uint(length))-1) << uint(r)
	if v {
		f.Pix[c] |= mask
	} else {
		f.Pix[c] &^= mask
	}
}

func checkRect(column, row, width, height int) error {
	if width < 1 || height < 1 || !checkSpan(column, width, Width) || !checkSpan(row, height, Height) {
		return fmt.Errorf("%w: rectangle at (%d, %d) size %dx%d", ErrOutOfRange, column, row, width, height)
	}
	return nil
}

// DrawRectangle draws the outline of a width x height rectangle whose top left
// corner is (column, row).
//
// The arguments are in (column, row) order like every other primitive. The
// NodeBots driver this package replaces took (row, column) for this one call
// only.
func (f *Framebuffer) DrawRectangle(column, row, width, height int, v image1bit.Bit) error {
	if err := checkRect(column, row, width, height); err != nil {
		return err
	}
	f.lineH(column, row, width, v)
	f.lineH(column, row+height-1, width, v)
	f.lineV(column, row, height, v)
	f.lineV(column+width-1, row, height, v)
	return nil
}

// FillRectangle sets every pixel of a width x height rectangle whose top left
// corner is (column, row).
func (f *Framebuffer) FillRectangle(column, row, width, height int, v image1bit.Bit) error {
	if err := checkRect(column, row, width, height); err != nil {
		return err
	}
	for i := 0; i < width; i++ {
		f.lineV(column+i, row, height, v)
	}
	return nil
}

func checkCircle(column, row, radius int) error {
	if radius < 0 || column-radius < 0 || column+radius >= Width || row-radius < 0 || row+radius >= Height {
		return fmt.Errorf("%w: circle at (%d, %d) radius %d", ErrOutOfRange, column, row, radius)
	}
	return nil
}

// DrawCircle draws the outline of a circle centered on (column, row) with the
// midpoint circle algorithm. The whole circle must fit in the matrix.
func (f *Framebuffer) DrawCircle(column, row, radius int, v image1bit.Bit) error {
	if err := checkCircle(column, row, radius); err != nil {
		return err
	}
	x, y, e := radius, 0, 1-radius
	for x >= y {
		f.point(column-y, row-x, v)
		f.point(column+y, row-x, v)
		f.point(column-x, row-y, v)
		f.point(column+x, row-y, v)
		f.point(column-x, row+y, v)
		f.point(column+x, row+y, v)
		f.point(column-y, row+x, v)
		f.point(column+y, row+x, v)
		x, y, e = circleStep(x, y, e)
	}
	return nil
}

// FillCircle sets every pixel of the disk centered on (column, row). It walks
// the same octants as DrawCircle and joins symmetric points with horizontal
// spans.
func (f *Framebuffer) FillCircle(column, row, radius int, v image1bit.Bit) error {
	if err := checkCircle(column, row, radius); err != nil {
		return err
	}
	x, y, e := radius, 0, 1-radius
	for x >= y {
		f.line(column-y, row-x, column+y, row-x, v)
		f.line(column-x, row-y, column+x, row-y, v)
		f.line(column-x, row+y, column+x, row+y, v)
		f.line(column-y, row+x, column+y, row+x, v)
		x, y, e = circleStep(x, y, e)
	}
	return nil
}

func circleStep(x, y, e int) (int, int, int) {
	y++
	if e < 0 {
		e += 2*y + 1
	} else {
		x--
		e += 2 * (y - x + 1)
	}
	return x, y, e
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
