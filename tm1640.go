// Package tm1640 controls a 16x8 LED matrix driven by a TM1640 controller.
//
// The TM1640 is a 16 grid x 8 segment LED driver with a two-wire clock/data
// serial interface. On matrix boards each grid is a column and each segment a
// row. The driver keeps the matrix state in a matrix.Framebuffer and pushes it
// to the chip when asked.
//
// See the examples for how to use this package.
package tm1640

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/flavioheleno/tm1640/matrix"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var (
	// ErrHalted is returned by operations that need the bus after Halt.
	ErrHalted = errors.New("tm1640: halted")
	// ErrInvalidBrightness is returned for brightness levels above MaxBrightness.
	ErrInvalidBrightness = errors.New("tm1640: brightness must be between 0 and 7")
)

const (
	// MaxBrightness is the highest brightness level (14/16 pulse width).
	MaxBrightness uint8 = 7
	// DefaultBrightness is the level used when no Opts are given (11/16 pulse width).
	DefaultBrightness uint8 = 4
)

// Opts is the configuration for the TM1640 display.
type Opts struct {
	// Brightness level, 0 (1/16 pulse width) to 7 (14/16 pulse width).
	Brightness uint8

	// Logger receives debug events. Optional, nil disables logging.
	Logger *zerolog.Logger
}

// DefaultOpts is used by New when opts is nil.
var DefaultOpts = Opts{Brightness: DefaultBrightness}

// Dev is the device handle for a TM1640 LED matrix.
//
// Dev is not safe for concurrent use. The chip keeps addressing state across
// a transaction, so interleaved writes would corrupt the display.
type Dev struct {
	b  bus
	fb *matrix.Framebuffer

	// Last frame pushed to the chip, for differential updates.
	last   [matrix.Width]byte
	synced bool

	brightness uint8
	halted     bool
	log        zerolog.Logger
}

var _ display.Drawer = (*Dev)(nil)

// New returns a Dev driving the matrix through the clk and dio lines.
//
// Both lines are configured as outputs and left high (bus idle), then the
// chip is switched to auto-increment addressing and the display is enabled.
// The framebuffer starts blank but is not pushed; call Clear or Flush to
// blank the matrix.
//
// opts can be nil to use DefaultOpts.
func New(clk, dio gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Brightness > MaxBrightness {
		return nil, ErrInvalidBrightness
	}

	d := &Dev{
		b:          bus{clk: clk, dio: dio},
		fb:         matrix.New(),
		brightness: opts.Brightness,
		log:        zerolog.Nop(),
	}
	if opts.Logger != nil {
		d.log = *opts.Logger
	}

	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// init configures the lines and sends the initialization commands.
func (d *Dev) init() error {
	if err := d.b.clk.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: failed to configure clock line %s: %w", ErrProtocolUnavailable, d.b.clk, err)
	}
	if err := d.b.dio.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: failed to configure data line %s: %w", ErrProtocolUnavailable, d.b.dio, err)
	}

	if err := d.b.writeByte(CmdDataAutoIncrement); err != nil {
		return err
	}
	if err := d.b.writeByte(CmdDisplayOn | d.brightness); err != nil {
		return err
	}

	d.log.Debug().
		Stringer("clk", d.b.clk).
		Stringer("dio", d.b.dio).
		Uint8("brightness", d.brightness).
		Msg("tm1640: initialized")
	return nil
}

// Framebuffer returns the framebuffer. Changes become visible on the next
// Flush, Update or WriteColumn.
func (d *Dev) Framebuffer() *matrix.Framebuffer {
	return d.fb
}

// Flush pushes the whole framebuffer to the chip, starting at column 0.
func (d *Dev) Flush() error {
	if d.halted {
		return ErrHalted
	}
	if err := d.b.writeBytesAt(0, d.fb.Bytes()); err != nil {
		return err
	}
	copy(d.last[:], d.fb.Bytes())
	d.synced = true
	return nil
}

// Update pushes only the columns that changed since the last push. The
// changed columns are sent as one contiguous run, so a single transaction
// covers them all. If nothing was pushed yet, Update behaves like Flush.
func (d *Dev) Update() error {
	if d.halted {
		return ErrHalted
	}
	if !d.synced {
		return d.Flush()
	}

	first, last := d.calculateDiff()
	if first > last {
		return nil
	}

	cur := d.fb.Bytes()
	if err := d.b.writeBytesAt(byte(first), cur[first:last+1]); err != nil {
		return err
	}
	copy(d.last[first:last+1], cur[first:last+1])

	d.log.Debug().Int("first", first).Int("last", last).Msg("tm1640: updated columns")
	return nil
}

// calculateDiff returns the first and last column that differ from the last
// pushed frame, or (matrix.Width, -1) if there is no change.
func (d *Dev) calculateDiff() (first, last int) {
	first, last = matrix.Width, -1
	for i, b := range d.fb.Bytes() {
		if b == d.last[i] {
			continue
		}
		if i < first {
			first = i
		}
		last = i
	}
	return
}

// WriteColumn pushes a single column using fixed address mode, then restores
// auto-increment mode for later flushes.
func (d *Dev) WriteColumn(column int) error {
	if d.halted {
		return ErrHalted
	}
	v, err := d.fb.Column(column)
	if err != nil {
		return err
	}
	if err := d.b.writeByte(CmdDataFixedAddress); err != nil {
		return err
	}
	if err := d.b.writeBytesAt(byte(column), []byte{v}); err != nil {
		return err
	}
	if err := d.b.writeByte(CmdDataAutoIncrement); err != nil {
		return err
	}
	d.last[column] = v
	return nil
}

// Clear sets every column byte to v and flushes. Use 0x00 to turn every LED
// off and 0xFF to turn every LED on.
func (d *Dev) Clear(v byte) error {
	d.fb.Fill(v)
	return d.Flush()
}

// Invert flips every pixel of the framebuffer. Unlike Clear it does not
// flush.
func (d *Dev) Invert() {
	d.fb.Invert()
}

// DrawPoint sets the pixel at (column, row). See matrix.Framebuffer.DrawPoint.
func (d *Dev) DrawPoint(column, row int, v image1bit.Bit) error {
	return d.fb.DrawPoint(column, row, v)
}

// DrawLine draws a line between two points, both included.
func (d *Dev) DrawLine(c0, r0, c1, r1 int, v image1bit.Bit) error {
	return d.fb.DrawLine(c0, r0, c1, r1, v)
}

// DrawLineH draws a horizontal line of length pixels.
func (d *Dev) DrawLineH(column, row, length int, v image1bit.Bit) error {
	return d.fb.DrawLineH(column, row, length, v)
}

// DrawLineV draws a vertical line of length pixels.
func (d *Dev) DrawLineV(column, row, length int, v image1bit.Bit) error {
	return d.fb.DrawLineV(column, row, length, v)
}

// DrawRectangle draws a rectangle outline. Arguments are in (column, row)
// order.
func (d *Dev) DrawRectangle(column, row, width, height int, v image1bit.Bit) error {
	return d.fb.DrawRectangle(column, row, width, height, v)
}

// FillRectangle draws a filled rectangle.
func (d *Dev) FillRectangle(column, row, width, height int, v image1bit.Bit) error {
	return d.fb.FillRectangle(column, row, width, height, v)
}

// DrawCircle draws a circle outline.
func (d *Dev) DrawCircle(column, row, radius int, v image1bit.Bit) error {
	return d.fb.DrawCircle(column, row, radius, v)
}

// FillCircle draws a filled disk.
func (d *Dev) FillCircle(column, row, radius int, v image1bit.Bit) error {
	return d.fb.FillCircle(column, row, radius, v)
}

// DrawCharacter draws a 5x7 glyph. row and v are ignored; see
// matrix.Framebuffer.DrawCharacter.
func (d *Dev) DrawCharacter(column, row int, ch rune, v image1bit.Bit) error {
	return d.fb.DrawCharacter(column, row, ch, v)
}

// SetBrightness sets the brightness level (0-7).
func (d *Dev) SetBrightness(level uint8) error {
	if d.halted {
		return ErrHalted
	}
	if level > MaxBrightness {
		return ErrInvalidBrightness
	}
	if err := d.b.writeByte(CmdDisplayOn | level); err != nil {
		return err
	}
	d.brightness = level
	d.log.Debug().Uint8("brightness", level).Msg("tm1640: brightness set")
	return nil
}

// Brightness returns the current brightness level.
func (d *Dev) Brightness() uint8 {
	return d.brightness
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.fb.Bounds()
}

// Draw renders src into the framebuffer and pushes the changed columns.
// Colors are reduced to on/off by image1bit.BitModel.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	dst = dst.Intersect(d.fb.Bounds())
	if dst.Empty() {
		return nil
	}
	draw.Draw(d.fb, dst, src, sp, draw.Src)
	return d.Update()
}

// Halt turns the display off. The chip keeps its RAM; Resume turns it back
// on with the same content.
func (d *Dev) Halt() error {
	if err := d.b.writeByte(CmdDisplayOff); err != nil {
		return err
	}
	d.halted = true
	d.log.Debug().Msg("tm1640: halted")
	return nil
}

// Resume turns the display back on after Halt.
func (d *Dev) Resume() error {
	if err := d.b.writeByte(CmdDisplayOn | d.brightness); err != nil {
		return err
	}
	d.halted = false
	d.log.Debug().Msg("tm1640: resumed")
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("tm1640.Dev{%dx%d}", matrix.Width, matrix.Height)
}
