package tm1640

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Command bytes understood by the TM1640.
const (
	// CmdDataAutoIncrement selects data writes with automatic address
	// increment: each data byte of a transaction goes to the next column.
	CmdDataAutoIncrement byte = 0x40
	// CmdDataFixedAddress selects data writes to a fixed address.
	CmdDataFixedAddress byte = 0x44
	// CmdAddress starts an addressed write. The low nibble is the column.
	CmdAddress byte = 0xC0
	// CmdDisplayOff blanks the display. Display RAM is kept.
	CmdDisplayOff byte = 0x80
	// CmdDisplayOn enables the display. The low 3 bits are the brightness.
	CmdDisplayOn byte = 0x88
)

// ErrProtocolUnavailable is returned when a clock or data line cannot be
// driven. The TM1640 never acknowledges anything, so this only reports
// failures of the local lines.
var ErrProtocolUnavailable = errors.New("tm1640: protocol unavailable")

// bus bit-bangs the TM1640 two-wire protocol on a clock and a data line.
//
// A transaction starts with data falling while clock is high and ends with
// data rising while clock is high. Bits are sent LSB first and sampled by the
// chip on the clock rising edge.
type bus struct {
	clk gpio.PinOut
	dio gpio.PinOut
}

// writeByte sends v as a transaction of its own. Used for commands.
func (b *bus) writeByte(v byte) error {
	t := b.begin()
	t.shift(v)
	return t.end()
}

// writeBytesAt sends the address command for address followed by data in a
// single transaction.
func (b *bus) writeBytesAt(address byte, data []byte) error {
	t := b.begin()
	t.shift(CmdAddress | address)
	for _, v := range data {
		t.shift(v)
	}
	return t.end()
}

// tx is one transaction. The first line failure aborts the remaining steps and
// is reported by end.
type tx struct {
	b   *bus
	err error
}

func (b *bus) begin() *tx {
	t := &tx{b: b}
	t.out(b.clk, "clock", gpio.High)
	t.out(b.dio, "data", gpio.Low)
	return t
}

func (t *tx) shift(v byte) {
	for i := 0; i < 8; i++ {
		t.out(t.b.clk, "clock", gpio.Low)
		t.out(t.b.dio, "data", v&0x01 != 0)
		t.out(t.b.clk, "clock", gpio.High)
		v >>= 1
	}
}

func (t *tx) end() error {
	t.out(t.b.clk, "clock", gpio.Low)
	t.out(t.b.dio, "data", gpio.Low)
	t.out(t.b.clk, "clock", gpio.High)
	t.out(t.b.dio, "data", gpio.High)
	return t.err
}

func (t *tx) out(p gpio.PinOut, name string, l gpio.Level) {
	if t.err != nil {
		return
	}
	if err := p.Out(l); err != nil {
		t.err = fmt.Errorf("%w: %s line %s: %w", ErrProtocolUnavailable, name, p, err)
	}
}
