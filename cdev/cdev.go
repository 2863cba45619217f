// Package cdev exposes Linux GPIO character device lines as periph.io output
// pins.
//
// It is meant for boards where periph.io has no host driver but the kernel
// provides /dev/gpiochipN, such as the Raspberry Pi 5.
package cdev

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Consumer is the label attached to requested lines, visible in gpioinfo.
const Consumer = "tm1640"

// line is the part of *gpiocdev.Line used by Pin.
type line interface {
	SetValue(value int) error
	Close() error
}

// Pin is a requested output line.
type Pin struct {
	chip   string
	offset int
	l      line
}

var _ gpio.PinOut = (*Pin)(nil)

// Open requests line offset of chip (for example "gpiochip0") as an output,
// initially high.
func Open(chip string, offset int) (*Pin, error) {
	l, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(1), gpiocdev.WithConsumer(Consumer))
	if err != nil {
		return nil, fmt.Errorf("cdev: failed to request %s line %d: %w", chip, offset, err)
	}
	return &Pin{chip: chip, offset: offset, l: l}, nil
}

// String returns the chip and line offset.
func (p *Pin) String() string {
	return fmt.Sprintf("%s/%d", p.chip, p.offset)
}

// Halt is a no-op; the line keeps its last level.
func (p *Pin) Halt() error {
	return nil
}

// Name returns the chip and line offset.
func (p *Pin) Name() string {
	return p.String()
}

// Number returns the line offset on its chip.
func (p *Pin) Number() int {
	return p.offset
}

// Function returns "Out".
//
// Deprecated: kept to satisfy pin.Pin.
func (p *Pin) Function() string {
	return "Out"
}

// Out drives the line.
func (p *Pin) Out(l gpio.Level) error {
	v := 0
	if l {
		v = 1
	}
	if err := p.l.SetValue(v); err != nil {
		return fmt.Errorf("cdev: %s: %w", p, err)
	}
	return nil
}

// PWM is not supported on character device lines.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("cdev: PWM is not supported")
}

// Close releases the line.
func (p *Pin) Close() error {
	return p.l.Close()
}
