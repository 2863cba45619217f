package cdev

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
)

type fakeLine struct {
	values []int
	err    error
	closed bool
}

func (f *fakeLine) SetValue(v int) error {
	if f.err != nil {
		return f.err
	}
	f.values = append(f.values, v)
	return nil
}

func (f *fakeLine) Close() error {
	f.closed = true
	return nil
}

func TestPinOut(t *testing.T) {
	fl := &fakeLine{}
	p := &Pin{chip: "gpiochip0", offset: 14, l: fl}

	require.NoError(t, p.Out(gpio.High))
	require.NoError(t, p.Out(gpio.Low))
	require.NoError(t, p.Out(gpio.High))
	assert.Equal(t, []int{1, 0, 1}, fl.values)
}

func TestPinOutError(t *testing.T) {
	boom := errors.New("device gone")
	p := &Pin{chip: "gpiochip0", offset: 15, l: &fakeLine{err: boom}}

	err := p.Out(gpio.High)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "gpiochip0/15")
}

func TestPinIdentity(t *testing.T) {
	p := &Pin{chip: "gpiochip4", offset: 23, l: &fakeLine{}}
	assert.Equal(t, "gpiochip4/23", p.String())
	assert.Equal(t, "gpiochip4/23", p.Name())
	assert.Equal(t, 23, p.Number())
	assert.Equal(t, "Out", p.Function())
	assert.NoError(t, p.Halt())
	assert.Error(t, p.PWM(gpio.DutyHalf, 0))
}

func TestPinClose(t *testing.T) {
	fl := &fakeLine{}
	p := &Pin{chip: "gpiochip0", offset: 1, l: fl}
	require.NoError(t, p.Close())
	assert.True(t, fl.closed)
}
