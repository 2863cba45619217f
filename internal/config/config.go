// Package config loads the settings of the demo program.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backends selecting how the clock and data lines are opened.
const (
	BackendPeriph = "periph" // periph.io host drivers, pins by name
	BackendCdev   = "cdev"   // Linux GPIO character device, lines by offset
	BackendSim    = "sim"    // in-memory lines, frames printed to the log
)

// Demos the program can play.
var Demos = []string{"face", "text", "shapes", "checker"}

// Periph names the clock and data lines in the periph.io registry.
type Periph struct {
	Clock string `yaml:"clock"` // e.g. GPIO14
	Data  string `yaml:"data"`  // e.g. GPIO15
}

// Cdev selects the clock and data lines on a GPIO character device.
type Cdev struct {
	Chip        string `yaml:"chip"` // e.g. gpiochip0
	ClockOffset int    `yaml:"clock_offset"`
	DataOffset  int    `yaml:"data_offset"`
}

// Config holds the demo settings.
type Config struct {
	Backend    string `yaml:"backend"`
	Periph     Periph `yaml:"periph,omitempty"`
	Cdev       Cdev   `yaml:"cdev,omitempty"`
	Brightness uint8  `yaml:"brightness"`
	Demo       string `yaml:"demo"`
	Text       string `yaml:"text"`
	IntervalMs int    `yaml:"interval_ms"`
	Frames     int    `yaml:"frames"` // 0 runs until interrupted
	LogLevel   string `yaml:"log_level"`
}

// Default returns the settings used when no file is given. Pin numbers match
// the Makeblock Orion wiring used with the NodeBots driver.
func Default() *Config {
	return &Config{
		Backend:    BackendSim,
		Periph:     Periph{Clock: "GPIO14", Data: "GPIO15"},
		Cdev:       Cdev{Chip: "gpiochip0", ClockOffset: 14, DataOffset: 15},
		Brightness: 4,
		Demo:       "face",
		Text:       "Go!",
		IntervalMs: 1000,
		Frames:     10,
		LogLevel:   "info",
	}
}

// Load reads a YAML file on top of Default, so missing keys keep their
// default value.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path as YAML.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendPeriph:
		if c.Periph.Clock == "" || c.Periph.Data == "" {
			return fmt.Errorf("config: periph backend needs clock and data pin names")
		}
	case BackendCdev:
		if c.Cdev.Chip == "" {
			return fmt.Errorf("config: cdev backend needs a chip")
		}
		if c.Cdev.ClockOffset < 0 || c.Cdev.DataOffset < 0 {
			return fmt.Errorf("config: line offsets must not be negative")
		}
		if c.Cdev.ClockOffset == c.Cdev.DataOffset {
			return fmt.Errorf("config: clock and data must be different lines")
		}
	case BackendSim:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Brightness > 7 {
		return fmt.Errorf("config: brightness %d out of range 0-7", c.Brightness)
	}
	if !validDemo(c.Demo) {
		return fmt.Errorf("config: unknown demo %q", c.Demo)
	}
	if c.IntervalMs <= 0 {
		return fmt.Errorf("config: interval_ms must be positive")
	}
	if c.Frames < 0 {
		return fmt.Errorf("config: frames must not be negative")
	}
	return nil
}

func validDemo(d string) bool {
	for _, v := range Demos {
		if v == d {
			return true
		}
	}
	return false
}
