// Package tm1640 controls a 16x8 LED matrix driven by a TM1640 controller.
//
// The TM1640 drives up to 16 grids of 8 segments. Matrix boards such as the
// Makeblock "Me LED Matrix 8x16" wire each grid to a column and each segment
// to a row. The driver implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 16 columns x 8 rows, 1 bit per pixel
// - 8 brightness levels (pulse width 1/16 to 14/16)
// - Write-only: the chip never acknowledges and cannot be read back
// - One byte of display RAM per column, bit 0 is the top row
//
// # Hardware Connection
//
// The TM1640 uses a two-wire clock/data interface that is not I²C. Any two
// GPIO outputs will do:
//
//	Matrix Pin → System Pin
//	GND        → GND
//	VCC        → 5V
//	SCK/CLK    → GPIO (clock)
//	DIN/DIO    → GPIO (data)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/flavioheleno/tm1640"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/devices/v3/ssd1306/image1bit"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//
//		dev, err := tm1640.New(gpioreg.ByName("GPIO14"), gpioreg.ByName("GPIO15"), nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Halt()
//
//		dev.Clear(0x00)
//		dev.DrawCharacter(6, 0, '?', image1bit.On)
//		dev.Flush()
//	}
//
// On Linux boards without a periph host driver, the cdev package exposes GPIO
// character device lines as gpio.PinOut:
//
//	clk, _ := cdev.Open("gpiochip0", 14)
//	dio, _ := cdev.Open("gpiochip0", 15)
//	dev, _ := tm1640.New(clk, dio, nil)
//
// # Drawing
//
// Drawing primitives only change the framebuffer. Nothing reaches the matrix
// until one of the push methods is called:
//
//	dev.DrawRectangle(0, 0, 16, 8, image1bit.On) // outline around the edge
//	dev.FillCircle(8, 4, 2, image1bit.On)
//	dev.Flush()
//
// Coordinates are (column, row) with (0, 0) at the top left. Primitives that
// would touch a pixel outside the matrix fail with matrix.ErrOutOfRange and
// leave the framebuffer unchanged.
//
// Invert is the one framebuffer operation on Dev that does not push; Clear
// always pushes.
//
// # Pushing Modes
//
// ## Full Frame
//
// Flush sends all 16 column bytes in one auto-increment transaction.
//
// ## Differential Updates
//
// Update compares the framebuffer with the last frame pushed and only sends
// the run of columns between the first and last changed column:
//
//	dev.DrawPoint(3, 3, image1bit.On)
//	dev.Update() // sends column 3 only
//
// ## Single Column
//
// WriteColumn sends one column using fixed address mode.
//
// # Text
//
// DrawCharacter blits glyphs from the built-in 5x7 font (package font5x7).
// Glyphs are 5 columns wide and sit on rows 1-7. For proportional fonts, the
// framebuffer works with tinyfont:
//
//	dev.Framebuffer().DrawText(&tinyfont.TomThumb, 0, 6, "Hi!", image1bit.On)
//
// # Images
//
// Draw accepts any image.Image, reduces it to on/off pixels and pushes the
// changed columns:
//
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// # Datasheet
//
// For command encoding and timing, see the TM1640 datasheet published by
// Titan Micro Electronics.
package tm1640
