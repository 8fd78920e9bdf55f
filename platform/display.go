//go:build rp2040

package platform

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/hal"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// OLED drives the 128x64 SSD1306 on i2c1. Render clears the buffer,
// draws the standard double frame, writes the lines and flushes.
type OLED struct {
	dev ssd1306.Device
}

// NewOLED configures i2c1 and the display controller.
func NewOLED() (*OLED, error) {
	err := machine.I2C1.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.Pin(PinI2CSDA),
		SCL:       machine.Pin(PinI2CSCL),
	})
	if err != nil {
		return nil, err
	}
	dev := ssd1306.NewI2C(machine.I2C1)
	dev.Configure(ssd1306.Config{
		Address: DisplayAddr,
		Width:   DisplayWidth,
		Height:  DisplayHeight,
	})
	dev.ClearDisplay()
	return &OLED{dev: dev}, nil
}

func (o *OLED) Render(lines []hal.Line) error {
	o.dev.ClearBuffer()
	o.frame()
	for _, ln := range lines {
		// tinyfont y is the text baseline; the layout coordinates are
		// the top of the glyph row.
		tinyfont.WriteLine(&o.dev, &proggy.TinySZ8pt7b, ln.X, ln.Y+7, ln.Text, white)
	}
	return o.dev.Display()
}

func (o *OLED) frame() {
	o.hline(0, DisplayWidth-1, 0)
	o.hline(0, DisplayWidth-1, DisplayHeight-1)
	o.vline(0, 0, DisplayHeight-1)
	o.vline(DisplayWidth-1, 0, DisplayHeight-1)
	// separator under the title row
	o.hline(2, DisplayWidth-3, 13)
}

func (o *OLED) hline(x0, x1, y int16) {
	for x := x0; x <= x1; x++ {
		o.dev.SetPixel(x, y, white)
	}
}

func (o *OLED) vline(x, y0, y1 int16) {
	for y := y0; y <= y1; y++ {
		o.dev.SetPixel(x, y, white)
	}
}
