//go:build tinygo && baremetal

package hal

import (
	"errors"
	"image/color"
	"machine"

	"tinygo.org/x/drivers/sharpmem"
)

// sharpFramebuffer keeps an RGB565 back buffer and pushes it to a 1-bit
// Sharp memory LCD on Present. Only changed lines go over the bus.
type sharpFramebuffer struct {
	memFramebuffer
	dev sharpmem.Device
}

// The driver inverts: opaque black leaves a pixel reflective (white), any
// other color darkens it.
var (
	reflective = color.RGBA{A: 0xFF}
	dark       = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

func newSharpFramebuffer(spi *machine.SPI, sck, sdo, cs machine.Pin) (*sharpFramebuffer, error) {
	if spi == nil {
		return nil, errors.New("spi unavailable")
	}
	err := spi.Configure(machine.SPIConfig{
		Frequency: 2_000_000,
		SCK:       sck,
		SDO:       sdo,
		Mode:      0,
		LSBFirst:  true,
	})
	if err != nil {
		return nil, err
	}
	cs.Configure(machine.PinConfig{Mode: machine.PinOutput})

	dev := sharpmem.New(spi, cs)
	dev.Configure(sharpmem.ConfigLS013B7DH05)
	if err := dev.Clear(); err != nil {
		return nil, err
	}

	w, h := dev.Size()
	f := &sharpFramebuffer{dev: dev}
	f.memFramebuffer = *newMemFramebuffer(int(w), int(h))
	return f, nil
}

// Present maps lit pixels to reflective and everything else to dark.
func (f *sharpFramebuffer) Present() error {
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			c := dark
			if lit(pixelAt(f.buf, f.stride, x, y)) {
				c = reflective
			}
			f.dev.SetPixel(int16(x), int16(y), c)
		}
	}
	return f.dev.Display()
}
