//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger  *uartLogger
	fb      Framebuffer
	t       *tinyGoTime
	clock   *tinyGoClock
	flash   Flash
	sensors Sensors
	link    Link
}

// New returns the watch HAL for a Pico/Pico 2 with a Sharp LS013B7DH05
// memory LCD.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// LCD: SPI0 on GP18 (SCK) / GP19 (SDO), CS on GP17.
// Tap button: GP15 to ground.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	var fb Framebuffer
	if disp, err := newSharpFramebuffer(machine.SPI0, machine.GP18, machine.GP19, machine.GP17); err == nil {
		fb = disp
	} else {
		logger.WriteLineString("hal: display: " + err.Error())
		fb = newMemFramebuffer(ScreenWidth, ScreenHeight)
	}

	return &tinyGoHAL{
		logger:  logger,
		fb:      fb,
		t:       newTinyGoTime(),
		clock:   &tinyGoClock{},
		flash:   newRP2Flash(),
		sensors: newPinSensors(machine.ADC3, machine.GP15),
		link:    newUARTLink(logger),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Flash() Flash     { return h.flash }
func (h *tinyGoHAL) Time() Time       { return h.t }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHAL) Sensors() Sensors { return h.sensors }
func (h *tinyGoHAL) Link() Link       { return h.link }
