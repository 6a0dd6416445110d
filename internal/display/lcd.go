package display

import (
	"fmt"

	"tinygo.org/x/drivers/hd44780i2c"

	"rfmodctl/internal/transport"
)

// DefaultLCDAddr is the usual PCF8574 backpack address.
const DefaultLCDAddr uint16 = 0x27

// Sink receives display updates. Updates are fire-and-forget like register
// writes; the display has no read-back either.
type Sink interface {
	Show(State) error
	Close() error
}

// LCD drives an HD44780 16x2 character module behind an I2C backpack. The
// status line lives on row 0; row 1 stays blank.
type LCD struct {
	dev hd44780i2c.Device
}

func NewLCD(bus transport.Bus, addr uint16) (*LCD, error) {
	if addr == 0 {
		addr = DefaultLCDAddr
	}

	dev := hd44780i2c.New(busI2C{bus: bus}, uint8(addr))
	if err := dev.Configure(hd44780i2c.Config{
		Width:  Columns,
		Height: 2,
	}); err != nil {
		return nil, fmt.Errorf("configure lcd: %w", err)
	}

	return &LCD{dev: dev}, nil
}

func (l *LCD) Show(st State) error {
	l.dev.SetCursor(0, 0)
	l.dev.Print(st.Line[:])

	if st.Cursor >= Columns || st.Cursor < 0 {
		l.dev.CursorOn(false)
		return nil
	}
	l.dev.SetCursor(uint8(st.Cursor), 0)

	l.dev.CursorOn(true)
	return nil
}

func (l *LCD) Close() error {
	l.dev.CursorOn(false)
	l.dev.ClearDisplay()
	return nil
}

// busI2C adapts the transport bus to the driver's I2C interface.
type busI2C struct {
	bus transport.Bus
}

func (b busI2C) Tx(addr uint16, w, r []byte) error {
	return b.bus.Tx(addr, w, r)
}
