package transport

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// I2CBus drives the register bus through a native I2C controller.
// periph's host drivers must be initialized before OpenI2C is called.
type I2CBus struct {
	bus i2c.BusCloser
}

// OpenI2C opens the named I2C bus ("" selects the first available one).
func OpenI2C(name string) (*I2CBus, error) {
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}

	return &I2CBus{bus: bus}, nil
}

func (t *I2CBus) Tx(addr uint16, w, r []byte) error {
	return t.bus.Tx(addr, w, r)
}

func (t *I2CBus) Close() error {
	return t.bus.Close()
}
