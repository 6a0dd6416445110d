// Package transport provides the two-wire register bus the modulator, the
// display backpack and the settings EEPROM all hang off. The controller can
// reach that bus either through a native I2C controller or through a UART
// bridge chip; both present the same Bus interface.
package transport

// Bus performs one write-then-read transaction addressed to a 7-bit device
// address. Either buffer may be nil for a pure write or pure read.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
	Close() error
}
