package persistence

import (
	"fmt"
	"time"

	"rfmodctl/internal/transport"
)

// DefaultEEPROMAddr is the usual 24C0x address with all select pins low.
const DefaultEEPROMAddr uint16 = 0x50

// 24C0x geometry: 8-byte write pages, and the part NAKs while its internal
// write cycle (max 5 ms) runs.
const (
	eepromPageSize   = 8
	eepromWriteCycle = 5 * time.Millisecond
)

// EEPROMStore keeps the settings block at offset 0 of a 24C0x-style serial
// EEPROM on the register bus.
type EEPROMStore struct {
	bus   transport.Bus
	addr  uint16
	sleep func(time.Duration)
}

func NewEEPROMStore(bus transport.Bus, addr uint16) *EEPROMStore {
	if addr == 0 {
		addr = DefaultEEPROMAddr
	}

	return &EEPROMStore{bus: bus, addr: addr, sleep: time.Sleep}
}

// ReadBlock does one sequential read from offset 0.
func (e *EEPROMStore) ReadBlock(buf []byte) error {
	if err := e.bus.Tx(e.addr, []byte{0}, buf); err != nil {
		return fmt.Errorf("read settings eeprom: %w", err)
	}

	return nil
}

// WriteBlock writes page-aligned chunks, waiting out the write cycle after
// each page.
func (e *EEPROMStore) WriteBlock(data []byte) error {
	for off := 0; off < len(data); off += eepromPageSize {
		end := off + eepromPageSize
		if end > len(data) {
			end = len(data)
		}

		page := make([]byte, 0, 1+eepromPageSize)
		page = append(page, byte(off))
		page = append(page, data[off:end]...)

		if err := e.bus.Tx(e.addr, page, nil); err != nil {
			return fmt.Errorf("write settings eeprom page at %d: %w", off, err)
		}
		e.sleep(eepromWriteCycle)
	}

	return nil
}

func (e *EEPROMStore) Close() error {
	return nil
}
