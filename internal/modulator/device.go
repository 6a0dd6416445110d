package modulator

import (
	"fmt"
	"log/slog"

	"rfmodctl/internal/transport"
	"rfmodctl/internal/tuner"
)

// Device writes register frames to the modulator chip. Writes are
// fire-and-forget: the chip offers no read-back, so a failed write is logged
// by the caller and never retried.
type Device struct {
	bus    transport.Bus
	addr   uint16
	logger *slog.Logger
}

func NewDevice(bus transport.Bus, addr uint16, logger *slog.Logger) *Device {
	if addr == 0 {
		addr = DefaultAddr
	}

	return &Device{bus: bus, addr: addr, logger: logger}
}

// Apply packs the settings and writes the resulting frame to the chip.
func (d *Device) Apply(s tuner.Settings) error {
	frame := Pack(s)
	if err := d.bus.Tx(d.addr, frame.Bytes(), nil); err != nil {
		return fmt.Errorf("write modulator registers: %w", err)
	}

	d.logger.Debug("registers written",
		"frame", frame.String(),
		"frequency", s.Frequency,
		"standard", s.Standard.String(),
		"test_pattern", s.TestPattern,
	)

	return nil
}
