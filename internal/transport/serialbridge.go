package transport

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// SC18IM700-style UART->I2C bridge framing: 'S' <addr+rw> <len> [<data>] 'P'.
// A read command makes the bridge clock the requested bytes off the bus and
// echo them back over the UART.
const (
	bridgeStart = 'S'
	bridgeStop  = 'P'
)

const defaultBridgeReadTimeout = 300 * time.Millisecond

// SerialBridge drives the register bus through a UART-attached bridge chip,
// for boxes without a native I2C controller.
type SerialBridge struct {
	port serial.Port
}

// OpenSerialBridge opens the bridge's serial port. The SC18IM700 talks 9600
// baud out of reset.
func OpenSerialBridge(portName string, baudRate int) (*SerialBridge, error) {
	if portName == "" {
		return nil, errors.New("serial bridge port is empty")
	}
	if baudRate <= 0 {
		return nil, fmt.Errorf("invalid serial bridge baud rate: %d", baudRate)
	}

	port, err := serial.Open(portName, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial bridge port %q: %w", portName, err)
	}
	if err := port.SetReadTimeout(defaultBridgeReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set serial bridge read timeout: %w", err)
	}

	return &SerialBridge{port: port}, nil
}

func (b *SerialBridge) Tx(addr uint16, w, r []byte) error {
	cmd, err := bridgeCommand(addr, w, len(r))
	if err != nil {
		return err
	}

	if _, err := b.port.Write(cmd); err != nil {
		return fmt.Errorf("write bridge command: %w", err)
	}

	if len(r) > 0 {
		if _, err := io.ReadFull(b.port, r); err != nil {
			return fmt.Errorf("read bridge response: %w", err)
		}
	}

	return nil
}

func (b *SerialBridge) Close() error {
	return b.port.Close()
}

// bridgeCommand builds a single bridge transaction, chaining the write and
// read phases with a repeated start when both are present.
func bridgeCommand(addr uint16, w []byte, readLen int) ([]byte, error) {
	if addr > 0x7F {
		return nil, fmt.Errorf("bridge address out of 7-bit range: %#x", addr)
	}
	if len(w) > 0xFF || readLen > 0xFF {
		return nil, fmt.Errorf("bridge transfer too large: w=%d r=%d", len(w), readLen)
	}
	if len(w) == 0 && readLen == 0 {
		return nil, errors.New("empty bridge transaction")
	}

	cmd := make([]byte, 0, 4+len(w)+4)
	if len(w) > 0 {
		cmd = append(cmd, bridgeStart, byte(addr<<1), byte(len(w)))
		cmd = append(cmd, w...)
	}
	if readLen > 0 {
		cmd = append(cmd, bridgeStart, byte(addr<<1)|1, byte(readLen))
	}
	cmd = append(cmd, bridgeStop)

	return cmd, nil
}
