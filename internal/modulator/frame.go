// Package modulator encodes the controller configuration into the RF
// modulator chip's 4-byte register protocol and pushes it over the bus.
package modulator

import (
	"fmt"

	"rfmodctl/internal/tuner"
)

// DefaultAddr is the chip's fixed 7-bit bus address.
const DefaultAddr uint16 = 0x65

// Reserved control bits. The chip exposes sound-oscillator, RF attenuation
// and PLL reference options this controller never changes; they are all
// driven at zero.
const (
	bitSO   = 0
	bitLOP  = 0
	bitPS   = 0
	bitSYSL = 0
	bitPWC  = 0
	bitOSC  = 0
	bitATT  = 0
	bitSREF = 0
)

// Frame is the 4-byte register image written to the chip, in wire order
// C1, C0, FM, FL. The layout is a hard hardware contract.
type Frame struct {
	C1, C0, FM, FL byte
}

// Pack builds the register frame for the given settings. The divisor
// exponent is split across three registers: bit 2 lands in C1, bits 4-5 in
// C0 (always zero for this chip's range) and bits 0-1 in FL.
func Pack(s tuner.Settings) Frame {
	d := tuner.Derive(s.Frequency)

	var testPattern byte
	if s.TestPattern {
		testPattern = 1
	}

	return Frame{
		C1: 0b10000000 | bitLOP<<4 | bitPS<<3 | (d.DivisorExp&0b1100)>>1 | bitSYSL,
		C0: bitPWC<<7 | bitOSC<<6 | bitATT<<5 | (byte(s.Standard)&0b11)<<3 | bitSREF<<2 | (d.DivisorExp&0b110000)>>4,
		FM: testPattern<<6 | byte(d.FrequencyWord>>6)&0b111111,
		FL: byte(d.FrequencyWord&0b111111)<<2 | d.DivisorExp&0b11,
	}
}

// Bytes returns the frame in the order the chip expects it on the wire.
func (f Frame) Bytes() []byte {
	return []byte{f.C1, f.C0, f.FM, f.FL}
}

func (f Frame) String() string {
	return fmt.Sprintf("% X", f.Bytes())
}
