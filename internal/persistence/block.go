// Package persistence stores the last configuration as a fixed 10-byte block
// with an integrity check: 2-byte magic, the raw settings image, and a 16-bit
// byte-sum checksum. The block lives at a fixed offset in whatever backing
// store the box has (settings EEPROM on the bus, or a file on the bench).
package persistence

import (
	"encoding/binary"
	"errors"

	"rfmodctl/internal/tuner"
)

const (
	blockMagic uint16 = 0x4E45

	// BlockSize is magic (2) + settings image (6) + checksum (2).
	BlockSize    = 10
	settingsSize = 6
)

// ErrCorruptBlock covers both a block that fails its integrity check and a
// store that was never written; the two are indistinguishable on purpose and
// both fall back to defaults.
var ErrCorruptBlock = errors.New("settings block corrupt or absent")

// EncodeBlock serializes settings into the persisted block layout, all
// little-endian.
func EncodeBlock(s tuner.Settings) [BlockSize]byte {
	var b [BlockSize]byte
	binary.LittleEndian.PutUint16(b[0:2], blockMagic)

	if s.TestPattern {
		b[2] = 1
	}
	b[3] = byte(s.Standard)
	binary.LittleEndian.PutUint32(b[4:8], s.Frequency)

	binary.LittleEndian.PutUint16(b[8:10], checksum(b[2:8]))

	return b
}

// DecodeBlock parses a persisted block, returning ErrCorruptBlock when the
// magic, the checksum or the decoded values are not credible.
func DecodeBlock(b []byte) (tuner.Settings, error) {
	if len(b) != BlockSize {
		return tuner.Settings{}, ErrCorruptBlock
	}
	if binary.LittleEndian.Uint16(b[0:2]) != blockMagic {
		return tuner.Settings{}, ErrCorruptBlock
	}
	if binary.LittleEndian.Uint16(b[8:10]) != checksum(b[2:8]) {
		return tuner.Settings{}, ErrCorruptBlock
	}

	s := tuner.Settings{
		TestPattern: b[2] != 0,
		Standard:    tuner.Standard(b[3]),
		Frequency:   binary.LittleEndian.Uint32(b[4:8]),
	}
	if b[3] > 3 || s.Frequency < tuner.FrequencyMin || s.Frequency > tuner.FrequencyMax {
		return tuner.Settings{}, ErrCorruptBlock
	}

	return s, nil
}

// checksum is the sum of the settings image bytes modulo 2^16.
func checksum(image []byte) uint16 {
	var sum uint16
	for _, b := range image {
		sum += uint16(b)
	}

	return sum
}
