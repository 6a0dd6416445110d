// Package tuner holds the modulator channel plan: the mapping between a raw
// frequency value, its divisor band, its channel label and the 14-bit
// frequency word the chip expects. All computation is pure; values produced
// by the stepping functions always stay on a labeled channel lattice.
package tuner

import (
	"fmt"
	"strings"
)

// Standard selects the video broadcast standard the modulator emits.
type Standard uint8

const (
	StandardM Standard = iota
	StandardBG
	StandardI
	StandardDK

	standardCount = 4
)

func (s Standard) String() string {
	switch s {
	case StandardM:
		return "M"
	case StandardBG:
		return "BG"
	case StandardI:
		return "I"
	case StandardDK:
		return "DK"
	default:
		return fmt.Sprintf("Standard(%d)", uint8(s))
	}
}

// Code returns the single display character for the standard.
func (s Standard) Code() byte {
	switch s {
	case StandardM:
		return 'M'
	case StandardBG:
		return 'B'
	case StandardI:
		return 'I'
	default:
		return 'D'
	}
}

// Next and Prev wrap modulo the number of standards.
func (s Standard) Next() Standard {
	return (s + 1) % standardCount
}

func (s Standard) Prev() Standard {
	return (s + standardCount - 1) % standardCount
}

// ParseStandard accepts the names shown to the user (M, BG, I, DK).
func ParseStandard(raw string) (Standard, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "M":
		return StandardM, nil
	case "BG", "B":
		return StandardBG, nil
	case "I":
		return StandardI, nil
	case "DK", "D":
		return StandardDK, nil
	default:
		return 0, fmt.Errorf("unknown standard: %q", raw)
	}
}

// Settings is the live (and persisted) modulator configuration.
// Frequency is in units of 1/100 MHz, e.g. 47125 = 471.25 MHz.
type Settings struct {
	TestPattern bool
	Standard    Standard
	Frequency   uint32
}

// DefaultSettings is the configuration used when nothing valid is stored:
// test pattern on, standard I, 471.25 MHz (cable channel C21).
func DefaultSettings() Settings {
	return Settings{
		TestPattern: true,
		Standard:    StandardI,
		Frequency:   47125,
	}
}
