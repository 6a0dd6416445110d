package tuner

import "fmt"

// BandTag is the single-letter channel band code shown next to the channel
// number: 'C' for cable channels, 'S' for the special/mid bands, '-' when the
// frequency sits outside every labeled band.
type BandTag byte

const (
	BandCable   BandTag = 'C'
	BandSpecial BandTag = 'S'
	BandNone    BandTag = '-'
)

// frequencyWordMax is the widest value the chip's 14-bit frequency field holds.
const frequencyWordMax = 1<<14 - 1

// Derived carries everything computed from a frequency value. It is never
// stored; callers recompute it whenever the frequency changes.
type Derived struct {
	// DivisorExp selects the PLL pre-scaler: divisor = 2^DivisorExp.
	DivisorExp uint8
	// Band and Channel form the user-facing channel label. Channel is 0 and
	// Band is BandNone when the frequency has no label.
	Band    BandTag
	Channel int
	// FrequencyWord is the 14-bit value written to the FM/FL registers.
	FrequencyWord uint16
}

// Derive computes the divisor band, channel label and register frequency word
// for a frequency in 1/100 MHz.
func Derive(freq uint32) Derived {
	exp := divisorExp(freq)

	word := (freq << exp) / 25
	if word > frequencyWordMax {
		// Unreachable through stepping; a value this far out of the channel
		// plan means a caller bug, not a runtime condition.
		panic(fmt.Sprintf("tuner: frequency word %d overflows 14 bits (freq=%d)", word, freq))
	}

	band, ch := channelLabel(freq)

	return Derived{
		DivisorExp:    exp,
		Band:          band,
		Channel:       ch,
		FrequencyWord: uint16(word),
	}
}

// Divisor returns 2^DivisorExp.
func (d Derived) Divisor() int {
	return 1 << d.DivisorExp
}

// divisorExp picks the pre-scaler band. Thresholds are exclusive on every
// row, so 4125 (41.25 MHz) still selects the /16 band.
func divisorExp(freq uint32) uint8 {
	switch {
	case freq > 42325:
		return 0
	case freq > 21025:
		return 1
	case freq > 10525:
		return 2
	case freq > 4125:
		return 3
	default:
		return 4
	}
}

// channelLabel maps a frequency onto the broadcast channel plan. The band
// boundaries mirror real allocations, including the unlabeled hole between
// 69.25 and 105.25 MHz.
func channelLabel(freq uint32) (BandTag, int) {
	switch {
	case freq >= 47125:
		return BandCable, int((freq-47125)/800) + 21
	case freq >= 30325:
		return BandSpecial, int((freq-30325)/800) + 21
	case freq >= 23125:
		return BandSpecial, int((freq-23125)/700) + 11
	case freq >= 17525:
		return BandCable, int((freq-17525)/700) + 5
	case freq >= 10525:
		return BandSpecial, int((freq-10525)/700) + 1
	case freq >= 4025 && freq < 6925:
		return BandCable, int((freq-4025)/700) + 1
	default:
		return BandNone, 0
	}
}
