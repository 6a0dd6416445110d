package tuner

// FrequencyMin and FrequencyMax bound the steppable range; stepping past
// either end wraps to the other.
const (
	FrequencyMin uint32 = 4125   // 41.25 MHz
	FrequencyMax uint32 = 102325 // 1023.25 MHz
)

// StepUp moves the frequency one channel forward. The step size follows the
// channel spacing of the band the value is in (7, 8 or 9 MHz); the odd-sized
// steps at 97.25 and 294.25 MHz jump the gaps between bands so the value
// lands exactly on the next band's lattice.
func StepUp(freq uint32) uint32 {
	switch {
	case freq >= FrequencyMax:
		return FrequencyMin
	case freq == 9725:
		return freq + 800
	case freq == 29425:
		return freq + 900
	case freq >= 30325:
		return freq + 800
	default:
		return freq + 700
	}
}

// StepDown is the mirror of StepUp.
func StepDown(freq uint32) uint32 {
	switch {
	case freq <= FrequencyMin:
		return FrequencyMax
	case freq == 10525:
		return freq - 800
	case freq == 30325:
		return freq - 900
	case freq > 30325:
		return freq - 800
	default:
		return freq - 700
	}
}
