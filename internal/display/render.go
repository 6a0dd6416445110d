// Package display renders the controller status line and drives it onto a
// character LCD. The line is a fixed 16-cell layout; the cursor column is the
// only visual cue for which field is currently editable.
package display

import "rfmodctl/internal/tuner"

// Columns is the width of the status line.
const Columns = 16

// CursorOff parks the cursor past the last column, hiding it.
const CursorOff = Columns

// Cell layout of the status line:
//
//	0-2   channel label ("C21", "---" when unlabeled)
//	3     space
//	4-10  frequency "DDDD.DD" MHz, leading zeros blanked
//	11-12 PLL divisor, right aligned (1, 2, 4, 8 or 16)
//	13    space
//	14    standard code (M, B, I, D)
//	15    test pattern flag ('T' or space)
const (
	colLabel     = 0
	colFrequency = 4
	colDivisor   = 11
	colStandard  = 14
	colTestFlag  = 15
)

// State is one full display update: the rendered line plus the cursor column.
type State struct {
	Line   [Columns]byte
	Cursor int
}

func (s State) Text() string {
	return string(s.Line[:])
}

// Render builds the status line for the given settings, with the cursor at
// the given column (CursorOff hides it).
func Render(s tuner.Settings, cursor int) State {
	st := State{Cursor: cursor}
	line := st.Line[:]
	for i := range line {
		line[i] = ' '
	}

	d := tuner.Derive(s.Frequency)

	if d.Band == tuner.BandNone {
		copy(line[colLabel:], "---")
	} else {
		line[colLabel] = byte(d.Band)
		line[colLabel+1] = '0' + byte(d.Channel/10%10)
		line[colLabel+2] = '0' + byte(d.Channel%10)
	}

	renderFrequency(line[colFrequency:colFrequency+7], s.Frequency)

	div := d.Divisor()
	if div >= 10 {
		line[colDivisor] = '0' + byte(div/10)
	}
	line[colDivisor+1] = '0' + byte(div%10)

	line[colStandard] = s.Standard.Code()
	if s.TestPattern {
		line[colTestFlag] = 'T'
	}

	return st
}

// renderFrequency writes "DDDD.DD" into a 7-byte cell window, blanking the
// leading zeros of the whole-MHz part the way an odometer would.
func renderFrequency(cells []byte, freq uint32) {
	whole := freq / 100
	frac := freq % 100

	cells[4] = '.'
	cells[5] = '0' + byte(frac/10)
	cells[6] = '0' + byte(frac%10)

	for i := 3; i >= 0; i-- {
		if whole == 0 && i < 3 {
			cells[i] = ' '
			continue
		}
		cells[i] = '0' + byte(whole%10)
		whole /= 10
	}
}
