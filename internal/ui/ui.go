// Package ui is the front-panel state machine: it tracks which field is
// being edited and turns button events into settings mutations. It owns no
// I/O; the control loop acts on the effects it returns.
package ui

import (
	"fmt"
	"log/slog"

	"rfmodctl/internal/input"
	"rfmodctl/internal/tuner"
)

// Mode says which field the up/down buttons currently edit.
type Mode int

const (
	ModeIdle Mode = iota
	ModeEditChannel
	ModeEditStandard
	ModeEditTestPattern
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeEditChannel:
		return "edit-channel"
	case ModeEditStandard:
		return "edit-standard"
	case ModeEditTestPattern:
		return "edit-test-pattern"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Editing reports whether any field is open for editing.
func (m Mode) Editing() bool {
	return m != ModeIdle
}

// CursorColumn is where the display cursor sits in this mode. Idle parks it
// past the last column, which hides it.
func (m Mode) CursorColumn() int {
	switch m {
	case ModeEditChannel:
		return 2
	case ModeEditStandard:
		return 14
	case ModeEditTestPattern:
		return 15
	default:
		return 16
	}
}

// Effect tells the control loop what a handled event requires: a re-render
// plus register write, and/or a settings save.
type Effect struct {
	Changed bool
	Save    bool
}

// StateMachine interprets input events against the current mode.
type StateMachine struct {
	mode   Mode
	logger *slog.Logger
}

func New(logger *slog.Logger) *StateMachine {
	return &StateMachine{mode: ModeIdle, logger: logger}
}

func (m *StateMachine) Mode() Mode {
	return m.mode
}

// Handle applies one event to the settings. A long press of the mode button
// toggles between idle and the edit cycle; leaving the cycle asks for a
// save. Short mode presses advance the edited field; up/down (and their
// hold-repeats) mutate the field under the cursor.
func (m *StateMachine) Handle(ev input.Event, s *tuner.Settings) Effect {
	switch ev.Button {
	case input.ButtonMode:
		return m.handleMode(ev.Kind)
	case input.ButtonUp:
		return m.handleStep(ev.Kind, s, true)
	case input.ButtonDown:
		return m.handleStep(ev.Kind, s, false)
	default:
		return Effect{}
	}
}

func (m *StateMachine) handleMode(kind input.Kind) Effect {
	switch kind {
	case input.LongPressed:
		if !m.mode.Editing() {
			m.setMode(ModeEditChannel)
			return Effect{Changed: true}
		}
		m.setMode(ModeIdle)
		return Effect{Changed: true, Save: true}

	case input.Released:
		if !m.mode.Editing() {
			return Effect{}
		}
		switch m.mode {
		case ModeEditChannel:
			m.setMode(ModeEditStandard)
		case ModeEditStandard:
			m.setMode(ModeEditTestPattern)
		case ModeEditTestPattern:
			m.setMode(ModeEditChannel)
		}
		return Effect{Changed: true}

	default:
		return Effect{}
	}
}

func (m *StateMachine) handleStep(kind input.Kind, s *tuner.Settings, up bool) Effect {
	if kind != input.Released && kind != input.RepeatPressed {
		return Effect{}
	}

	switch m.mode {
	case ModeEditChannel:
		if up {
			s.Frequency = tuner.StepUp(s.Frequency)
		} else {
			s.Frequency = tuner.StepDown(s.Frequency)
		}
	case ModeEditStandard:
		if up {
			s.Standard = s.Standard.Next()
		} else {
			s.Standard = s.Standard.Prev()
		}
	case ModeEditTestPattern:
		// Two-state field: both directions toggle.
		s.TestPattern = !s.TestPattern
	default:
		return Effect{}
	}

	return Effect{Changed: true}
}

func (m *StateMachine) setMode(mode Mode) {
	m.logger.Debug("mode change", "from", m.mode.String(), "to", mode.String())
	m.mode = mode
}
