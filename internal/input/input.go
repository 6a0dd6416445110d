// Package input turns raw button hardware into discrete, debounced events
// the control loop polls synchronously. There is no callback registration:
// sources queue events and hand them out one per Poll.
package input

import "fmt"

// Button identifies which of the three front-panel buttons an event is for.
type Button int

const (
	ButtonMode Button = iota
	ButtonUp
	ButtonDown
)

func (b Button) String() string {
	switch b {
	case ButtonMode:
		return "mode"
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}

// Kind is the debounced gesture a button produced.
type Kind int

const (
	// Pressed fires on the debounced press edge.
	Pressed Kind = iota
	// Released fires on release of a short press only; a press that grew
	// into a long press does not also produce a Released.
	Released
	// LongPressed fires once when a press crosses the hold threshold.
	LongPressed
	// RepeatPressed fires periodically while a long press is held.
	RepeatPressed
)

func (k Kind) String() string {
	switch k {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case LongPressed:
		return "long-pressed"
	case RepeatPressed:
		return "repeat"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is one debounced button gesture.
type Event struct {
	Button Button
	Kind   Kind
}

// Source delivers pending events in the order they occurred. Poll never
// blocks; ok is false when nothing is pending.
type Source interface {
	Poll() (ev Event, ok bool)
}
