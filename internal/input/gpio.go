package input

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Gesture timing. The repeat cadence matches the feel of the original
// front panel: ~3 steps per second once a direction button is held.
const (
	debouncePeriod = 20 * time.Millisecond
	longPressAfter = 700 * time.Millisecond
	repeatEvery    = 300 * time.Millisecond
)

// pin is the slice of gpio.PinIO the source actually needs.
type pin interface {
	In(pull gpio.Pull, edge gpio.Edge) error
	Read() gpio.Level
}

// GPIOSource samples three active-low buttons wired to ground, with the
// line pulled up. Call Poll from the control loop; each call samples the
// pins once and drains at most one queued event.
type GPIOSource struct {
	now     func() time.Time
	buttons []*buttonState
	queue   []Event
}

type buttonState struct {
	button     Button
	pin        pin
	pressed    bool
	lastEdge   time.Time
	pressedAt  time.Time
	longSent   bool
	nextRepeat time.Time
}

// NewGPIO configures the three button pins as pulled-up inputs.
func NewGPIO(mode, up, down gpio.PinIO) (*GPIOSource, error) {
	return newGPIO(time.Now, mode, up, down)
}

func newGPIO(now func() time.Time, mode, up, down pin) (*GPIOSource, error) {
	s := &GPIOSource{now: now}
	for _, b := range []struct {
		button Button
		pin    pin
	}{
		{ButtonMode, mode},
		{ButtonUp, up},
		{ButtonDown, down},
	} {
		if err := b.pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("configure %s button pin: %w", b.button, err)
		}
		s.buttons = append(s.buttons, &buttonState{button: b.button, pin: b.pin})
	}

	return s, nil
}

// ModeHeld reports whether the mode button is down right now. Sampled once
// before the control loop starts to decide whether to skip the settings load.
func (s *GPIOSource) ModeHeld() bool {
	return s.buttons[0].pin.Read() == gpio.Low
}

func (s *GPIOSource) Poll() (Event, bool) {
	if len(s.queue) == 0 {
		s.sample()
	}
	if len(s.queue) == 0 {
		return Event{}, false
	}

	ev := s.queue[0]
	s.queue = s.queue[1:]

	return ev, true
}

func (s *GPIOSource) sample() {
	now := s.now()
	for _, b := range s.buttons {
		s.sampleButton(b, now)
	}
}

func (s *GPIOSource) sampleButton(b *buttonState, now time.Time) {
	down := b.pin.Read() == gpio.Low

	if down != b.pressed {
		if now.Sub(b.lastEdge) < debouncePeriod {
			return
		}
		b.lastEdge = now
		b.pressed = down

		if down {
			b.pressedAt = now
			b.longSent = false
			s.queue = append(s.queue, Event{Button: b.button, Kind: Pressed})
		} else if !b.longSent {
			s.queue = append(s.queue, Event{Button: b.button, Kind: Released})
		}

		return
	}

	if !b.pressed {
		return
	}

	if !b.longSent {
		if now.Sub(b.pressedAt) >= longPressAfter {
			b.longSent = true
			b.nextRepeat = now.Add(repeatEvery)
			s.queue = append(s.queue, Event{Button: b.button, Kind: LongPressed})
		}
		return
	}

	if !now.Before(b.nextRepeat) {
		b.nextRepeat = now.Add(repeatEvery)
		s.queue = append(s.queue, Event{Button: b.button, Kind: RepeatPressed})
	}
}
