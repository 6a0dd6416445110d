package input

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
)

type fakePin struct {
	level gpio.Level
}

func (p *fakePin) In(pull gpio.Pull, edge gpio.Edge) error { return nil }
func (p *fakePin) Read() gpio.Level                        { return p.level }

func (p *fakePin) press()   { p.level = gpio.Low }
func (p *fakePin) release() { p.level = gpio.High }

type fixture struct {
	src  *GPIOSource
	mode *fakePin
	up   *fakePin
	down *fakePin
	now  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		mode: &fakePin{level: gpio.High},
		up:   &fakePin{level: gpio.High},
		down: &fakePin{level: gpio.High},
		now:  time.Unix(0, 0),
	}

	src, err := newGPIO(func() time.Time { return f.now }, f.mode, f.up, f.down)
	if err != nil {
		t.Fatalf("newGPIO err=%v", err)
	}
	f.src = src

	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) drain() []Event {
	var evs []Event
	for {
		ev, ok := f.src.Poll()
		if !ok {
			return evs
		}
		evs = append(evs, ev)
	}
}

func TestShortPressEmitsPressedThenReleased(t *testing.T) {
	f := newFixture(t)

	f.advance(time.Second)
	f.up.press()
	evs := f.drain()
	if len(evs) != 1 || evs[0] != (Event{ButtonUp, Pressed}) {
		t.Fatalf("after press: %v", evs)
	}

	f.advance(100 * time.Millisecond)
	f.up.release()
	evs = f.drain()
	if len(evs) != 1 || evs[0] != (Event{ButtonUp, Released}) {
		t.Fatalf("after release: %v", evs)
	}
}

func TestLongPressSuppressesReleased(t *testing.T) {
	f := newFixture(t)

	f.advance(time.Second)
	f.mode.press()
	f.drain()

	f.advance(800 * time.Millisecond)
	evs := f.drain()
	if len(evs) != 1 || evs[0] != (Event{ButtonMode, LongPressed}) {
		t.Fatalf("after hold: %v", evs)
	}

	f.advance(50 * time.Millisecond)
	f.mode.release()
	if evs := f.drain(); len(evs) != 0 {
		t.Fatalf("release after long press produced %v", evs)
	}
}

func TestHeldButtonRepeats(t *testing.T) {
	f := newFixture(t)

	f.advance(time.Second)
	f.down.press()
	f.drain()

	f.advance(longPressAfter)
	f.drain() // LongPressed

	var repeats int
	for i := 0; i < 3; i++ {
		f.advance(repeatEvery)
		for _, ev := range f.drain() {
			if ev != (Event{ButtonDown, RepeatPressed}) {
				t.Fatalf("unexpected event %v", ev)
			}
			repeats++
		}
	}
	if repeats != 3 {
		t.Fatalf("got %d repeats, want 3", repeats)
	}
}

func TestContactBounceIsFiltered(t *testing.T) {
	f := newFixture(t)

	f.advance(time.Second)
	f.up.press()
	f.drain()

	// A release edge inside the debounce window must not register.
	f.advance(5 * time.Millisecond)
	f.up.release()
	if evs := f.drain(); len(evs) != 0 {
		t.Fatalf("bounce produced %v", evs)
	}
	f.up.press()

	f.advance(100 * time.Millisecond)
	f.up.release()
	evs := f.drain()
	if len(evs) != 1 || evs[0] != (Event{ButtonUp, Released}) {
		t.Fatalf("after settled release: %v", evs)
	}
}

func TestModeHeld(t *testing.T) {
	f := newFixture(t)

	if f.src.ModeHeld() {
		t.Fatalf("ModeHeld true with button up")
	}
	f.mode.press()
	if !f.src.ModeHeld() {
		t.Fatalf("ModeHeld false with button down")
	}
}
