package app

import (
	"log/slog"
	"path/filepath"
	"testing"

	"rfmodctl/internal/display"
	"rfmodctl/internal/input"
	"rfmodctl/internal/modulator"
	"rfmodctl/internal/persistence"
	"rfmodctl/internal/tuner"
)

type fakeBus struct {
	frames [][]byte
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	b.frames = append(b.frames, append([]byte(nil), w...))
	return nil
}

func (b *fakeBus) Close() error { return nil }

type fakeSink struct {
	states []display.State
}

func (s *fakeSink) Show(st display.State) error {
	s.states = append(s.states, st)
	return nil
}

func (s *fakeSink) Close() error { return nil }

type queueSource struct {
	events []input.Event
}

func (q *queueSource) Poll() (input.Event, bool) {
	if len(q.events) == 0 {
		return input.Event{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

type harness struct {
	rt    *Runtime
	bus   *fakeBus
	sink  *fakeSink
	store *persistence.SettingsStore
}

func newHarness(t *testing.T, skipLoad bool) *harness {
	t.Helper()

	bus := &fakeBus{}
	sink := &fakeSink{}
	store := persistence.NewSettingsStore(
		persistence.NewFileStore(filepath.Join(t.TempDir(), "settings.bin")),
		slog.Default(),
	)

	rt := New(Options{
		Device:   modulator.NewDevice(bus, 0, slog.Default()),
		Sink:     sink,
		Store:    store,
		Source:   &queueSource{},
		SkipLoad: skipLoad,
		Logger:   slog.Default(),
	})

	return &harness{rt: rt, bus: bus, sink: sink, store: store}
}

func (h *harness) send(ev input.Event) {
	h.rt.dispatch(ev)
}

func TestStartupLoadsStoredSettings(t *testing.T) {
	h := newHarness(t, false)

	stored := tuner.Settings{TestPattern: false, Standard: tuner.StandardM, Frequency: 30325}
	if _, err := h.store.Save(stored); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	h.rt.loadSettings()
	if h.rt.Settings() != stored {
		t.Fatalf("loaded %+v, want %+v", h.rt.Settings(), stored)
	}
}

func TestStartupFallsBackToDefaults(t *testing.T) {
	h := newHarness(t, false)

	h.rt.loadSettings()
	if h.rt.Settings() != tuner.DefaultSettings() {
		t.Fatalf("settings %+v, want defaults", h.rt.Settings())
	}
}

func TestStartupSkipsLoadWhenModeHeld(t *testing.T) {
	h := newHarness(t, true)

	stored := tuner.Settings{TestPattern: false, Standard: tuner.StandardM, Frequency: 30325}
	if _, err := h.store.Save(stored); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	h.rt.loadSettings()
	if h.rt.Settings() != tuner.DefaultSettings() {
		t.Fatalf("settings %+v, want defaults", h.rt.Settings())
	}
}

func TestEditStepWriteSaveScenario(t *testing.T) {
	h := newHarness(t, false)
	h.rt.loadSettings()
	h.rt.apply()

	if len(h.bus.frames) != 1 || len(h.sink.states) != 1 {
		t.Fatalf("initial apply: %d frames, %d display updates", len(h.bus.frames), len(h.sink.states))
	}
	if h.sink.states[0].Cursor != display.CursorOff {
		t.Fatalf("idle cursor = %d, want hidden", h.sink.states[0].Cursor)
	}

	// Enter editing, step one channel up, leave editing.
	h.send(input.Event{Button: input.ButtonMode, Kind: input.LongPressed})
	h.send(input.Event{Button: input.ButtonUp, Kind: input.Released})
	h.send(input.Event{Button: input.ButtonMode, Kind: input.LongPressed})

	if got := h.rt.Settings().Frequency; got != 47925 {
		t.Fatalf("frequency after edit = %d, want 47925", got)
	}

	// Each mutation re-rendered and rewrote the registers immediately.
	if len(h.bus.frames) != 4 || len(h.sink.states) != 4 {
		t.Fatalf("got %d frames, %d display updates, want 4 each", len(h.bus.frames), len(h.sink.states))
	}
	if h.sink.states[1].Cursor != 2 {
		t.Fatalf("edit-channel cursor = %d, want 2", h.sink.states[1].Cursor)
	}

	// Leaving the edit cycle persisted the settings.
	loaded, err := h.store.Load()
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	if loaded != h.rt.Settings() {
		t.Fatalf("stored %+v, live %+v", loaded, h.rt.Settings())
	}
}

func TestUpInIdleDoesNothing(t *testing.T) {
	h := newHarness(t, false)
	h.rt.loadSettings()
	h.rt.apply()

	before := len(h.bus.frames)
	h.send(input.Event{Button: input.ButtonUp, Kind: input.Released})
	if len(h.bus.frames) != before {
		t.Fatalf("idle up event wrote registers")
	}
}
