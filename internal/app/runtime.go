// Package app wires the controller together and runs the single cooperative
// control loop: poll input, mutate settings, push registers and display.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rfmodctl/internal/display"
	"rfmodctl/internal/input"
	"rfmodctl/internal/modulator"
	"rfmodctl/internal/persistence"
	"rfmodctl/internal/tuner"
	"rfmodctl/internal/ui"
)

const defaultPollInterval = 5 * time.Millisecond

// Runtime owns the live settings and the collaborators around them. All
// state is touched only from Run's goroutine; there is no locking because
// there is nothing to lock against.
type Runtime struct {
	settings tuner.Settings
	machine  *ui.StateMachine

	device *modulator.Device
	sink   display.Sink
	store  *persistence.SettingsStore
	source input.Source

	pollInterval time.Duration
	skipLoad     bool
	logger       *slog.Logger
}

// Options collects the collaborators the loop drives.
type Options struct {
	Device *modulator.Device
	Sink   display.Sink
	Store  *persistence.SettingsStore
	Source input.Source

	// SkipLoad skips the startup settings load (mode button held at
	// power-on) and starts from built-in defaults.
	SkipLoad bool

	// PollInterval overrides the input poll cadence; zero keeps the default.
	PollInterval time.Duration

	Logger *slog.Logger
}

func New(opts Options) *Runtime {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	return &Runtime{
		settings:     tuner.DefaultSettings(),
		machine:      ui.New(opts.Logger),
		device:       opts.Device,
		sink:         opts.Sink,
		store:        opts.Store,
		source:       opts.Source,
		pollInterval: interval,
		skipLoad:     opts.SkipLoad,
		logger:       opts.Logger,
	}
}

// Settings returns the live configuration. Only meaningful from the loop's
// own goroutine or before/after Run.
func (r *Runtime) Settings() tuner.Settings {
	return r.settings
}

// Run performs the startup load, applies the initial state to the hardware
// and then polls for input until the context ends.
func (r *Runtime) Run(ctx context.Context) error {
	r.loadSettings()
	r.apply()

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("control loop stopping")
			return nil
		case <-ticker.C:
			for {
				ev, ok := r.source.Poll()
				if !ok {
					break
				}
				r.dispatch(ev)
			}
		}
	}
}

func (r *Runtime) loadSettings() {
	if r.skipLoad {
		r.logger.Info("mode button held at power-on, using defaults")
		return
	}

	loaded, err := r.store.Load()
	if err != nil {
		if errors.Is(err, persistence.ErrCorruptBlock) {
			r.logger.Info("no stored settings, using defaults")
			return
		}
		r.logger.Warn("settings load failed, using defaults", "error", err)
		return
	}

	r.settings = loaded
	r.logger.Info("settings restored",
		"frequency", loaded.Frequency,
		"standard", loaded.Standard.String(),
		"test_pattern", loaded.TestPattern,
	)
}

func (r *Runtime) dispatch(ev input.Event) {
	r.logger.Debug("input event", "button", ev.Button.String(), "kind", ev.Kind.String())

	eff := r.machine.Handle(ev, &r.settings)
	if eff.Save {
		if _, err := r.store.Save(r.settings); err != nil {
			r.logger.Warn("settings save failed", "error", err)
		}
	}
	if eff.Changed {
		r.apply()
	}
}

// apply pushes the current state to the chip and the display. Both writes
// are fire-and-forget: failures are logged and never retried.
func (r *Runtime) apply() {
	if err := r.device.Apply(r.settings); err != nil {
		r.logger.Warn("modulator write failed", "error", err)
	}

	st := display.Render(r.settings, r.machine.Mode().CursorColumn())
	if err := r.sink.Show(st); err != nil {
		r.logger.Warn("display write failed", "error", err)
	}
}
