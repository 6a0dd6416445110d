package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"rfmodctl/internal/app"
	"rfmodctl/internal/config"
	"rfmodctl/internal/display"
	"rfmodctl/internal/input"
	"rfmodctl/internal/logging"
	"rfmodctl/internal/modulator"
	"rfmodctl/internal/persistence"
	"rfmodctl/internal/transport"
)

func main() {
	if err := run(); err != nil {
		slog.Error("run rfmodctl", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "rfmodctl.json", "controller config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	logMgr := logging.NewManager()
	if err := logMgr.Configure(cfg.Logging); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer func() {
		if closeErr := logMgr.Close(); closeErr != nil {
			slog.Warn("close log manager", "error", closeErr)
		}
	}()
	logger := logMgr.Logger("main")

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("init periph host: %w", err)
	}

	bus, err := openBus(cfg.Bus)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := bus.Close(); closeErr != nil {
			logger.Warn("close bus", "error", closeErr)
		}
	}()

	dev := modulator.NewDevice(bus, cfg.Device.ModulatorAddr, logMgr.Logger("modulator"))

	lcd, err := display.NewLCD(bus, cfg.Device.LCDAddr)
	if err != nil {
		return fmt.Errorf("open lcd: %w", err)
	}
	defer func() {
		if closeErr := lcd.Close(); closeErr != nil {
			logger.Warn("close lcd", "error", closeErr)
		}
	}()

	source, err := openButtons(cfg.Buttons)
	if err != nil {
		return err
	}

	store := persistence.NewSettingsStore(openBlockStore(cfg, bus), logMgr.Logger("persistence"))
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("close settings store", "error", closeErr)
		}
	}()

	rt := app.New(app.Options{
		Device:   dev,
		Sink:     lcd,
		Store:    store,
		Source:   source,
		SkipLoad: source.ModeHeld(),
		Logger:   logMgr.Logger("loop"),
	})

	logger.Info("starting rfmodctl", "connector", string(cfg.Bus.Connector))

	return rt.Run(ctx)
}

func openBus(cfg config.BusConfig) (transport.Bus, error) {
	switch cfg.Connector {
	case config.ConnectorSerial:
		bus, err := transport.OpenSerialBridge(cfg.SerialPort, cfg.SerialBaud)
		if err != nil {
			return nil, fmt.Errorf("open serial bridge: %w", err)
		}
		return bus, nil
	default:
		bus, err := transport.OpenI2C(cfg.I2CBus)
		if err != nil {
			return nil, fmt.Errorf("open i2c: %w", err)
		}
		return bus, nil
	}
}

func openButtons(cfg config.ButtonsConfig) (*input.GPIOSource, error) {
	pins := make(map[string]string, 3)
	pins["mode"] = cfg.ModePin
	pins["up"] = cfg.UpPin
	pins["down"] = cfg.DownPin
	for role, name := range pins {
		if gpioreg.ByName(name) == nil {
			return nil, fmt.Errorf("unknown %s button pin: %q", role, name)
		}
	}

	return input.NewGPIO(
		gpioreg.ByName(cfg.ModePin),
		gpioreg.ByName(cfg.UpPin),
		gpioreg.ByName(cfg.DownPin),
	)
}

func openBlockStore(cfg config.AppConfig, bus transport.Bus) persistence.BlockStore {
	if cfg.Store.Backend == config.StoreFile {
		return persistence.NewFileStore(cfg.Store.File)
	}

	return persistence.NewEEPROMStore(bus, cfg.Device.EEPROMAddr)
}
