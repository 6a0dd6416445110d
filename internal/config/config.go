// Package config is the controller's own configuration file (which bus, which
// addresses, which pins), distinct from the modulator settings the user edits
// from the front panel.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConnectorType identifies how the controller reaches the register bus.
type ConnectorType string

// StoreBackend identifies where the settings block is persisted.
type StoreBackend string

const (
	ConnectorI2C    ConnectorType = "i2c"
	ConnectorSerial ConnectorType = "serial"

	StoreEEPROM StoreBackend = "eeprom"
	StoreFile   StoreBackend = "file"

	DefaultSerialBaud   = 9600
	DefaultSettingsFile = "settings.bin"
)

// LoggingConfig defines runtime logging behavior.
type LoggingConfig struct {
	Level     string `json:"level"`
	LogToFile bool   `json:"log_to_file"`
	LogFile   string `json:"log_file"`
}

// BusConfig selects and parameterizes the register bus connector.
type BusConfig struct {
	Connector  ConnectorType `json:"connector"`
	I2CBus     string        `json:"i2c_bus"`
	SerialPort string        `json:"serial_port"`
	SerialBaud int           `json:"serial_baud"`
}

// DeviceConfig holds the bus addresses of the three peripherals. Zero means
// "use the part's default address".
type DeviceConfig struct {
	ModulatorAddr uint16 `json:"modulator_addr"`
	LCDAddr       uint16 `json:"lcd_addr"`
	EEPROMAddr    uint16 `json:"eeprom_addr"`
}

// ButtonsConfig names the GPIO pins of the three front-panel buttons.
type ButtonsConfig struct {
	ModePin string `json:"mode_pin"`
	UpPin   string `json:"up_pin"`
	DownPin string `json:"down_pin"`
}

// StoreConfig selects the settings block store.
type StoreConfig struct {
	Backend StoreBackend `json:"backend"`
	File    string       `json:"file"`
}

// AppConfig is the root persisted controller configuration.
type AppConfig struct {
	Bus     BusConfig     `json:"bus"`
	Device  DeviceConfig  `json:"device"`
	Buttons ButtonsConfig `json:"buttons"`
	Store   StoreConfig   `json:"store"`
	Logging LoggingConfig `json:"logging"`
}

func Default() AppConfig {
	return AppConfig{
		Bus: BusConfig{
			Connector:  ConnectorI2C,
			I2CBus:     "",
			SerialPort: "",
			SerialBaud: DefaultSerialBaud,
		},
		Device: DeviceConfig{},
		Buttons: ButtonsConfig{
			ModePin: "GPIO17",
			UpPin:   "GPIO27",
			DownPin: "GPIO22",
		},
		Store: StoreConfig{
			Backend: StoreEEPROM,
			File:    DefaultSettingsFile,
		},
		Logging: LoggingConfig{
			Level:     "info",
			LogToFile: false,
		},
	}
}

func Load(path string) (AppConfig, error) {
	cfg := Default()
	cleanPath := filepath.Clean(path)
	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(raw, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config json: %w", err)
	}

	cfg.FillMissingDefaults()

	return cfg, nil
}

func (c *AppConfig) FillMissingDefaults() {
	if c.Bus.Connector == "" {
		c.Bus.Connector = ConnectorI2C
	}
	if c.Bus.SerialBaud <= 0 {
		c.Bus.SerialBaud = DefaultSerialBaud
	}
	if c.Buttons.ModePin == "" {
		c.Buttons.ModePin = "GPIO17"
	}
	if c.Buttons.UpPin == "" {
		c.Buttons.UpPin = "GPIO27"
	}
	if c.Buttons.DownPin == "" {
		c.Buttons.DownPin = "GPIO22"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = StoreEEPROM
	}
	if c.Store.File == "" {
		c.Store.File = DefaultSettingsFile
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c AppConfig) Validate() error {
	switch c.Bus.Connector {
	case ConnectorI2C:
		// An empty bus name selects the first host bus.
	case ConnectorSerial:
		if strings.TrimSpace(c.Bus.SerialPort) == "" {
			return errors.New("serial port is required")
		}
		if c.Bus.SerialBaud <= 0 {
			return errors.New("serial baud must be positive")
		}
	default:
		return fmt.Errorf("unknown connector: %s", c.Bus.Connector)
	}

	switch c.Store.Backend {
	case StoreEEPROM:
	case StoreFile:
		if strings.TrimSpace(c.Store.File) == "" {
			return errors.New("settings file path is required")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", c.Store.Backend)
	}

	if c.Device.ModulatorAddr > 0x7F || c.Device.LCDAddr > 0x7F || c.Device.EEPROMAddr > 0x7F {
		return errors.New("device addresses must fit 7 bits")
	}

	return nil
}

func Save(path string, cfg AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0o600); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}

	return nil
}
