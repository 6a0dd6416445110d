package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFillMissingDefaults(t *testing.T) {
	cfg := AppConfig{}
	cfg.FillMissingDefaults()

	if cfg.Bus.Connector != ConnectorI2C {
		t.Fatalf("expected default connector %q, got %q", ConnectorI2C, cfg.Bus.Connector)
	}
	if cfg.Bus.SerialBaud != DefaultSerialBaud {
		t.Fatalf("expected default serial baud %d, got %d", DefaultSerialBaud, cfg.Bus.SerialBaud)
	}
	if cfg.Store.Backend != StoreEEPROM {
		t.Fatalf("expected default store backend %q, got %q", StoreEEPROM, cfg.Store.Backend)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Logging.Level)
	}
	if cfg.Buttons.ModePin == "" || cfg.Buttons.UpPin == "" || cfg.Buttons.DownPin == "" {
		t.Fatalf("expected default button pins, got %+v", cfg.Buttons)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialFileFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
  "bus": {
    "connector": "serial",
    "serial_port": "/dev/ttyUSB0"
  }
}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Bus.Connector != ConnectorSerial {
		t.Fatalf("connector = %q", cfg.Bus.Connector)
	}
	if cfg.Bus.SerialBaud != DefaultSerialBaud {
		t.Fatalf("serial baud = %d, want default", cfg.Bus.SerialBaud)
	}
	if cfg.Store.Backend != StoreEEPROM {
		t.Fatalf("store backend = %q, want default", cfg.Store.Backend)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg.Bus.Connector = ConnectorSerial
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for serial connector without port")
	}
	cfg.Bus.SerialPort = "/dev/ttyUSB0"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("serial config invalid: %v", err)
	}

	cfg.Device.LCDAddr = 0x99
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for 8-bit device address")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Bus.Connector = ConnectorSerial
	cfg.Bus.SerialPort = "/dev/ttyAMA0"
	cfg.Device.ModulatorAddr = 0x65
	cfg.Store.Backend = StoreFile

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip %+v -> %+v", cfg, got)
	}
}
