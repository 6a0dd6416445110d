package persistence

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the settings block in a plain file, for bench setups
// without an EEPROM. Writes go through a temp file and rename so a power cut
// mid-save leaves the previous block intact.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

func (f *FileStore) ReadBlock(buf []byte) error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}
	if len(raw) != len(buf) {
		return fmt.Errorf("settings file is %d bytes, want %d", len(raw), len(buf))
	}
	copy(buf, raw)

	return nil
}

func (f *FileStore) WriteBlock(data []byte) error {
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write temp settings file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

func (f *FileStore) Close() error {
	return nil
}
