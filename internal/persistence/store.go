package persistence

import (
	"log/slog"

	"rfmodctl/internal/tuner"
)

// BlockStore moves the raw settings block to and from its fixed offset.
// Implementations report I/O trouble; integrity is the codec's job.
type BlockStore interface {
	ReadBlock(buf []byte) error
	WriteBlock(data []byte) error
	Close() error
}

// SettingsStore is the ConfigurationStore: encode-and-write on save, read-
// verify-decode on load.
type SettingsStore struct {
	store  BlockStore
	logger *slog.Logger
}

func NewSettingsStore(store BlockStore, logger *slog.Logger) *SettingsStore {
	return &SettingsStore{store: store, logger: logger}
}

// Save writes the settings block and returns the number of bytes written.
func (s *SettingsStore) Save(set tuner.Settings) (int, error) {
	block := EncodeBlock(set)
	if err := s.store.WriteBlock(block[:]); err != nil {
		return 0, err
	}

	s.logger.Info("settings saved",
		"frequency", set.Frequency,
		"standard", set.Standard.String(),
		"test_pattern", set.TestPattern,
	)

	return BlockSize, nil
}

// Load reads and verifies the stored block. Any failure, whether an I/O
// error, a missing block or a bad checksum, comes back as ErrCorruptBlock;
// the caller substitutes defaults.
func (s *SettingsStore) Load() (tuner.Settings, error) {
	var buf [BlockSize]byte
	if err := s.store.ReadBlock(buf[:]); err != nil {
		s.logger.Debug("settings block unreadable", "error", err)
		return tuner.Settings{}, ErrCorruptBlock
	}

	return DecodeBlock(buf[:])
}

func (s *SettingsStore) Close() error {
	return s.store.Close()
}
