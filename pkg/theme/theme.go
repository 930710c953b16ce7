// Package theme persists the light/dark preference.
package theme

import (
	"fmt"
	"log/slog"

	"github.com/dtnitsch/web-content-extractor/pkg/kvstore"
)

// StorageKey is the key the preference lives under.
const StorageKey = "theme"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Parse maps a stored value to a theme; anything unknown is light.
func Parse(s string) Theme {
	if Theme(s) == Dark {
		return Dark
	}
	return Light
}

// Store reads and writes the preference.
type Store struct {
	kv     kvstore.Store
	logger *slog.Logger
}

func NewStore(kv kvstore.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Load returns the saved theme, light when absent or unreadable.
func (s *Store) Load() Theme {
	v, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Error("failed to read theme", "error", err)
		return Light
	}
	if !ok {
		return Light
	}
	return Parse(v)
}

// Save writes the theme.
func (s *Store) Save(t Theme) error {
	if err := s.kv.Set(StorageKey, string(t)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
