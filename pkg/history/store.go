// Package history keeps the list of completed extractions, most recent first,
// mirrored write-through into a key-value store.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/kvstore"
)

const (
	// StorageKey is the key the serialized history lives under.
	StorageKey = "extraction-history"
	// MaxItems caps the history length.
	MaxItems = 50
)

var ErrNotFound = errors.New("history item not found")

// Store holds the in-memory history and persists every mutation.
type Store struct {
	mu     sync.RWMutex
	kv     kvstore.Store
	items  []models.HistoryItem
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(kv kvstore.Store, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{kv: kv, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted history. A missing value means no history; a value
// that cannot be read or parsed is logged and treated the same way.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil

	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Error("failed to read history", "error", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var items []models.HistoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Error("failed to load history", "error", err)
		return
	}
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	s.items = items
	s.logger.Debug("history loaded", "items", len(items))
}

// Record prepends a new item for a completed extraction and persists the
// truncated list. On a storage failure the in-memory list is left unchanged.
func (s *Store) Record(req models.ExtractionRequest, resp models.NormalizedAgentResponse) (models.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.NewHistoryItem(req, resp, s.now())

	next := make([]models.HistoryItem, 0, min(len(s.items)+1, MaxItems))
	next = append(next, item)
	next = append(next, s.items...)
	if len(next) > MaxItems {
		next = next[:MaxItems]
	}

	if err := s.persist(next); err != nil {
		return models.HistoryItem{}, err
	}
	s.items = next
	return item, nil
}

// Items returns a copy of the history, most recent first.
func (s *Store) Items() []models.HistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.HistoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of stored items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (models.HistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.HistoryItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Clear removes every item and erases the persisted value.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(StorageKey); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	s.items = nil
	return nil
}

func (s *Store) persist(items []models.HistoryItem) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}
