// Package caching keeps fetched page bodies on disk for a limited time so
// repeated extractions of the same URL skip the network.
package caching

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is a file-per-URL store whose entries expire after ttl. A ttl of
// zero or less disables caching.
type Cache struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

// NewCache creates the cache directory if needed.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{path: path, ttl: ttl, now: time.Now}, nil
}

func (c *Cache) file(url string) string {
	hash := sha256.Sum256([]byte(url))
	return filepath.Join(c.path, hex.EncodeToString(hash[:])+".html")
}

// Get returns the cached body for url if it exists and has not expired.
func (c *Cache) Get(url string) ([]byte, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	path := c.file(url)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if c.now().Sub(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data for url.
func (c *Cache) Set(url string, data []byte) error {
	if c == nil || c.ttl <= 0 {
		return nil
	}
	if err := os.WriteFile(c.file(url), data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Evict removes the entry for url, if any.
func (c *Cache) Evict(url string) error {
	if c == nil {
		return nil
	}
	if err := os.Remove(c.file(url)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to evict cache entry: %w", err)
	}
	return nil
}
