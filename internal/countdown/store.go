// Package countdown persists named countdown targets in a JSON file under
// the data directory.
package countdown

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Item is one stored countdown target
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TargetDate string `json:"targetDate"` // ISO 8601
	Timezone   string `json:"timezone"`
	CreatedAt  string `json:"createdAt"`
}

// Store is a file-backed countdown list. Writes are serialized and
// whole-file replacements; a corrupt file reads as an empty list.
type Store struct {
	filePath string
	logger   *zap.Logger
	mu       sync.Mutex
}

// NewStore creates a Store persisting to <dataDir>/countdown.json
func NewStore(dataDir string, logger *zap.Logger) *Store {
	return &Store{
		filePath: filepath.Join(dataDir, "countdown.json"),
		logger:   logger,
	}
}

// NewID generates a countdown ID from the current time
func NewID() string {
	return "cd_" + strconv.FormatInt(time.Now().UnixMilli(), 36)
}

// List returns all stored items
func (s *Store) List() ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the item with the given ID
func (s *Store) Get(id string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return Item{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("countdown not found: %s", id)
}

// Put inserts the item, replacing any existing item with the same ID
func (s *Store) Put(item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}

	return s.save(items)
}

// Delete removes the item with the given ID and returns it
func (s *Store) Delete(id string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return Item{}, err
	}

	for i, item := range items {
		if item.ID == id {
			items = append(items[:i], items[i+1:]...)
			if err := s.save(items); err != nil {
				return Item{}, err
			}
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("countdown not found: %s", id)
}

func (s *Store) load() ([]Item, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("failed to read countdown file: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Countdown file unreadable, starting over",
			zap.String("file", s.filePath),
			zap.Error(err))
		return []Item{}, nil
	}
	return items, nil
}

func (s *Store) save(items []Item) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode countdown items: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write countdown file: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace countdown file: %w", err)
	}
	return nil
}
