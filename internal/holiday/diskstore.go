package holiday

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore is the durable cache tier: one JSON file per (country, year)
// under <dataDir>/cache/holidays. Files are never expired; writes are
// whole-file replacements via atomic rename.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a DiskStore rooted at the data directory
func NewDiskStore(dataDir string) *DiskStore {
	return &DiskStore{
		dir: filepath.Join(dataDir, "cache", "holidays"),
	}
}

func (s *DiskStore) filePath(country string, year int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-%d.json", country, year))
}

// Read loads the cached records for (country, year). A missing or
// unparseable file is an error; callers treat any error as a cache miss.
func (s *DiskStore) Read(country string, year int) ([]Record, error) {
	data, err := os.ReadFile(s.filePath(country, year))
	if err != nil {
		return nil, fmt.Errorf("failed to read holiday cache file: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse holiday cache file: %w", err)
	}

	return records, nil
}

// Write replaces the cached records for (country, year), creating the cache
// directory on first use. The temp-file rename keeps a crash mid-write from
// leaving a truncated cache file behind.
func (s *DiskStore) Write(country string, year int, records []Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create holiday cache dir: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode holiday records: %w", err)
	}

	target := s.filePath(country, year)
	tmp, err := os.CreateTemp(s.dir, fmt.Sprintf(".%s-%d-*", country, year))
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}

// Exists reports whether a durable cache file is present for (country, year)
func (s *DiskStore) Exists(country string, year int) bool {
	_, err := os.Stat(s.filePath(country, year))
	return err == nil
}
