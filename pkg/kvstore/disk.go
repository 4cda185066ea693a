package kvstore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DiskStore keeps one file per key under a root directory. Keys are hashed
// into filenames so arbitrary key characters never escape the root.
type DiskStore struct {
	root string
	mu   sync.Mutex
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (s *DiskStore) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.root, hex.EncodeToString(sum[:16])+".json")
}

func (s *DiskStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kvstore/disk: read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *DiskStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("kvstore/disk: mkdir: %w", err)
	}

	// Write-then-rename so a crash mid-write never leaves a torn snapshot.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("kvstore/disk: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("kvstore/disk: rename %s: %w", key, err)
	}
	return nil
}

func (s *DiskStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("kvstore/disk: delete %s: %w", key, err)
	}
	return nil
}
