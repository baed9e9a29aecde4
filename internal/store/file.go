// internal/store/file.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jason-s-yu/uno/internal/models"
)

// File names served to the browser front-end alongside the static files.
const (
	HandFile         = "hand.json"
	OpponentHandFile = "opponent_hand.json"
	TopCardFile      = "topcard.json"
)

// FileStore writes a deal as three JSON files in Dir.
type FileStore struct {
	Dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) SaveDeal(_ context.Context, d models.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := []struct {
		name string
		v    interface{}
	}{
		{HandFile, d.PlayerHand},
		{OpponentHandFile, d.OpponentHand},
		{TopCardFile, d.TopCard},
	}
	for _, doc := range docs {
		if err := writeJSONFile(filepath.Join(s.Dir, doc.name), doc.v); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) LoadDeal(_ context.Context) (models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var d models.Deal
	if err := readJSONFile(filepath.Join(s.Dir, HandFile), &d.PlayerHand); err != nil {
		return models.Deal{}, err
	}
	if err := readJSONFile(filepath.Join(s.Dir, OpponentHandFile), &d.OpponentHand); err != nil {
		return models.Deal{}, err
	}
	if err := readJSONFile(filepath.Join(s.Dir, TopCardFile), &d.TopCard); err != nil {
		return models.Deal{}, err
	}
	return d, nil
}

func (s *FileStore) Close() error { return nil }

// writeJSONFile writes through a temp file and rename so readers never see a half-written document.
func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNoDeal
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
