package mobile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
)

// ErrNotPaired means no gateway address has been saved yet
var ErrNotPaired = errors.New("no paired gateway")

// PairingStore persists the scanned gateway address between app launches
type PairingStore struct {
	Path string
	mu   sync.Mutex
}

// NewPairingStore creates a store backed by the file at path
func NewPairingStore(path string) *PairingStore {
	return &PairingStore{Path: path}
}

// Pair parses a scanned QR payload and saves it. Invalid payloads leave the saved address untouched.
func (s *PairingStore) Pair(payload string) (models.PairingDescriptor, error) {
	d, err := models.ParsePairingDescriptor(payload)
	if err != nil {
		return models.PairingDescriptor{}, err
	}
	if err := s.Save(d); err != nil {
		return models.PairingDescriptor{}, err
	}
	return d, nil
}

// Save writes d, replacing any previous address
func (s *PairingStore) Save(d models.PairingDescriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create pairing dir: %w", err)
	}
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write pairing file: %w", err)
	}
	return os.Rename(tmp, s.Path)
}

// Load returns the saved address or ErrNotPaired
func (s *PairingStore) Load() (models.PairingDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return models.PairingDescriptor{}, ErrNotPaired
	}
	if err != nil {
		return models.PairingDescriptor{}, fmt.Errorf("read pairing file: %w", err)
	}

	d, err := models.ParsePairingDescriptor(string(data))
	if err != nil {
		return models.PairingDescriptor{}, err
	}
	return d, nil
}

// Forget removes the saved address
func (s *PairingStore) Forget() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
