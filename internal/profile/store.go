// internal/profile/store.go
package profile

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	profileObject   = "profile"
	profileProperty = "data.yaml"
)

// ErrNotFound is returned by Load when no profile was saved yet.
var ErrNotFound = errors.New("profile not found")

// Store persists a profile.
type Store interface {
	Load() (*Profile, error)
	Save(p *Profile) error
}

// GDataStore хранит профиль через gdata в YAML.
type GDataStore struct {
	manager *gdata.Manager
}

// OpenGDataStore opens the platform data directory for appName.
func OpenGDataStore(appName string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata for %s: %w", appName, err)
	}
	return &GDataStore{manager: m}, nil
}

// NewGDataStore wraps an existing manager.
func NewGDataStore(m *gdata.Manager) *GDataStore {
	return &GDataStore{manager: m}
}

func (s *GDataStore) Load() (*Profile, error) {
	if !s.manager.ObjectPropExists(profileObject, profileProperty) {
		return nil, ErrNotFound
	}
	data, err := s.manager.LoadObjectProp(profileObject, profileProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	p.ensureMaps()
	return &p, nil
}

func (s *GDataStore) Save(p *Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := s.manager.SaveObjectProp(profileObject, profileProperty, data); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// MemoryStore keeps the profile in memory. Used in tests and headless runs.
type MemoryStore struct {
	mu    sync.Mutex
	saved *Profile
	saves int
}

func (s *MemoryStore) Load() (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		return nil, ErrNotFound
	}
	c := s.saved.Clone()
	return &c, nil
}

func (s *MemoryStore) Save(p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := p.Clone()
	s.saved = &c
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// LoadOrNew loads the profile or creates a fresh one when nothing is saved
// or the saved data is unreadable.
func LoadOrNew(s Store, name string) *Profile {
	p, err := s.Load()
	if err == nil {
		return p
	}
	if !errors.Is(err, ErrNotFound) {
		log.Printf("Profile: %v (starting fresh)", err)
	}
	return New(name)
}
