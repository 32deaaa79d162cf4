// Package prefs persists window frontend preferences between launches.
// Data lives in the per-user application data directory managed by gdata,
// serialized as YAML.
package prefs

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application directory name.
const AppName = "tui-flappy"

const (
	object   = "settings"
	property = "gui"
)

// Settings are the preferences remembered by the window frontend.
type Settings struct {
	Muted       bool    `yaml:"muted"`
	Volume      float64 `yaml:"volume"` // 0.0 ~ 1.0
	Scale       float64 `yaml:"scale"`
	LastVariant string  `yaml:"last_variant"`
}

// Defaults returns the settings used before anything is saved.
func Defaults() Settings {
	return Settings{Volume: 0.8, Scale: 1}
}

// Backend is the subset of *gdata.Manager the store needs.
type Backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// Store loads and saves Settings. A Store with no backend keeps settings
// in memory only.
type Store struct {
	backend  Backend
	settings Settings
}

// Open opens the gdata-backed store for AppName. When the data directory is
// unavailable the returned store works in memory and err says why.
func Open() (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return New(nil), fmt.Errorf("prefs: %w", err)
	}
	return New(m), nil
}

// New creates a store on top of backend, which may be nil.
func New(backend Backend) *Store {
	return &Store{backend: backend, settings: Defaults()}
}

// Load reads saved settings. Missing data leaves the defaults in place.
func (s *Store) Load() error {
	s.settings = Defaults()
	if s.backend == nil || !s.backend.ObjectPropExists(object, property) {
		return nil
	}

	data, err := s.backend.LoadObjectProp(object, property)
	if err != nil {
		return fmt.Errorf("prefs: cannot load settings: %w", err)
	}

	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("prefs: cannot parse settings: %w", err)
	}
	s.settings = loaded.normalized()
	return nil
}

// Save writes the current settings. Without a backend it does nothing.
func (s *Store) Save() error {
	if s.backend == nil {
		return nil
	}

	data, err := yaml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("prefs: cannot encode settings: %w", err)
	}
	if err := s.backend.SaveObjectProp(object, property, data); err != nil {
		return fmt.Errorf("prefs: cannot save settings: %w", err)
	}
	return nil
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	return s.settings
}

// Update applies fn to the settings in memory. Call Save to persist.
func (s *Store) Update(fn func(*Settings)) {
	fn(&s.settings)
	s.settings = s.settings.normalized()
}

// normalized clamps values written by hand or by older versions.
func (st Settings) normalized() Settings {
	if st.Volume < 0 {
		st.Volume = 0
	}
	if st.Volume > 1 {
		st.Volume = 1
	}
	if st.Scale <= 0 {
		st.Scale = 1
	}
	return st
}
