package prefs

import (
	"errors"
	"testing"
)

// memBackend keeps props in a map.
type memBackend struct {
	props   map[string][]byte
	saveErr error
}

func newMemBackend() *memBackend {
	return &memBackend{props: make(map[string][]byte)}
}

func (m *memBackend) ObjectPropExists(o, p string) bool {
	_, ok := m.props[o+"/"+p]
	return ok
}

func (m *memBackend) LoadObjectProp(o, p string) ([]byte, error) {
	data, ok := m.props[o+"/"+p]
	if !ok {
		return nil, errors.New("missing")
	}
	return data, nil
}

func (m *memBackend) SaveObjectProp(o, p string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.props[o+"/"+p] = data
	return nil
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	s := New(newMemBackend())
	if err := s.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.Get() != Defaults() {
		t.Errorf("Expected defaults, got %+v", s.Get())
	}
}

func TestSaveAndReload(t *testing.T) {
	backend := newMemBackend()

	s := New(backend)
	s.Update(func(st *Settings) {
		st.Muted = true
		st.Scale = 1.5
		st.LastVariant = "flappy_floor"
	})
	if err := s.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	again := New(backend)
	if err := again.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	got := again.Get()
	if !got.Muted || got.Scale != 1.5 || got.LastVariant != "flappy_floor" {
		t.Errorf("Reloaded settings = %+v", got)
	}
}

func TestUpdateNormalizes(t *testing.T) {
	s := New(nil)
	s.Update(func(st *Settings) {
		st.Volume = 3
		st.Scale = -1
	})

	got := s.Get()
	if got.Volume != 1 || got.Scale != 1 {
		t.Errorf("Expected clamped settings, got %+v", got)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	backend := newMemBackend()
	backend.props[object+"/"+property] = []byte("muted: [")

	s := New(backend)
	if err := s.Load(); err == nil {
		t.Error("Expected parse error")
	}
	if s.Get() != Defaults() {
		t.Error("Failed load should leave defaults")
	}
}

func TestNilBackendIsMemoryOnly(t *testing.T) {
	s := New(nil)
	s.Update(func(st *Settings) { st.Muted = true })

	if err := s.Save(); err != nil {
		t.Errorf("Save() without backend should succeed, got %v", err)
	}
	if err := s.Load(); err != nil {
		t.Errorf("Load() without backend should succeed, got %v", err)
	}
}

func TestSaveError(t *testing.T) {
	backend := newMemBackend()
	backend.saveErr = errors.New("disk full")

	if err := New(backend).Save(); !errors.Is(err, backend.saveErr) {
		t.Errorf("Expected wrapped save error, got %v", err)
	}
}
