package settings

import (
	"encoding/json"
	"fmt"
	"maps"
	"sync"
)

const snapshotVersion = 1

// Backend persists the complete set of settings values.
type Backend interface {
	// Load returns every stored value. A backend with nothing stored
	// returns an empty map and no error.
	Load() (map[string][]byte, error)
	// Store replaces everything stored with values.
	Store(values map[string][]byte) error
}

type snapshot struct {
	Version uint              `json:"version"`
	Values  map[string][]byte `json:"values"`
}

func encodeSnapshot(values map[string][]byte) ([]byte, error) {
	data, err := json.Marshal(snapshot{Version: snapshotVersion, Values: values})
	if err != nil {
		return nil, fmt.Errorf("marshalling snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (map[string][]byte, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshalling snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if snap.Values == nil {
		snap.Values = map[string][]byte{}
	}
	return snap.Values, nil
}

// MemoryBackend keeps values in memory. Setting Err makes every call fail.
type MemoryBackend struct {
	Err error

	values map[string][]byte
	saves  int
	mu     sync.Mutex
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: map[string][]byte{}}
}

func (m *MemoryBackend) Load() (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return maps.Clone(m.values), nil
}

func (m *MemoryBackend) Store(values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.values = maps.Clone(values)
	m.saves++
	return nil
}

// Saves reports how many times Store has succeeded.
func (m *MemoryBackend) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
