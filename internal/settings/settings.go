package settings

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"sync"
)

// Settings is a typed key-value store held in memory and written to its
// Backend on Save.
type Settings struct {
	backend Backend

	values      map[string][]byte
	serializers map[reflect.Type]Serializer
	fallback    Serializer

	mu sync.RWMutex
}

type Opt func(*Settings)

// WithSerializer registers ser for values of the same type as sample.
func WithSerializer(sample any, ser Serializer) Opt {
	return func(s *Settings) {
		s.serializers[reflect.TypeOf(sample)] = ser
	}
}

// WithFallback sets the serializer used for types without a registration.
func WithFallback(ser Serializer) Opt {
	return func(s *Settings) {
		s.fallback = ser
	}
}

func New(backend Backend, opts ...Opt) *Settings {
	s := &Settings{
		backend:     backend,
		values:      map[string][]byte{},
		serializers: map[reflect.Type]Serializer{},
		fallback:    JSON{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the in-memory values with the backend's contents.
func (s *Settings) Load() error {
	values, err := s.backend.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if values == nil {
		values = map[string][]byte{}
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()

	slog.Debug("settings loaded", "keys", len(values))
	return nil
}

// Save writes every value to the backend.
func (s *Settings) Save() error {
	s.mu.RLock()
	snapshot := make(map[string][]byte, len(s.values))
	for k, v := range s.values {
		snapshot[k] = slices.Clone(v)
	}
	s.mu.RUnlock()

	if err := s.backend.Store(snapshot); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// SetSerializer registers ser for values of the same type as sample.
func (s *Settings) SetSerializer(sample any, ser Serializer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serializers[reflect.TypeOf(sample)] = ser
}

func (s *Settings) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// Keys returns every stored key in sorted order.
func (s *Settings) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

func (s *Settings) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// GetInt returns the integer stored under key, or def if the key is absent
// or does not hold an integer.
func (s *Settings) GetInt(key string, def int) int {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return def
	}

	v, err := strconv.Atoi(string(raw))
	if err != nil {
		slog.Warn("settings value is not an integer", "key", key, "error", err)
		return def
	}
	return v
}

func (s *Settings) PutInt(key string, v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = []byte(strconv.Itoa(v))
}

// PutObject encodes v with the serializer registered for its type.
func (s *Settings) PutObject(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.serializerFor(reflect.TypeOf(v)).Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	s.values[key] = data
	return nil
}

// GetObject decodes the value under key into out, which must be a pointer.
// Returns (false, nil) if the key is absent.
func (s *Settings) GetObject(key string, out any) (bool, error) {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false, fmt.Errorf("decoding %q: out must be a non-nil pointer", key)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}

	if err := s.serializerFor(rv.Type().Elem()).Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decoding %q: %w", key, err)
	}
	return true, nil
}

func (s *Settings) serializerFor(t reflect.Type) Serializer {
	if ser, ok := s.serializers[t]; ok {
		return ser
	}
	return s.fallback
}
