package settings

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

type loadout struct {
	Core  string         `json:"core" yaml:"core"`
	Items map[string]int `json:"items" yaml:"items"`
}

func TestSettings_Ints(t *testing.T) {
	s := New(NewMemoryBackend())

	testutil.AssertEqual(t, "missing", s.GetInt("item-copper", 7), 7)
	testutil.AssertEqual(t, "has missing", s.Has("item-copper"), false)

	s.PutInt("item-copper", 300)
	testutil.AssertEqual(t, "stored", s.GetInt("item-copper", 0), 300)
	testutil.AssertEqual(t, "has stored", s.Has("item-copper"), true)

	s.PutInt("item-copper", -2)
	testutil.AssertEqual(t, "negative", s.GetInt("item-copper", 0), -2)

	s.Remove("item-copper")
	testutil.AssertEqual(t, "removed", s.Has("item-copper"), false)
}

func TestSettings_GetIntNotInteger(t *testing.T) {
	s := New(NewMemoryBackend())
	if err := s.PutObject("unlocks", loadout{Core: "shard"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "default", s.GetInt("unlocks", 4), 4)
}

func TestSettings_Objects(t *testing.T) {
	tests := map[string]struct {
		opts []Opt
	}{
		"json fallback": {},
		"yaml registered": {
			opts: []Opt{WithSerializer(loadout{}, YAML{})},
		},
		"yaml fallback": {
			opts: []Opt{WithFallback(YAML{})},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := New(NewMemoryBackend(), tt.opts...)

			in := loadout{Core: "foundation", Items: map[string]int{"copper": 300, "lead": 20}}
			if err := s.PutObject("loadout", in); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var out loadout
			found, err := s.GetObject("loadout", &out)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "found", found, true)
			testutil.AssertEqual(t, "loadout", out, in)

			found, err = s.GetObject("missing", &out)
			testutil.AssertEqual(t, "missing found", found, false)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSettings_SetSerializerUsedForType(t *testing.T) {
	s := New(NewMemoryBackend())
	s.SetSerializer(loadout{}, YAML{})

	if err := s.PutObject("loadout", loadout{Core: "shard"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// yaml output is not valid json, so reading it back as another type fails
	var raw map[string]any
	_, err := s.GetObject("loadout", &raw)
	if err == nil {
		t.Error("expected json decode of yaml value to fail")
	}

	var out loadout
	_, err = s.GetObject("loadout", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "core", out.Core, "shard")
}

func TestSettings_GetObjectRequiresPointer(t *testing.T) {
	s := New(NewMemoryBackend())
	_, err := s.GetObject("loadout", loadout{})
	testutil.AssertErrorContains(t, err, "out must be a non-nil pointer")
}

func TestSettings_SaveLoad(t *testing.T) {
	backend := NewMemoryBackend()
	s := New(backend)
	s.PutInt("ground-zero-wave", 12)
	if err := s.PutObject("loadout", loadout{Core: "shard"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Save(); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	testutil.AssertEqual(t, "saves", backend.Saves(), 1)

	// values written after a save are not visible to a fresh load
	s.PutInt("ground-zero-wave", 99)

	fresh := New(backend)
	if err := fresh.Load(); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	testutil.AssertEqual(t, "wave", fresh.GetInt("ground-zero-wave", 0), 12)
	testutil.AssertEqual(t, "keys", fresh.Keys(), []string{"ground-zero-wave", "loadout"})
}

func TestSettings_BackendErrors(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Err = errors.New("disk full")
	s := New(backend)

	err := s.Save()
	testutil.AssertErrorContains(t, err, "disk full")
	if !errors.Is(err, backend.Err) {
		t.Errorf("expected backend error to be wrapped")
	}

	err = s.Load()
	testutil.AssertErrorContains(t, err, "loading settings")
}
