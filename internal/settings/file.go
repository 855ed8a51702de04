package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-progression/internal/storage"
)

// FileBackend stores the settings snapshot as a single json file.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (f *FileBackend) Load() (map[string][]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]byte{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	return decodeSnapshot(data)
}

func (f *FileBackend) Store(values map[string][]byte) error {
	data, err := encodeSnapshot(values)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	return storage.AtomicWrite(f.path, data, 0644)
}
