package settings

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

const (
	gdataObject   = "progression"
	gdataProperty = "settings"
)

// GdataBackend stores the settings snapshot in the platform's game data
// directory.
type GdataBackend struct {
	manager *gdata.Manager
}

// OpenGdataBackend opens the game data storage for appName.
func OpenGdataBackend(appName string) (*GdataBackend, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("opening gdata storage: %w", err)
	}
	return NewGdataBackend(m), nil
}

func NewGdataBackend(m *gdata.Manager) *GdataBackend {
	return &GdataBackend{manager: m}
}

func (g *GdataBackend) Load() (map[string][]byte, error) {
	if !g.manager.ObjectPropExists(gdataObject, gdataProperty) {
		return map[string][]byte{}, nil
	}

	data, err := g.manager.LoadObjectProp(gdataObject, gdataProperty)
	if err != nil {
		return nil, fmt.Errorf("loading gdata property: %w", err)
	}
	return decodeSnapshot(data)
}

func (g *GdataBackend) Store(values map[string][]byte) error {
	data, err := encodeSnapshot(values)
	if err != nil {
		return err
	}

	if err := g.manager.SaveObjectProp(gdataObject, gdataProperty, data); err != nil {
		return fmt.Errorf("saving gdata property: %w", err)
	}
	return nil
}
