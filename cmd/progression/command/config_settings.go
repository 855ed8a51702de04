package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-progression/internal/progression"
	"github.com/pixil98/go-progression/internal/settings"
)

type SettingsConfig struct {
	// Backend is one of file, gdata, sqlite or memory.
	Backend string `json:"backend"`
	Path    string `json:"path,omitempty"`
	AppName string `json:"app_name,omitempty"`
	// Format selects the serializer for stored objects: json or yaml.
	Format string `json:"format,omitempty"`
}

func (c *SettingsConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Backend {
	case "file", "sqlite":
		if c.Path == "" {
			el.Add(fmt.Errorf("settings: path is required for the %s backend", c.Backend))
		}
	case "gdata":
		if c.AppName == "" {
			el.Add(fmt.Errorf("settings: app_name is required for the gdata backend"))
		}
	case "memory":
	default:
		el.Add(fmt.Errorf("settings: unknown backend %q", c.Backend))
	}

	if _, ok := settings.SerializerByName(c.Format); !ok {
		el.Add(fmt.Errorf("settings: unknown format %q", c.Format))
	}

	return el.Err()
}

func (c *SettingsConfig) buildBackend() (settings.Backend, error) {
	switch c.Backend {
	case "file":
		return settings.NewFileBackend(c.Path), nil
	case "sqlite":
		return settings.NewSQLiteBackend(c.Path)
	case "gdata":
		return settings.OpenGdataBackend(c.AppName)
	case "memory":
		return settings.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown settings backend %q", c.Backend)
	}
}

// BuildSettings opens the configured backend and loads the stored values.
func (c *SettingsConfig) BuildSettings() (*settings.Settings, error) {
	backend, err := c.buildBackend()
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", c.Backend, err)
	}

	ser, ok := settings.SerializerByName(c.Format)
	if !ok {
		return nil, fmt.Errorf("unknown settings format %q", c.Format)
	}

	s := settings.New(backend, settings.WithSerializer(progression.Unlocks(nil), ser))
	if err := s.Load(); err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return s, nil
}
