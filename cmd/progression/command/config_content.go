package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-progression/internal/content"
	"github.com/pixil98/go-progression/internal/storage"
)

type ContentConfig struct {
	Items  AssetConfig[*content.Item]  `json:"items"`
	Blocks AssetConfig[*content.Block] `json:"blocks"`
	Units  AssetConfig[*content.Unit]  `json:"units"`
	Zones  AssetConfig[*content.Zone]  `json:"zones"`
}

func (c *ContentConfig) BuildRegistry() (*content.Registry, error) {
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}
	blocks, err := c.Blocks.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating block store: %w", err)
	}
	units, err := c.Units.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating unit store: %w", err)
	}
	zones, err := c.Zones.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating zone store: %w", err)
	}

	reg := &content.Registry{
		Items:  items,
		Blocks: blocks,
		Units:  units,
		Zones:  zones,
	}

	if err := reg.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return reg, nil
}

func (c *ContentConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Items.Validate("items"))
	el.Add(c.Blocks.Validate("blocks"))
	el.Add(c.Units.Validate("units"))
	el.Add(c.Zones.Validate("zones"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
