package content

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-progression/internal/storage"
)

// Registry holds every content definition store. Call Resolve once after
// the stores are loaded so names and cross references are filled in.
type Registry struct {
	Items  storage.Storer[*Item]
	Blocks storage.Storer[*Block]
	Units  storage.Storer[*Unit]
	Zones  storage.Storer[*Zone]
}

// Resolve names every definition after its asset id and resolves item
// references in zone launch costs.
func (r *Registry) Resolve() error {
	nameAll(r.Items)
	nameAll(r.Blocks)
	nameAll(r.Units)
	nameAll(r.Zones)

	if r.Zones == nil {
		return nil
	}
	if r.Items == nil && len(r.Zones.GetAll()) > 0 {
		return fmt.Errorf("zones defined without an item store")
	}

	for id, zone := range r.Zones.GetAll() {
		for i := range zone.LaunchCost {
			if err := zone.LaunchCost[i].Item.Resolve(r.Items); err != nil {
				return fmt.Errorf("zone %s: launch_cost %d: %w", id, i, err)
			}
		}
	}
	return nil
}

type namer interface {
	storage.ValidatingSpec
	setName(string)
}

func nameAll[T namer](st storage.Storer[T]) {
	if st == nil {
		return
	}
	for id, v := range st.GetAll() {
		v.setName(id.String())
	}
}

// Item returns the named item or nil.
func (r *Registry) Item(name string) *Item {
	if r.Items == nil {
		return nil
	}
	return r.Items.Get(name)
}

// ItemList returns every item sorted by name.
func (r *Registry) ItemList() []*Item {
	return sorted(r.Items)
}

// Zone returns the named zone or nil.
func (r *Registry) Zone(name string) *Zone {
	if r.Zones == nil {
		return nil
	}
	return r.Zones.Get(name)
}

// ZoneList returns every zone sorted by name.
func (r *Registry) ZoneList() []*Zone {
	return sorted(r.Zones)
}

// Find looks up unlockable content by type and name.
func (r *Registry) Find(t Type, name string) (Unlockable, bool) {
	var u Unlockable
	switch t {
	case TypeItem:
		if v := r.Item(name); v != nil {
			u = v
		}
	case TypeBlock:
		if r.Blocks != nil {
			if v := r.Blocks.Get(name); v != nil {
				u = v
			}
		}
	case TypeUnit:
		if r.Units != nil {
			if v := r.Units.Get(name); v != nil {
				u = v
			}
		}
	case TypeZone:
		if v := r.Zone(name); v != nil {
			u = v
		}
	}
	return u, u != nil
}

type named interface {
	storage.ValidatingSpec
	Name() string
}

func sorted[T named](st storage.Storer[T]) []T {
	if st == nil {
		return nil
	}
	out := make([]T, 0)
	for _, v := range st.GetAll() {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}
