package content

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-progression/internal/storage"
)

// Item is a resource the player can hold in their global inventory.
type Item struct {
	Base
	Hardness int     `json:"hardness"`
	Cost     float64 `json:"cost"`
}

// NewItem builds an item outside of a registry, mostly for tests and tools.
func NewItem(name string) *Item {
	i := &Item{}
	i.setName(name)
	return i
}

func (i *Item) ContentType() Type {
	return TypeItem
}

// Validate satisfies storage.ValidatingSpec.
func (i *Item) Validate() error {
	el := errors.NewErrorList()

	if i.Hardness < 0 {
		el.Add(fmt.Errorf("hardness must not be negative"))
	}
	if i.Cost < 0 {
		el.Add(fmt.Errorf("cost must not be negative"))
	}

	return el.Err()
}

// ItemStack is an amount of a single item.
type ItemStack struct {
	Item   *Item
	Amount int
}

// StackSpec is the definition form of an ItemStack, referencing the item by id.
type StackSpec struct {
	Item   storage.SmartIdentifier[*Item] `json:"item"`
	Amount int                            `json:"amount"`
}

func (s *StackSpec) Validate() error {
	el := errors.NewErrorList()
	el.Add(s.Item.Validate())
	if s.Amount <= 0 {
		el.Add(fmt.Errorf("amount must be positive"))
	}
	return el.Err()
}

func (s StackSpec) Stack() ItemStack {
	return ItemStack{Item: s.Item.Get(), Amount: s.Amount}
}
