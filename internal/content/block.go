package content

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Block is a placeable structure.
type Block struct {
	Base
	Size        int    `json:"size"`
	Description string `json:"description,omitempty"`
}

func (b *Block) ContentType() Type {
	return TypeBlock
}

func (b *Block) Validate() error {
	el := errors.NewErrorList()
	if b.Size < 1 {
		el.Add(fmt.Errorf("size must be at least 1"))
	}
	return el.Err()
}

// Unit is a buildable mobile unit.
type Unit struct {
	Base
	Health      int    `json:"health"`
	Description string `json:"description,omitempty"`
}

func (u *Unit) ContentType() Type {
	return TypeUnit
}

func (u *Unit) Validate() error {
	if u.Health <= 0 {
		return fmt.Errorf("health must be positive")
	}
	return nil
}
