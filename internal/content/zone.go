package content

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Zone is a playable area. Surviving past ConditionWave completes it.
type Zone struct {
	Base
	ConditionWave int         `json:"condition_wave"`
	LaunchCost    []StackSpec `json:"launch_cost,omitempty"`
}

// NewZone builds a zone outside of a registry, mostly for tests and tools.
func NewZone(name string, conditionWave int) *Zone {
	z := &Zone{ConditionWave: conditionWave}
	z.setName(name)
	return z
}

func (z *Zone) ContentType() Type {
	return TypeZone
}

// Validate satisfies storage.ValidatingSpec.
func (z *Zone) Validate() error {
	el := errors.NewErrorList()

	if z.ConditionWave < 0 {
		el.Add(fmt.Errorf("condition_wave must not be negative"))
	}

	for i := range z.LaunchCost {
		if err := z.LaunchCost[i].Validate(); err != nil {
			el.Add(fmt.Errorf("launch_cost %d: %w", i, err))
		}
	}

	return el.Err()
}

// Cost returns the resolved launch cost.
func (z *Zone) Cost() []ItemStack {
	stacks := make([]ItemStack, 0, len(z.LaunchCost))
	for _, s := range z.LaunchCost {
		stacks = append(stacks, s.Stack())
	}
	return stacks
}
