package content

import "fmt"

// Type is the category a piece of content is unlocked under.
type Type int

const (
	TypeItem Type = iota
	TypeBlock
	TypeUnit
	TypeZone
)

var typeNames = map[Type]string{
	TypeItem:  "item",
	TypeBlock: "block",
	TypeUnit:  "unit",
	TypeZone:  "zone",
}

// Types lists every content type in declaration order.
func Types() []Type {
	return []Type{TypeItem, TypeBlock, TypeUnit, TypeZone}
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

func (t Type) MarshalText() ([]byte, error) {
	name, ok := typeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown content type: %d", int(t))
	}
	return []byte(name), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseType returns the Type with the given name.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown content type: %s", name)
}
