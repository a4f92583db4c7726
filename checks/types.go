package checks

import "strings"

type Type int

const (
	NotSpecified Type = iota
	Confirm
	Recover
)

func (t Type) String() string {
	switch t {
	default:
		return "unknown"
	case Confirm:
		return "confirm"
	case Recover:
		return "recover"
	}
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	*t = TypeFromText(string(text))
	return nil
}

func TypeFromText(text string) Type {
	switch strings.ToLower(text) {
	default:
		return NotSpecified
	case "confirm":
		return Confirm
	case "recover":
		return Recover
	}
}
