package wallets

import "strings"

type Type int

const (
	NotSpecified Type = iota
	Investing
	Personal
)

func (t Type) String() string {
	switch t {
	default:
		return "UNKNOWN"
	case Investing:
		return "INVESTING"
	case Personal:
		return "PERSONAL"
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
	case "investing":
		return Investing
	case "personal":
		return Personal
	}
}
