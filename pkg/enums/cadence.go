package enums

import "fmt"

// Cadence is the restocking rhythm of a wholesaler's order lists.
type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceMonthly Cadence = "monthly"
)

var validCadences = []Cadence{
	CadenceDaily,
	CadenceMonthly,
}

// String implements fmt.Stringer.
func (c Cadence) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Cadence.
func (c Cadence) IsValid() bool {
	for _, candidate := range validCadences {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCadence converts the raw string to Cadence.
func ParseCadence(value string) (Cadence, error) {
	for _, candidate := range validCadences {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cadence %q", value)
}

// CadenceFor derives the cadence from the wholesaler's daily flag.
func CadenceFor(isDaily bool) Cadence {
	if isDaily {
		return CadenceDaily
	}
	return CadenceMonthly
}
