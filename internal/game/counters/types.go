package counters

import "strings"

// CounterType names a kind of counter. Names are compared case-insensitively.
type CounterType string

const (
	CounterTypeLoyalty CounterType = "loyalty"
	CounterTypeCharge  CounterType = "charge"
	CounterTypeTime    CounterType = "time"
	CounterTypeLore    CounterType = "lore"
	CounterTypeQuest   CounterType = "quest"
	CounterTypeLevel   CounterType = "level"
	CounterTypeAge     CounterType = "age"
	CounterTypeStun    CounterType = "stun"
	CounterTypeShield  CounterType = "shield"

	// Power/toughness boost counters
	CounterTypeP1P1 CounterType = "+1/+1"
	CounterTypeM1M1 CounterType = "-1/-1"
	CounterTypeP1P0 CounterType = "+1/+0"
	CounterTypeP0P1 CounterType = "+0/+1"
)

// Normalize returns the canonical spelling of a counter name: lower case,
// surrounding space removed, and card-script spellings such as "P1P1" mapped
// to "+1/+1".
func Normalize(name string) CounterType {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "p1p1":
		return CounterTypeP1P1
	case "m1m1":
		return CounterTypeM1M1
	case "p1p0":
		return CounterTypeP1P0
	case "p0p1":
		return CounterTypeP0P1
	}
	return CounterType(key)
}

// String returns the string representation of the counter type.
func (ct CounterType) String() string {
	return string(ct)
}

// Boost returns the power/toughness change of one counter of this type.
func (ct CounterType) Boost() (power, toughness int, ok bool) {
	left, right, found := strings.Cut(string(ct), "/")
	if !found {
		return 0, 0, false
	}
	power, ok = parseBoostValue(left)
	if !ok {
		return 0, 0, false
	}
	toughness, ok = parseBoostValue(right)
	if !ok {
		return 0, 0, false
	}
	return power, toughness, true
}

func parseBoostValue(s string) (int, bool) {
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}
	value := 0
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		value = value*10 + int(s[i]-'0')
	}
	if s[0] == '-' {
		value = -value
	}
	return value, true
}
