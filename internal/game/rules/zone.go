package rules

import (
	"fmt"
	"strings"
)

// Zone names a region of the game that holds cards.
type Zone string

const (
	// ZoneNone is used when a card's zone is unknown (or a restriction leaves it unset).
	ZoneNone        Zone = ""
	ZoneLibrary     Zone = "Library"
	ZoneHand        Zone = "Hand"
	ZoneBattlefield Zone = "Battlefield"
	ZoneGraveyard   Zone = "Graveyard"
	ZoneStack       Zone = "Stack"
	ZoneExile       Zone = "Exile"
	ZoneCommand     Zone = "Command"
)

var allZones = []Zone{
	ZoneLibrary,
	ZoneHand,
	ZoneBattlefield,
	ZoneGraveyard,
	ZoneStack,
	ZoneExile,
	ZoneCommand,
}

func (z Zone) String() string {
	if z == ZoneNone {
		return "NONE"
	}
	return string(z)
}

// ParseZone parses a zone name case-insensitively.
func ParseZone(name string) (Zone, error) {
	trimmed := strings.TrimSpace(name)
	for _, z := range allZones {
		if strings.EqualFold(trimmed, string(z)) {
			return z, nil
		}
	}
	return ZoneNone, fmt.Errorf("unknown zone %q", name)
}
