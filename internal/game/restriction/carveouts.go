package restriction

import "github.com/magefree/mage-legality/internal/game/rules"

// Narrow rules exceptions used by the zone check. Each names exactly one case.

// hiddenAgendaReveal: a conspiracy with hidden agenda may be revealed from
// the command zone at any time.
func hiddenAgendaReveal(zone rules.Zone, sa Action) bool {
	return zone == rules.ZoneCommand && sa.Traits().HiddenAgenda
}

// aftermathFromGraveyard: the aftermath half is cast from the graveyard even
// when the grant in use (e.g. As Foretold) doesn't itself permit that zone.
func aftermathFromGraveyard(zone rules.Zone, sa Action) bool {
	return zone == rules.ZoneGraveyard && sa.Traits().Aftermath
}

// aftermathOutsideGraveyard: the aftermath half of a resolved alternate
// printing can't be cast through a grant unless the restriction itself names
// the graveyard.
func aftermathOutsideGraveyard(required rules.Zone, sa Action) bool {
	t := sa.Traits()
	return required != rules.ZoneGraveyard && t.Aftermath && t.AlternateState
}
