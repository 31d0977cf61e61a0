package restriction

import (
	"fmt"

	"github.com/magefree/mage-legality/internal/game/rules"
)

// zoneReason checks that the card is in the zone the action is taken from.
// Outside that zone only a hidden-agenda reveal or a spell cast through a
// matching grant (with a hand restriction) can still be legal.
func (ch *Checker) zoneReason(card Card, sa Action, activator Player) (string, error) {
	view, ok := ResolveAlternateView(card, sa)
	if !ok {
		return "bestow cast from the battlefield", nil
	}

	required := rules.ZoneNone
	if r := sa.Restrictions(); r != nil {
		required = r.Zone
	}
	zone := card.LastKnownZone()
	if required == rules.ZoneNone || (zone != rules.ZoneNone && zone == required) {
		return "", nil
	}

	if hiddenAgendaReveal(zone, sa) {
		return "", nil
	}
	notInZone := fmt.Sprintf("in %s, needs %s", zone, required)
	if !sa.Traits().Spell || zone == rules.ZoneBattlefield || required != rules.ZoneHand {
		return notInZone, nil
	}
	if zone == rules.ZoneStack {
		return "already on the stack", nil
	}

	grant := sa.MayPlay()
	if grant == nil {
		return notInZone, nil
	}
	if !samePlayer(grant.Player(), activator) {
		return "play permission belongs to another player", nil
	}

	// Casting from hand never needs a permission, so only other zones are checked.
	if !grant.GrantsZonePermissions() && zone != rules.ZoneNone && zone != rules.ZoneHand {
		if aftermathFromGraveyard(zone, sa) {
			return "", nil
		}
		if !hasZonePermission(card, activator) {
			return fmt.Sprintf("nothing allows playing from %s", zone), nil
		}
	}

	if affected := grant.Affected(); len(affected) > 0 {
		valid, err := ch.exprs.IsValidCard(view, affected, activator, grant.Host(), nil)
		if err != nil {
			return "", fmt.Errorf("play permission affected filter: %w", err)
		}
		if !valid {
			return "card not affected by play permission", nil
		}
	}

	if validSA := grant.ValidSA(); len(validSA) > 0 {
		valid, err := ch.exprs.IsValidAction(sa, validSA, activator, grant.Host())
		if err != nil {
			return "", fmt.Errorf("play permission spell filter: %w", err)
		}
		if !valid {
			return "spell not covered by play permission", nil
		}
	}

	if aftermathOutsideGraveyard(required, sa) {
		return "aftermath only from the graveyard", nil
	}
	return "", nil
}

func hasZonePermission(card Card, activator Player) bool {
	for _, g := range card.MayPlayFor(activator) {
		if g.GrantsZonePermissions() {
			return true
		}
	}
	return false
}
