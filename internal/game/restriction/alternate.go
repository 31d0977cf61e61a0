package restriction

import "github.com/magefree/mage-legality/internal/game/rules"

// ResolveAlternateView returns the card as the action would see it. A bestow
// cast is checked against the card animated as an Aura: unless the card is
// already a bestowed last-known copy, a fresh snapshot is made and owned by
// the caller. ok is false when the alternate form can't be cast at all
// because the card is already on the battlefield.
func ResolveAlternateView(card Card, sa Action) (view Card, ok bool) {
	t := sa.Traits()
	if !t.Spell || !t.Bestow {
		return card, true
	}
	if card.IsInZone(rules.ZoneBattlefield) {
		return card, false
	}
	if card.IsLKI() && card.IsBestowed() {
		return card, true
	}
	return card.BestowSnapshot(), true
}
