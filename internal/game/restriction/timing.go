package restriction

// timingReason checks the own-turn, opponent-turn and step restrictions.
func timingReason(sa Action, activator Player) string {
	r := sa.Restrictions()
	if r == nil {
		return ""
	}
	game := activator.Game()

	if r.PlayerTurn && !samePlayer(game.ActivePlayer(), activator) {
		return "not the activator's turn"
	}
	if r.OpponentTurn {
		active := game.ActivePlayer()
		if active == nil || !active.IsOpponentOf(activator) {
			return "not an opponent's turn"
		}
	}
	if len(r.Phases) > 0 && !r.hasPhase(game.Step()) {
		return "not an allowed step"
	}
	return ""
}

// speedReason checks instant/sorcery speed. A spell that isn't an instant
// needs flash from somewhere unless a resolving effect is casting it; an
// ability only cares when its restrictions say so.
func speedReason(card Card, sa Action, activator Player) string {
	r := sa.Restrictions()
	if sa.Traits().Spell {
		if sa.Traits().CastFromPlayEffect {
			return ""
		}
		if card.IsInstant() || card.HasKeyword(KeywordFlash) {
			return ""
		}
		if activator.Game().CastWithFlash(sa, card, activator) {
			return ""
		}
		if r != nil && r.InstantSpeed {
			return ""
		}
		if !activator.CanCastSorcery() {
			return "sorcery speed required"
		}
		return ""
	}

	if r == nil || r.InstantSpeed || !r.SorcerySpeed {
		return ""
	}
	if !activator.CanCastSorcery() {
		return "sorcery speed required"
	}
	return ""
}
