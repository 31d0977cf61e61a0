package expr

import (
	"strings"

	"github.com/magefree/mage-legality/internal/game/restriction"
	"github.com/magefree/mage-legality/internal/game/rules"
)

// IsValidPlayer matches a player pattern such as "You", "Opponent" or
// `relation = "Opponent" AND life <= 10`. Relations are relative to the
// controller of the source card. Comma separated alternatives are allowed.
func (e *Evaluator) IsValidPlayer(player restriction.Player, pattern string, sourceController restriction.Player, _ restriction.Card, _ restriction.Action) (bool, error) {
	if player == nil {
		return false, nil
	}
	filters := restriction.SplitFilters(pattern)
	if len(filters) == 0 {
		return true, nil
	}
	return e.matchAny(subjectPlayer, filters, playerResolver(player, sourceController))
}

func playerResolver(player, viewer restriction.Player) resolver {
	return func(name string) (any, bool) {
		switch name {
		case "relation":
			return relation(player, viewer), true
		case "active":
			active := "false"
			if g := player.Game(); g != nil && samePlayer(g.ActivePlayer(), player) {
				active = "true"
			}
			return active, true
		case "life":
			return player.Life(), true
		case "hand":
			return len(player.CardsIn(rules.ZoneHand)), true
		}
		return nil, false
	}
}

// IsValidAction reports whether the spell or ability matches any of the
// filters. Its type and zone are those of the host card.
func (e *Evaluator) IsValidAction(action restriction.Action, filters []string, _ restriction.Player, _ restriction.Card) (bool, error) {
	if action == nil {
		return false, nil
	}
	if len(filters) == 0 {
		return true, nil
	}
	return e.matchAny(subjectAction, filters, actionResolver(action))
}

func actionResolver(action restriction.Action) resolver {
	host := action.Host()
	return func(name string) (any, bool) {
		switch name {
		case "kind":
			if action.Traits().Spell {
				return "Spell", true
			}
			return "Activated", true
		case "name":
			return action.Name(), true
		case "type":
			if ext, ok := asCard(host); ok {
				return listOf(ext.Types()), true
			}
			if host != nil {
				return listOf(basicTypes(host)), true
			}
			return listOf(nil), true
		case "zone":
			if host == nil {
				return "", true
			}
			return string(host.LastKnownZone()), true
		}
		return nil, false
	}
}

// DefinedCards resolves a defined reference relative to the host card.
func (e *Evaluator) DefinedCards(host restriction.Card, defined string, _ restriction.Action) ([]restriction.Card, error) {
	if host == nil {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(defined)) {
	case "self", "card.self":
		return []restriction.Card{host}, nil
	case "enchanted":
		return attachedIf(host, "Aura"), nil
	case "equipped":
		return attachedIf(host, "Equipment"), nil
	case "attached":
		return attachedIf(host, ""), nil
	}
	return nil, &UnknownDefinedError{Defined: defined}
}

// attachedIf returns what host is attached to, provided host has the subtype.
func attachedIf(host restriction.Card, subtype string) []restriction.Card {
	ext, ok := asCard(host)
	if !ok {
		return nil
	}
	if subtype != "" && !listOf(ext.Subtypes())(subtype) {
		return nil
	}
	if target := ext.AttachedTo(); target != nil {
		return []restriction.Card{target}
	}
	return nil
}

// UnknownDefinedError is returned for a defined reference the evaluator
// doesn't know.
type UnknownDefinedError struct {
	Defined string
}

func (e *UnknownDefinedError) Error() string {
	return "unknown defined reference " + strings.TrimSpace(e.Defined)
}
