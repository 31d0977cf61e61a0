package expr

import (
	"github.com/magefree/mage-legality/internal/game/restriction"
)

// IsValidCard reports whether the card matches any of the filters. Relations
// ("You", "Opponent") are relative to the activator; self compares against
// the source card.
func (e *Evaluator) IsValidCard(card restriction.Card, filters []string, activator restriction.Player, source restriction.Card, _ restriction.Action) (bool, error) {
	if card == nil {
		return false, nil
	}
	if len(filters) == 0 {
		return true, nil
	}
	return e.matchAny(subjectCard, filters, cardResolver(card, activator, source))
}

func cardResolver(card restriction.Card, activator restriction.Player, source restriction.Card) resolver {
	ext, rich := asCard(card)
	return func(name string) (any, bool) {
		switch name {
		case "name":
			return card.Name(), true
		case "zone":
			return string(card.LastKnownZone()), true
		case "controller":
			return relation(card.Controller(), activator), true
		case "self":
			if source != nil && source.ID() == card.ID() {
				return "true", true
			}
			return "false", true
		case "keyword":
			return membership(card.HasKeyword), true
		case "type":
			if rich {
				return listOf(ext.Types()), true
			}
			return listOf(basicTypes(card)), true
		case "subtype":
			if rich {
				return listOf(ext.Subtypes()), true
			}
			return listOf(card.CreatureTypes()), true
		case "supertype":
			if rich {
				return listOf(ext.Supertypes()), true
			}
			if card.IsLegendary() {
				return listOf([]string{"Legendary"}), true
			}
			return listOf(nil), true
		case "color":
			if rich {
				return listOf(ext.Colors()), true
			}
			return listOf(nil), true
		case "owner":
			if rich {
				return relation(ext.Owner(), activator), true
			}
			return relation(card.Controller(), activator), true
		case "cmc":
			if rich {
				return ext.ManaValue(), true
			}
			return 0, true
		case "power":
			if rich {
				return ext.Power(), true
			}
			return 0, true
		case "toughness":
			if rich {
				return ext.Toughness(), true
			}
			return 0, true
		}
		return nil, false
	}
}

func basicTypes(card restriction.Card) []string {
	var types []string
	if card.IsCreature() {
		types = append(types, "Creature")
	}
	if card.IsPlaneswalker() {
		types = append(types, "Planeswalker")
	}
	if card.IsInstant() {
		types = append(types, "Instant")
	}
	if card.IsSorcery() {
		types = append(types, "Sorcery")
	}
	return types
}
