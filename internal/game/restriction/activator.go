package restriction

import "fmt"

// activatorReason checks who may take the action. A spell played through a
// grant belonging to the activator ignores the declared pattern.
func (ch *Checker) activatorReason(card Card, sa Action, activator Player) (string, error) {
	if sa.Traits().Spell {
		if grant := sa.MayPlay(); grant != nil && samePlayer(grant.Player(), activator) {
			return "", nil
		}
	}

	pattern := ch.defaultActivator
	if r := sa.Restrictions(); r != nil && r.Activator != "" {
		pattern = r.Activator
	}

	ok, err := ch.exprs.IsValidPlayer(activator, pattern, card.Controller(), card, sa)
	if err != nil {
		return "", fmt.Errorf("activator pattern %q: %w", pattern, err)
	}
	if !ok {
		return "activator does not match " + pattern, nil
	}
	return "", nil
}
