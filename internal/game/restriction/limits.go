package restriction

import "fmt"

// limitReason resolves the per-turn and per-game caps, records them on the
// action's counters and rejects once a count has reached its cap.
func (ch *Checker) limitReason(card Card, sa Action) (string, error) {
	r := sa.Restrictions()
	if r == nil || (r.ActivationLimit == "" && r.GameActivationLimit == "") {
		return "", nil
	}
	counters := sa.Counters()
	if counters == nil {
		counters = NewActivationCounters()
	}

	if r.ActivationLimit != "" {
		limit, err := ch.exprs.Amount(card, r.ActivationLimit, sa)
		if err != nil {
			return "", fmt.Errorf("activation limit %q: %w", r.ActivationLimit, err)
		}
		counters.TurnLimit = limit
		if limit != Unlimited && counters.ThisTurn >= limit {
			return fmt.Sprintf("activated %d of %d times this turn", counters.ThisTurn, limit), nil
		}
	}

	if r.GameActivationLimit != "" {
		limit, err := ch.exprs.Amount(card, r.GameActivationLimit, sa)
		if err != nil {
			return "", fmt.Errorf("game activation limit %q: %w", r.GameActivationLimit, err)
		}
		counters.GameLimit = limit
		if limit != Unlimited && counters.ThisGame >= limit {
			return fmt.Sprintf("activated %d of %d times this game", counters.ThisGame, limit), nil
		}
	}
	return "", nil
}
