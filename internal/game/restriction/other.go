package restriction

import (
	"fmt"
	"strconv"

	"github.com/magefree/mage-legality/internal/game/rules"
)

// evaluation carries the inputs shared by the gates of one "other" check.
type evaluation struct {
	ch        *Checker
	card      Card
	sa        Action
	activator Player
	r         *Set
}

// gate is one independent condition. check returns a rejection reason, or
// "" when the gate passes or doesn't apply.
type gate struct {
	name  string
	check func(ev *evaluation) (string, error)
}

// otherGates run in order; the first rejection wins. The mana reentrancy
// gate sits after the restriction-driven gates but doesn't depend on any of
// them, so an ability being paid for is always rejected here.
var otherGates = []gate{
	{"game type", gameTypeGate},
	{"legendary sorcery", legendarySorceryGate},
	{"aftermath", aftermathGate},
	{"hand size", handSizeGate},
	{"chosen color", chosenColorGate},
	{"status", statusGate},
	{"surge", surgeGate},
	{"spectacle", spectacleGate},
	{"prowl", prowlGate},
	{"presence", presenceGate},
	{"life total", lifeTotalGate},
	{"planeswalker", planeswalkerGate},
	{"boast", boastGate},
	{"mana ability", manaReentrancyGate},
	{"check var", checkVarGate},
}

// otherReason evaluates every restriction not covered by the zone, timing,
// activator and limit stages.
func (ch *Checker) otherReason(card Card, sa Action, activator Player) (string, error) {
	r := sa.Restrictions()
	if r == nil {
		r = &Set{}
	}
	ev := &evaluation{ch: ch, card: card, sa: sa, activator: activator, r: r}
	for _, g := range otherGates {
		reason, err := g.check(ev)
		if err != nil {
			return "", fmt.Errorf("%s: %w", g.name, err)
		}
		if reason != "" {
			return reason, nil
		}
	}
	return "", nil
}

func gameTypeGate(ev *evaluation) (string, error) {
	if len(ev.r.GameTypes) == 0 {
		return "", nil
	}
	current := ev.activator.Game().GameType()
	for _, t := range ev.r.GameTypes {
		if t == current {
			return "", nil
		}
	}
	return "not available in " + current + " games", nil
}

func legendarySorceryGate(ev *evaluation) (string, error) {
	if !ev.card.IsSorcery() || !ev.card.IsLegendary() {
		return "", nil
	}
	for _, c := range ev.activator.CardsIn(rules.ZoneBattlefield) {
		if c.IsLegendary() && (c.IsCreature() || c.IsPlaneswalker()) {
			return "", nil
		}
	}
	return "no legendary creature or planeswalker", nil
}

func aftermathGate(ev *evaluation) (string, error) {
	if ev.sa.Traits().Aftermath && !ev.card.IsInZone(rules.ZoneGraveyard) {
		return "aftermath only from the graveyard", nil
	}
	return "", nil
}

func handSizeGate(ev *evaluation) (string, error) {
	if ev.r.CardsInHand == nil {
		return "", nil
	}
	if n := len(ev.activator.CardsIn(rules.ZoneHand)); n != *ev.r.CardsInHand {
		return fmt.Sprintf("hand size %d, needs %d", n, *ev.r.CardsInHand), nil
	}
	return "", nil
}

func chosenColorGate(ev *evaluation) (string, error) {
	if ev.r.ChosenColor == "" {
		return "", nil
	}
	host := ev.sa.Host()
	if host == nil || !host.HasChosenColor(ev.r.ChosenColor) {
		return ev.r.ChosenColor + " was not chosen", nil
	}
	return "", nil
}

func statusGate(ev *evaluation) (string, error) {
	p := ev.activator
	switch {
	case ev.r.Hellbent && !p.HasHellbent():
		return "hellbent required", nil
	case ev.r.Threshold && !p.HasThreshold():
		return "threshold required", nil
	case ev.r.Metalcraft && !p.HasMetalcraft():
		return "metalcraft required", nil
	case ev.r.Delirium && !p.HasDelirium():
		return "delirium required", nil
	case ev.r.Desert && !p.HasDesert():
		return "desert required", nil
	case ev.r.Blessing && !p.HasBlessing():
		return "city's blessing required", nil
	}
	return "", nil
}

func surgeGate(ev *evaluation) (string, error) {
	if ev.sa.Traits().Surged && !ev.activator.HasSurge() {
		return "no other spell cast this turn", nil
	}
	return "", nil
}

func spectacleGate(ev *evaluation) (string, error) {
	if ev.sa.Traits().Spectacle && ev.activator.OpponentLostLifeThisTurn() <= 0 {
		return "no opponent lost life this turn", nil
	}
	return "", nil
}

func prowlGate(ev *evaluation) (string, error) {
	if !ev.sa.Traits().Prowl {
		return "", nil
	}
	for _, t := range ev.card.CreatureTypes() {
		if ev.activator.HasProwl(t) {
			return "", nil
		}
	}
	return "prowl not enabled", nil
}

func presenceGate(ev *evaluation) (string, error) {
	pr := ev.r.Present
	if pr == nil {
		return "", nil
	}

	var candidates []Card
	if pr.Defined != "" {
		defined, err := ev.ch.exprs.DefinedCards(ev.sa.Host(), pr.Defined, ev.sa)
		if err != nil {
			return "", err
		}
		candidates = defined
	} else {
		zone := pr.Zone
		if zone == rules.ZoneNone {
			zone = ev.ch.defaultPresentZone
		}
		candidates = ev.activator.Game().CardsIn(zone)
	}

	left := 0
	for _, c := range candidates {
		ok, err := ev.ch.exprs.IsValidCard(c, pr.Filter, ev.activator, ev.card, ev.sa)
		if err != nil {
			return "", err
		}
		if ok {
			left++
		}
	}

	right, err := ev.ch.exprs.Amount(ev.card, pr.Compare.Operand, ev.sa)
	if err != nil {
		return "", err
	}
	if !pr.Compare.Op.Compare(left, right) {
		return fmt.Sprintf("%d present, needs %s%d", left, pr.Compare.Op, right), nil
	}
	return "", nil
}

func lifeTotalGate(ev *evaluation) (string, error) {
	lc := ev.r.LifeTotal
	if lc == nil {
		return "", nil
	}

	life := 1
	switch lc.Source {
	case LifeYou:
		life = ev.activator.Life()
	case LifeOpponentSmallest:
		life = ev.activator.OpponentsSmallestLife()
	}

	right, err := lifeOperand(ev, lc.Compare.Operand)
	if err != nil {
		return "", err
	}
	if !lc.Compare.Op.Compare(life, right) {
		return fmt.Sprintf("life %d, needs %s%d", life, lc.Compare.Op, right), nil
	}
	return "", nil
}

// lifeOperand resolves a literal directly and anything else against the host card.
func lifeOperand(ev *evaluation, operand string) (int, error) {
	if n, err := strconv.Atoi(operand); err == nil {
		return n, nil
	}
	return ev.ch.exprs.Amount(ev.sa.Host(), operand, ev.sa)
}

func planeswalkerGate(ev *evaluation) (string, error) {
	if !ev.sa.Traits().Planeswalker {
		return "", nil
	}
	c := ev.card
	if !c.HasKeyword(KeywordLoyaltyInstantSpeed) && !ev.activator.CanCastSorcery() {
		return "loyalty abilities need sorcery timing", nil
	}

	ceiling := 1 + c.KeywordCount(KeywordLoyaltyOnceMore)
	if c.HasKeyword(KeywordLoyaltyTwice) {
		ceiling++
	}
	if n := c.PlaneswalkerActivations(); n >= ceiling {
		return fmt.Sprintf("loyalty abilities activated %d of %d times", n, ceiling), nil
	}
	return "", nil
}

func boastGate(ev *evaluation) (string, error) {
	if !ev.sa.Traits().Boast {
		return "", nil
	}
	limit := 1
	if ev.activator.HasKeyword(KeywordBoastTwice) {
		limit = 2
	}
	if counters := ev.sa.Counters(); counters != nil && counters.ThisTurn >= limit {
		return "already boasted this turn", nil
	}
	return "", nil
}

// manaReentrancyGate: a mana ability can't be activated while its own cost
// is being paid (rule 605.3c).
func manaReentrancyGate(ev *evaluation) (string, error) {
	if !ev.sa.Traits().ManaAbility {
		return "", nil
	}
	for _, id := range ev.activator.Game().CostPaymentStack() {
		if id == ev.sa.ID() {
			return "already paying for this ability", nil
		}
	}
	return "", nil
}

// checkVarGate compares the variable for the card being checked and again for
// the action's host. They are usually the same card but differ for copies.
func checkVarGate(ev *evaluation) (string, error) {
	cv := ev.r.CheckVar
	if cv == nil {
		return "", nil
	}
	sources := []Card{ev.card}
	if host := ev.sa.Host(); host != nil {
		sources = append(sources, host)
	}
	for _, src := range sources {
		left, err := ev.ch.exprs.Amount(src, cv.Var, ev.sa)
		if err != nil {
			return "", err
		}
		right, err := ev.ch.exprs.Amount(src, cv.Compare.Operand, ev.sa)
		if err != nil {
			return "", err
		}
		if !cv.Compare.Op.Compare(left, right) {
			return fmt.Sprintf("%s is %d, needs %s%d", cv.Var, left, cv.Compare.Op, right), nil
		}
	}
	return "", nil
}
