package state

import (
	"github.com/google/uuid"
	"github.com/magefree/mage-legality/internal/game/restriction"
)

// Ability is a spell or activated ability of a card, the candidate action a
// legality check is asked about.
type Ability struct {
	id           string
	name         string
	host         *Card
	traits       restriction.Traits
	restrictions *restriction.Set
	activator    restriction.Player
	counters     *restriction.ActivationCounters
	xValue       int
	mayPlay      *PlayGrant
}

var _ restriction.Action = (*Ability)(nil)

// NewAbility creates an ability of host and registers it with the game so its
// per-turn counts are reset with the turn. A nil set is unrestricted.
func (g *Game) NewAbility(host *Card, name string, traits restriction.Traits, set *restriction.Set) *Ability {
	if set == nil {
		set = &restriction.Set{}
	}
	a := &Ability{
		id:           uuid.New().String(),
		name:         name,
		host:         host,
		traits:       traits,
		restrictions: set,
		counters:     restriction.NewActivationCounters(),
	}
	g.abilities = append(g.abilities, a)
	return a
}

// Abilities returns every registered ability.
func (g *Game) Abilities() []*Ability {
	return append([]*Ability(nil), g.abilities...)
}

func (a *Ability) ID() string                                { return a.id }
func (a *Ability) Name() string                              { return a.name }
func (a *Ability) Traits() restriction.Traits                { return a.traits }
func (a *Ability) Restrictions() *restriction.Set            { return a.restrictions }
func (a *Ability) Activator() restriction.Player             { return a.activator }
func (a *Ability) SetActivator(p restriction.Player)         { a.activator = p }
func (a *Ability) Counters() *restriction.ActivationCounters { return a.counters }
func (a *Ability) XValue() int                               { return a.xValue }
func (a *Ability) SetXValue(x int)                           { a.xValue = x }
func (a *Ability) HostCard() *Card                           { return a.host }

func (a *Ability) Host() restriction.Card {
	if a.host == nil {
		return nil
	}
	return a.host
}

// MayPlay returns the grant the ability is being played through, if any.
func (a *Ability) MayPlay() restriction.Grant {
	if a.mayPlay == nil {
		return nil
	}
	return a.mayPlay
}

// PlayThrough marks the ability as played through a grant. Nil clears it.
func (a *Ability) PlayThrough(g *PlayGrant) { a.mayPlay = g }

// RecordActivation counts a resolved activation, including the loyalty
// activation of a planeswalker ability.
func (a *Ability) RecordActivation() {
	a.counters.RecordActivation()
	if a.traits.Planeswalker && a.host != nil {
		a.host.pwActivations++
	}
}
