// Package restriction decides whether a spell may be cast or an ability
// activated right now.
//
// A Set holds the parsed restrictions of one spell or ability. The Checker
// composes the zone, timing, activator and remaining ("other") restrictions
// with the per-turn and per-game activation limits into a single verdict,
// reading game state through the interfaces in world.go.
package restriction

import (
	"github.com/magefree/mage-legality/internal/game/rules"
)

// LifeSource names whose life total a LifeCondition reads.
type LifeSource string

const (
	// LifeYou reads the activating player's life total.
	LifeYou LifeSource = "You"
	// LifeOpponentSmallest reads the smallest life total among the activator's opponents.
	LifeOpponentSmallest LifeSource = "OpponentSmallest"
)

// Set is the immutable restriction record of a spell or ability. Every field's
// zero value means "unrestricted", so an empty Set never rejects anything by
// itself.
type Set struct {
	// Zone is the zone the card must be in. ZoneNone means any zone.
	Zone rules.Zone

	PlayerTurn   bool
	OpponentTurn bool
	// Phases lists the steps the action may be taken in. Empty means any step.
	Phases []rules.Step

	SorcerySpeed bool
	InstantSpeed bool

	// GameTypes lists the game variants the action exists in. Empty means all.
	GameTypes []string

	// Activator is a player pattern matched against the activating player.
	// Empty falls back to the checker's default activator.
	Activator string

	// ActivationLimit and GameActivationLimit are amount expressions capping
	// activations per turn and per game. Empty means no cap; an expression
	// evaluating to -1 means unlimited.
	ActivationLimit     string
	GameActivationLimit string

	Threshold  bool
	Metalcraft bool
	Delirium   bool
	Hellbent   bool
	Desert     bool
	Blessing   bool

	// CardsInHand, when set, is the exact hand size the activator must have.
	CardsInHand *int
	// ChosenColor, when set, must be a color chosen for the host card.
	ChosenColor string

	Present   *Presence
	LifeTotal *LifeCondition
	CheckVar  *VarCondition
}

// Presence compares the number of matching cards against an amount.
type Presence struct {
	// Filter lists card filter alternatives; a card matching any of them counts.
	Filter []string
	// Defined, when set, names the card set to filter instead of a zone.
	Defined string
	// Zone is the zone to search when Defined is empty. ZoneNone uses the
	// checker's default presence zone.
	Zone    rules.Zone
	Compare Comparison
}

// LifeCondition compares a life total against an amount.
type LifeCondition struct {
	Source  LifeSource
	Compare Comparison
}

// VarCondition compares an amount expression (usually an SVar name) against another.
type VarCondition struct {
	Var     string
	Compare Comparison
}

// ActivationCounters is owned by an action. The action-resolution code
// increments the activation counts; the checker only reads them and records
// the caps it resolved.
type ActivationCounters struct {
	ThisTurn int
	ThisGame int

	// TurnLimit and GameLimit hold the last resolved caps. -1 means unlimited.
	TurnLimit int
	GameLimit int
}

// NewActivationCounters returns counters with no activations and unlimited caps.
func NewActivationCounters() *ActivationCounters {
	return &ActivationCounters{TurnLimit: Unlimited, GameLimit: Unlimited}
}

// RecordActivation counts one activation this turn and this game.
func (ac *ActivationCounters) RecordActivation() {
	ac.ThisTurn++
	ac.ThisGame++
}

// ResetTurn clears the per-turn count at the start of a turn.
func (ac *ActivationCounters) ResetTurn() {
	ac.ThisTurn = 0
}

// Unlimited is the cap value that never rejects.
const Unlimited = -1

func (s *Set) hasPhase(step rules.Step) bool {
	for _, p := range s.Phases {
		if p == step {
			return true
		}
	}
	return false
}
