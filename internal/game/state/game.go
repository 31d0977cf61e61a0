// Package state is an in-memory game state exposing the read-only query
// surfaces the restriction checker consumes. It keeps only what legality
// needs: players, cards and their zones, the turn, the cost-payment stack
// and the static flash permissions in effect.
package state

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/magefree/mage-legality/internal/game/restriction"
	"github.com/magefree/mage-legality/internal/game/rules"
)

// Game holds the state of one game. It is not safe for concurrent mutation;
// callers serialize checks and updates per game.
type Game struct {
	id          string
	gameType    string
	players     []*Player // turn order
	cards       []*Card
	abilities   []*Ability
	turns       *rules.TurnManager
	payments    *rules.CostPaymentStack
	flashGrants []FlashGrant
}

var _ restriction.Game = (*Game)(nil)

// NewGame creates an empty game of the given variant ("Constructed",
// "Commander", ...).
func NewGame(gameType string) *Game {
	return &Game{
		id:       uuid.New().String(),
		gameType: gameType,
		turns:    rules.NewTurnManager(""),
		payments: rules.NewCostPaymentStack(),
	}
}

// ID returns the game id.
func (g *Game) ID() string { return g.id }

// GameType returns the game variant.
func (g *Game) GameType() string { return g.gameType }

// AddPlayer seats a new player with 20 life. The first player added is
// active until SetActivePlayer says otherwise.
func (g *Game) AddPlayer(name string) *Player {
	p := newPlayer(g, name)
	g.players = append(g.players, p)
	if g.turns.ActivePlayer() == "" {
		g.turns.SetActivePlayer(p.id)
	}
	return p
}

// Players returns the players in turn order.
func (g *Game) Players() []*Player {
	return append([]*Player(nil), g.players...)
}

// PlayerByID looks up a player.
func (g *Game) PlayerByID(id string) (*Player, bool) {
	for _, p := range g.players {
		if p.id == id {
			return p, true
		}
	}
	return nil, false
}

// PlayerByName looks up a player by name.
func (g *Game) PlayerByName(name string) (*Player, bool) {
	for _, p := range g.players {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// AddCard puts a card owned and controlled by owner into a zone.
func (g *Game) AddCard(c *Card, owner *Player, zone rules.Zone) error {
	if owner == nil {
		return fmt.Errorf("card %s has no owner", c.name)
	}
	if zone == rules.ZoneNone {
		return fmt.Errorf("card %s needs a zone", c.name)
	}
	c.owner = owner
	c.controller = owner
	c.zone = zone
	g.cards = append(g.cards, c)
	return nil
}

// MoveCard moves a card to another zone. Leaving the battlefield returns
// control to the owner.
func (g *Game) MoveCard(c *Card, zone rules.Zone) {
	if c.zone == rules.ZoneBattlefield && zone != rules.ZoneBattlefield {
		c.controller = c.owner
		c.attachedTo = nil
	}
	c.zone = zone
}

// Cards returns every card in the game.
func (g *Game) Cards() []*Card {
	return append([]*Card(nil), g.cards...)
}

// CardByName returns the first card with the name.
func (g *Game) CardByName(name string) (*Card, bool) {
	for _, c := range g.cards {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// CardsIn returns every card in the zone across all players.
func (g *Game) CardsIn(zone rules.Zone) []restriction.Card {
	var out []restriction.Card
	for _, c := range g.cards {
		if c.zone == zone {
			out = append(out, c)
		}
	}
	return out
}

// Turn exposes the turn tracker.
func (g *Game) Turn() *rules.TurnManager { return g.turns }

// Step returns the current step.
func (g *Game) Step() rules.Step { return g.turns.CurrentStep() }

// SetStep jumps to a step of the current turn.
func (g *Game) SetStep(step rules.Step) { g.turns.SetStep(step) }

// ActivePlayer returns the player whose turn it is, or nil before any player
// has been seated.
func (g *Game) ActivePlayer() restriction.Player {
	if p, ok := g.PlayerByID(g.turns.ActivePlayer()); ok {
		return p
	}
	return nil
}

// SetActivePlayer gives the turn to p.
func (g *Game) SetActivePlayer(p *Player) {
	g.turns.SetActivePlayer(p.id)
}

// AdvanceStep moves to the next step. Payments in progress are abandoned.
// When a new turn begins the turn passes to the next player in order and
// per-turn tracking is cleared.
func (g *Game) AdvanceStep() rules.Step {
	g.payments.Reset()
	step, newTurn := g.turns.AdvanceStep(g.nextPlayerID())
	if newTurn {
		g.resetTurn()
	}
	return step
}

func (g *Game) nextPlayerID() string {
	active := g.turns.ActivePlayer()
	for i, p := range g.players {
		if p.id == active {
			return g.players[(i+1)%len(g.players)].id
		}
	}
	return ""
}

func (g *Game) resetTurn() {
	for _, p := range g.players {
		p.resetTurn()
	}
	for _, c := range g.cards {
		c.pwActivations = 0
	}
	for _, a := range g.abilities {
		a.counters.ResetTurn()
	}
}

// Payments exposes the cost-payment stack.
func (g *Game) Payments() *rules.CostPaymentStack { return g.payments }

// CostPaymentStack returns the ids of abilities whose costs are being paid.
func (g *Game) CostPaymentStack() []string { return g.payments.List() }

// AddFlashGrant puts a static "as though it had flash" permission into effect.
func (g *Game) AddFlashGrant(fg FlashGrant) {
	g.flashGrants = append(g.flashGrants, fg)
}

// CastWithFlash reports whether a flash grant applies to the spell without
// depending on targets.
func (g *Game) CastWithFlash(action restriction.Action, card restriction.Card, activator restriction.Player) bool {
	for _, fg := range g.flashGrants {
		if !fg.NeedsTargeting && fg.applies(card, activator) {
			return true
		}
	}
	return false
}

// CastWithFlashNeedsTargeting reports whether a flash grant for the spell
// applies only depending on targets that aren't chosen yet.
func (g *Game) CastWithFlashNeedsTargeting(action restriction.Action, card restriction.Card, activator restriction.Player) bool {
	if !action.Traits().Spell {
		return false
	}
	for _, fg := range g.flashGrants {
		if fg.NeedsTargeting && fg.applies(card, activator) {
			return true
		}
	}
	return false
}

func (g *Game) stackEmpty() bool {
	for _, c := range g.cards {
		if c.zone == rules.ZoneStack {
			return false
		}
	}
	return true
}
