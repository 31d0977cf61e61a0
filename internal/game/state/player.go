package state

import (
	"github.com/google/uuid"
	"github.com/magefree/mage-legality/internal/game/restriction"
	"github.com/magefree/mage-legality/internal/game/rules"
)

// StartingLife is a player's life total when seated.
const StartingLife = 20

// Player is a participant in a game. Every other player is an opponent.
type Player struct {
	id       string
	name     string
	game     *Game
	life     int
	keywords []string
	blessing bool
	prowl    map[string]bool

	// per turn
	spellsCast int
	lifeLost   int
}

var _ restriction.Player = (*Player)(nil)

func newPlayer(g *Game, name string) *Player {
	return &Player{
		id:    uuid.New().String(),
		name:  name,
		game:  g,
		life:  StartingLife,
		prowl: make(map[string]bool),
	}
}

func (p *Player) ID() string   { return p.id }
func (p *Player) Name() string { return p.name }

func (p *Player) Game() restriction.Game { return p.game }

// IsOpponentOf reports whether other is a different player in the same game.
func (p *Player) IsOpponentOf(other restriction.Player) bool {
	return other != nil && other.ID() != p.id
}

func (p *Player) Life() int { return p.life }

// SetLife sets the life total without counting it as life lost.
func (p *Player) SetLife(life int) { p.life = life }

// LoseLife lowers the life total and records the loss for this turn.
func (p *Player) LoseLife(amount int) {
	if amount <= 0 {
		return
	}
	p.life -= amount
	p.lifeLost += amount
}

// OpponentsSmallestLife returns the lowest life total among opponents, or 0
// without opponents.
func (p *Player) OpponentsSmallestLife() int {
	smallest, found := 0, false
	for _, o := range p.opponents() {
		if !found || o.life < smallest {
			smallest, found = o.life, true
		}
	}
	return smallest
}

func (p *Player) opponents() []*Player {
	var out []*Player
	for _, o := range p.game.players {
		if o.id != p.id {
			out = append(out, o)
		}
	}
	return out
}

// CardsIn returns the player's cards in a zone: permanents controlled on the
// battlefield and stack, cards owned everywhere else.
func (p *Player) CardsIn(zone rules.Zone) []restriction.Card {
	var out []restriction.Card
	for _, c := range p.cardsIn(zone) {
		out = append(out, c)
	}
	return out
}

func (p *Player) cardsIn(zone rules.Zone) []*Card {
	var out []*Card
	for _, c := range p.game.cards {
		if c.zone != zone {
			continue
		}
		holder := c.owner
		if zone == rules.ZoneBattlefield || zone == rules.ZoneStack {
			holder = c.controller
		}
		if holder == p {
			out = append(out, c)
		}
	}
	return out
}

// AddKeyword gives the player a keyword ability such as an emblem's.
func (p *Player) AddKeyword(keyword string) {
	p.keywords = append(p.keywords, keyword)
}

func (p *Player) HasKeyword(keyword string) bool {
	for _, k := range p.keywords {
		if k == keyword {
			return true
		}
	}
	return false
}

// CanCastSorcery reports whether the player may act at sorcery speed: it is
// their main step and the stack is empty.
func (p *Player) CanCastSorcery() bool {
	g := p.game
	return g.turns.ActivePlayer() == p.id && g.Step().IsMain() && g.stackEmpty()
}

// HasThreshold reports seven or more cards in the graveyard.
func (p *Player) HasThreshold() bool {
	return len(p.cardsIn(rules.ZoneGraveyard)) >= 7
}

// HasMetalcraft reports three or more artifacts controlled.
func (p *Player) HasMetalcraft() bool {
	n := 0
	for _, c := range p.cardsIn(rules.ZoneBattlefield) {
		if c.hasType("Artifact") {
			n++
		}
	}
	return n >= 3
}

// HasDelirium reports four or more card types among cards in the graveyard.
func (p *Player) HasDelirium() bool {
	types := make(map[string]bool)
	for _, c := range p.cardsIn(rules.ZoneGraveyard) {
		for _, t := range c.types {
			types[t] = true
		}
	}
	return len(types) >= 4
}

// HasHellbent reports an empty hand.
func (p *Player) HasHellbent() bool {
	return len(p.cardsIn(rules.ZoneHand)) == 0
}

// HasDesert reports controlling a Desert or having one in the graveyard.
func (p *Player) HasDesert() bool {
	for _, zone := range []rules.Zone{rules.ZoneBattlefield, rules.ZoneGraveyard} {
		for _, c := range p.cardsIn(zone) {
			if c.hasSubtype("Desert") {
				return true
			}
		}
	}
	return false
}

// HasBlessing reports the city's blessing.
func (p *Player) HasBlessing() bool { return p.blessing }

// SetBlessing gives or removes the city's blessing.
func (p *Player) SetBlessing(v bool) { p.blessing = v }

// HasSurge reports whether the player cast another spell this turn.
func (p *Player) HasSurge() bool { return p.spellsCast > 0 }

// RecordSpellCast counts a spell cast this turn.
func (p *Player) RecordSpellCast() { p.spellsCast++ }

// HasProwl reports whether a creature of the type dealt combat damage to a
// player this turn under this player's control.
func (p *Player) HasProwl(creatureType string) bool { return p.prowl[creatureType] }

// AddProwl records combat damage dealt by a creature of the type.
func (p *Player) AddProwl(creatureType string) { p.prowl[creatureType] = true }

// OpponentLostLifeThisTurn sums the life lost by opponents this turn.
func (p *Player) OpponentLostLifeThisTurn() int {
	total := 0
	for _, o := range p.opponents() {
		total += o.lifeLost
	}
	return total
}

func (p *Player) resetTurn() {
	p.spellsCast = 0
	p.lifeLost = 0
	p.prowl = make(map[string]bool)
}
