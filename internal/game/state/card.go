package state

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/magefree/mage-legality/internal/game/counters"
	"github.com/magefree/mage-legality/internal/game/expr"
	"github.com/magefree/mage-legality/internal/game/mana"
	"github.com/magefree/mage-legality/internal/game/restriction"
	"github.com/magefree/mage-legality/internal/game/rules"
)

// CardSpec describes a card to create.
type CardSpec struct {
	Name       string
	ManaCost   string
	Types      []string
	Subtypes   []string
	Supertypes []string
	// Colors overrides the colors derived from the mana cost.
	Colors    []string
	Keywords  []string
	Power     int
	Toughness int
	SVars     map[string]string
	Counters  map[string]int
}

// Card is a card in a game, or a last-known-information copy of one.
type Card struct {
	id         string
	name       string
	cost       *mana.ManaCost
	types      []string
	subtypes   []string
	supertypes []string
	colors     []string
	keywords   []string
	power      int
	toughness  int
	svars      map[string]string
	counters   *counters.Counters

	owner      *Player
	controller *Player
	zone       rules.Zone
	attachedTo *Card

	phasedOut     bool
	usedToPay     bool
	lki           bool
	bestowed      bool
	chosenColors  []string
	pwActivations int
	grants        []*PlayGrant
}

var (
	_ restriction.Card = (*Card)(nil)
	_ expr.Card        = (*Card)(nil)
)

// NewCard creates a card from its description. It is not in any zone until
// added to a game.
func NewCard(spec CardSpec) (*Card, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("card needs a name")
	}
	cost, err := mana.ParseCost(spec.ManaCost)
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", spec.Name, err)
	}

	c := &Card{
		id:         uuid.New().String(),
		name:       spec.Name,
		cost:       cost,
		types:      append([]string(nil), spec.Types...),
		subtypes:   append([]string(nil), spec.Subtypes...),
		supertypes: append([]string(nil), spec.Supertypes...),
		colors:     append([]string(nil), spec.Colors...),
		keywords:   append([]string(nil), spec.Keywords...),
		power:      spec.Power,
		toughness:  spec.Toughness,
		svars:      make(map[string]string, len(spec.SVars)),
		counters:   counters.NewCounters(),
	}
	if len(c.colors) == 0 {
		for _, color := range cost.Colors() {
			c.colors = append(c.colors, color.Name())
		}
	}
	for k, v := range spec.SVars {
		c.svars[strings.ToLower(k)] = v
	}
	for name, n := range spec.Counters {
		c.counters.Add(name, n)
	}
	return c, nil
}

func (c *Card) ID() string   { return c.id }
func (c *Card) Name() string { return c.name }

func (c *Card) Controller() restriction.Player {
	if c.controller == nil {
		return nil
	}
	return c.controller
}

func (c *Card) Owner() restriction.Player {
	if c.owner == nil {
		return nil
	}
	return c.owner
}

// SetController changes control of the card, e.g. a stolen permanent.
func (c *Card) SetController(p *Player) { c.controller = p }

func (c *Card) LastKnownZone() rules.Zone     { return c.zone }
func (c *Card) IsInZone(zone rules.Zone) bool { return c.zone == zone }
func (c *Card) IsPhasedOut() bool             { return c.phasedOut }
func (c *Card) SetPhasedOut(v bool)           { c.phasedOut = v }
func (c *Card) IsUsedToPay() bool             { return c.usedToPay }
func (c *Card) SetUsedToPay(v bool)           { c.usedToPay = v }
func (c *Card) IsLKI() bool                   { return c.lki }
func (c *Card) IsBestowed() bool              { return c.bestowed }
func (c *Card) Types() []string               { return c.types }
func (c *Card) Subtypes() []string            { return c.subtypes }
func (c *Card) Supertypes() []string          { return c.supertypes }
func (c *Card) Colors() []string              { return c.colors }
func (c *Card) ManaValue() int                { return c.cost.ManaValue() }
func (c *Card) Counters() *counters.Counters  { return c.counters }
func (c *Card) CounterCount(name string) int  { return c.counters.Count(name) }
func (c *Card) CounterTotal() int             { return c.counters.Total() }
func (c *Card) PlaneswalkerActivations() int  { return c.pwActivations }

func (c *Card) IsSorcery() bool      { return c.hasType("Sorcery") }
func (c *Card) IsInstant() bool      { return c.hasType("Instant") }
func (c *Card) IsCreature() bool     { return c.hasType("Creature") }
func (c *Card) IsPlaneswalker() bool { return c.hasType("Planeswalker") }
func (c *Card) IsLegendary() bool    { return contains(c.supertypes, "Legendary") }

// Power includes +1/+1 style counters.
func (c *Card) Power() int {
	p, _ := c.counters.Boost()
	return c.power + p
}

// Toughness includes +1/+1 style counters.
func (c *Card) Toughness() int {
	_, t := c.counters.Boost()
	return c.toughness + t
}

// CreatureTypes returns the subtypes when the card is a creature or kindred.
func (c *Card) CreatureTypes() []string {
	if !c.IsCreature() && !c.hasType("Kindred") && !c.hasType("Tribal") {
		return nil
	}
	return c.subtypes
}

func (c *Card) HasKeyword(keyword string) bool {
	return c.KeywordCount(keyword) > 0
}

// KeywordCount counts instances of a keyword; some stack ("May activate
// CARDNAME's loyalty abilities once").
func (c *Card) KeywordCount(keyword string) int {
	n := 0
	for _, k := range c.keywords {
		if strings.EqualFold(k, keyword) {
			n++
		}
	}
	return n
}

// AddKeyword grants a keyword.
func (c *Card) AddKeyword(keyword string) {
	c.keywords = append(c.keywords, keyword)
}

// SVar looks up a script variable case-insensitively.
func (c *Card) SVar(name string) (string, bool) {
	v, ok := c.svars[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

// ChooseColor records a color chosen as the card entered ("As ~ enters,
// choose a color").
func (c *Card) ChooseColor(color string) {
	c.chosenColors = append(c.chosenColors, color)
}

func (c *Card) HasChosenColor(color string) bool {
	for _, chosen := range c.chosenColors {
		if strings.EqualFold(chosen, color) {
			return true
		}
	}
	return false
}

// AttachTo attaches the card to a permanent. Nil detaches it.
func (c *Card) AttachTo(target *Card) { c.attachedTo = target }

func (c *Card) AttachedTo() restriction.Card {
	if c.attachedTo == nil {
		return nil
	}
	return c.attachedTo
}

// AddGrant lets a player play this card as the grant describes.
func (c *Card) AddGrant(g *PlayGrant) { c.grants = append(c.grants, g) }

// MayPlayFor returns the card's grants belonging to the player.
func (c *Card) MayPlayFor(activator restriction.Player) []restriction.Grant {
	var out []restriction.Grant
	for _, g := range c.grants {
		if g.player != nil && activator != nil && g.player.id == activator.ID() {
			out = append(out, g)
		}
	}
	return out
}

// BestowSnapshot returns a last-known copy of the card as a bestowed Aura: it
// loses the creature type and creature types and becomes an Aura enchantment
// with enchant creature. The receiver is left untouched.
func (c *Card) BestowSnapshot() restriction.Card {
	cp := c.copy()
	cp.lki = true
	cp.bestowed = true

	types := []string{}
	for _, t := range cp.types {
		if t != "Creature" {
			types = append(types, t)
		}
	}
	if !contains(types, "Enchantment") {
		types = append(types, "Enchantment")
	}
	cp.types = types
	cp.subtypes = []string{"Aura"}
	cp.keywords = append(cp.keywords, "Enchant creature")
	return cp
}

// copy makes an independent last-known copy sharing only player pointers.
func (c *Card) copy() *Card {
	cp := *c
	cp.types = append([]string(nil), c.types...)
	cp.subtypes = append([]string(nil), c.subtypes...)
	cp.supertypes = append([]string(nil), c.supertypes...)
	cp.colors = append([]string(nil), c.colors...)
	cp.keywords = append([]string(nil), c.keywords...)
	cp.chosenColors = append([]string(nil), c.chosenColors...)
	cp.grants = append([]*PlayGrant(nil), c.grants...)
	cp.svars = make(map[string]string, len(c.svars))
	for k, v := range c.svars {
		cp.svars[k] = v
	}
	cp.counters = c.counters.Copy()
	return &cp
}

func (c *Card) hasType(t string) bool    { return contains(c.types, t) }
func (c *Card) hasSubtype(t string) bool { return contains(c.subtypes, t) }

func contains(values []string, v string) bool {
	for _, have := range values {
		if strings.EqualFold(have, v) {
			return true
		}
	}
	return false
}
