// Package scenario builds games and candidate actions from YAML fixtures, so
// legality verdicts can be reproduced outside a running game.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/magefree/mage-legality/internal/game/restriction"
	"github.com/magefree/mage-legality/internal/game/rules"
	"github.com/magefree/mage-legality/internal/game/state"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a scenario.
type File struct {
	Name        string       `yaml:"name"`
	GameType    string       `yaml:"game_type"`
	Step        string       `yaml:"step"`
	Active      string       `yaml:"active"`
	Players     []PlayerDef  `yaml:"players"`
	Cards       []CardDef    `yaml:"cards"`
	FlashGrants []FlashDef   `yaml:"flash_grants"`
	Abilities   []AbilityDef `yaml:"abilities"`
	Paying      []string     `yaml:"paying"`
}

// PlayerDef seats a player.
type PlayerDef struct {
	Name       string   `yaml:"name"`
	Life       *int     `yaml:"life"`
	Keywords   []string `yaml:"keywords"`
	Blessing   bool     `yaml:"blessing"`
	SpellsCast int      `yaml:"spells_cast"`
	LifeLost   int      `yaml:"life_lost"`
	Prowl      []string `yaml:"prowl"`
}

// CardDef places a card.
type CardDef struct {
	Name         string            `yaml:"name"`
	Owner        string            `yaml:"owner"`
	Controller   string            `yaml:"controller"`
	Zone         string            `yaml:"zone"`
	ManaCost     string            `yaml:"mana_cost"`
	Types        []string          `yaml:"types"`
	Subtypes     []string          `yaml:"subtypes"`
	Supertypes   []string          `yaml:"supertypes"`
	Colors       []string          `yaml:"colors"`
	Keywords     []string          `yaml:"keywords"`
	Power        int               `yaml:"power"`
	Toughness    int               `yaml:"toughness"`
	SVars        map[string]string `yaml:"svars"`
	Counters     map[string]int    `yaml:"counters"`
	PhasedOut    bool              `yaml:"phased_out"`
	UsedToPay    bool              `yaml:"used_to_pay"`
	ChosenColors []string          `yaml:"chosen_colors"`
	AttachedTo   string            `yaml:"attached_to"`
	Grants       []GrantDef        `yaml:"grants"`
}

// GrantDef is a play permission.
type GrantDef struct {
	Player          string   `yaml:"player"`
	Host            string   `yaml:"host"`
	ZonePermissions bool     `yaml:"zone_permissions"`
	Affected        []string `yaml:"affected"`
	ValidSA         []string `yaml:"valid_sa"`
}

// FlashDef is a static "as though it had flash" permission.
type FlashDef struct {
	Player         string   `yaml:"player"`
	Cards          []string `yaml:"cards"`
	NeedsTargeting bool     `yaml:"needs_targeting"`
}

// AbilityDef is a candidate action.
type AbilityDef struct {
	Name          string            `yaml:"name"`
	Card          string            `yaml:"card"`
	Activator     string            `yaml:"activator"`
	Traits        []string          `yaml:"traits"`
	X             int               `yaml:"x"`
	Activated     ActivatedDef      `yaml:"activated"`
	PlayedThrough *GrantDef         `yaml:"played_through"`
	Params        map[string]string `yaml:"params"`
	Expect        *Expectation      `yaml:"expect"`
}

// ActivatedDef sets the activation counts recorded so far.
type ActivatedDef struct {
	Turn int `yaml:"turn"`
	Game int `yaml:"game"`
}

// Expectation is the verdict a fixture expects.
type Expectation struct {
	Legal bool   `yaml:"legal"`
	Stage string `yaml:"stage"`
}

// Matches reports whether a result agrees with the expectation. An empty
// stage matches any rejecting stage.
func (e Expectation) Matches(result restriction.LegalityResult) bool {
	if e.Legal || result.Legal {
		return e.Legal == result.Legal
	}
	return e.Stage == "" || strings.EqualFold(e.Stage, string(result.Stage))
}

// Candidate is an action to check together with the card it is checked for.
type Candidate struct {
	Card    *state.Card
	Ability *state.Ability
	Expect  *Expectation
}

// Scenario is a built game and its candidates.
type Scenario struct {
	Name       string
	Game       *state.Game
	Candidates []Candidate
}

// ErrUnknownReference is returned when a fixture names a player, card or
// ability it doesn't define.
var ErrUnknownReference = errors.New("unknown reference")

// Load reads and builds the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Decode reads a scenario from r and builds it.
func Decode(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return Build(f)
}

// Build creates the game described by f.
func Build(f File) (*Scenario, error) {
	if len(f.Players) == 0 {
		return nil, errors.New("scenario needs at least one player")
	}
	gameType := f.GameType
	if gameType == "" {
		gameType = "Constructed"
	}
	b := &builder{game: state.NewGame(gameType)}

	for _, pd := range f.Players {
		b.addPlayer(pd)
	}
	if err := b.setTurn(f.Active, f.Step); err != nil {
		return nil, err
	}

	for _, cd := range f.Cards {
		if err := b.addCard(cd); err != nil {
			return nil, fmt.Errorf("card %s: %w", cd.Name, err)
		}
	}
	// Attachments and grants can refer to cards defined later in the file.
	for i, cd := range f.Cards {
		if err := b.linkCard(b.cards[i], cd); err != nil {
			return nil, fmt.Errorf("card %s: %w", cd.Name, err)
		}
	}

	for _, fd := range f.FlashGrants {
		fg := state.FlashGrant{CardNames: fd.Cards, NeedsTargeting: fd.NeedsTargeting}
		if fd.Player != "" {
			p, err := b.player(fd.Player)
			if err != nil {
				return nil, fmt.Errorf("flash grant: %w", err)
			}
			fg.Player = p
		}
		b.game.AddFlashGrant(fg)
	}

	sc := &Scenario{Name: f.Name, Game: b.game}
	abilities := make(map[string]*state.Ability, len(f.Abilities))
	for _, ad := range f.Abilities {
		c, err := b.addAbility(ad)
		if err != nil {
			return nil, fmt.Errorf("ability %s: %w", ad.Name, err)
		}
		abilities[ad.Name] = c.Ability
		sc.Candidates = append(sc.Candidates, c)
	}

	for _, name := range f.Paying {
		a, ok := abilities[name]
		if !ok {
			return nil, fmt.Errorf("paying %s: %w", name, ErrUnknownReference)
		}
		if err := b.game.Payments().Begin(a.ID()); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

type builder struct {
	game  *state.Game
	cards []*state.Card
}

func (b *builder) addPlayer(pd PlayerDef) {
	p := b.game.AddPlayer(pd.Name)
	if pd.Life != nil {
		p.SetLife(*pd.Life)
	}
	for _, k := range pd.Keywords {
		p.AddKeyword(k)
	}
	p.SetBlessing(pd.Blessing)
	for i := 0; i < pd.SpellsCast; i++ {
		p.RecordSpellCast()
	}
	// Life lost this turn comes on top of the configured total.
	p.LoseLife(pd.LifeLost)
	for _, t := range pd.Prowl {
		p.AddProwl(t)
	}
}

func (b *builder) setTurn(active, step string) error {
	if active != "" {
		p, err := b.player(active)
		if err != nil {
			return fmt.Errorf("active player: %w", err)
		}
		b.game.SetActivePlayer(p)
	}
	if step == "" {
		step = "Main1"
	}
	s, err := rules.ParseStep(step)
	if err != nil {
		return err
	}
	b.game.SetStep(s)
	return nil
}

func (b *builder) addCard(cd CardDef) error {
	c, err := state.NewCard(state.CardSpec{
		Name:       cd.Name,
		ManaCost:   cd.ManaCost,
		Types:      cd.Types,
		Subtypes:   cd.Subtypes,
		Supertypes: cd.Supertypes,
		Colors:     cd.Colors,
		Keywords:   cd.Keywords,
		Power:      cd.Power,
		Toughness:  cd.Toughness,
		SVars:      cd.SVars,
		Counters:   cd.Counters,
	})
	if err != nil {
		return err
	}

	owner, err := b.player(cd.Owner)
	if err != nil {
		return fmt.Errorf("owner: %w", err)
	}
	zone := rules.ZoneBattlefield
	if cd.Zone != "" {
		if zone, err = rules.ParseZone(cd.Zone); err != nil {
			return err
		}
	}
	if err := b.game.AddCard(c, owner, zone); err != nil {
		return err
	}

	if cd.Controller != "" {
		controller, err := b.player(cd.Controller)
		if err != nil {
			return fmt.Errorf("controller: %w", err)
		}
		c.SetController(controller)
	}
	c.SetPhasedOut(cd.PhasedOut)
	c.SetUsedToPay(cd.UsedToPay)
	for _, color := range cd.ChosenColors {
		c.ChooseColor(color)
	}
	b.cards = append(b.cards, c)
	return nil
}

func (b *builder) linkCard(c *state.Card, cd CardDef) error {
	if cd.AttachedTo != "" {
		target, err := b.card(cd.AttachedTo)
		if err != nil {
			return fmt.Errorf("attached to: %w", err)
		}
		c.AttachTo(target)
	}
	for _, gd := range cd.Grants {
		g, err := b.grant(gd)
		if err != nil {
			return err
		}
		c.AddGrant(g)
	}
	return nil
}

func (b *builder) grant(gd GrantDef) (*state.PlayGrant, error) {
	p, err := b.player(gd.Player)
	if err != nil {
		return nil, fmt.Errorf("grant player: %w", err)
	}
	spec := state.PlayGrantSpec{
		ZonePermissions: gd.ZonePermissions,
		Affected:        gd.Affected,
		ValidSA:         gd.ValidSA,
	}
	if gd.Host != "" {
		if spec.Host, err = b.card(gd.Host); err != nil {
			return nil, fmt.Errorf("grant host: %w", err)
		}
	}
	return state.NewPlayGrant(p, spec), nil
}

func (b *builder) addAbility(ad AbilityDef) (Candidate, error) {
	host, err := b.card(ad.Card)
	if err != nil {
		return Candidate{}, err
	}
	traits, err := parseTraits(ad.Traits)
	if err != nil {
		return Candidate{}, err
	}
	set, err := restriction.Parse(ad.Params)
	if err != nil {
		return Candidate{}, err
	}

	name := ad.Name
	if name == "" {
		name = host.Name()
	}
	a := b.game.NewAbility(host, name, traits, set)
	a.SetXValue(ad.X)
	if ad.Activator != "" {
		p, err := b.player(ad.Activator)
		if err != nil {
			return Candidate{}, fmt.Errorf("activator: %w", err)
		}
		a.SetActivator(p)
	}
	if ad.PlayedThrough != nil {
		g, err := b.grant(*ad.PlayedThrough)
		if err != nil {
			return Candidate{}, err
		}
		a.PlayThrough(g)
	}

	for i := 0; i < ad.Activated.Turn; i++ {
		a.RecordActivation()
	}
	if ad.Activated.Game > a.Counters().ThisGame {
		a.Counters().ThisGame = ad.Activated.Game
	}
	return Candidate{Card: host, Ability: a, Expect: ad.Expect}, nil
}

func (b *builder) player(name string) (*state.Player, error) {
	p, ok := b.game.PlayerByName(name)
	if !ok {
		return nil, fmt.Errorf("player %q: %w", name, ErrUnknownReference)
	}
	return p, nil
}

func (b *builder) card(name string) (*state.Card, error) {
	c, ok := b.game.CardByName(name)
	if !ok {
		return nil, fmt.Errorf("card %q: %w", name, ErrUnknownReference)
	}
	return c, nil
}

// parseTraits reads trait names such as "spell" or "mana_ability".
func parseTraits(names []string) (restriction.Traits, error) {
	var t restriction.Traits
	for _, name := range names {
		switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_")) {
		case "spell":
			t.Spell = true
		case "bestow":
			t.Bestow = true
		case "aftermath":
			t.Aftermath = true
		case "alternate_state":
			t.AlternateState = true
		case "hidden_agenda":
			t.HiddenAgenda = true
		case "cast_from_play_effect":
			t.CastFromPlayEffect = true
		case "surged", "surge":
			t.Surged = true
		case "spectacle":
			t.Spectacle = true
		case "prowl":
			t.Prowl = true
		case "planeswalker", "loyalty":
			t.Planeswalker = true
		case "boast":
			t.Boast = true
		case "mana_ability", "mana":
			t.ManaAbility = true
		default:
			return t, fmt.Errorf("unknown trait %q", name)
		}
	}
	return t, nil
}
