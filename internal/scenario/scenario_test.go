package scenario

import (
	"strings"
	"testing"

	"github.com/magefree/mage-legality/internal/game/expr"
	"github.com/magefree/mage-legality/internal/game/restriction"
	"github.com/magefree/mage-legality/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLoad_MainPhase(t *testing.T) {
	sc, err := Load("testdata/main_phase.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Alice's first main phase", sc.Name)
	assert.Equal(t, "Constructed", sc.Game.GameType())
	assert.Equal(t, rules.StepMain1, sc.Game.Step())
	require.Len(t, sc.Game.Players(), 2)
	require.Len(t, sc.Candidates, 11)

	alice, ok := sc.Game.PlayerByName("Alice")
	require.True(t, ok)
	bob, ok := sc.Game.PlayerByName("Bob")
	require.True(t, ok)
	assert.Equal(t, alice.ID(), sc.Game.ActivePlayer().ID())
	assert.Equal(t, 9, alice.Life())
	assert.True(t, alice.HasSurge())
	assert.Equal(t, 17, bob.Life())
	assert.True(t, bob.HasProwl("Faerie"))

	rancor, ok := sc.Game.CardByName("Rancor")
	require.True(t, ok)
	require.NotNil(t, rancor.AttachedTo())
	assert.Equal(t, "Llanowar Elves", rancor.AttachedTo().Name())

	jace, ok := sc.Game.CardByName("Jace Beleren")
	require.True(t, ok)
	assert.Equal(t, 3, jace.CounterCount("loyalty"))
	assert.Equal(t, 1, jace.PlaneswalkerActivations())

	assert.Len(t, sc.Game.CostPaymentStack(), 1)
}

func TestLoad_ExpectationsHold(t *testing.T) {
	sc, err := Load("testdata/main_phase.yaml")
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	checker := restriction.NewChecker(expr.New(logger), restriction.WithLogger(logger))
	for _, c := range sc.Candidates {
		t.Run(c.Ability.Name(), func(t *testing.T) {
			require.NotNil(t, c.Expect)
			result, err := checker.Evaluate(c.Card, c.Ability)
			require.NoError(t, err)
			assert.True(t, c.Expect.Matches(result), "got legal=%v stage=%s reason=%q", result.Legal, result.Stage, result.Reason)
		})
	}
}

func TestDecode_Defaults(t *testing.T) {
	sc, err := Decode(strings.NewReader(`
players:
  - name: Alice
cards:
  - name: Memnite
    owner: Alice
    types: [Artifact, Creature]
abilities:
  - card: Memnite
`))
	require.NoError(t, err)
	assert.Equal(t, "Constructed", sc.Game.GameType())
	assert.Equal(t, rules.StepMain1, sc.Game.Step())
	require.Len(t, sc.Candidates, 1)

	c := sc.Candidates[0]
	assert.Equal(t, "Memnite", c.Ability.Name())
	assert.True(t, c.Card.IsInZone(rules.ZoneBattlefield))
	assert.Nil(t, c.Ability.Activator())
	assert.Nil(t, c.Expect)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no players", `cards: []`},
		{"unknown field", "players: [{name: Alice}]\nturn: 3\n"},
		{"unknown owner", "players: [{name: Alice}]\ncards: [{name: Opt, owner: Bob}]\n"},
		{"bad zone", "players: [{name: Alice}]\ncards: [{name: Opt, owner: Alice, zone: Sideboard}]\n"},
		{"bad step", "players: [{name: Alice}]\nstep: Second Breakfast\n"},
		{"unknown active", "players: [{name: Alice}]\nactive: Carol\n"},
		{"unknown attachment", "players: [{name: Alice}]\ncards: [{name: Rancor, owner: Alice, attached_to: Nothing}]\n"},
		{"unknown card", "players: [{name: Alice}]\nabilities: [{name: a, card: Opt}]\n"},
		{"unknown trait", "players: [{name: Alice}]\ncards: [{name: Opt, owner: Alice}]\nabilities: [{card: Opt, traits: [kicker]}]\n"},
		{"bad params", "players: [{name: Alice}]\ncards: [{name: Opt, owner: Alice}]\nabilities: [{card: Opt, params: {Activation: Ferocious}}]\n"},
		{"unknown paying", "players: [{name: Alice}]\npaying: [ghost]\n"},
		{"unknown flash player", "players: [{name: Alice}]\nflash_grants: [{player: Bob}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDecode_UnknownReferenceIsWrapped(t *testing.T) {
	_, err := Decode(strings.NewReader("players: [{name: Alice}]\ncards: [{name: Opt, owner: Bob}]\n"))
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParseTraits(t *testing.T) {
	traits, err := parseTraits([]string{"Spell", "bestow", "mana-ability", "cast_from_play_effect", "loyalty"})
	require.NoError(t, err)
	assert.Equal(t, restriction.Traits{
		Spell:              true,
		Bestow:             true,
		ManaAbility:        true,
		CastFromPlayEffect: true,
		Planeswalker:       true,
	}, traits)
}

func TestExpectation_Matches(t *testing.T) {
	legal := restriction.LegalityResult{Legal: true}
	zone := restriction.LegalityResult{Stage: restriction.StageZone, Reason: "in Graveyard, needs Hand"}

	assert.True(t, Expectation{Legal: true}.Matches(legal))
	assert.False(t, Expectation{Legal: true}.Matches(zone))
	assert.False(t, Expectation{}.Matches(legal))
	assert.True(t, Expectation{}.Matches(zone))
	assert.True(t, Expectation{Stage: "Zone"}.Matches(zone))
	assert.False(t, Expectation{Stage: "timing"}.Matches(zone))
}
