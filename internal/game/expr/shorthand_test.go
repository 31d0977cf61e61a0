package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsShorthand(t *testing.T) {
	assert.True(t, isShorthand("Creature"))
	assert.True(t, isShorthand("Creature.Zombie+YouCtrl"))
	assert.False(t, isShorthand(`type = "Creature"`))
	assert.False(t, isShorthand("cmc>3"))
	assert.False(t, isShorthand(""))
}

func TestTranslateShorthand_Card(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Card", ""},
		{"Any", ""},
		{"Creature", `type = "Creature"`},
		{"Creature.Zombie+YouCtrl", `type = "Creature" AND subtype = "Zombie" AND controller = "You"`},
		{"Permanent.nonLand", `zone = "Battlefield" AND NOT type = "Land"`},
		{"Card.cmcLE3", `cmc <= 3`},
		{"Creature.powerGE2+toughnessLT4", `type = "Creature" AND power >= 2 AND toughness < 4`},
		{"Creature.withFlying", `type = "Creature" AND keyword = "Flying"`},
		{"Card.Legendary+Red", `supertype = "Legendary" AND color = "Red"`},
		{"Creature.Other+OppOwn", `type = "Creature" AND self = "false" AND owner = "Opponent"`},
		{"Card.Self", `self = "true"`},
		{"Enchantment.Aura", `type = "Enchantment" AND subtype = "Aura"`},
	}

	for _, tt := range tests {
		got, err := translateShorthand(subjectCard, tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTranslateShorthand_Player(t *testing.T) {
	got, err := translateShorthand(subjectPlayer, "Opponent.Active")
	require.NoError(t, err)
	assert.Equal(t, `relation = "Opponent" AND active = "true"`, got)

	got, err = translateShorthand(subjectPlayer, "Player")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = translateShorthand(subjectPlayer, "You.NonActive")
	require.NoError(t, err)
	assert.Equal(t, `relation = "You" AND active = "false"`, got)
}

func TestTranslateShorthand_Action(t *testing.T) {
	got, err := translateShorthand(subjectAction, "Spell.Instant+Sorcery")
	require.NoError(t, err)
	assert.Equal(t, `kind = "Spell" AND type = "Instant" AND type = "Sorcery"`, got)

	got, err = translateShorthand(subjectAction, "Activated")
	require.NoError(t, err)
	assert.Equal(t, `kind = "Activated"`, got)
}

func TestTranslateShorthand_Errors(t *testing.T) {
	for _, tt := range []struct {
		s  subject
		in string
	}{
		{subjectCard, "Gizmo"},
		{subjectCard, "Creature.powerGEx"},
		{subjectPlayer, "Wizard"},
		{subjectPlayer, "You.Sleepy"},
		{subjectAction, "Ability"},
	} {
		_, err := translateShorthand(tt.s, tt.in)
		assert.Error(t, err, "%s %s", tt.s, tt.in)
	}
}

func TestParse_Caches(t *testing.T) {
	e := New(nil)
	first, err := e.parse(subjectCard, "Creature.Zombie")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := e.parse(subjectCard, " Creature.Zombie ")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, e.parsed, 1)

	// The same text is cached separately per subject.
	_, err = e.parse(subjectAction, "Creature")
	assert.Error(t, err)
}

func TestParse_EmptyMatchesEverything(t *testing.T) {
	e := New(nil)
	parsed, err := e.parse(subjectCard, "Card")
	require.NoError(t, err)
	assert.Nil(t, parsed)

	ok, err := evaluate(parsed, func(string) (any, bool) { return nil, false })
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParse_Errors(t *testing.T) {
	e := New(nil)
	for _, filter := range []string{
		`type = `,
		`flavor = "spicy"`,
		`power >= "three"`,
	} {
		_, err := e.parse(subjectCard, filter)
		assert.Error(t, err, filter)
	}
}

func TestListOf(t *testing.T) {
	m := listOf([]string{"Creature", "Artifact"})
	assert.True(t, m("creature"))
	assert.True(t, m("Artifact"))
	assert.False(t, m("Land"))
	assert.False(t, listOf(nil)("Creature"))
}
