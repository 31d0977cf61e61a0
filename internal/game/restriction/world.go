package restriction

import (
	"github.com/magefree/mage-legality/internal/game/rules"
)

// Game is the read-only game-state surface the checker queries.
type Game interface {
	// Step returns the current step of the turn.
	Step() rules.Step
	// ActivePlayer returns the player whose turn it is.
	ActivePlayer() Player
	// GameType returns the game variant, e.g. "Constructed" or "Commander".
	GameType() string
	// CardsIn returns every card in the zone across all players.
	CardsIn(zone rules.Zone) []Card
	// CostPaymentStack returns the ids of abilities whose costs are being paid.
	CostPaymentStack() []string
	// CastWithFlash reports whether a static ability lets the activator cast
	// the card as though it had flash.
	CastWithFlash(action Action, card Card, activator Player) bool
	// CastWithFlashNeedsTargeting reports whether such a static ability only
	// applies depending on targets that aren't chosen yet.
	CastWithFlashNeedsTargeting(action Action, card Card, activator Player) bool
}

// Player is the read-only surface of a participant.
type Player interface {
	ID() string
	Name() string
	Game() Game
	IsOpponentOf(other Player) bool
	Life() int
	OpponentsSmallestLife() int
	// CardsIn returns the player's cards in the zone. For the battlefield these
	// are the permanents the player controls.
	CardsIn(zone rules.Zone) []Card
	HasKeyword(keyword string) bool
	// CanCastSorcery reports whether the player may act at sorcery speed now.
	CanCastSorcery() bool

	HasThreshold() bool
	HasMetalcraft() bool
	HasDelirium() bool
	HasHellbent() bool
	HasDesert() bool
	HasBlessing() bool
	HasSurge() bool
	HasProwl(creatureType string) bool
	OpponentLostLifeThisTurn() int
}

// Card is the read-only surface of a card or a snapshot of one.
type Card interface {
	ID() string
	Name() string
	Controller() Player
	// LastKnownZone returns the zone the card was last seen in.
	LastKnownZone() rules.Zone
	// IsInZone reports whether the card is in the zone right now.
	IsInZone(zone rules.Zone) bool

	IsPhasedOut() bool
	// IsUsedToPay reports whether the card is being consumed to pay a cost.
	IsUsedToPay() bool

	IsSorcery() bool
	IsInstant() bool
	IsCreature() bool
	IsPlaneswalker() bool
	IsLegendary() bool
	CreatureTypes() []string

	HasKeyword(keyword string) bool
	KeywordCount(keyword string) int
	HasChosenColor(color string) bool
	// PlaneswalkerActivations returns how many loyalty abilities of this
	// permanent were activated this turn.
	PlaneswalkerActivations() int

	// IsLKI reports whether this is a last-known-information copy.
	IsLKI() bool
	IsBestowed() bool
	// BestowSnapshot returns an independent copy of the card as it would be
	// when cast bestowed. The receiver is not modified.
	BestowSnapshot() Card

	// MayPlayFor returns every grant letting the player play this card.
	MayPlayFor(activator Player) []Grant
}

// Grant is a "may play" permission letting a player play a card outside the
// normal rules.
type Grant interface {
	Player() Player
	// Host returns the card whose static ability gives the permission.
	Host() Card
	// GrantsZonePermissions reports whether the grant itself allows playing
	// from the card's current zone.
	GrantsZonePermissions() bool
	// Affected lists card filters the played card must match.
	Affected() []string
	// ValidSA lists spell-ability filters the action must match.
	ValidSA() []string
}

// Traits are the fixed characteristics of a candidate action.
type Traits struct {
	Spell bool
	// Bestow marks a cast of the card's bestow alternative.
	Bestow bool
	// Aftermath marks a cast of the aftermath half of a split card.
	Aftermath bool
	// AlternateState is set when the action belongs to an alternate
	// printing (card state) of the card.
	AlternateState bool
	// HiddenAgenda marks the reveal of a hidden-agenda conspiracy.
	HiddenAgenda bool
	// CastFromPlayEffect marks a cast granted by a resolving "play" effect,
	// which ignores timing and activator restrictions.
	CastFromPlayEffect bool

	Surged       bool
	Spectacle    bool
	Prowl        bool
	Planeswalker bool
	Boast        bool
	ManaAbility  bool
}

// Action is a candidate spell or activated ability.
type Action interface {
	ID() string
	Name() string
	// Host returns the card the action belongs to.
	Host() Card
	Traits() Traits
	Restrictions() *Set
	// Activator returns the player attempting the action. May be nil.
	Activator() Player
	SetActivator(p Player)
	Counters() *ActivationCounters
	// XValue returns the value announced for X.
	XValue() int
	// MayPlay returns the grant the action is being played through, or nil.
	MayPlay() Grant
}

// Expressions evaluates card-script expressions. Errors are returned to the
// caller of the checker unchanged apart from wrapping.
type Expressions interface {
	// IsValidCard reports whether the card matches any of the filters.
	IsValidCard(card Card, filters []string, activator Player, source Card, action Action) (bool, error)
	// IsValidPlayer reports whether the player matches the pattern.
	IsValidPlayer(player Player, pattern string, sourceController Player, source Card, action Action) (bool, error)
	// IsValidAction reports whether the action matches any of the filters.
	IsValidAction(action Action, filters []string, activator Player, host Card) (bool, error)
	// DefinedCards resolves a defined reference such as "Enchanted".
	DefinedCards(host Card, defined string, action Action) ([]Card, error)
	// Amount evaluates an amount expression for the source card.
	Amount(source Card, expression string, action Action) (int, error)
}

func samePlayer(a, b Player) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}
