package state

import "github.com/magefree/mage-legality/internal/game/restriction"

// PlayGrant lets a player play a card outside the normal rules ("you may
// play that card this turn", "you may cast spells from your graveyard").
type PlayGrant struct {
	player          *Player
	host            *Card
	zonePermissions bool
	affected        []string
	validSA         []string
}

var _ restriction.Grant = (*PlayGrant)(nil)

// PlayGrantSpec describes a grant.
type PlayGrantSpec struct {
	// Host is the card whose ability gives the permission.
	Host *Card
	// ZonePermissions is set when the grant itself allows playing the card
	// from the zone it is in.
	ZonePermissions bool
	// Affected and ValidSA are filters the played card and spell must match.
	Affected []string
	ValidSA  []string
}

// NewPlayGrant creates a grant for player.
func NewPlayGrant(player *Player, spec PlayGrantSpec) *PlayGrant {
	return &PlayGrant{
		player:          player,
		host:            spec.Host,
		zonePermissions: spec.ZonePermissions,
		affected:        append([]string(nil), spec.Affected...),
		validSA:         append([]string(nil), spec.ValidSA...),
	}
}

func (pg *PlayGrant) Player() restriction.Player {
	if pg.player == nil {
		return nil
	}
	return pg.player
}

func (pg *PlayGrant) Host() restriction.Card {
	if pg.host == nil {
		return nil
	}
	return pg.host
}

func (pg *PlayGrant) GrantsZonePermissions() bool { return pg.zonePermissions }
func (pg *PlayGrant) Affected() []string          { return pg.affected }
func (pg *PlayGrant) ValidSA() []string           { return pg.validSA }

// FlashGrant is a static ability letting spells be cast as though they had
// flash.
type FlashGrant struct {
	// Player limits the grant to one player's spells. Nil means everyone.
	Player *Player
	// CardNames limits the grant to the named cards. Empty means all spells.
	CardNames []string
	// NeedsTargeting is set when the grant depends on the spell's targets,
	// which aren't chosen when legality is checked.
	NeedsTargeting bool
}

func (fg FlashGrant) applies(card restriction.Card, activator restriction.Player) bool {
	if fg.Player != nil && (activator == nil || activator.ID() != fg.Player.id) {
		return false
	}
	if len(fg.CardNames) == 0 {
		return true
	}
	for _, name := range fg.CardNames {
		if name == card.Name() {
			return true
		}
	}
	return false
}
