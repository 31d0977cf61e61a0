package restriction

import (
	"github.com/magefree/mage-legality/internal/game/rules"
	"go.uber.org/zap"
)

// Stage names the part of the check that produced a verdict.
type Stage string

const (
	StageDefault   Stage = "default"
	StageSpeed     Stage = "speed"
	StageTiming    Stage = "timing"
	StageActivator Stage = "activator"
	StageZone      Stage = "zone"
	StageOther     Stage = "other"
	StageLimit     Stage = "limit"
)

// LegalityResult is the verdict of a check. Stage and Reason are set when the
// action was rejected.
type LegalityResult struct {
	Legal  bool
	Stage  Stage
	Reason string
}

// DefaultActivator is the activator pattern used when a Set leaves it unset.
const DefaultActivator = "You"

// Checker evaluates restriction sets against the current game state. It keeps
// no state between calls.
type Checker struct {
	exprs              Expressions
	logger             *zap.Logger
	defaultActivator   string
	defaultPresentZone rules.Zone
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(ch *Checker) {
		if logger != nil {
			ch.logger = logger
		}
	}
}

// WithDefaultActivator sets the activator pattern used for sets that don't name one.
func WithDefaultActivator(pattern string) Option {
	return func(ch *Checker) {
		if pattern != "" {
			ch.defaultActivator = pattern
		}
	}
}

// WithDefaultPresentZone sets the zone searched by presence conditions that
// name neither a zone nor a defined card set.
func WithDefaultPresentZone(zone rules.Zone) Option {
	return func(ch *Checker) {
		if zone != rules.ZoneNone {
			ch.defaultPresentZone = zone
		}
	}
}

// NewChecker creates a checker evaluating expressions with exprs.
func NewChecker(exprs Expressions, opts ...Option) *Checker {
	ch := &Checker{
		exprs:              exprs,
		logger:             zap.NewNop(),
		defaultActivator:   DefaultActivator,
		defaultPresentZone: rules.ZoneBattlefield,
	}
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

// CanPlay reports whether the action may be taken now. The error is non-nil
// only when an expression could not be evaluated.
func (ch *Checker) CanPlay(card Card, sa Action) (bool, error) {
	result, err := ch.Evaluate(card, sa)
	if err != nil {
		return false, err
	}
	return result.Legal, nil
}

// Evaluate runs every stage in order and reports the first rejection.
//
// If the action has no activator it is set to the card's controller, which
// is the only change the check makes to its inputs apart from recording
// resolved activation caps on the action's counters.
func (ch *Checker) Evaluate(card Card, sa Action) (LegalityResult, error) {
	if card.IsPhasedOut() {
		return ch.reject(card, sa, StageDefault, "phased out"), nil
	}
	if card.IsUsedToPay() {
		return ch.reject(card, sa, StageDefault, "being used to pay a cost"), nil
	}

	activator := sa.Activator()
	if activator == nil {
		activator = card.Controller()
		if activator == nil {
			return ch.reject(card, sa, StageDefault, "no activator"), nil
		}
		sa.SetActivator(activator)
		ch.logger.Warn("activator not set, defaulting to controller",
			zap.String("card", card.Name()),
			zap.String("card_id", card.ID()),
			zap.String("action", sa.Name()),
			zap.String("controller_id", activator.ID()),
		)
	}

	if !activator.Game().CastWithFlashNeedsTargeting(sa, card, activator) {
		if reason := speedReason(card, sa, activator); reason != "" {
			return ch.reject(card, sa, StageSpeed, reason), nil
		}
	}

	if !sa.Traits().CastFromPlayEffect {
		if reason := timingReason(sa, activator); reason != "" {
			return ch.reject(card, sa, StageTiming, reason), nil
		}
		reason, err := ch.activatorReason(card, sa, activator)
		if err != nil {
			return LegalityResult{}, err
		}
		if reason != "" {
			return ch.reject(card, sa, StageActivator, reason), nil
		}
	}

	reason, err := ch.zoneReason(card, sa, activator)
	if err != nil {
		return LegalityResult{}, err
	}
	if reason != "" {
		return ch.reject(card, sa, StageZone, reason), nil
	}

	reason, err = ch.otherReason(card, sa, activator)
	if err != nil {
		return LegalityResult{}, err
	}
	if reason != "" {
		return ch.reject(card, sa, StageOther, reason), nil
	}

	reason, err = ch.limitReason(card, sa)
	if err != nil {
		return LegalityResult{}, err
	}
	if reason != "" {
		return ch.reject(card, sa, StageLimit, reason), nil
	}

	return LegalityResult{Legal: true}, nil
}

// CheckTiming evaluates only the turn and step restrictions.
func (ch *Checker) CheckTiming(card Card, sa Action) bool {
	activator := activatorOf(card, sa)
	if activator == nil {
		return false
	}
	return timingReason(sa, activator) == ""
}

// CheckActivator evaluates only the activator restriction.
func (ch *Checker) CheckActivator(card Card, sa Action) (bool, error) {
	activator := activatorOf(card, sa)
	if activator == nil {
		return false, nil
	}
	reason, err := ch.activatorReason(card, sa, activator)
	return reason == "", err
}

// CheckZone evaluates only the zone restriction and its overrides.
func (ch *Checker) CheckZone(card Card, sa Action) (bool, error) {
	activator := activatorOf(card, sa)
	if activator == nil {
		return false, nil
	}
	reason, err := ch.zoneReason(card, sa, activator)
	return reason == "", err
}

// CheckOther evaluates only the restrictions not covered by the zone,
// timing, activator and limit checks.
func (ch *Checker) CheckOther(card Card, sa Action) (bool, error) {
	activator := activatorOf(card, sa)
	if activator == nil {
		return false, nil
	}
	reason, err := ch.otherReason(card, sa, activator)
	return reason == "", err
}

// CheckLimits evaluates only the per-turn and per-game activation caps.
func (ch *Checker) CheckLimits(card Card, sa Action) (bool, error) {
	reason, err := ch.limitReason(card, sa)
	return reason == "", err
}

func activatorOf(card Card, sa Action) Player {
	if p := sa.Activator(); p != nil {
		return p
	}
	return card.Controller()
}

func (ch *Checker) reject(card Card, sa Action, stage Stage, reason string) LegalityResult {
	ch.logger.Debug("action rejected",
		zap.String("stage", string(stage)),
		zap.String("reason", reason),
		zap.String("card", card.Name()),
		zap.String("action", sa.Name()),
	)
	return LegalityResult{Stage: stage, Reason: reason}
}
