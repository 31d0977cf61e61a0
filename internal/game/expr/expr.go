// Package expr evaluates the filter and amount expressions found in card
// scripts. It is the default implementation of restriction.Expressions.
//
// Filters are AIP-160 expressions over a fixed set of fields per subject
// (cards, players, spell abilities). Card-script shorthand such as
// "Creature.Zombie+YouCtrl" is translated into the same form before parsing.
// Amounts are integer literals, the announced X, or SVar definitions
// evaluated as Lua expressions in a sandboxed VM.
package expr

import (
	"errors"
	"sync"
	"time"

	"github.com/magefree/mage-legality/internal/game/restriction"
	"go.uber.org/zap"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Card is the richer card surface the evaluator reads when a card provides
// it. Cards implementing only restriction.Card still work with the fields
// derivable from that interface.
type Card interface {
	restriction.Card
	Types() []string
	Subtypes() []string
	Supertypes() []string
	Colors() []string
	ManaValue() int
	Power() int
	Toughness() int
	Owner() restriction.Player
	// SVar returns the card's script variable with the given name.
	SVar(name string) (string, bool)
	CounterCount(name string) int
	CounterTotal() int
	// AttachedTo returns the permanent this card is attached to, or nil.
	AttachedTo() restriction.Card
}

// DefaultAmountTimeout bounds a single Lua amount evaluation.
const DefaultAmountTimeout = 250 * time.Millisecond

var (
	// ErrNotFinite is returned for Lua amounts that evaluate to NaN or an infinity.
	ErrNotFinite = errors.New("amount is not a finite number")
	// ErrOutOfRange is returned for Lua amounts too large for an int.
	ErrOutOfRange = errors.New("amount out of range")
)

// Evaluator implements restriction.Expressions. Parsed filters are cached, so
// one Evaluator should be shared across checks.
type Evaluator struct {
	logger        *zap.Logger
	amountTimeout time.Duration

	mu     sync.Mutex
	parsed map[string]*exprpb.Expr
}

var _ restriction.Expressions = (*Evaluator)(nil)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithAmountTimeout bounds how long one Lua amount may run. Non-positive
// values keep the default.
func WithAmountTimeout(d time.Duration) Option {
	return func(e *Evaluator) {
		if d > 0 {
			e.amountTimeout = d
		}
	}
}

// New creates an evaluator. A nil logger disables logging.
func New(logger *zap.Logger, opts ...Option) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Evaluator{
		logger:        logger,
		amountTimeout: DefaultAmountTimeout,
		parsed:        make(map[string]*exprpb.Expr),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func asCard(c restriction.Card) (Card, bool) {
	if c == nil {
		return nil, false
	}
	ext, ok := c.(Card)
	return ext, ok
}

func samePlayer(a, b restriction.Player) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}

// relation describes p from the point of view of viewer.
func relation(p, viewer restriction.Player) string {
	switch {
	case p == nil || viewer == nil:
		return ""
	case samePlayer(p, viewer):
		return "You"
	case p.IsOpponentOf(viewer):
		return "Opponent"
	}
	return ""
}
