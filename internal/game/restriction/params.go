package restriction

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/magefree/mage-legality/internal/game/rules"
)

// Card-script parameter keys understood by Parse.
const (
	ParamActivation          = "Activation"
	ParamActivationZone      = "ActivationZone"
	ParamSorcerySpeed        = "SorcerySpeed"
	ParamInstantSpeed        = "InstantSpeed"
	ParamPlayerTurn          = "PlayerTurn"
	ParamOpponentTurn        = "OpponentTurn"
	ParamActivator           = "Activator"
	ParamActivationLimit     = "ActivationLimit"
	ParamGameActivationLimit = "GameActivationLimit"
	ParamActivationPhases    = "ActivationPhases"
	ParamGameTypes           = "ActivationGameTypes"
	ParamCardsInHand         = "ActivationCardsInHand"
	ParamChosenColor         = "ActivationChosenColor"
	ParamIsPresent           = "IsPresent"
	ParamPresentCompare      = "PresentCompare"
	ParamPresentZone         = "PresentZone"
	ParamPresentDefined      = "PresentDefined"
	ParamIsNotPresent        = "IsNotPresent"
	ParamLifeTotal           = "ActivationLifeTotal"
	ParamLifeAmount          = "ActivationLifeAmount"
	ParamCheckSVar           = "CheckSVar"
	ParamSVarCompare         = "SVarCompare"
)

var (
	// ErrUnknownActivation is returned for an Activation value that names no condition.
	ErrUnknownActivation = errors.New("unknown activation condition")
	// ErrUnknownLifeSource is returned for an ActivationLifeTotal other than You or OpponentSmallest.
	ErrUnknownLifeSource = errors.New("unknown life source")
)

var defaultCompare = mustComparison("GE1")

// params is a case-insensitive view of a card-script parameter map.
type params map[string]string

func newParams(raw map[string]string) params {
	p := make(params, len(raw))
	for k, v := range raw {
		p[strings.ToLower(k)] = v
	}
	return p
}

func (p params) get(key string) (string, bool) {
	v, ok := p[strings.ToLower(key)]
	return v, ok
}

func (p params) has(key string) bool {
	_, ok := p.get(key)
	return ok
}

// Parse builds a Set from a card script's restriction parameters. Keys are
// matched case-insensitively; unknown keys are ignored since the same map
// carries the rest of the ability's definition.
func Parse(raw map[string]string) (*Set, error) {
	p := newParams(raw)
	s := &Set{}

	if v, ok := p.get(ParamActivation); ok {
		switch strings.TrimSpace(v) {
		case "Threshold":
			s.Threshold = true
		case "Metalcraft":
			s.Metalcraft = true
		case "Delirium":
			s.Delirium = true
		case "Hellbent":
			s.Hellbent = true
		case "Desert":
			s.Desert = true
		case "Blessing":
			s.Blessing = true
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownActivation, v)
		}
	}

	if v, ok := p.get(ParamActivationZone); ok {
		zone, err := rules.ParseZone(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ParamActivationZone, err)
		}
		s.Zone = zone
	}

	s.SorcerySpeed = p.has(ParamSorcerySpeed)
	s.InstantSpeed = p.has(ParamInstantSpeed)
	s.PlayerTurn = p.has(ParamPlayerTurn)
	s.OpponentTurn = p.has(ParamOpponentTurn)

	if v, ok := p.get(ParamActivator); ok {
		s.Activator = strings.TrimSpace(v)
	}
	if v, ok := p.get(ParamActivationLimit); ok {
		s.ActivationLimit = strings.TrimSpace(v)
	}
	if v, ok := p.get(ParamGameActivationLimit); ok {
		s.GameActivationLimit = strings.TrimSpace(v)
	}

	if v, ok := p.get(ParamActivationPhases); ok {
		steps, err := rules.ParseStepRange(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ParamActivationPhases, err)
		}
		s.Phases = steps
	}

	if v, ok := p.get(ParamGameTypes); ok {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				s.GameTypes = append(s.GameTypes, t)
			}
		}
	}

	if v, ok := p.get(ParamCardsInHand); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ParamCardsInHand, err)
		}
		s.CardsInHand = &n
	}

	if v, ok := p.get(ParamChosenColor); ok {
		s.ChosenColor = strings.TrimSpace(v)
	}

	present, err := parsePresence(p)
	if err != nil {
		return nil, err
	}
	s.Present = present

	if v, ok := p.get(ParamLifeTotal); ok {
		lc := &LifeCondition{Source: LifeSource(strings.TrimSpace(v)), Compare: defaultCompare}
		if lc.Source != LifeYou && lc.Source != LifeOpponentSmallest {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLifeSource, v)
		}
		if amount, ok := p.get(ParamLifeAmount); ok {
			if lc.Compare, err = ParseComparison(amount); err != nil {
				return nil, fmt.Errorf("%s: %w", ParamLifeAmount, err)
			}
		}
		s.LifeTotal = lc
	}

	if v, ok := p.get(ParamCheckSVar); ok {
		vc := &VarCondition{Var: strings.TrimSpace(v), Compare: defaultCompare}
		if cmp, ok := p.get(ParamSVarCompare); ok {
			if vc.Compare, err = ParseComparison(cmp); err != nil {
				return nil, fmt.Errorf("%s: %w", ParamSVarCompare, err)
			}
		}
		s.CheckVar = vc
	}

	return s, nil
}

func parsePresence(p params) (*Presence, error) {
	var pr *Presence
	if v, ok := p.get(ParamIsPresent); ok {
		pr = &Presence{Filter: SplitFilters(v), Compare: defaultCompare}
		if cmp, ok := p.get(ParamPresentCompare); ok {
			c, err := ParseComparison(cmp)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ParamPresentCompare, err)
			}
			pr.Compare = c
		}
		if z, ok := p.get(ParamPresentZone); ok {
			zone, err := rules.ParseZone(z)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ParamPresentZone, err)
			}
			pr.Zone = zone
		}
	}

	// IsNotPresent replaces IsPresent and always compares against zero.
	if v, ok := p.get(ParamIsNotPresent); ok {
		zone := rules.ZoneNone
		if pr != nil {
			zone = pr.Zone
		}
		pr = &Presence{Filter: SplitFilters(v), Zone: zone, Compare: mustComparison("EQ0")}
	}

	if pr != nil {
		if v, ok := p.get(ParamPresentDefined); ok {
			pr.Defined = strings.TrimSpace(v)
		}
	}
	return pr, nil
}

// SplitFilters splits comma separated filter alternatives. Commas inside
// quotes or parentheses belong to the filter expression.
func SplitFilters(s string) []string {
	var (
		out   []string
		depth int
		quote rune
		start int
	)
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			if f := strings.TrimSpace(s[start:i]); f != "" {
				out = append(out, f)
			}
			start = i + 1
		}
	}
	if f := strings.TrimSpace(s[start:]); f != "" {
		out = append(out, f)
	}
	return out
}
