package rules

import (
	"fmt"
	"strings"
)

// Step represents the individual steps that comprise a turn. Activation
// restrictions name steps rather than phases ("ActivationPhases$ Upkeep").
type Step int

const (
	StepUntap Step = iota
	StepUpkeep
	StepDraw
	StepMain1
	StepBeginCombat
	StepDeclareAttackers
	StepDeclareBlockers
	StepFirstStrikeDamage
	StepCombatDamage
	StepEndCombat
	StepMain2
	StepEnd
	StepCleanup
)

var stepNames = map[Step]string{
	StepUntap:             "UNTAP",
	StepUpkeep:            "UPKEEP",
	StepDraw:              "DRAW",
	StepMain1:             "MAIN1",
	StepBeginCombat:       "BEGIN_COMBAT",
	StepDeclareAttackers:  "DECLARE_ATTACKERS",
	StepDeclareBlockers:   "DECLARE_BLOCKERS",
	StepFirstStrikeDamage: "FIRST_STRIKE_DAMAGE",
	StepCombatDamage:      "COMBAT_DAMAGE",
	StepEndCombat:         "END_COMBAT",
	StepMain2:             "MAIN2",
	StepEnd:               "END",
	StepCleanup:           "CLEANUP",
}

// stepAliases maps normalized card-script spellings onto steps.
var stepAliases = map[string]Step{
	"untap":                   StepUntap,
	"upkeep":                  StepUpkeep,
	"draw":                    StepDraw,
	"main1":                   StepMain1,
	"precombatmain":           StepMain1,
	"begincombat":             StepBeginCombat,
	"combatbegin":             StepBeginCombat,
	"declareattackers":        StepDeclareAttackers,
	"combatdeclareattackers":  StepDeclareAttackers,
	"declareblockers":         StepDeclareBlockers,
	"combatdeclareblockers":   StepDeclareBlockers,
	"firststrikedamage":       StepFirstStrikeDamage,
	"combatfirststrikedamage": StepFirstStrikeDamage,
	"combatdamage":            StepCombatDamage,
	"endcombat":               StepEndCombat,
	"combatend":               StepEndCombat,
	"main2":                   StepMain2,
	"postcombatmain":          StepMain2,
	"end":                     StepEnd,
	"endofturn":               StepEnd,
	"cleanup":                 StepCleanup,
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(s))
}

// IsMain reports whether the step is one of the two main phases.
func (s Step) IsMain() bool {
	return s == StepMain1 || s == StepMain2
}

// ParseStep parses a step name. Spaces, dashes, and underscores are ignored
// and matching is case-insensitive, so "End of Turn" and "END_OF_TURN" agree.
func ParseStep(name string) (Step, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	if step, ok := stepAliases[key]; ok {
		return step, nil
	}
	return StepUntap, fmt.Errorf("unknown step %q", name)
}

// ParseStepRange parses a comma separated list of steps where each element is
// either a single step or an inclusive range "From->To" in turn order.
func ParseStepRange(spec string) ([]Step, error) {
	var steps []Step
	seen := make(map[Step]bool)
	add := func(s Step) {
		if !seen[s] {
			seen[s] = true
			steps = append(steps, s)
		}
	}

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, to, isRange := strings.Cut(part, "->")
		if !isRange {
			step, err := ParseStep(part)
			if err != nil {
				return nil, err
			}
			add(step)
			continue
		}
		first, err := ParseStep(from)
		if err != nil {
			return nil, err
		}
		last, err := ParseStep(to)
		if err != nil {
			return nil, err
		}
		if last < first {
			return nil, fmt.Errorf("step range %q runs backwards", part)
		}
		for s := first; s <= last; s++ {
			add(s)
		}
	}
	return steps, nil
}

// TurnManager tracks the active player and the current step.
type TurnManager struct {
	turnNumber   int
	activePlayer string
	step         Step
}

// NewTurnManager creates a new turn manager initialized at turn 1, untap step.
func NewTurnManager(activePlayer string) *TurnManager {
	return &TurnManager{
		turnNumber:   1,
		activePlayer: strings.TrimSpace(activePlayer),
		step:         StepUntap,
	}
}

// CurrentStep returns the step currently in progress.
func (tm *TurnManager) CurrentStep() Step {
	return tm.step
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// ActivePlayer returns the player who currently has the turn.
func (tm *TurnManager) ActivePlayer() string {
	return tm.activePlayer
}

// SetActivePlayer hands the current turn to another player without changing the step.
func (tm *TurnManager) SetActivePlayer(player string) {
	tm.activePlayer = strings.TrimSpace(player)
}

// SetStep jumps to the given step of the current turn.
func (tm *TurnManager) SetStep(step Step) {
	tm.step = step
}

// AdvanceStep advances to the next step. First strike damage is skipped;
// combat that needs it calls SetStep explicitly. When the turn wraps, the
// turn number is incremented and the active player becomes nextActivePlayer
// if provided. It reports whether a new turn began.
func (tm *TurnManager) AdvanceStep(nextActivePlayer string) (Step, bool) {
	next := tm.step + 1
	if next == StepFirstStrikeDamage {
		next++
	}
	if next > StepCleanup {
		tm.step = StepUntap
		tm.turnNumber++
		if p := strings.TrimSpace(nextActivePlayer); p != "" {
			tm.activePlayer = p
		}
		return tm.step, true
	}
	tm.step = next
	return tm.step, false
}
