package expr

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/magefree/mage-legality/internal/game/restriction"
	"github.com/magefree/mage-legality/internal/game/rules"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

const maxSVarDepth = 8

// Amount evaluates an amount expression for the source card. In order the
// expression may be an integer literal, the name of one of the card's SVars
// (whose definition is evaluated the same way), "X" for the announced value,
// a "Count$" reference, or a Lua expression.
//
// Lua expressions see x, life, hand and opponents_smallest_life as numbers,
// plus count(filter [, zone]), counters(name) and svar(name). life and hand
// belong to the source card's controller. A fractional Lua result is rounded
// down; division by zero and results outside the int range are errors.
func (e *Evaluator) Amount(source restriction.Card, expression string, action restriction.Action) (int, error) {
	return e.amount(source, strings.TrimSpace(expression), action, 0)
}

func (e *Evaluator) amount(source restriction.Card, expression string, action restriction.Action, depth int) (int, error) {
	if expression == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(expression); err == nil {
		return n, nil
	}
	if depth > maxSVarDepth {
		return 0, fmt.Errorf("svar %q nests too deeply", expression)
	}
	if ext, ok := asCard(source); ok {
		if def, found := ext.SVar(expression); found {
			return e.amount(source, strings.TrimSpace(def), action, depth+1)
		}
	}
	if strings.EqualFold(expression, "X") {
		return xValue(action), nil
	}
	if ref, ok := strings.CutPrefix(expression, "Count$"); ok {
		return e.count(source, ref, action)
	}
	return e.runLua(source, expression, action, depth)
}

func xValue(action restriction.Action) int {
	if action == nil {
		return 0
	}
	return action.XValue()
}

// count handles the "Count$" references used by card scripts.
func (e *Evaluator) count(source restriction.Card, ref string, action restriction.Action) (int, error) {
	controller := controllerOf(source)
	switch {
	case ref == "YourLifeTotal":
		return lifeOf(controller), nil
	case ref == "InYourHand":
		return handOf(controller), nil
	case ref == "xPaid":
		return xValue(action), nil
	case strings.HasPrefix(ref, "CardCounters."):
		return countersOn(source, strings.TrimPrefix(ref, "CardCounters.")), nil
	case strings.HasPrefix(ref, "Valid "):
		return e.countValid(source, strings.TrimPrefix(ref, "Valid "), rules.ZoneBattlefield, action)
	case strings.HasPrefix(ref, "ValidGraveyard "):
		return e.countValid(source, strings.TrimPrefix(ref, "ValidGraveyard "), rules.ZoneGraveyard, action)
	case strings.HasPrefix(ref, "ValidHand "):
		return e.countValid(source, strings.TrimPrefix(ref, "ValidHand "), rules.ZoneHand, action)
	}
	return 0, fmt.Errorf("unsupported count reference %q", ref)
}

func (e *Evaluator) countValid(source restriction.Card, filter string, zone rules.Zone, action restriction.Action) (int, error) {
	controller := controllerOf(source)
	if controller == nil || controller.Game() == nil {
		return 0, nil
	}
	filters := restriction.SplitFilters(filter)
	n := 0
	for _, c := range controller.Game().CardsIn(zone) {
		ok, err := e.IsValidCard(c, filters, controller, source, action)
		if err != nil {
			return 0, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

func (e *Evaluator) runLua(source restriction.Card, code string, action restriction.Action, depth int) (int, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	ctx, cancel := context.WithTimeout(context.Background(), e.amountTimeout)
	defer cancel()
	L.SetContext(ctx)
	openSafeLibs(L)
	sandbox(L)
	e.registerBindings(L, source, action, depth)

	if err := L.DoString("return " + code); err != nil {
		return 0, fmt.Errorf("evaluate amount %q: %w", code, err)
	}
	v := L.Get(-1)
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("amount %q is a %s, not a number", code, v.Type())
	}
	value, err := toInt(float64(n))
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", code, err)
	}
	e.logger.Debug("amount evaluated",
		zap.String("expression", code),
		zap.Int("value", value),
	)
	return value, nil
}

func toInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNotFinite, f)
	}
	f = math.Floor(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, f)
	}
	return int(f), nil
}

func (e *Evaluator) registerBindings(L *lua.LState, source restriction.Card, action restriction.Action, depth int) {
	controller := controllerOf(source)

	L.SetGlobal("x", lua.LNumber(xValue(action)))
	L.SetGlobal("life", lua.LNumber(lifeOf(controller)))
	L.SetGlobal("hand", lua.LNumber(handOf(controller)))
	smallest := 0
	if controller != nil {
		smallest = controller.OpponentsSmallestLife()
	}
	L.SetGlobal("opponents_smallest_life", lua.LNumber(smallest))

	L.SetGlobal("count", L.NewFunction(func(L *lua.LState) int {
		filter := L.CheckString(1)
		zone, err := rules.ParseZone(L.OptString(2, string(rules.ZoneBattlefield)))
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		n, err := e.countValid(source, filter, zone, action)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		L.Push(lua.LNumber(n))
		return 1
	}))

	L.SetGlobal("counters", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(countersOn(source, L.CheckString(1))))
		return 1
	}))

	L.SetGlobal("svar", L.NewFunction(func(L *lua.LState) int {
		n, err := e.amount(source, L.CheckString(1), action, depth+1)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		L.Push(lua.LNumber(n))
		return 1
	}))
}

// openSafeLibs opens only the side-effect free standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenMath(L)
	lua.OpenString(L)
}

// sandbox removes globals that reach outside the VM.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "print", "require",
	} {
		L.SetGlobal(name, lua.LNil)
	}
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
}

func controllerOf(c restriction.Card) restriction.Player {
	if c == nil {
		return nil
	}
	return c.Controller()
}

func lifeOf(p restriction.Player) int {
	if p == nil {
		return 0
	}
	return p.Life()
}

func handOf(p restriction.Player) int {
	if p == nil {
		return 0
	}
	return len(p.CardsIn(rules.ZoneHand))
}

// countersOn counts the named counters on c. ALL counts every type.
func countersOn(c restriction.Card, name string) int {
	ext, ok := asCard(c)
	if !ok {
		return 0
	}
	if strings.EqualFold(name, "ALL") {
		return ext.CounterTotal()
	}
	return ext.CounterCount(name)
}
