package expr

import (
	"fmt"
	"strings"

	"go.einride.tech/aip/filtering"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// filterString adapts a raw filter string to filtering.Request.
type filterString string

func (f filterString) GetFilter() string { return string(f) }

// subject is the kind of thing a filter is evaluated against.
type subject string

const (
	subjectCard   subject = "card"
	subjectPlayer subject = "player"
	subjectAction subject = "action"
)

// fieldType describes a filterable field.
type fieldType int

const (
	fieldString fieldType = iota
	fieldInt
)

var subjectFields = map[subject]map[string]fieldType{
	subjectCard: {
		"name":       fieldString,
		"type":       fieldString,
		"subtype":    fieldString,
		"supertype":  fieldString,
		"color":      fieldString,
		"keyword":    fieldString,
		"zone":       fieldString,
		"controller": fieldString,
		"owner":      fieldString,
		"self":       fieldString,
		"cmc":        fieldInt,
		"power":      fieldInt,
		"toughness":  fieldInt,
	},
	subjectPlayer: {
		"relation": fieldString,
		"active":   fieldString,
		"life":     fieldInt,
		"hand":     fieldInt,
	},
	subjectAction: {
		"kind": fieldString,
		"name": fieldString,
		"type": fieldString,
		"zone": fieldString,
	},
}

var subjectDecls = func() map[subject]*filtering.Declarations {
	out := make(map[subject]*filtering.Declarations, len(subjectFields))
	for s, fields := range subjectFields {
		opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
		for name, kind := range fields {
			switch kind {
			case fieldString:
				opts = append(opts, filtering.DeclareIdent(name, filtering.TypeString))
			case fieldInt:
				opts = append(opts, filtering.DeclareIdent(name, filtering.TypeInt))
			}
		}
		decls, err := filtering.NewDeclarations(opts...)
		if err != nil {
			panic(fmt.Sprintf("expr: declarations for %s: %v", s, err))
		}
		out[s] = decls
	}
	return out
}()

// parse returns the checked expression for a filter, translating card-script
// shorthand first. Results are cached per subject.
func (e *Evaluator) parse(s subject, filter string) (*exprpb.Expr, error) {
	filter = strings.TrimSpace(filter)
	key := string(s) + "\x00" + filter

	e.mu.Lock()
	cached, ok := e.parsed[key]
	e.mu.Unlock()
	if ok {
		return cached, nil
	}

	source := filter
	if isShorthand(filter) {
		translated, err := translateShorthand(s, filter)
		if err != nil {
			return nil, err
		}
		source = translated
	}

	var parsed *exprpb.Expr
	if source != "" {
		f, err := filtering.ParseFilter(filterString(source), subjectDecls[s])
		if err != nil {
			return nil, fmt.Errorf("parse %s filter %q: %w", s, filter, err)
		}
		parsed = f.CheckedExpr.GetExpr()
	}

	e.mu.Lock()
	e.parsed[key] = parsed
	e.mu.Unlock()
	return parsed, nil
}

// matchAny reports whether any of the filter alternatives matches.
func (e *Evaluator) matchAny(s subject, filters []string, resolve resolver) (bool, error) {
	for _, f := range filters {
		parsed, err := e.parse(s, f)
		if err != nil {
			return false, err
		}
		ok, err := evaluate(parsed, resolve)
		if err != nil {
			return false, fmt.Errorf("evaluate %s filter %q: %w", s, f, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// resolver returns the value of a field: a string, an int, or a membership
// test for list-valued fields.
type resolver func(name string) (any, bool)

// membership is the value of a list-valued field such as type or keyword.
// Equality against it tests membership.
type membership func(value string) bool

func listOf(values []string) membership {
	return func(v string) bool {
		for _, have := range values {
			if strings.EqualFold(have, v) {
				return true
			}
		}
		return false
	}
}

// evaluate walks a checked expression. A nil expression matches everything.
func evaluate(e *exprpb.Expr, resolve resolver) (bool, error) {
	if e == nil {
		return true, nil
	}
	switch kind := e.ExprKind.(type) {
	case *exprpb.Expr_CallExpr:
		return evalCall(kind.CallExpr, resolve)
	default:
		return false, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func evalCall(call *exprpb.Expr_Call, resolve resolver) (bool, error) {
	switch call.Function {
	case "AND", "FUZZY", "_&&_":
		return evalAnd(call.Args, resolve)
	case "OR", "_||_":
		return evalOr(call.Args, resolve)
	case "NOT", "!_":
		if len(call.Args) != 1 {
			return false, fmt.Errorf("NOT requires 1 argument")
		}
		ok, err := evaluate(call.Args[0], resolve)
		return !ok, err
	case "=", ":", "_==_":
		return evalCompare(call.Args, resolve, "=")
	case "!=", "_!=_":
		return evalCompare(call.Args, resolve, "!=")
	case "<", "_<_":
		return evalCompare(call.Args, resolve, "<")
	case "<=", "_<=_":
		return evalCompare(call.Args, resolve, "<=")
	case ">", "_>_":
		return evalCompare(call.Args, resolve, ">")
	case ">=", "_>=_":
		return evalCompare(call.Args, resolve, ">=")
	default:
		return false, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

func evalAnd(args []*exprpb.Expr, resolve resolver) (bool, error) {
	for _, arg := range args {
		ok, err := evaluate(arg, resolve)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func evalOr(args []*exprpb.Expr, resolve resolver) (bool, error) {
	for _, arg := range args {
		ok, err := evaluate(arg, resolve)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func evalCompare(args []*exprpb.Expr, resolve resolver, op string) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("comparison requires 2 arguments")
	}
	ident, ok := args[0].ExprKind.(*exprpb.Expr_IdentExpr)
	if !ok {
		return false, fmt.Errorf("expected identifier, got %T", args[0].ExprKind)
	}
	field := ident.IdentExpr.GetName()
	left, ok := resolve(field)
	if !ok {
		return false, fmt.Errorf("unknown field: %s", field)
	}
	c, ok := args[1].ExprKind.(*exprpb.Expr_ConstExpr)
	if !ok {
		return false, fmt.Errorf("expected constant, got %T", args[1].ExprKind)
	}

	switch l := left.(type) {
	case membership:
		r, ok := c.ConstExpr.ConstantKind.(*exprpb.Constant_StringValue)
		if !ok {
			return false, fmt.Errorf("field %s needs a string value", field)
		}
		switch op {
		case "=":
			return l(r.StringValue), nil
		case "!=":
			return !l(r.StringValue), nil
		}
		return false, fmt.Errorf("operator %s not supported on %s", op, field)
	case string:
		r, ok := c.ConstExpr.ConstantKind.(*exprpb.Constant_StringValue)
		if !ok {
			return false, fmt.Errorf("field %s needs a string value", field)
		}
		return ordered(strings.Compare(strings.ToLower(l), strings.ToLower(r.StringValue)), op), nil
	case int:
		r, ok := c.ConstExpr.ConstantKind.(*exprpb.Constant_Int64Value)
		if !ok {
			return false, fmt.Errorf("field %s needs an integer value", field)
		}
		return ordered(compareInts(int64(l), r.Int64Value), op), nil
	default:
		return false, fmt.Errorf("unsupported value type for %s: %T", field, left)
	}
}

func compareInts(l, r int64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func ordered(cmp int, op string) bool {
	switch op {
	case "=":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	}
	return false
}
