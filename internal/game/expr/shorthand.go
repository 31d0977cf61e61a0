package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// isShorthand reports whether a filter is written in card-script shorthand
// ("Creature.Zombie+YouCtrl") rather than as an AIP-160 expression.
func isShorthand(filter string) bool {
	return filter != "" && !strings.ContainsAny(filter, `=<>:"() `)
}

var (
	cardTypes = map[string]bool{
		"artifact": true, "battle": true, "creature": true, "enchantment": true,
		"instant": true, "kindred": true, "land": true, "planeswalker": true,
		"sorcery": true, "tribal": true,
	}
	supertypes = map[string]bool{
		"basic": true, "legendary": true, "snow": true, "world": true,
	}
	colorNames = map[string]bool{
		"white": true, "blue": true, "black": true, "red": true, "green": true,
	}
	relationProps = map[string]string{
		"youctrl": `controller = "You"`,
		"oppctrl": `controller = "Opponent"`,
		"youown":  `owner = "You"`,
		"oppown":  `owner = "Opponent"`,
		"other":   `self = "false"`,
		"self":    `self = "true"`,
	}
	numericProps = []string{"toughness", "power", "cmc"}
	operators    = map[string]string{
		"EQ": "=", "NE": "!=", "LT": "<", "LE": "<=", "GT": ">", "GE": ">=",
	}
)

// translateShorthand turns "Head.Prop+Prop" into an AIP-160 expression.
func translateShorthand(s subject, filter string) (string, error) {
	head, rest, _ := strings.Cut(filter, ".")
	var props []string
	if rest != "" {
		props = strings.FieldsFunc(rest, func(r rune) bool { return r == '+' || r == '.' })
	}

	switch s {
	case subjectCard:
		return cardShorthand(head, props)
	case subjectPlayer:
		return playerShorthand(head, props)
	case subjectAction:
		return actionShorthand(head, props)
	}
	return "", fmt.Errorf("no shorthand for %s filters", s)
}

func cardShorthand(head string, props []string) (string, error) {
	var clauses []string
	switch lower := strings.ToLower(head); {
	case lower == "card" || lower == "any":
	case lower == "permanent":
		clauses = append(clauses, `zone = "Battlefield"`)
	case cardTypes[lower]:
		clauses = append(clauses, fmt.Sprintf("type = %q", head))
	default:
		return "", fmt.Errorf("unknown card filter %q", head)
	}
	for _, p := range props {
		clause, err := cardProp(p)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause)
	}
	return strings.Join(clauses, " AND "), nil
}

func cardProp(p string) (string, error) {
	lower := strings.ToLower(p)
	if clause, ok := relationProps[lower]; ok {
		return clause, nil
	}
	if strings.HasPrefix(lower, "non") && len(p) > 3 {
		inner, err := cardProp(p[3:])
		if err != nil {
			return "", err
		}
		return "NOT " + inner, nil
	}
	if strings.HasPrefix(lower, "with") && len(p) > 4 {
		return fmt.Sprintf("keyword = %q", p[4:]), nil
	}
	for _, field := range numericProps {
		if clause, ok, err := numericProp(field, p); ok || err != nil {
			return clause, err
		}
	}
	switch {
	case cardTypes[lower]:
		return fmt.Sprintf("type = %q", p), nil
	case supertypes[lower]:
		return fmt.Sprintf("supertype = %q", p), nil
	case colorNames[lower]:
		return fmt.Sprintf("color = %q", p), nil
	}
	return fmt.Sprintf("subtype = %q", p), nil
}

// numericProp parses properties such as "cmcLE3" or "powerGE2".
func numericProp(field, p string) (string, bool, error) {
	if len(p) < len(field)+3 || !strings.EqualFold(p[:len(field)], field) {
		return "", false, nil
	}
	rest := p[len(field):]
	op, ok := operators[strings.ToUpper(rest[:2])]
	if !ok {
		return "", false, nil
	}
	n, err := strconv.Atoi(rest[2:])
	if err != nil {
		return "", true, fmt.Errorf("property %q needs a number", p)
	}
	return fmt.Sprintf("%s %s %d", field, op, n), true, nil
}

func playerShorthand(head string, props []string) (string, error) {
	var clauses []string
	for _, p := range append([]string{head}, props...) {
		switch strings.ToLower(p) {
		case "player", "any":
		case "you":
			clauses = append(clauses, `relation = "You"`)
		case "opponent":
			clauses = append(clauses, `relation = "Opponent"`)
		case "active":
			clauses = append(clauses, `active = "true"`)
		case "nonactive":
			clauses = append(clauses, `active = "false"`)
		default:
			return "", fmt.Errorf("unknown player filter %q", p)
		}
	}
	return strings.Join(clauses, " AND "), nil
}

func actionShorthand(head string, props []string) (string, error) {
	var clauses []string
	switch strings.ToLower(head) {
	case "spell":
		clauses = append(clauses, `kind = "Spell"`)
	case "activated":
		clauses = append(clauses, `kind = "Activated"`)
	case "card", "any":
	default:
		return "", fmt.Errorf("unknown spell ability filter %q", head)
	}
	for _, p := range props {
		clauses = append(clauses, fmt.Sprintf("type = %q", p))
	}
	return strings.Join(clauses, " AND "), nil
}
