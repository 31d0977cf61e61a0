package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Color is one of the five colors of mana, by its symbol.
type Color string

const (
	ColorWhite Color = "W"
	ColorBlue  Color = "U"
	ColorBlack Color = "B"
	ColorRed   Color = "R"
	ColorGreen Color = "G"
)

var colorNames = map[Color]string{
	ColorWhite: "White",
	ColorBlue:  "Blue",
	ColorBlack: "Black",
	ColorRed:   "Red",
	ColorGreen: "Green",
}

// Name returns the color's full name ("Black" for "B").
func (c Color) Name() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return string(c)
}

// ManaCost represents a parsed mana cost.
type ManaCost struct {
	Generic   int
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
	X         bool // X in cost (e.g., {X}{R})
	Hybrid    []HybridCost
}

// HybridCost is a symbol payable more than one way, such as {W/U} or {2/B}.
type HybridCost struct {
	Left  string
	Right string
}

// manaValue counts the larger half, so {2/B} is worth 2.
func (h HybridCost) manaValue() int {
	value := 1
	for _, half := range []string{h.Left, h.Right} {
		if n, err := strconv.Atoi(half); err == nil && n > value {
			value = n
		}
	}
	return value
}

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ParseCost parses a mana cost string (e.g., "{1}{G}", "{2}{R}{R}", "{X}{R}", "{W/U}").
func ParseCost(costStr string) (*ManaCost, error) {
	cost := &ManaCost{}
	if strings.TrimSpace(costStr) == "" {
		return cost, nil
	}

	for _, match := range symbolPattern.FindAllStringSubmatch(costStr, -1) {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))

		switch symbol {
		case "X":
			cost.X = true
		case "W":
			cost.White++
		case "U":
			cost.Blue++
		case "B":
			cost.Black++
		case "R":
			cost.Red++
		case "G":
			cost.Green++
		case "C":
			cost.Colorless++
		default:
			if num, err := strconv.Atoi(symbol); err == nil {
				cost.Generic += num
				continue
			}
			left, right, ok := strings.Cut(symbol, "/")
			if !ok {
				return nil, fmt.Errorf("unknown mana symbol: {%s}", symbol)
			}
			cost.Hybrid = append(cost.Hybrid, HybridCost{Left: left, Right: right})
		}
	}

	return cost, nil
}

// ManaValue returns the converted mana cost. X counts as zero.
func (mc *ManaCost) ManaValue() int {
	if mc == nil {
		return 0
	}
	total := mc.Generic + mc.White + mc.Blue + mc.Black + mc.Red + mc.Green + mc.Colorless
	for _, h := range mc.Hybrid {
		total += h.manaValue()
	}
	return total
}

// Colors returns the colors appearing in the cost, in WUBRG order.
func (mc *ManaCost) Colors() []Color {
	if mc == nil {
		return nil
	}
	present := map[Color]bool{
		ColorWhite: mc.White > 0,
		ColorBlue:  mc.Blue > 0,
		ColorBlack: mc.Black > 0,
		ColorRed:   mc.Red > 0,
		ColorGreen: mc.Green > 0,
	}
	for _, h := range mc.Hybrid {
		for _, half := range []string{h.Left, h.Right} {
			if _, ok := colorNames[Color(half)]; ok {
				present[Color(half)] = true
			}
		}
	}

	var colors []Color
	for _, c := range []Color{ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen} {
		if present[c] {
			colors = append(colors, c)
		}
	}
	return colors
}
