package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ParseCost parses a mana cost string (e.g., "{1}{G}", "{2}{R}{R}").
// Supports:
// - Generic: {1}, {2}, {3}, etc.
// - Colored: {W}, {U}, {B}, {R}, {G}, {C}
// - Any color: {*}
// X and hybrid symbols are rejected.
func ParseCost(costStr string) (Mana, error) {
	var cost Mana
	costStr = strings.TrimSpace(costStr)
	if costStr == "" {
		return cost, nil
	}

	matches := symbolPattern.FindAllStringSubmatch(costStr, -1)
	if len(matches) == 0 {
		return cost, fmt.Errorf("no mana symbols in %q", costStr)
	}

	for _, match := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))

		switch symbol {
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
		case "*":
			cost.Any++
		default:
			num, err := strconv.Atoi(symbol)
			if err != nil || num < 0 {
				return Mana{}, fmt.Errorf("unknown mana symbol: {%s}", symbol)
			}
			cost.Generic += num
		}
	}

	return cost, nil
}

// MustParseCost is ParseCost for literal costs in card definitions.
func MustParseCost(costStr string) Mana {
	cost, err := ParseCost(costStr)
	if err != nil {
		panic(err)
	}
	return cost
}
