package service

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	MinTargetLevel = 2
	MaxTargetLevel = 99
)

// Skills lists the trainable skills in hiscore order.
var Skills = []string{
	"Attack", "Defence", "Strength", "Hitpoints", "Ranged", "Prayer",
	"Magic", "Cooking", "Woodcutting", "Fletching", "Fishing", "Firemaking",
	"Crafting", "Smithing", "Mining", "Herblore", "Agility", "Thieving",
	"Slayer", "Farming", "Runecraft", "Hunter", "Construction", "Sailing",
}

// xpTable[L] is the experience needed to reach level L.
var xpTable = buildXPTable(MaxTargetLevel)

func buildXPTable(maxLevel int) []uint64 {
	table := make([]uint64, maxLevel+1)
	points := 0.0
	for lvl := 1; lvl < maxLevel; lvl++ {
		points += math.Floor(float64(lvl) + 300*math.Pow(2, float64(lvl)/7))
		table[lvl+1] = uint64(math.Floor(points / 4))
	}
	return table
}

// XPForLevel returns the experience required for level, or 0 outside 1..99.
func XPForLevel(level int) uint64 {
	if level < 1 || level >= len(xpTable) {
		return 0
	}
	return xpTable[level]
}

// CanonicalSkill matches name case-insensitively against Skills.
func CanonicalSkill(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, s := range Skills {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}

var printer = message.NewPrinter(language.English)

func formatThousands(n uint64) string {
	return printer.Sprintf("%d", n)
}
