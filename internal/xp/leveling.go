package xp

import "math"

// MaxLevel caps the progression curve. Requirement grows without bound
// otherwise and the app renders at most 100 levels.
const MaxLevel = 100

// Requirement returns the total XP needed to reach the given level.
// Level 1 is free, above that the curve is floor(10 * n^1.25).
func Requirement(level int) int {
	if level <= 1 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return int(math.Floor(10 * math.Pow(float64(level), 1.25)))
}

// LevelFromXP returns the largest level in [1, MaxLevel] whose
// requirement is covered by totalXP.
func LevelFromXP(totalXP int) int {
	level := 1
	for n := 2; n <= MaxLevel; n++ {
		if totalXP < Requirement(n) {
			break
		}
		level = n
	}
	return level
}

// Progress returns the fraction [0, 1] of the way from the current
// level to the next one. At MaxLevel the next requirement equals the
// current one and the max(1, ...) guard keeps the division defined.
func Progress(totalXP int) float64 {
	level := LevelFromXP(totalXP)
	current := Requirement(level)
	next := Requirement(minInt(level+1, MaxLevel))

	progress := float64(totalXP-current) / float64(maxInt(1, next-current))
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
