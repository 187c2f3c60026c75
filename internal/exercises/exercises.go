package exercises

import (
	"errors"
	"strings"
)

var (
	ErrInvalidName      = errors.New("invalid exercise name")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// Defaults is the built-in exercise catalog. Every user starts with
// these; they can be hidden but never removed from this list.
var Defaults = []string{
	"Squat",
	"Bench Press",
	"Deadlift",
	"Overhead Press",
	"Barbell Row",
	"Pull-Up",
	"Incline Bench",
	"Front Squat",
	"Romanian Deadlift",
	"Dumbbell Bench Press",
}

// NormalizeName trims the name and collapses runs of inner whitespace
// into single spaces. Casing is preserved, storage is case sensitive.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// findFold returns the canonical casing of needle within names,
// matched case insensitively.
func findFold(names []string, needle string) (string, bool) {
	for _, n := range names {
		if equalFold(n, needle) {
			return n, true
		}
	}
	return "", false
}
