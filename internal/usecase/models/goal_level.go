package models

import (
	"strings"

	dErrors "usecase-assistant/pkg/domain-errors"
)

// GoalLevel is the scope tier of a use case.
// Invariant: the value is one of the three canonical spellings below, which
// are also the spellings written to disk and accepted by the schema.
//
// Usage: construct via ParseGoalLevel at trust boundaries; direct casting
// bypasses validation.
type GoalLevel string

const (
	// GoalLevelSummary spans several user goals (a business process).
	GoalLevelSummary GoalLevel = "SUMMARY"
	// GoalLevelUserGoal is a goal the primary actor completes in one sitting.
	GoalLevelUserGoal GoalLevel = "USER_GOAL"
	// GoalLevelSubfunction is a step inside a user goal.
	GoalLevelSubfunction GoalLevel = "SUBFUNCTION"
)

// validGoalLevels is the single source of truth for the enumeration.
var validGoalLevels = map[GoalLevel]string{
	GoalLevelSummary:     "Summary",
	GoalLevelUserGoal:    "User Goal",
	GoalLevelSubfunction: "Subfunction",
}

// ParseGoalLevel constructs a GoalLevel from external input, ignoring case
// and surrounding whitespace.
//
// Errors: returns CodeInvalidInput when the value is blank or not one of the
// canonical spellings.
func ParseGoalLevel(s string) (GoalLevel, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "goal level cannot be empty")
	}
	level := GoalLevel(strings.ToUpper(trimmed))
	if !level.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "goal level must be one of: "+strings.Join(GoalLevelNames(), ", "))
	}
	return level, nil
}

// IsValid reports whether g is a member of the enumeration.
func (g GoalLevel) IsValid() bool {
	_, ok := validGoalLevels[g]
	return ok
}

// String returns the canonical spelling.
func (g GoalLevel) String() string {
	return string(g)
}

// DisplayName returns the human-facing label, e.g. "User Goal".
func (g GoalLevel) DisplayName() string {
	if name, ok := validGoalLevels[g]; ok {
		return name
	}
	return string(g)
}

// GoalLevels returns the enumeration in declaration order.
func GoalLevels() []GoalLevel {
	return []GoalLevel{GoalLevelSummary, GoalLevelUserGoal, GoalLevelSubfunction}
}

// GoalLevelNames returns the canonical spellings in declaration order.
func GoalLevelNames() []string {
	levels := GoalLevels()
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.String()
	}
	return names
}
