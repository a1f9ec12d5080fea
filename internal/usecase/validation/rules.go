package validation

import (
	"fmt"
	"strings"

	"usecase-assistant/internal/usecase/models"
)

const (
	titleExample     = "Example: 'Purchase Items' or 'Register New User'"
	stepExample      = "Example: 'User enters login credentials' or 'System validates the input'"
	guaranteeExample = "Example: 'User account is created and active' or 'Payment is recorded in the system'"
)

var goalLevelValues = "Valid values: " + strings.Join(models.GoalLevelNames(), ", ")

// ValidateTitle checks that a title names a goal of the primary actor. A
// blank title stops there; otherwise the function-keyword and vagueness
// checks both run and both may report.
func ValidateTitle(title string) Result {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return invalid(FieldTitle, "Title cannot be empty", titleExample)
	}

	var errs []FieldError
	lower := strings.ToLower(trimmed)
	for _, kw := range functionKeywords {
		if strings.Contains(lower, kw) {
			errs = append(errs, FieldError{
				Field:   FieldTitle,
				Message: "Title appears to be function-oriented rather than goal-oriented. Focus on what the user wants to achieve.",
				Example: "Example: Instead of 'Manage Users', use 'Add New User' or 'Update User Profile'",
			})
			break
		}
	}
	if len(strings.Fields(trimmed)) < 2 {
		errs = append(errs, FieldError{
			Field:   FieldTitle,
			Message: "Title should be descriptive and express a clear goal",
			Example: titleExample,
		})
	}
	return newResult(errs)
}

// ValidateGoalLevel accepts the three canonical spellings in any case.
// Surrounding whitespace is not part of any spelling.
func ValidateGoalLevel(level string) Result {
	if strings.TrimSpace(level) == "" {
		return invalid(FieldGoalLevel, "Goal level cannot be empty", goalLevelValues)
	}
	if !models.GoalLevel(strings.ToUpper(level)).IsValid() {
		return invalid(FieldGoalLevel,
			"Goal level must be one of: "+strings.Join(models.GoalLevelNames(), ", "),
			"Example: "+models.GoalLevelUserGoal.String())
	}
	return Result{}
}

// ValidateStep checks "<actor> <action>" text. Fewer than three words is a
// format violation and no verb check follows.
func ValidateStep(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return invalid(FieldStep, "Step cannot be empty", stepExample)
	}
	if len(strings.Fields(trimmed)) < 3 {
		return invalid(FieldStep, "Step should follow subject-verb-object format with an actor and action", stepExample)
	}
	if !containsActionVerb(trimmed) {
		return invalid(FieldStep, "Step should contain an action verb", stepExample)
	}
	return Result{}
}

// ValidateExtension bounds the branch point by the largest step number in
// main. The bound is a range check: with sparse numbering a branch point
// between two existing numbers is accepted.
func ValidateExtension(ext *models.Extension, main *models.Scenario) Result {
	if ext == nil {
		return invalid(FieldExtension, "Extension cannot be null", "")
	}
	if main == nil || main.IsEmpty() {
		return invalid(FieldExtension, "Cannot validate extension without a main scenario", "")
	}

	maxStep, _ := main.MaxStepNumber()
	bp := ext.BranchPoint()
	if bp < 1 || bp > maxStep {
		return invalid(FieldExtension,
			fmt.Sprintf("Extension branch point %d does not reference a valid step in the main scenario (1-%d)", bp, maxStep),
			fmt.Sprintf("Example: Use a step number between 1 and %d", maxStep))
	}
	return Result{}
}

// ValidateSuccessGuarantee checks that a guarantee describes a state. The
// imperative-first-word and missing-state-marker checks are independent.
func ValidateSuccessGuarantee(guarantee string) Result {
	trimmed := strings.TrimSpace(guarantee)
	if trimmed == "" {
		return invalid(FieldSuccessGuarantee, "Success guarantee cannot be empty", guaranteeExample)
	}

	var errs []FieldError
	if isImperative(strings.Fields(trimmed)[0]) {
		errs = append(errs, FieldError{
			Field:   FieldSuccessGuarantee,
			Message: "Success guarantee should be stated as a condition (describing a state), not an action",
			Example: "Example: Instead of 'Create user account', use 'User account is created and active'",
		})
	}

	lower := strings.ToLower(trimmed)
	hasState := false
	for _, marker := range stateMarkers {
		if strings.Contains(lower, marker) {
			hasState = true
			break
		}
	}
	if !hasState {
		errs = append(errs, FieldError{
			Field:   FieldSuccessGuarantee,
			Message: "Success guarantee should describe a state using words like 'is', 'are', 'has', 'have', 'remains', or 'exists'",
			Example: guaranteeExample,
		})
	}
	return newResult(errs)
}

// ValidateUseCase runs every rule over a whole document: title, goal level,
// main scenario steps, extensions and success guarantees, in that order.
func ValidateUseCase(uc *models.UseCase) Result {
	if uc == nil {
		return invalid(FieldUseCase, "Use case cannot be null", "")
	}

	results := []Result{ValidateTitle(uc.Title())}
	if !uc.GoalLevel().IsValid() {
		results = append(results, invalid(FieldGoalLevel, "Goal level cannot be null", goalLevelValues))
	}

	main := uc.MainScenario()
	for _, step := range main.Steps() {
		results = append(results, ValidateStep(step.Text()))
	}
	for _, ext := range uc.Extensions() {
		results = append(results, ValidateExtension(&ext, &main))
	}
	for _, g := range uc.SuccessGuarantees() {
		results = append(results, ValidateSuccessGuarantee(g))
	}
	return Merge(results...)
}
