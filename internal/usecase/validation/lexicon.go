package validation

import (
	"regexp"
	"strings"
)

// actionVerbs is shared by the step rule (any inflected occurrence) and the
// success guarantee rule (bare imperative as first word).
var actionVerbs = []string{
	"create", "update", "delete", "add", "remove", "send", "receive", "validate",
	"check", "confirm", "enter", "select", "click", "submit", "save", "load",
	"display", "show", "navigate", "open", "close", "start", "stop", "process",
	"calculate", "generate", "retrieve", "search", "filter", "sort", "export", "import",
}

// verbPattern matches a lexicon verb as a whole word with an optional "s" or
// "es" ending, in any case.
var verbPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(actionVerbs, "|") + `)(?:s|es)?\b`)

var imperativeVerbs = func() map[string]struct{} {
	m := make(map[string]struct{}, len(actionVerbs))
	for _, v := range actionVerbs {
		m[v] = struct{}{}
	}
	return m
}()

// functionKeywords mark a title as describing a system function rather than
// an actor goal. Matched as substrings of the lowercased title.
var functionKeywords = []string{"manage", "maintain", "administer", "handle"}

// stateMarkers are matched with their surrounding spaces against the
// lowercased guarantee.
var stateMarkers = []string{" is ", " are ", " has ", " have ", " remains ", " exists "}

func containsActionVerb(text string) bool {
	return verbPattern.MatchString(text)
}

func isImperative(word string) bool {
	_, ok := imperativeVerbs[strings.ToLower(word)]
	return ok
}
