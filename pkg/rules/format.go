package rules

import (
	"fmt"
	"sort"
	"strings"
)

// maxSuggestions caps how many suggest matches are rendered per prompt.
const maxSuggestions = 2

// Status distinguishes the three evaluation outcomes so callers can react
// without parsing the rendered text.
type Status int

const (
	// StatusNone means no rule matched; nothing should be shown.
	StatusNone Status = iota
	// StatusSuggested means suggestions were rendered.
	StatusSuggested
	// StatusBlocked means a blocking rule matched and the caller should
	// treat the result as a hard stop.
	StatusBlocked
)

// Format renders matches for display. Blocking matches suppress all
// suggestions and every one of them is rendered with a mandatory
// call-to-action. Otherwise the top suggestions by priority are rendered,
// capped at maxSuggestions, with a closing line naming the first selection.
// Ties keep their original rule order.
func Format(matches []MatchResult) (string, Status) {
	var blocking, suggesting []MatchResult
	for _, m := range matches {
		if m.Kind == KindBlock {
			blocking = append(blocking, m)
		} else {
			suggesting = append(suggesting, m)
		}
	}

	if len(blocking) > 0 {
		sortByPriority(blocking)

		var b strings.Builder
		for _, m := range blocking {
			b.WriteString(m.Message)
			b.WriteString("\n")
			fmt.Fprintf(&b, "MANDATORY: resolve '%s' before proceeding.\n", m.RuleName)
		}
		return b.String(), StatusBlocked
	}

	if len(suggesting) > 0 {
		sortByPriority(suggesting)
		if len(suggesting) > maxSuggestions {
			suggesting = suggesting[:maxSuggestions]
		}

		var b strings.Builder
		for _, m := range suggesting {
			b.WriteString(m.Message)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "For example, try `/%s` to get started.\n", suggesting[0].RuleName)
		return b.String(), StatusSuggested
	}

	return "", StatusNone
}

// sortByPriority orders matches critical < high < medium < low < unknown.
// SliceStable preserves input order for equal priorities.
func sortByPriority(matches []MatchResult) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority.rank() < matches[j].Priority.rank()
	})
}
