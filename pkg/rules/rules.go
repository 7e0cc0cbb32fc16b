// Package rules implements skill activation rules: declarative records that
// describe when to suggest or mandate a skill based on the user's prompt and
// the file they are working on. Rules are loaded from skill-rules.json and
// evaluated as a pure function; matching never mutates rule data.
package rules

// Kind determines how a matched rule is presented. Block rules suppress all
// suggestions and demand action; suggest rules are ranked and capped.
type Kind string

const (
	KindBlock   Kind = "block"
	KindSuggest Kind = "suggest"
)

// Priority orders suggest matches. Unknown values sort after PriorityLow.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// rank returns the sort position of a priority. Anything unrecognised,
// including an empty priority, lands after low.
func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Rule is a single activation rule. The JSON field names follow the
// skill-rules.json schema, where Kind is serialized as "type".
type Rule struct {
	Name           string   `json:"name"`
	Kind           Kind     `json:"type"`
	Priority       Priority `json:"priority"`
	Description    string   `json:"description,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	IntentPatterns []string `json:"intentPatterns,omitempty"`
	FilePaths      []string `json:"filePaths,omitempty"`
	Message        string   `json:"message"`
}

// MatchResult is produced per matched rule. MatchedBy records the evidence
// that triggered the match (keyword:*, pattern:*, file:* in that order) and
// is kept for diagnostics only.
type MatchResult struct {
	RuleName  string
	Kind      Kind
	Priority  Priority
	Message   string
	MatchedBy []string
}

// GlobalSettings mirrors the globalSettings block of skill-rules.json.
type GlobalSettings struct {
	EnableSkillSuggestions  bool     `json:"enableSkillSuggestions"`
	MaxSuggestionsPerPrompt int      `json:"maxSuggestionsPerPrompt"`
	PriorityOrder           []string `json:"priorityOrder"`
}

// File is the on-disk representation of skill-rules.json.
type File struct {
	Version        string          `json:"version"`
	Description    string          `json:"description"`
	Skills         []Rule          `json:"skills"`
	GlobalSettings *GlobalSettings `json:"globalSettings,omitempty"`
}

// DefaultGlobalSettings returns the settings written by the installer.
func DefaultGlobalSettings() *GlobalSettings {
	return &GlobalSettings{
		EnableSkillSuggestions:  true,
		MaxSuggestionsPerPrompt: maxSuggestions,
		PriorityOrder: []string{
			string(PriorityCritical),
			string(PriorityHigh),
			string(PriorityMedium),
			string(PriorityLow),
		},
	}
}
