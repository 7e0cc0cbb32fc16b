package rules

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Evaluate scans rules against the prompt and optional active file path and
// returns one MatchResult per rule that produced at least one piece of
// evidence. Rules are evaluated independently; a malformed pattern or glob in
// one rule never affects another. Result order follows input rule order.
func Evaluate(prompt, activeFile string, ruleSet []Rule) []MatchResult {
	normPrompt := strings.ToLower(strings.TrimSpace(prompt))

	var results []MatchResult
	for _, rule := range ruleSet {
		evidence := matchKeywords(normPrompt, rule.Keywords)
		evidence = append(evidence, matchPatterns(prompt, rule.IntentPatterns)...)
		evidence = append(evidence, matchFilePaths(activeFile, rule.FilePaths)...)

		if len(evidence) == 0 {
			continue
		}

		results = append(results, MatchResult{
			RuleName:  rule.Name,
			Kind:      rule.Kind,
			Priority:  rule.Priority,
			Message:   rule.Message,
			MatchedBy: evidence,
		})
	}

	return results
}

// matchKeywords collects every keyword whose normalized form is a substring
// of the normalized prompt.
func matchKeywords(normPrompt string, keywords []string) []string {
	var evidence []string
	for _, kw := range keywords {
		norm := strings.ToLower(strings.TrimSpace(kw))
		if norm == "" {
			continue
		}
		if strings.Contains(normPrompt, norm) {
			evidence = append(evidence, "keyword:"+kw)
		}
	}
	return evidence
}

// matchPatterns runs each intent pattern case-insensitively against the raw
// prompt. Patterns that fail to compile are skipped.
func matchPatterns(prompt string, patterns []string) []string {
	var evidence []string
	for _, pat := range patterns {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			continue
		}
		if re.MatchString(prompt) {
			evidence = append(evidence, "pattern:"+pat)
		}
	}
	return evidence
}

// matchFilePaths tests the active file path against each glob. An empty path
// means no file context and yields no evidence. Invalid globs are skipped.
func matchFilePaths(activeFile string, globs []string) []string {
	if activeFile == "" {
		return nil
	}

	path := filepath.ToSlash(activeFile)

	var evidence []string
	for _, pattern := range globs {
		ok, err := doublestar.Match(pattern, path)
		if err != nil || !ok {
			continue
		}
		evidence = append(evidence, "file:"+pattern)
	}
	return evidence
}
