// Package catalog holds the bundled skill, agent, command, hook, and example
// templates that the installer copies into a target project. Skill templates
// carry YAML frontmatter describing their activation metadata; everything else
// is plain content keyed by name. Unknown names fall back to a generated
// placeholder so partial bundles still install cleanly.
package catalog

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"skillsmith/pkg/rules"
)

//go:embed templates
var templateFS embed.FS

// SkillTemplate is a bundled skill: activation metadata from frontmatter plus
// the markdown body that becomes SKILL.md.
type SkillTemplate struct {
	Name           string
	Description    string
	Priority       rules.Priority
	Keywords       []string
	IntentPatterns []string
	FilePaths      []string
	Content        string
}

// frontmatter is the YAML header of a bundled skill template.
type frontmatter struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Priority       string   `yaml:"priority"`
	Keywords       []string `yaml:"keywords"`
	IntentPatterns []string `yaml:"intent_patterns"`
	FilePaths      []string `yaml:"file_paths"`
}

// Rule converts the template metadata into its skill-rules.json entry.
func (s *SkillTemplate) Rule() rules.Rule {
	priority := s.Priority
	if priority == "" {
		priority = rules.PriorityHigh
	}
	return rules.Rule{
		Name:           s.Name,
		Kind:           rules.KindSuggest,
		Priority:       priority,
		Description:    s.Description,
		Keywords:       s.Keywords,
		IntentPatterns: s.IntentPatterns,
		FilePaths:      s.FilePaths,
		Message:        fmt.Sprintf("Consider using the `/%s` skill for this task.", s.Name),
	}
}

// DefaultSkills is the skill set installed when none is specified.
func DefaultSkills() []string {
	return []string{
		"webhook-security",
		"api-security",
		"resilience-patterns",
		"async-kafka",
		"pydantic-v2-migration",
		"event-driven-patterns",
	}
}

// DefaultAgents is the agent set installed by setup.
func DefaultAgents() []string {
	return []string{
		"webhook-validator",
		"kafka-optimizer",
		"security-auditor",
		"async-converter",
	}
}

// DefaultCommands is the slash command set installed by setup.
func DefaultCommands() []string {
	return []string{
		"check-prod-readiness",
		"kafka-health",
		"webhook-test",
		"security-scan",
		"migrate-pydantic-v2",
	}
}

// DefaultHooks is the hook set installed by setup.
func DefaultHooks() []string {
	return []string{
		"skill-activation-prompt",
		"pre-commit",
		"complexity-detector",
		"dependency-checker",
	}
}

// DefaultExamples is the example snippet set installed by setup.
func DefaultExamples() []string {
	return []string{
		"circuit_breaker",
		"idempotency",
		"webhook_verifier",
		"async_kafka",
		"base_service",
	}
}

// Skill returns the bundled skill template for name. Names without a bundled
// template get a placeholder body and empty activation metadata.
func Skill(name string) (*SkillTemplate, error) {
	data, err := templateFS.ReadFile("templates/skills/" + name + ".md")
	if err != nil {
		return &SkillTemplate{
			Name:    name,
			Content: fmt.Sprintf("# %s Skill\n\nContent to be added.\n", titleize(name)),
		}, nil
	}

	fm, body, err := splitFrontmatter(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid frontmatter in bundled skill %q", name)
	}

	return &SkillTemplate{
		Name:           name,
		Description:    fm.Description,
		Priority:       rules.Priority(fm.Priority),
		Keywords:       fm.Keywords,
		IntentPatterns: fm.IntentPatterns,
		FilePaths:      fm.FilePaths,
		Content:        body,
	}, nil
}

// Agent returns the bundled agent prompt for name, or a placeholder.
func Agent(name string) string {
	return readOrPlaceholder("templates/agents/"+name+".md",
		fmt.Sprintf("# %s Agent\n\nAgent content to be added.\n", titleize(name)))
}

// Command returns the bundled slash command prompt for name, or a placeholder.
func Command(name string) string {
	return readOrPlaceholder("templates/commands/"+name+".md",
		fmt.Sprintf("# %s Command\n\nCommand content to be added.\n", titleize(name)))
}

// Hook returns the bundled hook script for name, or a minimal runnable stub.
func Hook(name string) string {
	stub := fmt.Sprintf(`#!/usr/bin/env python3
"""
%s Hook
"""

import sys


def main():
    print("Running %s hook...")
    return 0


if __name__ == "__main__":
    sys.exit(main())
`, titleize(name), name)
	return readOrPlaceholder("templates/hooks/"+name+".py", stub)
}

// Example returns the bundled example snippet for name, or a placeholder.
func Example(name string) string {
	return readOrPlaceholder("templates/examples/"+name+".py",
		fmt.Sprintf("\"\"\"%s example. Content to be added.\"\"\"\n", titleize(name)))
}

// SkillNames lists all bundled skill templates, sorted.
func SkillNames() []string { return listNames("templates/skills", ".md") }

// AgentNames lists all bundled agent templates, sorted.
func AgentNames() []string { return listNames("templates/agents", ".md") }

// CommandNames lists all bundled command templates, sorted.
func CommandNames() []string { return listNames("templates/commands", ".md") }

// HookNames lists all bundled hook scripts, sorted.
func HookNames() []string { return listNames("templates/hooks", ".py") }

// ExampleNames lists all bundled example snippets, sorted.
func ExampleNames() []string { return listNames("templates/examples", ".py") }

func listNames(dir, ext string) []string {
	entries, err := templateFS.ReadDir(dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}
	sort.Strings(names)
	return names
}

func readOrPlaceholder(path, placeholder string) string {
	data, err := templateFS.ReadFile(path)
	if err != nil {
		return placeholder
	}
	return string(data)
}

// splitFrontmatter separates a YAML frontmatter block from the markdown body.
// Content without a leading "---" is treated as all body.
func splitFrontmatter(content string) (*frontmatter, string, error) {
	fm := &frontmatter{}

	if !strings.HasPrefix(content, "---") {
		return fm, content, nil
	}

	lines := strings.Split(content, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return fm, content, nil
	}

	header := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(header), fm); err != nil {
		return nil, "", errors.Wrap(err, "failed to parse frontmatter")
	}

	body := strings.TrimLeft(strings.Join(lines[end+1:], "\n"), "\n")
	return fm, body, nil
}

func titleize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
