package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsZeroRules(t *testing.T) {
	rules, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestLoadParsesRulesFile(t *testing.T) {
	root := t.TempDir()
	content := `{
  "version": "1.0",
  "description": "Skill activation rules - auto-generated",
  "skills": [
    {
      "name": "webhook-security",
      "type": "suggest",
      "priority": "high",
      "keywords": ["hmac", "signature"],
      "intentPatterns": ["(verify|validate).*?(signature|webhook)"],
      "filePaths": ["**/webhooks/**/*.py"],
      "message": "Consider using the webhook-security skill."
    },
    {
      "type": "suggest",
      "priority": "low",
      "message": "nameless rule should be dropped"
    }
  ],
  "globalSettings": {
    "enableSkillSuggestions": true,
    "maxSuggestionsPerPrompt": 2,
    "priorityOrder": ["critical", "high", "medium", "low"]
  }
}`
	path := RulesPath(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := Load(root)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "webhook-security", rules[0].Name)
	assert.Equal(t, KindSuggest, rules[0].Kind)
	assert.Equal(t, PriorityHigh, rules[0].Priority)
	assert.Equal(t, []string{"hmac", "signature"}, rules[0].Keywords)
}

func TestLoadMalformedFile(t *testing.T) {
	root := t.TempDir()
	path := RulesPath(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(root)
	assert.Error(t, err)
}

func TestSaveAndReadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".claude", "skills", RulesFileName)

	file := &File{
		Version:     "1.0",
		Description: "Skill activation rules - auto-generated",
		Skills: []Rule{
			{Name: "api-security", Kind: KindSuggest, Priority: PriorityHigh, Message: "msg"},
		},
		GlobalSettings: DefaultGlobalSettings(),
	}
	require.NoError(t, Save(path, file))

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Skills, 1)
	assert.Equal(t, "api-security", loaded.Skills[0].Name)
	require.NotNil(t, loaded.GlobalSettings)
	assert.Equal(t, 2, loaded.GlobalSettings.MaxSuggestionsPerPrompt)
}

func TestReadFileMissingReturnsSkeleton(t *testing.T) {
	file, err := ReadFile(filepath.Join(t.TempDir(), RulesFileName))
	require.NoError(t, err)
	assert.Equal(t, "1.0", file.Version)
	assert.Empty(t, file.Skills)
}
