package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsmith/pkg/presenter"
	"skillsmith/pkg/rules"
)

func TestMain(m *testing.M) {
	presenter.SetQuiet(true)
	os.Exit(m.Run())
}

func TestNewValidatesTarget(t *testing.T) {
	t.Run("missing target", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "does-not-exist"))
		assert.Error(t, err)
	})

	t.Run("target is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		_, err := New(file)
		assert.Error(t, err)
	})

	t.Run("creates claude dir", func(t *testing.T) {
		target := t.TempDir()
		inst, err := New(target)
		require.NoError(t, err)
		assert.DirExists(t, filepath.Join(target, ".claude"))
		assert.Equal(t, target, inst.Target())
	})
}

func TestInstallSkills(t *testing.T) {
	target := t.TempDir()
	inst, err := New(target)
	require.NoError(t, err)

	require.NoError(t, inst.InstallSkills(context.Background(), nil))

	// Default set is fully installed, templates and placeholders alike.
	skillFile := filepath.Join(target, ".claude", "skills", "webhook-security", "SKILL.md")
	data, err := os.ReadFile(skillFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: webhook-security")
	assert.Contains(t, string(data), "# Webhook Security Skill")
	assert.FileExists(t, filepath.Join(target, ".claude", "skills", "webhook-security", "resources", "examples.md"))
	assert.FileExists(t, filepath.Join(target, ".claude", "skills", "async-kafka", "SKILL.md"))

	// Activation rules were generated alongside.
	loaded, err := rules.Load(target)
	require.NoError(t, err)
	assert.Len(t, loaded, 6)

	file, err := rules.ReadFile(rules.RulesPath(target))
	require.NoError(t, err)
	require.NotNil(t, file.GlobalSettings)
	assert.Equal(t, 2, file.GlobalSettings.MaxSuggestionsPerPrompt)
}

func TestInstallSkillsPreservesExistingRules(t *testing.T) {
	target := t.TempDir()
	inst, err := New(target)
	require.NoError(t, err)

	custom := &rules.File{
		Version: "1.0",
		Skills: []rules.Rule{
			{Name: "webhook-security", Kind: rules.KindBlock, Priority: rules.PriorityCritical, Message: "customized"},
		},
	}
	require.NoError(t, rules.Save(rules.RulesPath(target), custom))

	require.NoError(t, inst.InstallSkills(context.Background(), []string{"webhook-security", "api-security"}))

	loaded, err := rules.Load(target)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	// The hand-edited entry wins over the generated one.
	assert.Equal(t, rules.KindBlock, loaded[0].Kind)
	assert.Equal(t, "customized", loaded[0].Message)
	assert.Equal(t, "api-security", loaded[1].Name)
}

func TestInstallAgentsCommandsHooksExamples(t *testing.T) {
	target := t.TempDir()
	inst, err := New(target)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, inst.InstallAgents(ctx))
	require.NoError(t, inst.InstallCommands(ctx))
	require.NoError(t, inst.InstallHooks(ctx))
	require.NoError(t, inst.InstallExamples(ctx))

	assert.FileExists(t, filepath.Join(target, ".claude", "agents", "security-auditor.md"))
	assert.FileExists(t, filepath.Join(target, ".claude", "commands", "check-prod-readiness.md"))
	assert.FileExists(t, filepath.Join(target, "examples", "claude_patterns", "circuit_breaker.py"))

	hook := filepath.Join(target, ".claude", "hooks", "skill-activation-prompt.py")
	info, err := os.Stat(hook)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111, "hooks must be executable")
}

func TestBackupPreservesRelativeLayout(t *testing.T) {
	target := t.TempDir()
	inst, err := New(target)
	require.NoError(t, err)

	nested := filepath.Join(target, "config", "settings.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(nested), 0o755))
	require.NoError(t, os.WriteFile(nested, []byte("a: 1\n"), 0o644))

	require.NoError(t, inst.Backup(nested, filepath.Join(target, "missing.txt")))

	backed := filepath.Join(inst.BackupDir(), "config", "settings.yaml")
	data, err := os.ReadFile(backed)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))
}

func TestUpdateDependencies(t *testing.T) {
	target := t.TempDir()
	inst, err := New(target)
	require.NoError(t, err)

	reqFile := filepath.Join(target, "requirements.txt")
	require.NoError(t, os.WriteFile(reqFile, []byte("fastapi>=0.100.0\n"), 0o644))

	require.NoError(t, inst.UpdateDependencies(context.Background()))

	data, err := os.ReadFile(reqFile)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "fastapi>=0.100.0\n"), "existing deps preserved")
	assert.Contains(t, content, "# Added by skillsmith setup")
	assert.Contains(t, content, "tenacity>=8.2.0")

	// Original manifest was backed up.
	backed, err := os.ReadFile(filepath.Join(inst.BackupDir(), "requirements.txt"))
	require.NoError(t, err)
	assert.Equal(t, "fastapi>=0.100.0\n", string(backed))
}

func TestUpdateDependenciesCreatesManifest(t *testing.T) {
	target := t.TempDir()
	inst, err := New(target)
	require.NoError(t, err)

	require.NoError(t, inst.UpdateDependencies(context.Background()))
	assert.FileExists(t, filepath.Join(target, "requirements.txt"))
}

func TestWriteReadme(t *testing.T) {
	target := t.TempDir()
	inst, err := New(target)
	require.NoError(t, err)

	require.NoError(t, inst.WriteReadme(context.Background()))

	data, err := os.ReadFile(filepath.Join(target, ".claude", "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Agent Infrastructure")
	assert.Contains(t, string(data), "/check-prod-readiness")
}

func TestInstalledSkills(t *testing.T) {
	t.Run("no skills dir", func(t *testing.T) {
		installed, err := InstalledSkills(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, installed)
	})

	t.Run("after install", func(t *testing.T) {
		target := t.TempDir()
		inst, err := New(target)
		require.NoError(t, err)
		require.NoError(t, inst.InstallSkills(context.Background(), []string{"api-security", "webhook-security"}))

		installed, err := InstalledSkills(target)
		require.NoError(t, err)
		require.Len(t, installed, 2)
		assert.Equal(t, "api-security", installed[0].Name)
		assert.Equal(t, "webhook-security", installed[1].Name)
		assert.NotEmpty(t, installed[0].Description)
	})

	t.Run("skips directories without frontmatter", func(t *testing.T) {
		target := t.TempDir()
		bad := filepath.Join(target, ".claude", "skills", "broken")
		require.NoError(t, os.MkdirAll(bad, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(bad, "SKILL.md"), []byte("no frontmatter here"), 0o644))

		installed, err := InstalledSkills(target)
		require.NoError(t, err)
		assert.Empty(t, installed)
	})
}
