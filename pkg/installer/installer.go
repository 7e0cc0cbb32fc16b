// Package installer applies the bundled agent infrastructure to a target
// project: skills, agents, slash commands, hooks, and example snippets under
// .claude/, plus the activation rules file, a dependency manifest patch, and
// a README. Files about to be overwritten are backed up first.
package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"skillsmith/pkg/catalog"
	"skillsmith/pkg/logger"
	"skillsmith/pkg/presenter"
	"skillsmith/pkg/rules"
)

// Installer installs bundled components into a target project.
type Installer struct {
	target    string
	claudeDir string
	backupDir string
}

// New validates the target project and prepares the .claude directory.
func New(target string) (*Installer, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve target path")
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "target project not found: %s", abs)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("target is not a directory: %s", abs)
	}

	claudeDir := filepath.Join(abs, ".claude")
	if err := os.MkdirAll(claudeDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create .claude directory")
	}

	return &Installer{
		target:    abs,
		claudeDir: claudeDir,
		backupDir: filepath.Join(abs, ".claude_backup", time.Now().Format("20060102_150405")),
	}, nil
}

// Target returns the resolved target project root.
func (i *Installer) Target() string { return i.target }

// BackupDir returns where this run backs up overwritten files.
func (i *Installer) BackupDir() string { return i.backupDir }

// Backup copies existing files or directories into the timestamped backup
// directory, preserving their layout relative to the target root. Paths that
// do not exist are skipped.
func (i *Installer) Backup(paths ...string) error {
	backedUp := false

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		rel, err := filepath.Rel(i.target, path)
		if err != nil {
			return errors.Wrapf(err, "backup path %s is outside the target project", path)
		}

		dest := filepath.Join(i.backupDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return errors.Wrap(err, "failed to create backup directory")
		}

		if err := copyPath(path, dest); err != nil {
			return errors.Wrapf(err, "failed to back up %s", path)
		}
		backedUp = true
	}

	if backedUp {
		presenter.Success(fmt.Sprintf("Backup created at: %s", i.backupDir))
	}
	return nil
}

// InstallSkills writes the given skills (default set when empty) under
// .claude/skills and regenerates the activation rules file. Individual skill
// failures are collected; one bad skill does not stop the rest.
func (i *Installer) InstallSkills(ctx context.Context, names []string) error {
	if len(names) == 0 {
		names = catalog.DefaultSkills()
	}

	presenter.Section("Installing Skills")

	var result *multierror.Error
	installed := make([]string, 0, len(names))

	for _, name := range names {
		if err := i.installSkill(ctx, name); err != nil {
			presenter.Error(err, fmt.Sprintf("Failed to install skill '%s'", name))
			result = multierror.Append(result, err)
			continue
		}
		installed = append(installed, name)
		presenter.Success(fmt.Sprintf("Skill created: %s", name))
	}

	if err := i.updateRules(ctx, installed); err != nil {
		result = multierror.Append(result, err)
	}

	if result.ErrorOrNil() == nil {
		presenter.Success("Skills installation complete")
	}
	return result.ErrorOrNil()
}

func (i *Installer) installSkill(ctx context.Context, name string) error {
	skill, err := catalog.Skill(name)
	if err != nil {
		return err
	}

	skillDir := filepath.Join(i.claudeDir, "skills", name)
	if err := os.MkdirAll(filepath.Join(skillDir, "resources"), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create skill directory for %s", name)
	}

	skillFile := filepath.Join(skillDir, "SKILL.md")
	content := renderSkillFile(skill)
	if err := os.WriteFile(skillFile, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", skillFile)
	}

	resource := fmt.Sprintf("# %s Examples\n\nDetailed examples and use cases.\n", name)
	resourceFile := filepath.Join(skillDir, "resources", "examples.md")
	if err := os.WriteFile(resourceFile, []byte(resource), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", resourceFile)
	}

	logger.G(ctx).WithField("skill", name).Debug("skill installed")
	return nil
}

// updateRules merges rules for newly installed skills into skill-rules.json,
// preserving entries that already exist.
func (i *Installer) updateRules(ctx context.Context, names []string) error {
	path := rules.RulesPath(i.target)

	file, err := rules.ReadFile(path)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(file.Skills))
	for _, r := range file.Skills {
		existing[r.Name] = true
	}

	added := 0
	for _, name := range names {
		if existing[name] {
			continue
		}
		skill, err := catalog.Skill(name)
		if err != nil {
			return err
		}
		file.Skills = append(file.Skills, skill.Rule())
		added++
	}

	file.GlobalSettings = rules.DefaultGlobalSettings()

	if err := rules.Save(path, file); err != nil {
		return err
	}

	logger.G(ctx).WithField("added", added).Debug("skill rules updated")
	return nil
}

// InstallAgents writes the agent prompt files under .claude/agents.
func (i *Installer) InstallAgents(ctx context.Context) error {
	presenter.Section("Installing Custom Agents")
	return i.installMarkdown(ctx, "agents", catalog.DefaultAgents(), catalog.Agent, "Agent")
}

// InstallCommands writes the slash command prompts under .claude/commands.
func (i *Installer) InstallCommands(ctx context.Context) error {
	presenter.Section("Installing Slash Commands")
	return i.installMarkdown(ctx, "commands", catalog.DefaultCommands(), catalog.Command, "Command")
}

func (i *Installer) installMarkdown(ctx context.Context, dir string, names []string, lookup func(string) string, label string) error {
	destDir := filepath.Join(i.claudeDir, dir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s directory", dir)
	}

	var result *multierror.Error
	for _, name := range names {
		dest := filepath.Join(destDir, name+".md")
		if err := os.WriteFile(dest, []byte(lookup(name)), 0o644); err != nil {
			err = errors.Wrapf(err, "failed to write %s", dest)
			presenter.Error(err, fmt.Sprintf("Failed to install %s '%s'", dir, name))
			result = multierror.Append(result, err)
			continue
		}
		presenter.Success(fmt.Sprintf("%s created: %s", label, name))
		logger.G(ctx).WithField(dir, name).Debug("component installed")
	}

	if result.ErrorOrNil() == nil {
		presenter.Success(fmt.Sprintf("%ss installation complete", label))
	}
	return result.ErrorOrNil()
}

// InstallHooks writes the hook scripts under .claude/hooks, marked executable.
func (i *Installer) InstallHooks(ctx context.Context) error {
	presenter.Section("Installing Hooks")

	hooksDir := filepath.Join(i.claudeDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create hooks directory")
	}

	var result *multierror.Error
	for _, name := range catalog.DefaultHooks() {
		dest := filepath.Join(hooksDir, name+".py")
		if err := os.WriteFile(dest, []byte(catalog.Hook(name)), 0o755); err != nil {
			err = errors.Wrapf(err, "failed to write %s", dest)
			presenter.Error(err, fmt.Sprintf("Failed to install hook '%s'", name))
			result = multierror.Append(result, err)
			continue
		}
		presenter.Success(fmt.Sprintf("Hook created: %s.py", name))
		logger.G(ctx).WithField("hook", name).Debug("hook installed")
	}

	if result.ErrorOrNil() == nil {
		presenter.Success("Hooks installation complete")
	}
	return result.ErrorOrNil()
}

// InstallExamples writes example snippets under examples/claude_patterns in
// the target project.
func (i *Installer) InstallExamples(ctx context.Context) error {
	presenter.Section("Creating Example Implementations")

	examplesDir := filepath.Join(i.target, "examples", "claude_patterns")
	if err := os.MkdirAll(examplesDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create examples directory")
	}

	var result *multierror.Error
	for _, name := range catalog.DefaultExamples() {
		dest := filepath.Join(examplesDir, name+".py")
		if err := os.WriteFile(dest, []byte(catalog.Example(name)), 0o644); err != nil {
			err = errors.Wrapf(err, "failed to write %s", dest)
			presenter.Error(err, fmt.Sprintf("Failed to install example '%s'", name))
			result = multierror.Append(result, err)
			continue
		}
		presenter.Success(fmt.Sprintf("Example created: %s.py", name))
		logger.G(ctx).WithField("example", name).Debug("example installed")
	}

	if result.ErrorOrNil() == nil {
		presenter.Success("Examples installation complete")
	}
	return result.ErrorOrNil()
}

// renderSkillFile emits the installed SKILL.md: frontmatter identifying the
// skill, then the template body.
func renderSkillFile(skill *catalog.SkillTemplate) string {
	desc := skill.Description
	if desc == "" {
		desc = "Skill content to be added"
	}
	return fmt.Sprintf("---\nname: %s\ndescription: %s\n---\n\n%s", skill.Name, desc, skill.Content)
}

// copyPath copies a file or directory tree.
func copyPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return copyFile(src, dst, info.Mode())
	}

	return filepath.Walk(src, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(dst, rel)
		if fi.IsDir() {
			return os.MkdirAll(dest, fi.Mode())
		}
		return copyFile(path, dest, fi.Mode())
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, mode)
}
