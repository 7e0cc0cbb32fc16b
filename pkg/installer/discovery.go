package installer

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// InstalledSkill describes a skill found under a project's .claude/skills.
type InstalledSkill struct {
	Name        string
	Description string
	Directory   string
}

// InstalledSkills scans a target project for installed skills by parsing the
// frontmatter of each SKILL.md. Directories without a parseable SKILL.md are
// skipped. Results are sorted by name.
func InstalledSkills(target string) ([]InstalledSkill, error) {
	skillsDir := filepath.Join(target, ".claude", "skills")

	entries, err := os.ReadDir(skillsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read skills directory %s", skillsDir)
	}

	var installed []InstalledSkill
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(skillsDir, entry.Name())
		skill, err := loadInstalledSkill(filepath.Join(dir, "SKILL.md"))
		if err != nil {
			continue
		}

		skill.Directory = dir
		installed = append(installed, *skill)
	}

	sort.Slice(installed, func(a, b int) bool {
		return installed[a].Name < installed[b].Name
	})
	return installed, nil
}

// loadInstalledSkill parses a SKILL.md frontmatter block.
func loadInstalledSkill(path string) (*InstalledSkill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)
	if name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}

	return &InstalledSkill{Name: name, Description: description}, nil
}
