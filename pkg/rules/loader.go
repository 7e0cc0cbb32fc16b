package rules

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// RulesFileName is the activation rules file written under .claude/skills.
const RulesFileName = "skill-rules.json"

// RulesPath returns the conventional location of skill-rules.json under a
// project root.
func RulesPath(root string) string {
	return filepath.Join(root, ".claude", "skills", RulesFileName)
}

// Load reads activation rules from the conventional location under root.
// An absent file is not an error and yields zero rules. Rules without a name
// are dropped at load time.
func Load(root string) ([]Rule, error) {
	return LoadFile(RulesPath(root))
}

// LoadFile reads activation rules from an explicit path.
func LoadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read rules file %s", path)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "failed to parse rules file %s", path)
	}

	rules := make([]Rule, 0, len(file.Skills))
	for _, r := range file.Skills {
		if r.Name == "" {
			continue
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Save writes a rules file with stable two-space indentation.
func Save(path string, file *File) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal rules file")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write rules file %s", path)
	}
	return nil
}

// ReadFile loads the full rules file, returning an empty skeleton when the
// file does not exist so callers can merge into it.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{
				Version:     "1.0",
				Description: "Skill activation rules - auto-generated",
			}, nil
		}
		return nil, errors.Wrapf(err, "failed to read rules file %s", path)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "failed to parse rules file %s", path)
	}
	return &file, nil
}
