package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"skillsmith/pkg/logger"
	"skillsmith/pkg/presenter"
)

const readmeTemplate = `# Agent Infrastructure

This directory contains agent infrastructure for your project, installed by
skillsmith.

## Installation Date
%s

## Components Installed

### Skills
Custom skills for FastAPI, webhooks, and microservices patterns. Skills
activate automatically based on your prompts and the files you are editing,
driven by skills/skill-rules.json.

### Agents
Specialized agents for security, optimization, and validation.

### Commands
Slash commands for common operations:
- /check-prod-readiness - Check production readiness
- /kafka-health - Check Kafka health
- /webhook-test - Generate webhook tests
- /security-scan - Run security scans
- /migrate-pydantic-v2 - Migrate to Pydantic v2

### Hooks
Automated hooks for quality assurance and validation. The
skill-activation-prompt hook forwards each prompt to skillsmith suggest.

## Examples

Example implementations are available in examples/claude_patterns/.

## Backup

Files overwritten during setup are backed up in .claude_backup/.

## Next Steps

1. Review the skills in .claude/skills/
2. Install dependencies: pip install -r requirements.txt
3. Test with: "I need to add webhook signature verification"
4. Review examples in examples/claude_patterns/
`

// WriteReadme writes the setup README under .claude.
func (i *Installer) WriteReadme(ctx context.Context) error {
	path := filepath.Join(i.claudeDir, "README.md")
	content := fmt.Sprintf(readmeTemplate, time.Now().Format("2006-01-02 15:04:05"))

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	presenter.Success(fmt.Sprintf("README created at: %s", path))
	logger.G(ctx).WithField("file", path).Debug("readme written")
	return nil
}
