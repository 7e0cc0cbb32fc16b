package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"skillsmith/pkg/logger"
	"skillsmith/pkg/presenter"
)

// depsBlock is appended to the target's requirements.txt. The bundled skills
// and examples assume these packages.
var depsBlock = []string{
	"",
	"# Added by skillsmith setup",
	"# Async Kafka",
	"aiokafka>=0.10.0",
	"",
	"# Resilience",
	"tenacity>=8.2.0",
	"pybreaker>=1.0.0",
	"",
	"# Security",
	"python-jose[cryptography]>=3.3.0",
	"slowapi>=0.1.9",
	"",
	"# Observability",
	"structlog>=23.1.0",
	"",
	"# Caching & Idempotency",
	"redis[hiredis]>=5.0.0",
	"",
	"# Testing",
	"pytest-asyncio>=0.21.0",
	"pytest-mock>=3.12.0",
	"faker>=20.0.0",
	"",
	"# Security scanning",
	"bandit>=1.7.5",
	"safety>=2.3.0",
}

// UpdateDependencies appends the dependency block to requirements.txt,
// backing up the existing file first. A missing manifest is created.
func (i *Installer) UpdateDependencies(ctx context.Context) error {
	presenter.Section("Updating Dependencies")

	reqFile := filepath.Join(i.target, "requirements.txt")

	if _, err := os.Stat(reqFile); err == nil {
		if err := i.Backup(reqFile); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(reqFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open requirements.txt")
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(depsBlock, "\n") + "\n"); err != nil {
		return errors.Wrap(err, "failed to append to requirements.txt")
	}

	presenter.Success("Dependencies updated in requirements.txt")
	presenter.Warning("Run: pip install -r requirements.txt")
	logger.G(ctx).WithField("file", reqFile).Debug("dependency manifest patched")
	return nil
}
