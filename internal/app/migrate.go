package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/football-club/internal/config"
	"github.com/riskibarqy/football-club/internal/platform/logging"
)

// ErrUsage reports a migration command line that could not be understood.
var ErrUsage = errors.New("invalid migration command")

// MigrationCommand is one parsed invocation of the migration tool.
type MigrationCommand struct {
	Name    string
	Steps   int
	Version int
	Target  uint
}

func ParseMigrationCommand(args []string) (MigrationCommand, error) {
	if len(args) == 0 {
		return MigrationCommand{}, crerr.Mark(crerr.New("missing command"), ErrUsage)
	}

	cmd := MigrationCommand{Name: strings.ToLower(strings.TrimSpace(args[0]))}
	rest := args[1:]
	switch cmd.Name {
	case "up", "version":
		return cmd, nil
	case "down":
		steps, err := parseSteps(rest)
		if err != nil {
			return MigrationCommand{}, crerr.Mark(err, ErrUsage)
		}
		cmd.Steps = steps
	case "force":
		if len(rest) == 0 {
			return MigrationCommand{}, crerr.Mark(crerr.New("force requires a version argument"), ErrUsage)
		}
		version, err := parseVersion(rest[0])
		if err != nil {
			return MigrationCommand{}, crerr.Mark(err, ErrUsage)
		}
		cmd.Version = version
	case "goto", "migrate":
		if len(rest) == 0 {
			return MigrationCommand{}, crerr.Mark(crerr.New("goto requires a target version argument"), ErrUsage)
		}
		target, err := parseTarget(rest[0])
		if err != nil {
			return MigrationCommand{}, crerr.Mark(err, ErrUsage)
		}
		cmd.Name = "goto"
		cmd.Target = target
	default:
		return MigrationCommand{}, crerr.Mark(crerr.Newf("unknown command %q", args[0]), ErrUsage)
	}

	return cmd, nil
}

// RunMigration applies cmd against cfg.DBURL using the SQL files under the
// migrations directory.
func RunMigration(cfg config.Config, cmd MigrationCommand, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.DBURL) == "" {
		return crerr.New("DB_URL is required")
	}

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		return crerr.Wrap(err, "resolve migrations dir")
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, postgresDSN(cfg))
	if err != nil {
		return crerr.Wrap(err, "create migrator")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("close migration source failed", "error", srcErr)
		}
		if dbErr != nil {
			logger.Warn("close migration db failed", "error", dbErr)
		}
	}()

	switch cmd.Name {
	case "up":
		if err := ignoreNoChange(m.Up(), logger); err != nil {
			return crerr.Wrap(err, "apply migrations")
		}
		logger.Info("migrations applied", "source", sourceURL)
	case "down":
		if err := ignoreNoChange(m.Steps(-cmd.Steps), logger); err != nil {
			return crerr.Wrapf(err, "roll back %d migration(s)", cmd.Steps)
		}
		logger.Info("migrations rolled back", "steps", cmd.Steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("migration version", "version", "none", "dirty", false)
			return nil
		}
		if err != nil {
			return crerr.Wrap(err, "read version")
		}
		logger.Info("migration version", "version", version, "dirty", dirty)
	case "force":
		if err := m.Force(cmd.Version); err != nil {
			return crerr.Wrapf(err, "force version %d", cmd.Version)
		}
		logger.Info("migration version forced", "version", cmd.Version)
	case "goto":
		if err := ignoreNoChange(m.Migrate(cmd.Target), logger); err != nil {
			return crerr.Wrapf(err, "migrate to version %d", cmd.Target)
		}
		logger.Info("migrated", "version", cmd.Target)
	default:
		return crerr.Mark(crerr.Newf("unknown command %q", cmd.Name), ErrUsage)
	}

	return nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}

	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	if value > int64(^uint(0)>>1) {
		return 0, fmt.Errorf("version is too large for this platform")
	}

	return int(value), nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}
