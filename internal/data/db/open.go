package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/aicourse-backend/internal/platform/envutil"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

const DefaultDSN = "aicourse.db"

type Config struct {
	DSN string
}

func ConfigFromEnv() Config {
	return Config{DSN: strings.TrimSpace(envutil.String("DATABASE_DSN", DefaultDSN))}
}

// Open connects to postgres when the DSN looks like one and to a sqlite file otherwise,
// then migrates the schema.
func Open(log *logger.Logger, cfg Config) (*gorm.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = DefaultDSN
	}

	var dialector gorm.Dialector
	driver := "sqlite"
	if isPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
		driver = "postgres"
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: gormLogger.New(gormWriter{log: log.With("service", "gorm")}, gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	if err := AutoMigrateAll(db); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", driver, err)
	}
	log.Info("Database ready", "driver", driver)
	return db, nil
}

func isPostgresDSN(dsn string) bool {
	d := strings.ToLower(dsn)
	return strings.HasPrefix(d, "postgres://") ||
		strings.HasPrefix(d, "postgresql://") ||
		strings.Contains(d, "host=")
}

type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.SugaredLogger.Warnf(format, args...)
}
