package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store holds the gorm handle and provides access to repositories.
type Store struct {
	db *gorm.DB
}

// Open connects to the database described by driver ("sqlite" or
// "postgres") and dsn, applies driver pragmas, and runs auto-migration.
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(dsn))
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver: %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&Progress{},
		&Attempt{},
		&SentenceCache{},
		&LLMCallLog{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Reset deletes all learner data: progress, attempts, cached sentences
// and call logs. Schema stays in place.
func (s *Store) Reset() error {
	models := []any{&Progress{}, &Attempt{}, &SentenceCache{}, &LLMCallLog{}, &User{}}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range models {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("clear %T: %w", m, err)
			}
		}
		return nil
	})
}

// sqliteDSN appends the connection pragmas for concurrent request
// handling. DSN parameters reach every pooled connection, unlike a
// PRAGMA statement executed on a single one. A dsn that already names
// parameters is taken as-is.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=1&_synchronous=NORMAL"
}

// DefaultDBPath resolves the SQLite database file path in priority order:
// 1. JUMBLE_DB environment variable
// 2. $XDG_DATA_HOME/jumble/jumble.db
// 3. ~/.local/share/jumble/jumble.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("JUMBLE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "jumble", "jumble.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
