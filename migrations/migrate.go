package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

var ErrNilDB = errors.New("db is nil")

// gooseLogger routes goose output through zerolog instead of the std logger.
type gooseLogger struct {
	logger *logger.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug().Str("func", "migrations.Migrate").Msgf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Str("func", "migrations.Migrate").Msgf(format, v...)
}

// Migrate applies the embedded sqlite schema migrations to db.
func Migrate(db *sql.DB, log *logger.Logger) error {
	if db == nil {
		return ErrNilDB
	}
	if log == nil {
		log = logger.Nop()
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{logger: log})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
