package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrateUp applies the archive schema in filename order.
func MigrateUp(db *sql.DB) error {
	return runMigrations(db, "up", false)
}

// MigrateDown tears the schema back down, newest migration first.
func MigrateDown(db *sql.DB) error {
	return runMigrations(db, "down", true)
}

func runMigrations(db *sql.DB, direction string, reverse bool) error {
	names, err := fs.Glob(migrationFS, fmt.Sprintf("migrations/*.%s.sql", direction))
	if err != nil {
		return fmt.Errorf("glob %s migrations: %w", direction, err)
	}
	sort.Strings(names)
	if reverse {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	for _, name := range names {
		stmt, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(stmt)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
