package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the serving store. The handle is shared, read-mostly and
// safe for concurrent use; it is created once at startup and reused across
// requests.
func Connect(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// EnsureIndexes creates the two secondary indexes the planner relies on.
// The index names are configuration: the older deployment called the artist
// index BusquedaGlobal and queries would silently fall back to scans if the
// names drift.
func EnsureIndexes(db *gorm.DB, table, artistIndex, titleIndex string) error {
	stmts := []string{
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %q ON %q (artist)", artistIndex, table),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %q ON %q (clean_title)", titleIndex, table),
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("index creation failed: %w", err)
		}
	}
	return nil
}
