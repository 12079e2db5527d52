// Package testutil opens isolated in-memory databases for package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"skilllink/internal/database"
)

var seq atomic.Int64

// DB returns a fresh shared-cache SQLite database migrated with models.
func DB(t testing.TB, models ...any) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := database.ConnectWith(dsn, database.Options{Silent: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection keeps the memory database alive and avoids
	// shared-cache table locks between pooled connections.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrate(t, db, models)
	return db
}

// FileDB returns a SQLite database in a temporary file with a regular
// connection pool, for tests that exercise concurrent writers.
func FileDB(t testing.TB, models ...any) *gorm.DB {
	t.Helper()
	db, err := database.ConnectWith(filepath.Join(t.TempDir(), "test.db"), database.Options{Silent: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrate(t, db, models)
	return db
}

func migrate(t testing.TB, db *gorm.DB, models []any) {
	t.Helper()
	if len(models) == 0 {
		return
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}
