package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/yashodhanketkar/citenote/internal/database"
	"github.com/yashodhanketkar/citenote/internal/store"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig(zap.NewNop()))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// one connection keeps the shared in-memory database alive and serializes access
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewStore wraps a fresh test database in a Store.
func NewStore(t testing.TB) *store.Store {
	t.Helper()
	return store.New(NewDB(t), 5*time.Second)
}
