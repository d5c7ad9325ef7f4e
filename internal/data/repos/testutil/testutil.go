package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/patchbridge-backend/internal/data/db"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

// Logger returns a logger that discards output so test runs stay quiet.
func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.NewNop()
}

// DB opens a private in-memory sqlite database with the schema migrated.
// Each call gets its own database, so tests may run in parallel.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	svc, err := db.NewService(logger.NewNop(), db.Config{
		Driver:     db.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })
	if err := svc.AutoMigrateAll(); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return svc.DB()
}

// SeededDB is DB loaded with the demo fixtures: author 1 owns books 1-3,
// author 2 owns books 4-7 and author 3 owns none.
func SeededDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	gdb := DB(tb)
	if err := db.Seed(context.Background(), gdb, nil, db.DemoFixtures()); err != nil {
		tb.Fatalf("seed test db: %v", err)
	}
	return gdb
}

// Tx begins a transaction that is rolled back when the test ends.
func Tx(tb testing.TB, gdb *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := gdb.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func PtrUint(v uint) *uint { return &v }
