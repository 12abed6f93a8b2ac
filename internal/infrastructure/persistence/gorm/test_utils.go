package gorm

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, NewMigrator(db, zap.NewNop()).Migrate())

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}
