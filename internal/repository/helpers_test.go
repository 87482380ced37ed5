package repository

import (
	"testing"

	"Repokit/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every connection to :memory: opens a fresh database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Box{}, &models.Item{}, &models.Label{}))
	return db
}

// countInserts counts INSERT statements issued through db from now on.
func countInserts(t *testing.T, db *gorm.DB) *int {
	t.Helper()
	count := new(int)
	err := db.Callback().Create().After("gorm:create").Register("test:count_inserts", func(tx *gorm.DB) {
		if tx.Error == nil {
			*count++
		}
	})
	require.NoError(t, err)
	return count
}

func testOptions() Options {
	return Options{Retry: RetryPolicy{MaxRetries: -1}}
}

func actor(id int64) *int64 {
	return &id
}

func newBoxes(names ...string) []*models.Box {
	boxes := make([]*models.Box, 0, len(names))
	for _, name := range names {
		boxes = append(boxes, &models.Box{Name: name})
	}
	return boxes
}
