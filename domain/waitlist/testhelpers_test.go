package waitlist

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/postie/waitlist/internal/log"
	"github.com/postie/waitlist/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestLogger() *log.Logger {
	return log.NewLogger(io.Discard, slog.LevelError)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "waitlist.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.WaitlistEntry{}))
	return db
}

func mustParseEmail(t *testing.T, raw string) EmailAddress {
	t.Helper()
	email, err := ParseEmailAddress(raw)
	require.NoError(t, err)
	return email
}

func countEntries(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.WaitlistEntry{}).Count(&n).Error)
	return n
}
