package config

import (
	"path/filepath"
	"testing"

	"github.com/postie/waitlist/internal/models"
	"github.com/postie/waitlist/pkg/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeEnv(t *testing.T) {
	assert.Equal(t, "value", sanitizeEnv(`  "value" `))
	assert.Equal(t, "value", sanitizeEnv(`'value'`))
	assert.Equal(t, `"value'`, sanitizeEnv(`"value'`))
	assert.Equal(t, "", sanitizeEnv("   "))
}

func TestGetDatabaseDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	assert.Equal(t, migrations.DriverPostgres, GetDatabaseDriver())

	t.Setenv("DB_DRIVER", " SQLite ")
	assert.Equal(t, migrations.DriverSQLite, GetDatabaseDriver())
}

func TestBuildPostgresDSN(t *testing.T) {
	logger := quietLogger()
	cfg := &DBConfig{SSLMode: "require"}

	dsn, err := buildPostgresDSN("postgres://u:p@db:5432/waitlist", logger, cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/waitlist", dsn)

	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_USER", "postie")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB_NAME", "waitlist")
	t.Setenv("POSTGRES_SSLMODE", "")

	dsn, err = buildPostgresDSN("", logger, cfg)
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=postie password=secret dbname=waitlist sslmode=require", dsn)

	t.Setenv("POSTGRES_PORT", "not-a-port")
	_, err = buildPostgresDSN("", logger, cfg)
	assert.Error(t, err)

	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("POSTGRES_PORT", "")
	_, err = buildPostgresDSN("", logger, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_HOST")
	assert.Contains(t, err.Error(), "POSTGRES_PORT")
}

func TestNewDatabase_SQLite(t *testing.T) {
	t.Setenv("OTEL_TRACES_ENABLED", "false")
	logger := quietLogger()

	db, err := NewDatabase(logger, &DBConfig{
		Driver:     migrations.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "waitlist.db"),
	})
	require.NoError(t, err)
	defer CloseDatabase(db, logger)

	require.NoError(t, AutoMigrate(logger, db, models.ModelRegistry...))
	assert.True(t, db.Migrator().HasTable("waitlist"))
}

func TestNewDatabase_Errors(t *testing.T) {
	logger := quietLogger()

	_, err := NewDatabase(logger, &DBConfig{Driver: migrations.DriverSQLite})
	assert.Error(t, err)

	_, err = NewDatabase(logger, &DBConfig{Driver: "mysql"})
	assert.Error(t, err)

	assert.Error(t, AutoMigrate(logger, nil))
}
