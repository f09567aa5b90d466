package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/postie/waitlist/config/router"
	"github.com/postie/waitlist/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubCache struct {
	err error
}

func (s stubCache) Ping(context.Context) error { return s.err }

type healthResponse struct {
	Code    int          `json:"code"`
	Data    HealthStatus `json:"data"`
	Message string       `json:"message"`
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "health.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func getHealth(t *testing.T, db *gorm.DB, cache Cache, wantStatus int) healthResponse {
	t.Helper()

	logger := log.NewLogger(io.Discard, slog.LevelError)
	rs := router.CreateRouterService(logger, &router.RouterConfig{RequestTimeout: 5 * time.Second})
	rs.MountController(NewMonitoringControllerFactory(db, logger, cache).CreateController())

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, wantStatus, w.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth_AllDependenciesUp(t *testing.T) {
	resp := getHealth(t, openSQLite(t), stubCache{}, http.StatusOK)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, resp.Data.Database)
	assert.Equal(t, 1, resp.Data.Cache)
	assert.GreaterOrEqual(t, resp.Data.Uptime, 0)
}

func TestHealth_NothingConfigured(t *testing.T) {
	resp := getHealth(t, nil, nil, http.StatusOK)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 0, resp.Data.Database)
	assert.Equal(t, 0, resp.Data.Cache)
}

func TestHealth_FailingDependencies(t *testing.T) {
	db := openSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp := getHealth(t, db, stubCache{err: errors.New("connection refused")}, http.StatusServiceUnavailable)

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "waitlist health check failed", resp.Message)
	assert.Equal(t, 0, resp.Data.Database)
	assert.Equal(t, 0, resp.Data.Cache)
}

func TestHealth_UnreachableCacheAloneDegrades(t *testing.T) {
	resp := getHealth(t, openSQLite(t), stubCache{err: errors.New("connection refused")}, http.StatusServiceUnavailable)

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, 1, resp.Data.Database)
	assert.Equal(t, 0, resp.Data.Cache)
}
