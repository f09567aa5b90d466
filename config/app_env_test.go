package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAutoMigrateAllowed(t *testing.T) {
	tests := []struct {
		appEnv  string
		allowed bool
	}{
		{appEnv: "", allowed: true},
		{appEnv: "dev", allowed: true},
		{appEnv: "development", allowed: true},
		{appEnv: "local", allowed: true},
		{appEnv: "test", allowed: true},
		{appEnv: "testing", allowed: true},
		{appEnv: "DEV", allowed: true},
		{appEnv: "  Local  ", allowed: true},
		{appEnv: "prod", allowed: false},
		{appEnv: "production", allowed: false},
		{appEnv: " Production ", allowed: false},
		{appEnv: "staging", allowed: false},
		{appEnv: "qa", allowed: false},
	}

	for _, tt := range tests {
		t.Run("env="+tt.appEnv, func(t *testing.T) {
			err := ValidateAutoMigrateAllowed(tt.appEnv)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "--auto-migrate")
		})
	}
}

func TestGetAppEnv_Normalizes(t *testing.T) {
	t.Setenv(AppEnvKey, "  Staging ")
	assert.Equal(t, "staging", GetAppEnv())
}

func TestGetValueFromEnvironmentVariable(t *testing.T) {
	t.Setenv("WAITLIST_TEST_SET", "")
	assert.Equal(t, "", GetValueFromEnvironmentVariable("WAITLIST_TEST_SET", "fallback"))
	assert.Equal(t, "fallback", GetValueFromEnvironmentVariable("WAITLIST_TEST_UNSET_KEY", "fallback"))
}

func TestInitializeEnvFile_LoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WAITLIST_STORE_FROM_DOTENV=redis\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("SKIP_DOTENV", "false")
	t.Setenv("WAITLIST_STORE_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("WAITLIST_STORE_FROM_DOTENV"))

	InitializeEnvFile(quietLogger())

	assert.Equal(t, "redis", os.Getenv("WAITLIST_STORE_FROM_DOTENV"))
}

func TestInitializeEnvFile_SkipDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WAITLIST_SKIPPED_KEY=loaded\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("SKIP_DOTENV", "true")
	t.Setenv("WAITLIST_SKIPPED_KEY", "")
	require.NoError(t, os.Unsetenv("WAITLIST_SKIPPED_KEY"))

	InitializeEnvFile(quietLogger())

	_, ok := os.LookupEnv("WAITLIST_SKIPPED_KEY")
	assert.False(t, ok)
}
