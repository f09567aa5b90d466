package waitlistclient

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"WAITLIST_API_URL", "WAITLIST_CONFIRMATION_WINDOW"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.ConfirmationWindow)
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("WAITLIST_API_URL", "https://postie.app")
	t.Setenv("WAITLIST_CONFIRMATION_WINDOW", "5s")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://postie.app", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.ConfirmationWindow)
}

func TestLoadConfigFromEnv_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bad duration":    {"http://localhost:8080", "soon"},
		"zero window":     {"http://localhost:8080", "0s"},
		"missing scheme":  {"localhost:8080", "3s"},
		"unsupported url": {"ftp://postie.app", "3s"},
	}

	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("WAITLIST_API_URL", values[0])
			t.Setenv("WAITLIST_CONFIRMATION_WINDOW", values[1])

			_, err := LoadConfigFromEnv()
			assert.Error(t, err)
		})
	}
}
