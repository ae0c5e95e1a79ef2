package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv_OverridesOnlySetVariables(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("RATE_LIMIT_RPS", "7")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 7, cfg.RateLimitRPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)

	assert.Equal(t, ":3333", cfg.EndpointAddrHTTP)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, "diary", cfg.S3Bucket)
}

func Test_parseEnv_LoadsDotEnvFromFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LIFEBOARD_UNUSED=1\nS3_BUCKET=from-dotenv\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("S3_BUCKET")
		_ = os.Unsetenv("LIFEBOARD_UNUSED")
	})

	os.Args = []string{"testbin", "-env", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "from-dotenv", cfg.S3Bucket)
}

func Test_parseEnv_MissingDotEnvPanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "absent.env")}

	require.Panics(t, func() { parseEnv(&Config{}) })
}
