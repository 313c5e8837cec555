package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "MAX_CONCURRENT", "REQUEST_TIMEOUT", "MAX_BODY_BYTES", "THEME_FILE", "DEFAULT_LOCALE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)

	cfg := Load()
	require.Equal(t, &Config{
		Port:           "8080",
		MaxConcurrent:  8,
		RequestTimeout: 30 * time.Second,
		MaxBodyBytes:   10 << 20,
		DefaultLocale:  "vi",
	}, cfg)
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_CONCURRENT", "2")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("THEME_FILE", "/etc/scribe/theme.yaml")
	t.Setenv("DEFAULT_LOCALE", "en")

	cfg := Load()
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 2, cfg.MaxConcurrent)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, "/etc/scribe/theme.yaml", cfg.ThemeFile)
	require.Equal(t, "en", cfg.DefaultLocale)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)
	t.Setenv("MAX_CONCURRENT", "many")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("MAX_BODY_BYTES", "-1")

	cfg := Load()
	require.Equal(t, 8, cfg.MaxConcurrent)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DEFAULT_LOCALE=en\nMAX_CONCURRENT=3\n"), 0o600))
	t.Setenv("MAX_CONCURRENT", "4")

	cfg := Load()
	require.Equal(t, "en", cfg.DefaultLocale)
	require.Equal(t, 4, cfg.MaxConcurrent)
}
