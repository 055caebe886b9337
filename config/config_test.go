package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snag/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAppliesDefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	conf, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", conf.Log.Level)
	assert.Equal(t, "pretty", conf.Log.Format)
	assert.Equal(t, "https://api.audius.co", conf.API.BaseURL)
	assert.Equal(t, "snag_cli", conf.API.AppName)
	assert.Equal(t, 50, conf.API.PageLimit)
	assert.Equal(t, 3, conf.Fetcher.Attempts)
	assert.Equal(t, 1, conf.Fetcher.BaseDelaySecs)
	assert.Equal(t, 10, conf.Fetcher.TimeoutSecs)
	assert.Equal(t, 6, conf.Archive.CompressionLevel)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
log:
  level: debug
api:
  page_limit: 25
fetcher:
  attempts: 5
`)

	conf, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", conf.Log.Level)
	assert.Equal(t, "pretty", conf.Log.Format)
	assert.Equal(t, 25, conf.API.PageLimit)
	assert.Equal(t, 5, conf.Fetcher.Attempts)
	assert.Equal(t, 10, conf.Fetcher.TimeoutSecs)
}

func TestLoadEnvOverridesBaseURL(t *testing.T) {
	t.Setenv("SNAG_API_BASE_URL", "http://localhost:9999")

	conf, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", conf.API.BaseURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "BadLogLevel", content: "log:\n  level: verbose\n"},
		{name: "BadLogFormat", content: "log:\n  format: xml\n"},
		{name: "NonHTTPBaseURL", content: "api:\n  base_url: ftp://api.audius.co\n"},
		{name: "PageLimitOutOfRange", content: "api:\n  page_limit: 501\n"},
		{name: "NegativeAttempts", content: "fetcher:\n  attempts: -1\n"},
		{name: "CompressionLevelOutOfRange", content: "archive:\n  compression_level: 12\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfigFile(t, tt.content)
			_, err := config.Load(path)
			require.Error(t, err)
			assert.ErrorContains(t, err, "config validation failed")
		})
	}
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "does not exist")
}
