package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestGetConfigDefaults(t *testing.T) {
	unsetEnv(t, "LOG_LEVEL", "DEBUG", "BROWSER_NAME", "BROWSER_HEADLESS", "LOCATOR_STRATEGY",
		"WAIT_EXPLICIT", "WAIT_POLL_INTERVAL", "TESTS_ENVIRONMENT", "PRODUCTION_URL")

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.AppConfig.LogLevel)
	assert.Equal(t, "chromium", cfg.BrowserConfig.Browser)
	assert.True(t, cfg.BrowserConfig.Headless)
	assert.Equal(t, "xpath", cfg.WaitConfig.LocatorStrategy)
	assert.Equal(t, 10*time.Second, cfg.WaitConfig.Explicit)
	assert.Equal(t, 500*time.Millisecond, cfg.WaitConfig.PollInterval)
	assert.Equal(t, "http://automationpractice.com/", cfg.EnvironmentConfig.BaseURL())
}

func TestGetConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BROWSER_NAME", "firefox")
	t.Setenv("LOCATOR_STRATEGY", "css selector")
	t.Setenv("WAIT_EXPLICIT", "3s")
	t.Setenv("WAIT_POLL_INTERVAL", "50ms")
	t.Setenv("TESTS_ENVIRONMENT", "staging")
	t.Setenv("STAGING_URL", "https://staging.example.com/")

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.AppConfig.LogLevel)
	assert.Equal(t, "firefox", cfg.BrowserConfig.Browser)
	assert.Equal(t, "css selector", cfg.WaitConfig.LocatorStrategy)
	assert.Equal(t, 3*time.Second, cfg.WaitConfig.Explicit)
	assert.Equal(t, 50*time.Millisecond, cfg.WaitConfig.PollInterval)
	assert.Equal(t, "https://staging.example.com/", cfg.EnvironmentConfig.BaseURL())
}

func TestGetConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("WAIT_EXPLICIT", "soon")

	_, err := GetConfig()
	require.Error(t, err)
}

func TestGetConfigRejectsZeroPollInterval(t *testing.T) {
	t.Setenv("WAIT_POLL_INTERVAL", "0s")

	_, err := GetConfig()
	require.Error(t, err)
}

func TestBaseURLFallsBackToProduction(t *testing.T) {
	env := &EnvironmentConfig{TestsEnvironment: "dev", ProductionURL: "https://prod.example.com/"}
	assert.Equal(t, "https://prod.example.com/", env.BaseURL())
}
