package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppConfig         *AppConfig
	BrowserConfig     *BrowserConfig
	WaitConfig        *WaitConfig
	EnvironmentConfig *EnvironmentConfig
}

type AppConfig struct {
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	Debug         bool   `envconfig:"DEBUG" default:"false"`
	LogFile       string `envconfig:"LOG_FILE"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"20"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
	TraceFile     string `envconfig:"TRACE_FILE"`
	ScreenshotDir string `envconfig:"SCREENSHOT_DIR" default:"./screenshots"`
}

type BrowserConfig struct {
	Browser           string        `envconfig:"BROWSER_NAME" default:"chromium"`
	Headless          bool          `envconfig:"BROWSER_HEADLESS" default:"true"`
	SlowMo            int           `envconfig:"BROWSER_SLOW_MO" default:"0"`
	NavigationTimeout time.Duration `envconfig:"BROWSER_NAVIGATION_TIMEOUT" default:"30s"`
	ViewportWidth     int           `envconfig:"BROWSER_VIEWPORT_WIDTH" default:"1920"`
	ViewportHeight    int           `envconfig:"BROWSER_VIEWPORT_HEIGHT" default:"1080"`
	InstallDrivers    bool          `envconfig:"BROWSER_INSTALL" default:"false"`
}

type WaitConfig struct {
	LocatorStrategy string        `envconfig:"LOCATOR_STRATEGY" default:"xpath"`
	Explicit        time.Duration `envconfig:"WAIT_EXPLICIT" default:"10s"`
	Implicit        time.Duration `envconfig:"WAIT_IMPLICIT" default:"5s"`
	PollInterval    time.Duration `envconfig:"WAIT_POLL_INTERVAL" default:"500ms"`
}

type EnvironmentConfig struct {
	TestsEnvironment string `envconfig:"TESTS_ENVIRONMENT" default:"production"`
	ProductionURL    string `envconfig:"PRODUCTION_URL" default:"http://automationpractice.com/"`
	StagingURL       string `envconfig:"STAGING_URL"`
	DevURL           string `envconfig:"DEV_URL"`
}

func GetConfig() (*Config, error) {
	_ = godotenv.Load()

	var conf Config

	if err := envconfig.Process("", &conf); err != nil {
		return nil, fmt.Errorf("read config from env vars: %w", err)
	}

	if conf.WaitConfig.PollInterval <= 0 {
		return nil, fmt.Errorf("read config from env vars: WAIT_POLL_INTERVAL must be positive, got %s", conf.WaitConfig.PollInterval)
	}

	return &conf, nil
}

// BaseURL returns the entry URL of the environment selected by
// TESTS_ENVIRONMENT, falling back to production.
func (c *EnvironmentConfig) BaseURL() string {
	switch c.TestsEnvironment {
	case "staging":
		if c.StagingURL != "" {
			return c.StagingURL
		}
	case "dev":
		if c.DevURL != "" {
			return c.DevURL
		}
	}

	return c.ProductionURL
}
