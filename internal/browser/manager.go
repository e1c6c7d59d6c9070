package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"web-ui-harness/internal/config"
	"web-ui-harness/internal/entity"
	"web-ui-harness/internal/ports"
	"web-ui-harness/pkg/apperr"
	"web-ui-harness/pkg/logg"
	"web-ui-harness/pkg/tracing"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	browserManagerName = "BrowserManager"
	browserTracer      = "browser.manager"
)

var (
	_ ports.Driver  = (*Manager)(nil)
	_ ports.Session = (*Manager)(nil)
)

// Manager owns the playwright session and implements ports.Driver on top of
// it. Element handles handed out to callers are registered under opaque
// ids and stay valid until the page they came from navigates, is closed or
// the session ends.
type Manager struct {
	config         *config.Config
	logger         *zap.Logger
	tracer         trace.Tracer
	playwright     *playwright.Playwright
	browser        playwright.Browser
	browserContext playwright.BrowserContext
	page           playwright.Page
	ready          bool

	handles *handleRegistry
}

type Params struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func NewManager(params Params) *Manager {
	return &Manager{
		config:  params.Config,
		logger:  params.Logger.With(zap.String(logg.Layer, browserManagerName)),
		tracer:  otel.Tracer(browserTracer),
		ready:   false,
		handles: newHandleRegistry(),
	}
}

// Launch starts playwright, a browser and a context with one page. It does
// nothing while a session is already running.
func (m *Manager) Launch(ctx context.Context) (err error) {
	const op = "Launch"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op,
		attribute.String("browser", m.config.BrowserConfig.Browser))
	defer func() {
		step.End(err)
	}()

	if m.ready {
		return nil
	}

	logger.Info("Launching browser...", zap.String("browser", m.config.BrowserConfig.Browser))

	if m.config.BrowserConfig.InstallDrivers {
		step.AddEvent("installing playwright")

		err = playwright.Install(&playwright.RunOptions{
			Browsers: []string{installName(m.config.BrowserConfig.Browser)},
		})
		if err != nil {
			return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
				apperr.MetaReason: "playwright_install_failed",
				apperr.MetaStage:  apperr.StageBrowser,
			})
		}
	}

	step.AddEvent("starting playwright")

	pw, err := playwright.Run()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_start_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.playwright = pw

	return m.launchNew(ctx)
}

func (m *Manager) launchNew(ctx context.Context) (err error) {
	const op = "launchNew"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	browserType, browserOptions, err := m.browserType()
	if err != nil {
		return apperr.InvalidReqError(op, "BROWSER_NAME", err)
	}

	browser, err := browserType.Launch(browserOptions)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "browser_launch_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.browser = browser

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.config.BrowserConfig.ViewportWidth,
			Height: m.config.BrowserConfig.ViewportHeight,
		},
		AcceptDownloads:   playwright.Bool(true),
		JavaScriptEnabled: playwright.Bool(true),
	}

	browserContext, err := browser.NewContext(contextOptions)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "context_create_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	browserContext.SetDefaultTimeout(milliseconds(m.config.WaitConfig.Implicit))
	browserContext.SetDefaultNavigationTimeout(milliseconds(m.config.BrowserConfig.NavigationTimeout))
	m.browserContext = browserContext

	page, err := browserContext.NewPage()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "page_create_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.page = page

	m.ready = true
	logger.Info("Browser launched successfully")

	return nil
}

func (m *Manager) browserType() (playwright.BrowserType, playwright.BrowserTypeLaunchOptions, error) {
	options := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.config.BrowserConfig.Headless),
		SlowMo:   playwright.Float(float64(m.config.BrowserConfig.SlowMo)),
	}

	switch name := m.config.BrowserConfig.Browser; name {
	case "chromium":
		return m.playwright.Chromium, options, nil
	case "chrome", "msedge":
		options.Channel = playwright.String(name)
		return m.playwright.Chromium, options, nil
	case "firefox":
		return m.playwright.Firefox, options, nil
	case "webkit":
		return m.playwright.WebKit, options, nil
	default:
		return nil, options, fmt.Errorf("unsupported browser %q", name)
	}
}

func installName(browser string) string {
	switch browser {
	case "firefox", "webkit":
		return browser
	default:
		return "chromium"
	}
}

// Close ends the session and forgets every element id. A later Launch
// starts a fresh one.
func (m *Manager) Close(ctx context.Context) (err error) {
	const op = "Close"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Closing browser...")

	m.ready = false
	m.handles.reset()

	if m.browserContext != nil {
		if err := m.browserContext.Close(); err != nil {
			logger.Warn("Failed to close context", zap.Error(err))
		}
	}

	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			logger.Warn("Failed to close browser", zap.Error(err))
		}
	}

	pw := m.playwright
	m.playwright, m.browser, m.browserContext, m.page = nil, nil, nil, nil

	if pw != nil {
		if err := pw.Stop(); err != nil {
			return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
				apperr.MetaReason: "playwright_stop_failed",
			})
		}
	}

	logger.Info("Browser closed")

	return nil
}

func (m *Manager) IsReady() bool {
	return m.ready
}

func (m *Manager) ensurePageActive() error {
	if m.browserContext == nil {
		return fmt.Errorf("browser context is nil")
	}

	if m.page != nil && !m.page.IsClosed() {
		return nil
	}

	m.logger.Info("Page closed, reconnecting to active page...")

	for _, p := range m.browserContext.Pages() {
		if !p.IsClosed() {
			m.page = p
			m.logger.Info("Reconnected to existing page")

			return nil
		}
	}

	m.logger.Info("No active pages found, creating new page...")

	page, err := m.browserContext.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create new page: %w", err)
	}

	m.page = page
	m.logger.Info("Created new page")

	return nil
}

// checkReady is the common guard of every page-level operation.
func (m *Manager) checkReady(op string) error {
	if !m.ready {
		return apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	if err := m.ensurePageActive(); err != nil {
		return apperr.Wrap(op, apperr.CodeBrowserNotReady, err, map[string]any{
			apperr.MetaReason: "page_not_active",
		})
	}

	return nil
}

func (m *Manager) Navigate(ctx context.Context, url string) (err error) {
	const op = "Navigate"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, url))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("url", url))
	defer func() {
		step.End(err)
	}()

	if err := m.checkReady(op); err != nil {
		return err
	}

	m.releasePage(logger, m.page)
	step.AddEvent("navigating to URL")

	_, err = m.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "goto_failed",
			apperr.MetaStage:  apperr.StageNavigation,
			apperr.MetaURL:    url,
		})
	}

	step.AddEvent("navigation completed")

	return nil
}

func (m *Manager) CurrentURL(ctx context.Context) (string, error) {
	const op = "CurrentURL"

	if err := m.checkReady(op); err != nil {
		return "", err
	}

	return m.page.URL(), nil
}

func (m *Manager) Refresh(ctx context.Context) (err error) {
	const op = "Refresh"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.checkReady(op); err != nil {
		return err
	}

	m.releasePage(logger, m.page)

	if _, err = m.page.Reload(); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "reload_failed",
			apperr.MetaStage:  apperr.StageNavigation,
		})
	}

	return nil
}

func (m *Manager) GoBack(ctx context.Context) (err error) {
	const op = "GoBack"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.checkReady(op); err != nil {
		return err
	}

	m.releasePage(logger, m.page)

	if _, err = m.page.GoBack(); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "go_back_failed",
			apperr.MetaStage:  apperr.StageNavigation,
		})
	}

	return nil
}

// ExecuteScript evaluates script as the body of a function whose arguments
// are args. Element ids among args are passed to the page as their DOM
// nodes.
func (m *Manager) ExecuteScript(ctx context.Context, script string, args ...any) (result any, err error) {
	const op = "ExecuteScript"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.Int("args", len(args)))
	defer func() {
		step.End(err)
	}()

	if err := m.checkReady(op); err != nil {
		return nil, err
	}

	resolved := make([]any, len(args))
	for i, arg := range args {
		id, ok := arg.(entity.ElementID)
		if !ok {
			resolved[i] = arg
			continue
		}

		handle, err := m.handle(op, id)
		if err != nil {
			return nil, err
		}
		resolved[i] = handle
	}

	expression := fmt.Sprintf("(args) => (function() {\n%s\n}).apply(null, args)", script)

	result, err = m.page.Evaluate(expression, resolved)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "evaluate_failed",
			apperr.MetaStage:  apperr.StageScript,
		})
	}

	return result, nil
}

func (m *Manager) PressKey(ctx context.Context, key string) (err error) {
	const op = "PressKey"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("key", key))
	defer func() {
		step.End(err)
	}()

	if err := m.checkReady(op); err != nil {
		return err
	}

	if err = m.page.Keyboard().Press(key); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "press_failed",
			apperr.MetaStage:  apperr.StageInteraction,
		})
	}

	return nil
}

func (m *Manager) Screenshot(ctx context.Context, path string) (err error) {
	const op = "Screenshot"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("path", path))
	defer func() {
		step.End(err)
	}()

	if err := m.checkReady(op); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "mkdir_failed",
			apperr.MetaStage:  apperr.StageScreenshot,
		})
	}

	_, err = m.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(false),
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "screenshot_failed",
			apperr.MetaStage:  apperr.StageScreenshot,
		})
	}

	logger.Info("Screenshot saved", zap.String("path", path))

	return nil
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
