// Package pages holds the page objects step definitions talk to. Base
// carries the verbs every page shares; concrete pages embed it and add a
// catalog of locators.
package pages

import (
	"context"
	"fmt"
	"net/url"
	"time"
	"web-ui-harness/internal/config"
	"web-ui-harness/internal/element"
	"web-ui-harness/internal/entity"
	"web-ui-harness/internal/ports"
	"web-ui-harness/internal/wait"
	"web-ui-harness/pkg/apperr"
	"web-ui-harness/pkg/logg"
	"web-ui-harness/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	baseName   = "BasePage"
	baseTracer = "pages.base"

	emptyValue = "empty"

	scrollToScript       = "window.scrollTo(0, arguments[0]);"
	scrollToBottomScript = "window.scrollTo(0, document.body.scrollHeight);"
	scrollByScript       = "window.scrollBy(0, arguments[0]); return window.scrollY;"
)

type Base struct {
	driver   ports.Driver
	resolver *element.Resolver
	poller   *wait.Poller
	strategy entity.Strategy
	logger   *zap.Logger
	tracer   trace.Tracer
}

type Params struct {
	fx.In

	Config   *config.Config
	Resolver *element.Resolver
	Poller   *wait.Poller
	Logger   *zap.Logger
}

func NewBase(params Params) (*Base, error) {
	const op = "NewBase"

	strategy, err := entity.ParseStrategy(params.Config.WaitConfig.LocatorStrategy)
	if err != nil {
		return nil, apperr.InvalidReqError(op, "LOCATOR_STRATEGY", err)
	}

	return &Base{
		driver:   params.Poller.Driver(),
		resolver: params.Resolver,
		poller:   params.Poller,
		strategy: strategy,
		logger:   params.Logger.With(zap.String(logg.Layer, baseName)),
		tracer:   otel.Tracer(baseTracer),
	}, nil
}

// Locate builds a locator with the configured default strategy.
func (b *Base) Locate(expression string) entity.Locator {
	return entity.Locator{Strategy: b.strategy, Expression: expression}
}

func (b *Base) Resolver() *element.Resolver {
	return b.resolver
}

// Element resolves expression with the default strategy.
func (b *Base) Element(ctx context.Context, expression string, opts ...element.Option) (*element.Element, error) {
	return b.resolver.Element(ctx, b.Locate(expression), opts...)
}

func (b *Base) Elements(ctx context.Context, expression string, opts ...element.Option) (*element.List, error) {
	return b.resolver.Elements(ctx, b.Locate(expression), opts...)
}

// ElementByXPathText resolves the element matched by partialXPath whose own
// text contains text. It tells apart elements that share one locator.
func (b *Base) ElementByXPathText(ctx context.Context, partialXPath, text string, opts ...element.Option) (*element.Element, error) {
	locator := entity.ByXPath(fmt.Sprintf("%s[contains(text(), %s)]", partialXPath, entity.XPathLiteral(text)))

	return b.resolver.Element(ctx, locator, opts...)
}

// Open navigates to rawURL and returns it.
func (b *Base) Open(ctx context.Context, rawURL string) (_ string, err error) {
	const op = "Open"
	logger := b.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, rawURL))

	ctx, step := tracing.StartSpan(ctx, b.tracer, logger, op, attribute.String("url", rawURL))
	defer func() {
		step.End(err)
	}()

	if err = b.driver.Navigate(ctx, rawURL); err != nil {
		return "", apperr.Wrap(op, apperr.CodeOf(err), err, map[string]any{
			apperr.MetaStage: apperr.StageNavigation,
			apperr.MetaURL:   rawURL,
		})
	}

	logger.Info("Page opened")

	return rawURL, nil
}

func (b *Base) Refresh(ctx context.Context) error {
	const op = "Refresh"

	return b.wrap(op, apperr.StageNavigation, b.driver.Refresh(ctx))
}

// Back presses the browser back button.
func (b *Base) Back(ctx context.Context) error {
	const op = "Back"

	return b.wrap(op, apperr.StageNavigation, b.driver.GoBack(ctx))
}

func (b *Base) URL(ctx context.Context) (string, error) {
	const op = "URL"

	current, err := b.driver.CurrentURL(ctx)

	return current, b.wrap(op, apperr.StageNavigation, err)
}

// ParseURL splits the current URL into its components.
func (b *Base) ParseURL(ctx context.Context) (*url.URL, error) {
	const op = "ParseURL"

	current, err := b.URL(ctx)
	if err != nil {
		return nil, err
	}

	parsed, err := url.Parse(current)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeParseFailed, err, map[string]any{
			apperr.MetaURL: current,
		})
	}

	return parsed, nil
}

// Netloc returns the host, with port if any, of the current URL.
func (b *Base) Netloc(ctx context.Context) (string, error) {
	parsed, err := b.ParseURL(ctx)
	if err != nil {
		return "", err
	}

	return parsed.Host, nil
}

// NetlocOf returns the host, with port if any, of rawURL.
func NetlocOf(rawURL string) (string, error) {
	const op = "NetlocOf"

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", apperr.Wrap(op, apperr.CodeParseFailed, err, map[string]any{
			apperr.MetaURL: rawURL,
		})
	}

	return parsed.Host, nil
}

func (b *Base) Path(ctx context.Context) (string, error) {
	parsed, err := b.ParseURL(ctx)
	if err != nil {
		return "", err
	}

	return parsed.Path, nil
}

// LastNChars returns the last n characters of the current URL, or all of it
// when it is shorter. A non-positive n returns an empty string.
func (b *Base) LastNChars(ctx context.Context, n int) (string, error) {
	current, err := b.URL(ctx)
	if err != nil {
		return "", err
	}

	runes := []rune(current)
	if n <= 0 {
		return "", nil
	}

	if n >= len(runes) {
		return current, nil
	}

	return string(runes[len(runes)-n:]), nil
}

func (b *Base) TabCount(ctx context.Context) (int, error) {
	const op = "TabCount"

	count, err := b.driver.TabCount(ctx)

	return count, b.wrap(op, apperr.StageBrowser, err)
}

// SwitchToTab focuses the tab at index, counting from 0 in opening order.
func (b *Base) SwitchToTab(ctx context.Context, index int) error {
	const op = "SwitchToTab"

	return b.wrap(op, apperr.StageBrowser, b.driver.SwitchTab(ctx, index))
}

// OpenNewTab opens a blank tab. Focus stays on the current one.
func (b *Base) OpenNewTab(ctx context.Context) error {
	const op = "OpenNewTab"

	return b.wrap(op, apperr.StageBrowser, b.driver.OpenTab(ctx))
}

func (b *Base) CloseCurrentTab(ctx context.Context) error {
	const op = "CloseCurrentTab"

	return b.wrap(op, apperr.StageBrowser, b.driver.CloseTab(ctx))
}

// OpenNewTabAndClosePrevious opens a tab, closes the focused one and moves
// focus to the new tab.
func (b *Base) OpenNewTabAndClosePrevious(ctx context.Context) error {
	const op = "OpenNewTabAndClosePrevious"
	logger := b.logger.With(zap.String(logg.Operation, op))

	if err := b.OpenNewTab(ctx); err != nil {
		return err
	}

	if err := b.CloseCurrentTab(ctx); err != nil {
		return err
	}

	count, err := b.TabCount(ctx)
	if err != nil {
		return err
	}

	logger.Debug("Switching to the new tab", zap.Int("tabs", count))

	return b.SwitchToTab(ctx, count-1)
}

// FocusFirstTab switches to the first tab when more than one is open.
func (b *Base) FocusFirstTab(ctx context.Context) error {
	count, err := b.TabCount(ctx)
	if err != nil {
		return err
	}

	if count <= 1 {
		return nil
	}

	return b.SwitchToTab(ctx, 0)
}

func (b *Base) WaitForNumberOfTabs(ctx context.Context, n int, timeout time.Duration) error {
	const op = "WaitForNumberOfTabs"

	return b.wrap(op, apperr.StageResolution, b.poller.TabCount(ctx, n, timeout))
}

// WaitForURLToAppear waits until the current URL has a host. Freshly
// opened pages can report an empty URL for a short while.
func (b *Base) WaitForURLToAppear(ctx context.Context, timeout time.Duration) (string, error) {
	const op = "WaitForURLToAppear"

	current, err := b.poller.URLPresent(ctx, timeout)

	return current, b.wrap(op, apperr.StageResolution, err)
}

// Pause sleeps for d. Prefer a condition wait where one exists.
func (b *Base) Pause(ctx context.Context, d time.Duration) error {
	const op = "Pause"

	return b.wrap(op, apperr.StageScenario, wait.Sleep(ctx, d))
}

// SendSpecialKey presses key on whatever has focus, e.g. entity.KeyEnter.
func (b *Base) SendSpecialKey(ctx context.Context, key string) error {
	const op = "SendSpecialKey"

	return b.wrap(op, apperr.StageInteraction, b.driver.PressKey(ctx, key))
}

// ConvertEmptyValue maps the placeholder "empty" to "" so example tables
// can express an empty cell.
func ConvertEmptyValue(s string) string {
	if s == emptyValue {
		return ""
	}

	return s
}

func (b *Base) ScrollToPosition(ctx context.Context, y int) error {
	const op = "ScrollToPosition"

	_, err := b.driver.ExecuteScript(ctx, scrollToScript, y)

	return b.wrap(op, apperr.StageScript, err)
}

func (b *Base) ScrollToElement(ctx context.Context, el *element.Element) error {
	return el.ScrollIntoView(ctx)
}

func (b *Base) ScrollToBottom(ctx context.Context) error {
	const op = "ScrollToBottom"

	_, err := b.driver.ExecuteScript(ctx, scrollToBottomScript)

	return b.wrap(op, apperr.StageScript, err)
}

func (b *Base) ScrollToTop(ctx context.Context) error {
	return b.ScrollToPosition(ctx, 0)
}

// ScrollBy scrolls vertically by dy pixels and returns the resulting
// scrollY.
func (b *Base) ScrollBy(ctx context.Context, dy int) (float64, error) {
	const op = "ScrollBy"

	result, err := b.driver.ExecuteScript(ctx, scrollByScript, dy)
	if err != nil {
		return 0, b.wrap(op, apperr.StageScript, err)
	}

	y, ok := toFloat(result)
	if !ok {
		return 0, apperr.Wrap(op, apperr.CodeParseFailed,
			fmt.Errorf("scrollY is %T, not a number", result), map[string]any{
				apperr.MetaStage: apperr.StageScript,
			})
	}

	return y, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func (b *Base) wrap(op, stage string, err error) error {
	if err == nil {
		return nil
	}

	return apperr.Wrap(op, apperr.CodeOf(err), err, map[string]any{
		apperr.MetaStage: stage,
	})
}
