package pages

import (
	"context"
	"errors"
	"testing"
	"time"
	"web-ui-harness/internal/browser/browsertest"
	"web-ui-harness/internal/config"
	"web-ui-harness/internal/element"
	"web-ui-harness/internal/entity"
	"web-ui-harness/internal/ports"
	"web-ui-harness/internal/ports/mocks"
	"web-ui-harness/internal/wait"
	"web-ui-harness/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

const pageURL = "http://automationpractice.com:8080/index.php?id_category=8&controller=category"

func newTestBase(t *testing.T, driver ports.Driver, strategy string) *Base {
	t.Helper()

	logger := zaptest.NewLogger(t)
	cfg := &config.Config{
		WaitConfig: &config.WaitConfig{
			LocatorStrategy: strategy,
			Explicit:        100 * time.Millisecond,
			PollInterval:    5 * time.Millisecond,
		},
	}

	poller := wait.NewPoller(wait.Params{Config: cfg, Logger: logger, Driver: driver})
	resolver := element.NewResolver(element.Params{Poller: poller, Logger: logger})

	base, err := NewBase(Params{Config: cfg, Resolver: resolver, Poller: poller, Logger: logger})
	require.NoError(t, err)

	return base
}

func newMockBase(t *testing.T) (*Base, *mocks.MockDriver) {
	t.Helper()

	driver := mocks.NewMockDriver(gomock.NewController(t))
	driver.EXPECT().Release(gomock.Any(), gomock.Any()).AnyTimes()

	return newTestBase(t, driver, "xpath"), driver
}

func TestNewBaseRejectsUnknownStrategy(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := &config.Config{WaitConfig: &config.WaitConfig{LocatorStrategy: "jquery", PollInterval: time.Millisecond}}
	poller := wait.NewPoller(wait.Params{Config: cfg, Logger: logger, Driver: browsertest.New(t, "")})

	_, err := NewBase(Params{
		Config:   cfg,
		Resolver: element.NewResolver(element.Params{Poller: poller, Logger: logger}),
		Poller:   poller,
		Logger:   logger,
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidArgument))
}

func TestBaseUsesDefaultStrategy(t *testing.T) {
	d := browsertest.New(t, `<ul><li class="a">one</li><li class="a">two</li><li class="a" hidden>three</li></ul>`)
	base := newTestBase(t, d, "css selector")
	ctx := context.Background()

	assert.Equal(t, entity.ByCSS("li.a"), base.Locate("li.a"))

	el, err := base.Element(ctx, "li.a")
	require.NoError(t, err)
	assert.Equal(t, d.IDOf("li.a"), el.ID())

	list, err := base.Elements(ctx, "li.a")
	require.NoError(t, err)
	assert.Equal(t, 2, list.Len())

	list, err = base.Elements(ctx, "li.a", element.WithCondition(entity.ConditionPresent))
	require.NoError(t, err)
	assert.Equal(t, 3, list.Len())
}

func TestElementByXPathText(t *testing.T) {
	base, driver := newMockBase(t)
	locator := entity.ByXPath(`//div[@class='tab'][contains(text(), "Sale")]`)

	driver.EXPECT().FindElements(gomock.Any(), locator).Return([]entity.ElementID{"d1"}, nil)
	driver.EXPECT().IsDisplayed(gomock.Any(), entity.ElementID("d1")).Return(true, nil)

	el, err := base.ElementByXPathText(context.Background(), "//div[@class='tab']", "Sale")
	require.NoError(t, err)
	assert.Equal(t, entity.ElementID("d1"), el.ID())

	got, ok := el.Locator()
	require.True(t, ok)
	assert.Equal(t, locator, got)
}

func TestElementByXPathTextQuotesText(t *testing.T) {
	base, driver := newMockBase(t)
	locator := entity.ByXPath(`//span[contains(text(), 'Say "hi"')]`)

	driver.EXPECT().FindElements(gomock.Any(), locator).Return([]entity.ElementID{"s1"}, nil)
	driver.EXPECT().IsDisplayed(gomock.Any(), entity.ElementID("s1")).Return(true, nil)

	el, err := base.ElementByXPathText(context.Background(), "//span", `Say "hi"`)
	require.NoError(t, err)
	assert.Equal(t, entity.ElementID("s1"), el.ID())
}

func TestOpen(t *testing.T) {
	base, driver := newMockBase(t)
	ctx := context.Background()

	driver.EXPECT().Navigate(gomock.Any(), pageURL).Return(nil)

	opened, err := base.Open(ctx, pageURL)
	require.NoError(t, err)
	assert.Equal(t, pageURL, opened)

	driver.EXPECT().Navigate(gomock.Any(), "http://down/").
		Return(apperr.WrapErrorWithReason("Navigate", apperr.CodeBrowserNotReady, "page_unavailable"))

	_, err = base.Open(ctx, "http://down/")
	assert.True(t, apperr.HasCode(err, apperr.CodeBrowserNotReady))

	driver.EXPECT().Refresh(gomock.Any()).Return(nil)
	driver.EXPECT().GoBack(gomock.Any()).Return(errors.New("no history"))

	require.NoError(t, base.Refresh(ctx))
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(base.Back(ctx)))
}

func TestURLParts(t *testing.T) {
	base, driver := newMockBase(t)
	ctx := context.Background()

	driver.EXPECT().CurrentURL(gomock.Any()).Return(pageURL, nil).AnyTimes()

	current, err := base.URL(ctx)
	require.NoError(t, err)
	assert.Equal(t, pageURL, current)

	parsed, err := base.ParseURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http", parsed.Scheme)
	assert.Equal(t, "id_category=8&controller=category", parsed.RawQuery)

	netloc, err := base.Netloc(ctx)
	require.NoError(t, err)
	assert.Equal(t, "automationpractice.com:8080", netloc)

	path, err := base.Path(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/index.php", path)

	tests := []struct {
		n    int
		want string
	}{
		{n: 8, want: "category"},
		{n: 0, want: ""},
		{n: -3, want: ""},
		{n: 1000, want: pageURL},
	}

	for _, tt := range tests {
		got, err := base.LastNChars(ctx, tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
	}
}

func TestNetlocOf(t *testing.T) {
	netloc, err := NetlocOf("http://dev.example.com/shop?x=1")
	require.NoError(t, err)
	assert.Equal(t, "dev.example.com", netloc)

	_, err = NetlocOf("://missing-scheme")
	assert.True(t, apperr.HasCode(err, apperr.CodeParseFailed))
}

func TestOpenNewTabAndClosePrevious(t *testing.T) {
	base, driver := newMockBase(t)

	gomock.InOrder(
		driver.EXPECT().OpenTab(gomock.Any()).Return(nil),
		driver.EXPECT().CloseTab(gomock.Any()).Return(nil),
		driver.EXPECT().TabCount(gomock.Any()).Return(2, nil),
		driver.EXPECT().SwitchTab(gomock.Any(), 1).Return(nil),
	)

	require.NoError(t, base.OpenNewTabAndClosePrevious(context.Background()))
}

func TestFocusFirstTab(t *testing.T) {
	base, driver := newMockBase(t)
	ctx := context.Background()

	driver.EXPECT().TabCount(gomock.Any()).Return(1, nil)
	require.NoError(t, base.FocusFirstTab(ctx))

	gomock.InOrder(
		driver.EXPECT().TabCount(gomock.Any()).Return(3, nil),
		driver.EXPECT().SwitchTab(gomock.Any(), 0).Return(nil),
	)
	require.NoError(t, base.FocusFirstTab(ctx))

	driver.EXPECT().SwitchTab(gomock.Any(), 5).
		Return(apperr.InvalidReqError("SwitchTab", "index", errors.New("out of range")))
	assert.True(t, apperr.HasCode(base.SwitchToTab(ctx, 5), apperr.CodeInvalidArgument))
}

func TestWaitForNumberOfTabs(t *testing.T) {
	base, driver := newMockBase(t)
	ctx := context.Background()

	counts := []int{1, 1, 2}
	driver.EXPECT().TabCount(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
		n := counts[0]
		if len(counts) > 1 {
			counts = counts[1:]
		}

		return n, nil
	}).MinTimes(3)

	require.NoError(t, base.WaitForNumberOfTabs(ctx, 2, 0))

	err := base.WaitForNumberOfTabs(ctx, 3, 20*time.Millisecond)
	timeout, ok := apperr.AsTimeout(err)
	require.True(t, ok)
	assert.Equal(t, "number of tabs", timeout.Target)
	assert.Equal(t, "3", timeout.Condition)
}

func TestWaitForURLToAppear(t *testing.T) {
	base, driver := newMockBase(t)

	urls := []string{"", "about:blank", pageURL}
	driver.EXPECT().CurrentURL(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
		u := urls[0]
		if len(urls) > 1 {
			urls = urls[1:]
		}

		return u, nil
	}).MinTimes(3)

	current, err := base.WaitForURLToAppear(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, pageURL, current)
}

func TestPauseHonoursContext(t *testing.T) {
	base, _ := newMockBase(t)

	require.NoError(t, base.Pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, base.Pause(ctx, time.Hour))
}

func TestSendSpecialKey(t *testing.T) {
	base, driver := newMockBase(t)

	driver.EXPECT().PressKey(gomock.Any(), entity.KeyPageDown).Return(nil)

	require.NoError(t, base.SendSpecialKey(context.Background(), entity.KeyPageDown))
}

func TestConvertEmptyValue(t *testing.T) {
	assert.Equal(t, "", ConvertEmptyValue("empty"))
	assert.Equal(t, "Empty", ConvertEmptyValue("Empty"))
	assert.Equal(t, "blouse", ConvertEmptyValue("blouse"))
}

func TestScrolls(t *testing.T) {
	base, driver := newMockBase(t)
	ctx := context.Background()

	gomock.InOrder(
		driver.EXPECT().ExecuteScript(gomock.Any(), scrollToScript, 400).Return(nil, nil),
		driver.EXPECT().ExecuteScript(gomock.Any(), scrollToScript, 0).Return(nil, nil),
		driver.EXPECT().ExecuteScript(gomock.Any(), scrollToBottomScript).Return(nil, nil),
		driver.EXPECT().ExecuteScript(gomock.Any(), scrollByScript, 250).Return(float64(650), nil),
		driver.EXPECT().ExecuteScript(gomock.Any(), scrollByScript, -50).Return(600, nil),
		driver.EXPECT().ExecuteScript(gomock.Any(), scrollByScript, 10).Return("610", nil),
	)

	require.NoError(t, base.ScrollToPosition(ctx, 400))
	require.NoError(t, base.ScrollToTop(ctx))
	require.NoError(t, base.ScrollToBottom(ctx))

	y, err := base.ScrollBy(ctx, 250)
	require.NoError(t, err)
	assert.InDelta(t, 650, y, 1e-9)

	y, err = base.ScrollBy(ctx, -50)
	require.NoError(t, err)
	assert.InDelta(t, 600, y, 1e-9)

	_, err = base.ScrollBy(ctx, 10)
	assert.True(t, apperr.HasCode(err, apperr.CodeParseFailed))
}

func TestScrollToElement(t *testing.T) {
	base, driver := newMockBase(t)
	el := base.Resolver().FromID("e7")

	driver.EXPECT().ExecuteScript(gomock.Any(), gomock.Any(), entity.ElementID("e7")).Return(nil, nil)

	require.NoError(t, base.ScrollToElement(context.Background(), el))
}
