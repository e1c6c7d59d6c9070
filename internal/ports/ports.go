package ports

import (
	"context"
	"web-ui-harness/internal/entity"
)

//go:generate mockgen -destination=mocks/driver_mock.go -package=mocks web-ui-harness/internal/ports Driver
//go:generate mockgen -destination=mocks/session_mock.go -package=mocks web-ui-harness/internal/ports Session

// Navigator covers page-level operations of the browser session.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
	CurrentURL(ctx context.Context) (string, error)
	Refresh(ctx context.Context) error
	GoBack(ctx context.Context) error
	// ExecuteScript runs script as a function body; args are visible as
	// arguments[i] and may include entity.ElementID values.
	ExecuteScript(ctx context.Context, script string, args ...any) (any, error)
	PressKey(ctx context.Context, key string) error
	Screenshot(ctx context.Context, path string) error
}

type TabManager interface {
	TabCount(ctx context.Context) (int, error)
	OpenTab(ctx context.Context) error
	SwitchTab(ctx context.Context, index int) error
	CloseTab(ctx context.Context) error
}

// Finder performs single, unwaited lookups. FindElement and FindChild fail
// with an apperr code of not_found when nothing matches. Every lookup hands
// out fresh ids; Release gives back the ones a caller will not use.
type Finder interface {
	FindElement(ctx context.Context, locator entity.Locator) (entity.ElementID, error)
	FindElements(ctx context.Context, locator entity.Locator) ([]entity.ElementID, error)
	FindChild(ctx context.Context, parent entity.ElementID, locator entity.Locator) (entity.ElementID, error)
	FindChildren(ctx context.Context, parent entity.ElementID, locator entity.Locator) ([]entity.ElementID, error)
	Release(ctx context.Context, ids []entity.ElementID)
}

type Inspector interface {
	IsDisplayed(ctx context.Context, id entity.ElementID) (bool, error)
	IsEnabled(ctx context.Context, id entity.ElementID) (bool, error)
	IsAttached(ctx context.Context, id entity.ElementID) (bool, error)
	Text(ctx context.Context, id entity.ElementID) (string, error)
	Attribute(ctx context.Context, id entity.ElementID, name string) (string, error)
}

type Interactor interface {
	Click(ctx context.Context, id entity.ElementID, opts entity.ClickOptions) error
	Clear(ctx context.Context, id entity.ElementID) error
	SendKeys(ctx context.Context, id entity.ElementID, text string) error
	Press(ctx context.Context, id entity.ElementID, key string) error
	Hover(ctx context.Context, id entity.ElementID) error
}

// Driver is the browser session consumed by the wait engine, element
// handles and page objects.
type Driver interface {
	Navigator
	TabManager
	Finder
	Inspector
	Interactor
}

// Session is the browser lifetime a scenario owns: launched before its
// first step and closed after its last.
type Session interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
}
