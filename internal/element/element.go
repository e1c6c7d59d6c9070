package element

import (
	"context"
	"fmt"
	"time"
	"web-ui-harness/internal/entity"
	"web-ui-harness/internal/wait"
	"web-ui-harness/pkg/apperr"
	"web-ui-harness/pkg/textparse"
)

const (
	setAttributeScript   = "arguments[0].setAttribute(arguments[1], arguments[2]);"
	codeMirrorScript     = "arguments[0].CodeMirror.setValue(arguments[1]);"
	clickScript          = "arguments[0].click();"
	scrollIntoViewScript = "arguments[0].scrollIntoView();"
)

// Element is a handle on one resolved DOM element.
type Element struct {
	resolver *Resolver
	id       entity.ElementID
	locator  *entity.Locator
}

func (e *Element) ID() entity.ElementID {
	return e.id
}

// Locator returns the locator the element was resolved from, if any.
func (e *Element) Locator() (entity.Locator, bool) {
	if e.locator == nil {
		return entity.Locator{}, false
	}

	return *e.locator, true
}

func (e *Element) String() string {
	if e.locator != nil {
		return fmt.Sprintf("%s (%s)", e.id, e.locator)
	}

	return string(e.id)
}

func (e *Element) Click(ctx context.Context) error {
	const op = "Element.Click"

	return e.wrap(op, apperr.StageInteraction, e.resolver.driver.Click(ctx, e.id, entity.ClickOptions{}))
}

func (e *Element) Clear(ctx context.Context) error {
	const op = "Element.Clear"

	return e.wrap(op, apperr.StageInteraction, e.resolver.driver.Clear(ctx, e.id))
}

func (e *Element) SendKeys(ctx context.Context, text string) error {
	const op = "Element.SendKeys"

	return e.wrap(op, apperr.StageInteraction, e.resolver.driver.SendKeys(ctx, e.id, text))
}

func (e *Element) SendKeysWithClear(ctx context.Context, text string) error {
	if err := e.Clear(ctx); err != nil {
		return err
	}

	return e.SendKeys(ctx, text)
}

func (e *Element) ClickClearSendKeys(ctx context.Context, text string) error {
	if err := e.Click(ctx); err != nil {
		return err
	}

	return e.SendKeysWithClear(ctx, text)
}

// ClickClearSendKeysEnter is ClickClearSendKeys followed by the Enter key.
func (e *Element) ClickClearSendKeysEnter(ctx context.Context, text string) error {
	const op = "Element.ClickClearSendKeysEnter"

	if err := e.ClickClearSendKeys(ctx, text); err != nil {
		return err
	}

	return e.wrap(op, apperr.StageInteraction, e.resolver.driver.Press(ctx, e.id, entity.KeyEnter))
}

func (e *Element) Hover(ctx context.Context) error {
	const op = "Element.Hover"

	return e.wrap(op, apperr.StageInteraction, e.resolver.driver.Hover(ctx, e.id))
}

// MultipleClick clicks n separate times.
func (e *Element) MultipleClick(ctx context.Context, n int) error {
	const op = "Element.MultipleClick"

	if n < 0 {
		return apperr.InvalidReqError(op, "n", fmt.Errorf("click count must not be negative, got %d", n))
	}

	for range n {
		if err := e.Click(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (e *Element) Text(ctx context.Context) (string, error) {
	const op = "Element.Text"

	text, err := e.resolver.driver.Text(ctx, e.id)

	return text, e.wrap(op, apperr.StageInteraction, err)
}

func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	const op = "Element.Attribute"

	value, err := e.resolver.driver.Attribute(ctx, e.id, name)

	return value, e.wrap(op, apperr.StageInteraction, err)
}

func (e *Element) IsDisplayed(ctx context.Context) (bool, error) {
	const op = "Element.IsDisplayed"

	shown, err := e.resolver.driver.IsDisplayed(ctx, e.id)

	return shown, e.wrap(op, apperr.StageInteraction, err)
}

func (e *Element) IsEnabled(ctx context.Context) (bool, error) {
	const op = "Element.IsEnabled"

	enabled, err := e.resolver.driver.IsEnabled(ctx, e.id)

	return enabled, e.wrap(op, apperr.StageInteraction, err)
}

// NumericFromText reads the text and keeps only digits and dots.
func (e *Element) NumericFromText(ctx context.Context) (textparse.Number, error) {
	const op = "Element.NumericFromText"

	text, err := e.Text(ctx)
	if err != nil {
		return textparse.Number{}, err
	}

	n, err := textparse.Numeric(text)

	return n, e.parseErr(op, err)
}

func (e *Element) NumericFromAttribute(ctx context.Context, name string) (textparse.Number, error) {
	const op = "Element.NumericFromAttribute"

	value, err := e.Attribute(ctx, name)
	if err != nil {
		return textparse.Number{}, err
	}

	n, err := textparse.Numeric(value)

	return n, e.parseErr(op, err)
}

// ParseText returns fragment which (1-based) of the text split against
// format, e.g. format "{}: {}/{}" and fragment 2 give "4" for "Score: 4/10".
func (e *Element) ParseText(ctx context.Context, format string, which int) (string, error) {
	const op = "Element.ParseText"

	text, err := e.Text(ctx)
	if err != nil {
		return "", err
	}

	fragment, err := textparse.Fragment(text, format, which)

	return fragment, e.parseErr(op, err)
}

func (e *Element) ParseAttribute(ctx context.Context, name, format string, which int) (string, error) {
	const op = "Element.ParseAttribute"

	value, err := e.Attribute(ctx, name)
	if err != nil {
		return "", err
	}

	fragment, err := textparse.Fragment(value, format, which)

	return fragment, e.parseErr(op, err)
}

// WaitForClickable re-resolves the locator until a match is displayed and
// enabled.
func (e *Element) WaitForClickable(ctx context.Context, opts ...Option) (*Element, error) {
	locator, err := e.requireLocator("Element.WaitForClickable")
	if err != nil {
		return nil, err
	}

	return e.resolver.Element(ctx, locator, append(opts, WithCondition(entity.ConditionClickable))...)
}

// WaitForVisibleAfterDelay sleeps for delay, then re-resolves the locator
// for a visible match.
func (e *Element) WaitForVisibleAfterDelay(ctx context.Context, delay time.Duration, opts ...Option) (*Element, error) {
	const op = "Element.WaitForVisibleAfterDelay"

	locator, err := e.requireLocator(op)
	if err != nil {
		return nil, err
	}

	if err := wait.Sleep(ctx, delay); err != nil {
		return nil, e.wrap(op, apperr.StageResolution, err)
	}

	return e.resolver.Element(ctx, locator, append(opts, WithCondition(entity.ConditionVisible))...)
}

// WaitForVisibleElementAfterDelay sleeps for delay, then waits for this
// handle itself to be displayed.
func (e *Element) WaitForVisibleElementAfterDelay(ctx context.Context, delay time.Duration, opts ...Option) (*Element, error) {
	const op = "Element.WaitForVisibleElementAfterDelay"
	o := buildOptions(entity.ConditionVisible, opts)

	if err := wait.Sleep(ctx, delay); err != nil {
		return nil, e.wrap(op, apperr.StageResolution, err)
	}

	id, err := e.resolver.poller.VisibleElement(ctx, e.id, o.timeout)
	if err != nil {
		return nil, e.wrap(op, apperr.StageResolution, err)
	}

	return e.resolver.newElement(id, e.locator), nil
}

// WaitForInvisible waits until this handle is detached or hidden.
func (e *Element) WaitForInvisible(ctx context.Context, opts ...Option) error {
	const op = "Element.WaitForInvisible"
	o := buildOptions(entity.ConditionInvisible, opts)

	return e.wrap(op, apperr.StageResolution, e.resolver.poller.InvisibleElement(ctx, e.id, o.timeout))
}

// WaitForInvisibleLocator waits until the originating locator matches
// nothing displayed.
func (e *Element) WaitForInvisibleLocator(ctx context.Context, opts ...Option) error {
	const op = "Element.WaitForInvisibleLocator"
	o := buildOptions(entity.ConditionInvisible, opts)

	locator, err := e.requireLocator(op)
	if err != nil {
		return err
	}

	return e.wrap(op, apperr.StageResolution, e.resolver.poller.InvisibleLocator(ctx, locator, o.timeout))
}

func (e *Element) WaitForStale(ctx context.Context, opts ...Option) error {
	const op = "Element.WaitForStale"
	o := buildOptions(entity.ConditionStale, opts)

	return e.wrap(op, apperr.StageResolution, e.resolver.poller.Stale(ctx, e.id, o.timeout))
}

// Child looks up the first descendant matching locator without waiting.
func (e *Element) Child(ctx context.Context, locator entity.Locator) (*Element, error) {
	const op = "Element.Child"

	id, err := e.resolver.driver.FindChild(ctx, e.id, locator)
	if err != nil {
		return nil, e.wrapLocator(op, locator, err)
	}

	return e.resolver.FromID(id), nil
}

// release hands the element's id back to the driver once nothing refers
// to it any more.
func (e *Element) release(ctx context.Context) {
	e.resolver.driver.Release(ctx, []entity.ElementID{e.id})
}

// Children looks up every descendant matching locator without waiting. The
// result may be empty.
func (e *Element) Children(ctx context.Context, locator entity.Locator) (*List, error) {
	const op = "Element.Children"

	ids, err := e.resolver.driver.FindChildren(ctx, e.id, locator)
	if err != nil {
		return nil, e.wrapLocator(op, locator, err)
	}

	return e.resolver.FromIDs(ids), nil
}

// SetAttributeJS sets an attribute through script, bypassing input events.
func (e *Element) SetAttributeJS(ctx context.Context, name, value string) error {
	return e.script(ctx, "Element.SetAttributeJS", setAttributeScript, name, value)
}

// SetCodeMirrorValueJS replaces the content of a CodeMirror editor hosted
// by the element.
func (e *Element) SetCodeMirrorValueJS(ctx context.Context, value string) error {
	return e.script(ctx, "Element.SetCodeMirrorValueJS", codeMirrorScript, value)
}

// ClickJS dispatches a click from script, which reaches elements covered by
// overlays.
func (e *Element) ClickJS(ctx context.Context) error {
	return e.script(ctx, "Element.ClickJS", clickScript)
}

func (e *Element) ScrollIntoView(ctx context.Context) error {
	return e.script(ctx, "Element.ScrollIntoView", scrollIntoViewScript)
}

// OpenInNewTab clicks with the Control modifier held.
func (e *Element) OpenInNewTab(ctx context.Context) error {
	const op = "Element.OpenInNewTab"

	err := e.resolver.driver.Click(ctx, e.id, entity.ClickOptions{Modifiers: []string{entity.KeyControl}})

	return e.wrap(op, apperr.StageInteraction, err)
}

func (e *Element) script(ctx context.Context, op, source string, args ...any) error {
	_, err := e.resolver.driver.ExecuteScript(ctx, source, append([]any{e.id}, args...)...)

	return e.wrap(op, apperr.StageScript, err)
}

func (e *Element) requireLocator(op string) (entity.Locator, error) {
	if e.locator == nil {
		return entity.Locator{}, apperr.Wrap(op, apperr.CodeInvalidArgument, ErrNoLocator, map[string]any{
			apperr.MetaReason:    "no_locator",
			apperr.MetaElementID: string(e.id),
		})
	}

	return *e.locator, nil
}

func (e *Element) wrap(op, stage string, err error) error {
	if err == nil {
		return nil
	}

	meta := map[string]any{
		apperr.MetaStage:     stage,
		apperr.MetaElementID: string(e.id),
	}
	if e.locator != nil {
		meta[apperr.MetaLocator] = e.locator.String()
	}

	return apperr.Wrap(op, apperr.CodeOf(err), err, meta)
}

func (e *Element) wrapLocator(op string, locator entity.Locator, err error) error {
	return apperr.Wrap(op, apperr.CodeOf(err), err, map[string]any{
		apperr.MetaStage:     apperr.StageResolution,
		apperr.MetaElementID: string(e.id),
		apperr.MetaLocator:   locator.String(),
	})
}

func (e *Element) parseErr(op string, err error) error {
	if err == nil {
		return nil
	}

	return apperr.Wrap(op, apperr.CodeParseFailed, err, map[string]any{
		apperr.MetaReason:    "parse_failed",
		apperr.MetaElementID: string(e.id),
	})
}
