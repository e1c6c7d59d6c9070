package browser

import (
	"context"
	"errors"
	"fmt"
	"web-ui-harness/internal/entity"
	"web-ui-harness/pkg/apperr"
	"web-ui-harness/pkg/logg"
	"web-ui-harness/pkg/tracing"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var errNoMatch = errors.New("no element matches locator")

// handle looks id up in the registry. Ids the registry no longer holds
// belong to a document that was navigated away from, a closed tab or an
// ended session, so they are reported as stale.
func (m *Manager) handle(op string, id entity.ElementID) (playwright.ElementHandle, error) {
	handle, ok := m.handles.get(id)
	if !ok {
		return nil, apperr.Wrap(op, apperr.CodeStale, fmt.Errorf("element %q is no longer registered", id), map[string]any{
			apperr.MetaReason:    "element_released",
			apperr.MetaElementID: string(id),
		})
	}

	return handle, nil
}

// Release disposes the handles behind ids. Later calls with those ids fail
// as stale.
func (m *Manager) Release(ctx context.Context, ids []entity.ElementID) {
	if len(ids) == 0 {
		return
	}

	if err := m.handles.release(ids); err != nil {
		m.logger.Debug("Failed to dispose element handles",
			zap.String(logg.Operation, "Release"), zap.Int("count", len(ids)), zap.Error(err))
	}
}

// releasePage drops the handles of page before its document goes away.
func (m *Manager) releasePage(logger *zap.Logger, page playwright.Page) {
	if err := m.handles.releasePage(page); err != nil {
		logger.Debug("Failed to dispose element handles", zap.Error(err))
	}
}

func (m *Manager) FindElement(ctx context.Context, locator entity.Locator) (entity.ElementID, error) {
	ids, err := m.find(ctx, "FindElement", nil, locator, true)
	if err != nil {
		return "", err
	}

	return ids[0], nil
}

func (m *Manager) FindElements(ctx context.Context, locator entity.Locator) ([]entity.ElementID, error) {
	return m.find(ctx, "FindElements", nil, locator, false)
}

func (m *Manager) FindChild(ctx context.Context, parent entity.ElementID, locator entity.Locator) (entity.ElementID, error) {
	ids, err := m.find(ctx, "FindChild", &parent, locator, true)
	if err != nil {
		return "", err
	}

	return ids[0], nil
}

func (m *Manager) FindChildren(ctx context.Context, parent entity.ElementID, locator entity.Locator) ([]entity.ElementID, error) {
	return m.find(ctx, "FindChildren", &parent, locator, false)
}

// find runs one unwaited query against the page, or against parent when
// set. With single set an empty result is a not_found error.
func (m *Manager) find(ctx context.Context, op string, parent *entity.ElementID, locator entity.Locator, single bool) (ids []entity.ElementID, err error) {
	logger := m.logger.With(zap.String(logg.Operation, op), zap.Stringer(logg.Locator, locator))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("locator", locator.String()))
	defer func() {
		step.End(err)
	}()

	if err := m.checkReady(op); err != nil {
		return nil, err
	}

	var (
		selector string
		handles  []playwright.ElementHandle
	)

	if parent == nil {
		selector, err = selectorFor(locator)
		if err != nil {
			return nil, apperr.InvalidReqError(op, "locator", err)
		}

		handles, err = m.page.QuerySelectorAll(selector)
	} else {
		selector, err = childSelectorFor(locator)
		if err != nil {
			return nil, apperr.InvalidReqError(op, "locator", err)
		}

		var root playwright.ElementHandle
		if root, err = m.handle(op, *parent); err != nil {
			return nil, err
		}

		handles, err = root.QuerySelectorAll(selector)
	}

	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason:   "query_failed",
			apperr.MetaStage:    apperr.StageResolution,
			apperr.MetaSelector: selector,
		})
	}

	if single && len(handles) == 0 {
		return nil, apperr.Wrap(op, apperr.CodeNotFound, errNoMatch, map[string]any{
			apperr.MetaReason:  "not_found",
			apperr.MetaStage:   apperr.StageResolution,
			apperr.MetaLocator: locator.String(),
		})
	}

	if single {
		handles = handles[:1]
	}

	return m.handles.add(m.page, handles), nil
}

func (m *Manager) IsDisplayed(ctx context.Context, id entity.ElementID) (bool, error) {
	const op = "IsDisplayed"

	handle, err := m.handle(op, id)
	if err != nil {
		return false, err
	}

	visible, err := handle.IsVisible()
	if err != nil {
		return false, m.elementErr(op, id, "is_visible_failed", err)
	}

	return visible, nil
}

func (m *Manager) IsEnabled(ctx context.Context, id entity.ElementID) (bool, error) {
	const op = "IsEnabled"

	handle, err := m.handle(op, id)
	if err != nil {
		return false, err
	}

	enabled, err := handle.IsEnabled()
	if err != nil {
		return false, m.elementErr(op, id, "is_enabled_failed", err)
	}

	return enabled, nil
}

// IsAttached reports whether the node is still part of the document.
func (m *Manager) IsAttached(ctx context.Context, id entity.ElementID) (bool, error) {
	const op = "IsAttached"

	handle, err := m.handle(op, id)
	if apperr.HasCode(err, apperr.CodeStale) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	connected, err := handle.Evaluate("el => el.isConnected")
	if err != nil {
		return false, m.elementErr(op, id, "evaluate_failed", err)
	}

	attached, _ := connected.(bool)

	return attached, nil
}

func (m *Manager) Text(ctx context.Context, id entity.ElementID) (string, error) {
	const op = "Text"

	handle, err := m.handle(op, id)
	if err != nil {
		return "", err
	}

	text, err := handle.InnerText()
	if err != nil {
		return "", m.elementErr(op, id, "inner_text_failed", err)
	}

	return text, nil
}

func (m *Manager) Attribute(ctx context.Context, id entity.ElementID, name string) (string, error) {
	const op = "Attribute"

	handle, err := m.handle(op, id)
	if err != nil {
		return "", err
	}

	value, err := handle.GetAttribute(name)
	if err != nil {
		return "", m.elementErr(op, id, "get_attribute_failed", err)
	}

	return value, nil
}

func (m *Manager) Click(ctx context.Context, id entity.ElementID, opts entity.ClickOptions) (err error) {
	const op = "Click"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.ElementID, string(id)))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.Int("count", opts.Count))
	defer func() {
		step.End(err)
	}()

	handle, err := m.handle(op, id)
	if err != nil {
		return err
	}

	clickOptions := playwright.ElementHandleClickOptions{}
	if opts.Count > 1 {
		clickOptions.ClickCount = playwright.Int(opts.Count)
	}

	for _, modifier := range opts.Modifiers {
		clickOptions.Modifiers = append(clickOptions.Modifiers, playwright.KeyboardModifier(modifier))
	}

	if err = handle.Click(clickOptions); err != nil {
		return m.elementErr(op, id, "click_failed", err)
	}

	return nil
}

func (m *Manager) Clear(ctx context.Context, id entity.ElementID) error {
	const op = "Clear"

	handle, err := m.handle(op, id)
	if err != nil {
		return err
	}

	if err := handle.Fill(""); err != nil {
		return m.elementErr(op, id, "fill_failed", err)
	}

	return nil
}

// SendKeys types text into the element without clearing it first.
func (m *Manager) SendKeys(ctx context.Context, id entity.ElementID, text string) (err error) {
	const op = "SendKeys"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.ElementID, string(id)))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	handle, err := m.handle(op, id)
	if err != nil {
		return err
	}

	if err = handle.Type(text); err != nil {
		return m.elementErr(op, id, "type_failed", err)
	}

	return nil
}

func (m *Manager) Press(ctx context.Context, id entity.ElementID, key string) error {
	const op = "Press"

	handle, err := m.handle(op, id)
	if err != nil {
		return err
	}

	if err := handle.Press(key); err != nil {
		return m.elementErr(op, id, "press_failed", err)
	}

	return nil
}

func (m *Manager) Hover(ctx context.Context, id entity.ElementID) error {
	const op = "Hover"

	handle, err := m.handle(op, id)
	if err != nil {
		return err
	}

	if err := handle.Hover(); err != nil {
		return m.elementErr(op, id, "hover_failed", err)
	}

	return nil
}

func (m *Manager) elementErr(op string, id entity.ElementID, reason string, err error) error {
	return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
		apperr.MetaReason:    reason,
		apperr.MetaStage:     apperr.StageInteraction,
		apperr.MetaElementID: string(id),
	})
}
