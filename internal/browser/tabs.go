package browser

import (
	"context"
	"fmt"
	"web-ui-harness/pkg/apperr"
	"web-ui-harness/pkg/logg"
	"web-ui-harness/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

func (m *Manager) TabCount(ctx context.Context) (int, error) {
	const op = "TabCount"

	if err := m.checkReady(op); err != nil {
		return 0, err
	}

	return len(m.browserContext.Pages()), nil
}

// OpenTab opens a blank tab. Focus stays on the current tab.
func (m *Manager) OpenTab(ctx context.Context) (err error) {
	const op = "OpenTab"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.checkReady(op); err != nil {
		return err
	}

	if _, err = m.browserContext.NewPage(); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "page_create_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	if err = m.page.BringToFront(); err != nil {
		logger.Warn("Failed to refocus current tab", zap.Error(err))
	}

	return nil
}

func (m *Manager) SwitchTab(ctx context.Context, index int) (err error) {
	const op = "SwitchTab"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.Int("index", index))
	defer func() {
		step.End(err)
	}()

	if err := m.checkReady(op); err != nil {
		return err
	}

	pages := m.browserContext.Pages()
	if index < 0 || index >= len(pages) {
		return apperr.InvalidReqError(op, "index",
			fmt.Errorf("tab index %d out of range [0, %d)", index, len(pages)))
	}

	m.page = pages[index]

	if err = m.page.BringToFront(); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "bring_to_front_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	return nil
}

// CloseTab closes the focused tab and releases its element handles. The
// next page operation reattaches to the first tab still open.
func (m *Manager) CloseTab(ctx context.Context) (err error) {
	const op = "CloseTab"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.checkReady(op); err != nil {
		return err
	}

	m.releasePage(logger, m.page)

	if err = m.page.Close(); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "page_close_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	return nil
}
