// Package wait polls the browser until a condition holds or a deadline
// passes. Every resolution of an element or a set of elements goes through
// Until.
package wait

import (
	"context"
	"time"
	"web-ui-harness/internal/config"
	"web-ui-harness/internal/entity"
	"web-ui-harness/internal/ports"
	"web-ui-harness/pkg/apperr"
	"web-ui-harness/pkg/logg"
	"web-ui-harness/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	kwait "k8s.io/apimachinery/pkg/util/wait"
)

const (
	pollerName   = "Poller"
	pollerTracer = "wait.poller"
)

type Poller struct {
	driver   ports.Driver
	logger   *zap.Logger
	tracer   trace.Tracer
	timeout  time.Duration
	interval time.Duration
}

type Params struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
	Driver ports.Driver
}

func NewPoller(params Params) *Poller {
	return &Poller{
		driver:   params.Driver,
		logger:   params.Logger.With(zap.String(logg.Layer, pollerName)),
		tracer:   otel.Tracer(pollerTracer),
		timeout:  params.Config.WaitConfig.Explicit,
		interval: params.Config.WaitConfig.PollInterval,
	}
}

func (p *Poller) Driver() ports.Driver {
	return p.driver
}

// Timeout is the deadline used when a wait is given none.
func (p *Poller) Timeout() time.Duration {
	return p.timeout
}

// Check is evaluated once per poll. An error marks that poll as failed and
// polling continues; the last such error is reported on timeout. Errors
// coded invalid_argument cannot heal between polls and end the wait at
// once.
type Check[T any] func(ctx context.Context) (value T, done bool, err error)

// Until evaluates check immediately and then every poll interval until it
// reports done or timeout elapses. A non-positive timeout means the
// poller's default. On expiry the error wraps an *apperr.TimeoutError naming
// target and condition.
func Until[T any](ctx context.Context, p *Poller, target string, condition entity.Condition, timeout time.Duration, check Check[T]) (value T, err error) {
	const op = "Until"

	if timeout <= 0 {
		timeout = p.timeout
	}

	logger := p.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.Locator, target),
		zap.String(logg.Condition, string(condition)),
		zap.Duration(logg.Timeout, timeout),
	)

	ctx, step := tracing.StartSpan(ctx, p.tracer, logger, op,
		attribute.String("target", target),
		attribute.String("condition", string(condition)),
	)
	defer func() {
		step.End(err)
	}()

	var (
		lastErr error
		polls   int
	)

	pollErr := kwait.PollUntilContextTimeout(ctx, p.interval, timeout, true, func(ctx context.Context) (bool, error) {
		polls++

		v, done, err := check(ctx)
		if err != nil && apperr.HasCode(err, apperr.CodeInvalidArgument) {
			return false, err
		}

		if err != nil {
			lastErr = err
			logger.Debug("Condition check failed", zap.Int("poll", polls), zap.Error(err))

			return false, nil
		}

		if done {
			value = v
		}

		return done, nil
	})

	step.SetAttributes(attribute.Int("polls", polls))

	if pollErr == nil {
		logger.Debug("Condition met", zap.Int("polls", polls))

		return value, nil
	}

	var zero T

	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, apperr.Wrap(op, apperr.CodeInternal, ctxErr, map[string]any{
			apperr.MetaReason:    "context_done",
			apperr.MetaStage:     apperr.StageResolution,
			apperr.MetaLocator:   target,
			apperr.MetaCondition: string(condition),
		})
	}

	if !kwait.Interrupted(pollErr) {
		return zero, apperr.Wrap(op, apperr.CodeOf(pollErr), pollErr, map[string]any{
			apperr.MetaReason:    "poll_failed",
			apperr.MetaStage:     apperr.StageResolution,
			apperr.MetaLocator:   target,
			apperr.MetaCondition: string(condition),
		})
	}

	logger.Info("Condition not met before timeout", zap.Int("polls", polls), zap.NamedError("last_error", lastErr))

	return zero, apperr.Wrap(op, apperr.CodeTimeout, &apperr.TimeoutError{
		Target:    target,
		Condition: string(condition),
		Timeout:   timeout,
		LastErr:   lastErr,
	}, map[string]any{
		apperr.MetaReason:    "condition_not_met",
		apperr.MetaStage:     apperr.StageResolution,
		apperr.MetaLocator:   target,
		apperr.MetaCondition: string(condition),
	})
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
