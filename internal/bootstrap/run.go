package bootstrap

import (
	"context"
	"web-ui-harness/internal/browser"
	"web-ui-harness/internal/scenario"
	"web-ui-harness/internal/steps"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	exitPassed = 0
	exitFailed = 1
)

type runParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Browser    *browser.Manager
	Runner     *scenario.Runner
	Storefront *steps.Storefront
	Tracer     *sdktrace.TracerProvider
	Logger     *zap.Logger
}

// runScenarios runs the storefront suite in the background once the app
// has started and shuts it down with an exit code reflecting the outcome.
// Each scenario launches and closes its own browser session.
func runScenarios(params runParams) {
	logger := params.Logger
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("Running scenarios...", zap.Int("scenarios", len(params.Storefront.Scenarios())))

			go func() {
				defer close(done)

				results, passed := params.Runner.RunAll(ctx, params.Storefront.Scenarios())
				for _, r := range results {
					logger.Info("Scenario result",
						zap.String("scenario", r.Name),
						zap.String("status", string(r.Status)),
						zap.Duration("duration", r.CompletedAt.Sub(r.StartedAt)),
						zap.String("error", r.Error),
					)
				}

				code := exitPassed
				if !passed {
					code = exitFailed
				}

				if err := params.Shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Error("Failed to request shutdown", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			logger.Info("Shutting down harness...")

			cancel()

			select {
			case <-done:
			case <-stopCtx.Done():
			}

			if !params.Browser.IsReady() {
				return nil
			}

			if err := params.Browser.Close(stopCtx); err != nil {
				logger.Error("Failed to close browser", zap.Error(err))
			}

			return nil
		},
	})
}
