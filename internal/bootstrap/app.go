package bootstrap

import (
	"time"
	"web-ui-harness/internal/browser"
	"web-ui-harness/internal/config"
	"web-ui-harness/internal/element"
	"web-ui-harness/internal/pages"
	"web-ui-harness/internal/ports"
	"web-ui-harness/internal/scenario"
	"web-ui-harness/internal/steps"
	"web-ui-harness/internal/wait"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func NewApp() *fx.App {
	return fx.New(
		fx.Provide(
			config.GetConfig,
			newLogger,
			newTraceProvider,

			fx.Annotate(
				browser.NewManager,
				fx.As(fx.Self()),
				fx.As(new(ports.Driver)),
				fx.As(new(ports.Session)),
			),

			wait.NewPoller,
			element.NewResolver,

			pages.NewBase,
			pages.NewMainHeader,

			scenario.NewRunner,
			steps.NewStorefront,
		),

		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),

		fx.Invoke(
			runScenarios,
		),

		fx.StartTimeout(2*time.Minute),
	)
}
