// Package scenario runs behavior-style scenarios: ordered steps against a
// browser session of their own, with a screenshot of the first failing
// step.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"web-ui-harness/internal/config"
	"web-ui-harness/internal/entity"
	"web-ui-harness/internal/ports"
	"web-ui-harness/pkg/apperr"
	"web-ui-harness/pkg/logg"
	"web-ui-harness/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	runnerName   = "ScenarioRunner"
	runnerTracer = "scenario.runner"
)

// Step keywords.
const (
	Given = "Given"
	When  = "When"
	Then  = "Then"
	And   = "And"
)

var ErrNoSteps = errors.New("scenario has no steps")

type Step struct {
	Keyword string
	Text    string
	Run     func(ctx context.Context) error
}

type Scenario struct {
	Name  string
	Steps []Step
}

type Runner struct {
	driver        ports.Driver
	session       ports.Session
	logger        *zap.Logger
	tracer        trace.Tracer
	screenshotDir string
}

type Params struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Driver  ports.Driver
	Session ports.Session
}

func NewRunner(params Params) *Runner {
	return &Runner{
		driver:        params.Driver,
		session:       params.Session,
		logger:        params.Logger.With(zap.String(logg.Layer, runnerName)),
		tracer:        otel.Tracer(runnerTracer),
		screenshotDir: params.Config.AppConfig.ScreenshotDir,
	}
}

// Run launches a fresh session, executes the steps in order and closes the
// session again. The first failing step fails the scenario, gets a
// screenshot and leaves the remaining steps skipped. The returned error is
// that step's error, or the launch error when no step could run.
func (r *Runner) Run(ctx context.Context, sc Scenario) (result *entity.ScenarioResult, err error) {
	const op = "Run"
	logger := r.logger.With(zap.String(logg.Operation, op), zap.String("scenario", sc.Name))

	ctx, span := tracing.StartSpan(ctx, r.tracer, logger, op,
		attribute.String("scenario", sc.Name),
		attribute.Int("steps", len(sc.Steps)))
	defer func() {
		span.End(err)
	}()

	result = &entity.ScenarioResult{
		ID:        uuid.New(),
		Name:      sc.Name,
		Status:    entity.ScenarioStatusPassed,
		StartedAt: time.Now(),
		Steps:     make([]entity.StepResult, 0, len(sc.Steps)),
	}

	logger = logger.With(zap.String(logg.ScenarioID, result.ID.String()))

	if len(sc.Steps) == 0 {
		result.Status = entity.ScenarioStatusSkipped
		result.CompletedAt = time.Now()

		return result, apperr.InvalidReqError(op, "steps", ErrNoSteps)
	}

	logger.Info("Scenario started")

	launchErr := r.session.Launch(ctx)
	defer r.closeSession(ctx, logger)

	if launchErr != nil {
		logger.Error("Failed to launch browser session", zap.Error(launchErr))

		result.Status = entity.ScenarioStatusFailed
		result.Error = fmt.Sprintf("launch browser session: %v", launchErr)

		err = apperr.Wrap(op, apperr.CodeOf(launchErr), launchErr, map[string]any{
			apperr.MetaReason: "session_launch_failed",
			apperr.MetaStage:  apperr.StageScenario,
		})
	}

	for _, st := range sc.Steps {
		stepResult := entity.StepResult{
			ID:      uuid.New(),
			Keyword: st.Keyword,
			Text:    st.Text,
			Status:  entity.ScenarioStatusSkipped,
		}

		if err != nil {
			result.Steps = append(result.Steps, stepResult)

			continue
		}

		stepLogger := logger.With(zap.String(logg.Step, st.Text))
		started := time.Now()
		stepErr := st.Run(ctx)
		stepResult.Duration = time.Since(started)

		if stepErr == nil {
			stepResult.Status = entity.ScenarioStatusPassed
			stepLogger.Info("Step passed", zap.Duration("duration", stepResult.Duration))
			result.Steps = append(result.Steps, stepResult)
			span.AddEvent("step passed", attribute.String("step", st.Text))

			continue
		}

		stepResult.Status = entity.ScenarioStatusFailed
		stepResult.Error = stepErr.Error()
		stepResult.Screenshot = r.screenshot(ctx, stepLogger, st.Text)
		stepLogger.Error("Step failed", zap.Error(stepErr))

		result.Status = entity.ScenarioStatusFailed
		result.Error = fmt.Sprintf("%s %s: %v", st.Keyword, st.Text, stepErr)
		result.Steps = append(result.Steps, stepResult)

		err = apperr.Wrap(op, apperr.CodeOf(stepErr), stepErr, map[string]any{
			apperr.MetaStage: apperr.StageScenario,
			apperr.MetaStep:  st.Text,
		})
	}

	result.CompletedAt = time.Now()
	logger.Info("Scenario finished", zap.String("status", string(result.Status)))

	return result, err
}

// RunAll runs every scenario in order and reports whether all passed.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) ([]*entity.ScenarioResult, bool) {
	results := make([]*entity.ScenarioResult, 0, len(scenarios))
	passed := true

	for _, sc := range scenarios {
		result, err := r.Run(ctx, sc)
		if err != nil {
			passed = false
		}

		results = append(results, result)
	}

	return results, passed
}

// closeSession ends the scenario's session. A failed close does not change
// the scenario's outcome.
func (r *Runner) closeSession(ctx context.Context, logger *zap.Logger) {
	if err := r.session.Close(context.WithoutCancel(ctx)); err != nil {
		logger.Warn("Failed to close browser session", zap.Error(err))
	}
}

// screenshot saves the page as <dir>/<step text>.png and returns the path,
// or "" when capture failed.
func (r *Runner) screenshot(ctx context.Context, logger *zap.Logger, stepText string) string {
	path := ScreenshotPath(r.screenshotDir, stepText)

	if err := r.driver.Screenshot(ctx, path); err != nil {
		logger.Warn("Failed to capture screenshot", zap.String("path", path), zap.Error(err))

		return ""
	}

	return path
}

var unsafePathChars = strings.NewReplacer("/", "_", `\`, "_", ":", "_")

func ScreenshotPath(dir, stepText string) string {
	return filepath.Join(dir, unsafePathChars.Replace(stepText)+".png")
}
