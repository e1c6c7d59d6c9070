// Package element turns locators into handles on live page elements.
//
// A Resolver polls the browser through wait.Poller until a locator satisfies
// the requested condition and returns an Element or a List. Handles carry
// the locator they were resolved from so they can be re-resolved later;
// handles built from raw ids carry none.
package element

import (
	"context"
	"errors"
	"fmt"
	"time"
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
	resolverName   = "ElementResolver"
	resolverTracer = "element.resolver"
)

// ErrNoLocator is returned by locator based re-resolution on a handle that
// was built from a raw element id.
var ErrNoLocator = errors.New("element has no originating locator")

type Resolver struct {
	driver ports.Driver
	poller *wait.Poller
	logger *zap.Logger
	tracer trace.Tracer
}

type Params struct {
	fx.In

	Poller *wait.Poller
	Logger *zap.Logger
}

func NewResolver(params Params) *Resolver {
	return &Resolver{
		driver: params.Poller.Driver(),
		poller: params.Poller,
		logger: params.Logger.With(zap.String(logg.Layer, resolverName)),
		tracer: otel.Tracer(resolverTracer),
	}
}

type options struct {
	timeout   time.Duration
	condition entity.Condition
}

type Option func(*options)

// WithTimeout overrides the configured explicit wait.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithCondition selects what the resolution waits for. Element accepts
// present, visible and clickable; Elements accepts present, any visible and
// all visible.
func WithCondition(c entity.Condition) Option {
	return func(o *options) {
		o.condition = c
	}
}

func buildOptions(condition entity.Condition, opts []Option) options {
	o := options{condition: condition}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Element waits for locator to match an element satisfying the condition,
// visible by default, and returns a handle on it.
func (r *Resolver) Element(ctx context.Context, locator entity.Locator, opts ...Option) (el *Element, err error) {
	const op = "Element"
	o := buildOptions(entity.ConditionVisible, opts)
	logger := r.logger.With(
		zap.String(logg.Operation, op),
		zap.Stringer(logg.Locator, locator),
		zap.String(logg.Condition, string(o.condition)),
	)

	ctx, step := tracing.StartSpan(ctx, r.tracer, logger, op,
		attribute.String("locator", locator.String()),
		attribute.String("condition", string(o.condition)),
	)
	defer func() {
		step.End(err)
	}()

	var id entity.ElementID

	switch o.condition {
	case entity.ConditionVisible:
		id, err = r.poller.Visible(ctx, locator, o.timeout)
	case entity.ConditionPresent:
		id, err = r.poller.Present(ctx, locator, o.timeout)
	case entity.ConditionClickable:
		id, err = r.poller.Clickable(ctx, locator, o.timeout)
	default:
		return nil, apperr.InvalidReqError(op, "condition",
			fmt.Errorf("condition %q does not resolve a single element", o.condition))
	}

	if err != nil {
		return nil, resolutionErr(op, locator, o.condition, err)
	}

	logger.Debug("Element resolved", zap.String(logg.ElementID, string(id)))

	return r.newElement(id, &locator), nil
}

// Elements waits for locator to match a set satisfying the condition, any
// visible by default. With any visible only the displayed matches are kept.
func (r *Resolver) Elements(ctx context.Context, locator entity.Locator, opts ...Option) (list *List, err error) {
	const op = "Elements"
	o := buildOptions(entity.ConditionAnyVisible, opts)
	logger := r.logger.With(
		zap.String(logg.Operation, op),
		zap.Stringer(logg.Locator, locator),
		zap.String(logg.Condition, string(o.condition)),
	)

	ctx, step := tracing.StartSpan(ctx, r.tracer, logger, op,
		attribute.String("locator", locator.String()),
		attribute.String("condition", string(o.condition)),
	)
	defer func() {
		step.End(err)
	}()

	var ids []entity.ElementID

	switch o.condition {
	case entity.ConditionAnyVisible, entity.ConditionVisible:
		ids, err = r.poller.AnyVisible(ctx, locator, o.timeout)
	case entity.ConditionPresent:
		ids, err = r.poller.AllPresent(ctx, locator, o.timeout)
	case entity.ConditionAllVisible:
		ids, err = r.poller.AllVisible(ctx, locator, o.timeout)
	default:
		return nil, apperr.InvalidReqError(op, "condition",
			fmt.Errorf("condition %q does not resolve a collection", o.condition))
	}

	if err != nil {
		return nil, resolutionErr(op, locator, o.condition, err)
	}

	step.SetAttributes(attribute.Int("count", len(ids)))
	logger.Debug("Elements resolved", zap.Int("count", len(ids)))

	return r.newList(ids, &locator), nil
}

// FromID wraps an id without touching the browser. The handle has no
// locator.
func (r *Resolver) FromID(id entity.ElementID) *Element {
	return r.newElement(id, nil)
}

// FromIDs wraps a pre-fetched list without polling. The result may be
// empty.
func (r *Resolver) FromIDs(ids []entity.ElementID) *List {
	return r.newList(ids, nil)
}

func (r *Resolver) newElement(id entity.ElementID, locator *entity.Locator) *Element {
	return &Element{
		resolver: r,
		id:       id,
		locator:  locator,
	}
}

// newList keeps locator on the list only. Members are individual matches
// and cannot be re-resolved from the shared locator.
func (r *Resolver) newList(ids []entity.ElementID, locator *entity.Locator) *List {
	elements := make([]*Element, len(ids))
	for i, id := range ids {
		elements[i] = r.newElement(id, nil)
	}

	return &List{
		resolver: r,
		elements: elements,
		locator:  locator,
	}
}

func resolutionErr(op string, locator entity.Locator, condition entity.Condition, err error) error {
	return apperr.Wrap(op, apperr.CodeOf(err), err, map[string]any{
		apperr.MetaStage:     apperr.StageResolution,
		apperr.MetaLocator:   locator.String(),
		apperr.MetaCondition: string(condition),
	})
}
