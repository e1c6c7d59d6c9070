package tracing

import (
	"context"
	"errors"
	"web-ui-harness/pkg/apperr"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	errorCodeKey   = "error.code"
	errorReasonKey = "error.reason"
)

type Span struct {
	span   trace.Span
	logger *zap.Logger
}

func StartSpan(ctx context.Context, tracer trace.Tracer, logger *zap.Logger, name string, attrs ...attribute.KeyValue) (context.Context, *Span) {
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))

	return ctx, &Span{
		span:   span,
		logger: logger,
	}
}

// End closes the span. A failed span is tagged with the apperr code of err
// and, when present, its reason.
func (s *Span) End(err error) {
	defer s.span.End()

	if err == nil {
		s.span.SetStatus(codes.Ok, "")

		return
	}

	code := apperr.CodeOf(err)

	s.span.SetStatus(codes.Error, err.Error())
	s.span.RecordError(err)
	s.span.SetAttributes(attribute.String(errorCodeKey, code))

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		if reason, ok := appErr.Metadata[apperr.MetaReason].(string); ok {
			s.span.SetAttributes(attribute.String(errorReasonKey, reason))
		}
	}

	s.logger.Debug("Span ended with error", zap.String("code", code), zap.Error(err))
}

func (s *Span) AddEvent(name string, attrs ...attribute.KeyValue) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

func (s *Span) SetAttributes(attrs ...attribute.KeyValue) {
	s.span.SetAttributes(attrs...)
}
