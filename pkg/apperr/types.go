package apperr

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeoutError is returned when a wait deadline elapses before its
// condition holds. Target names the locator or element that was polled.
type TimeoutError struct {
	Target    string
	Condition string
	Timeout   time.Duration
	LastErr   error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s to be %s", e.Timeout, e.Target, e.Condition)
	if e.LastErr != nil {
		msg += fmt.Sprintf(" (last error: %v)", e.LastErr)
	}

	return msg
}

func (e *TimeoutError) Unwrap() error {
	return e.LastErr
}

// NotFoundValueError is returned when a search over an already resolved set
// of elements matches nothing. Observed lists every candidate value in the
// order it was read.
type NotFoundValueError struct {
	Wanted   string
	Partial  bool
	Observed []string
}

func (e *NotFoundValueError) Error() string {
	mode := "exact"
	if e.Partial {
		mode = "partial"
	}

	return fmt.Sprintf("no element with %s value %q, observed values: [%s]",
		mode, e.Wanted, quoteJoin(e.Observed))
}

// ParseError is returned when numeric or templated extraction fails.
type ParseError struct {
	Input  string
	Format string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "parse %q", e.Input)
	if e.Format != "" {
		fmt.Fprintf(&b, " with format %q", e.Format)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func AsTimeout(err error) (*TimeoutError, bool) {
	var target *TimeoutError
	ok := errors.As(err, &target)

	return target, ok
}

func AsNotFound(err error) (*NotFoundValueError, bool) {
	var target *NotFoundValueError
	ok := errors.As(err, &target)

	return target, ok
}

func AsParse(err error) (*ParseError, bool) {
	var target *ParseError
	ok := errors.As(err, &target)

	return target, ok
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}

	return strings.Join(quoted, ", ")
}
