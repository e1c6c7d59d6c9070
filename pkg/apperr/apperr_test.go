package apperr

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap("Click", CodeActionFailed, cause, nil)

	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Click", appErr.Op)
	assert.Equal(t, CodeActionFailed, appErr.Code)
	assert.NotNil(t, appErr.Metadata)
	assert.Equal(t, "Click: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrapErrorWithReason(t *testing.T) {
	err := WrapErrorWithReason("Navigate", CodeBrowserNotReady, "browser_not_ready")

	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "browser_not_ready", appErr.Metadata[MetaReason])
	assert.Equal(t, "Navigate: browser_not_ready", err.Error())
}

func TestCodeOfAndHasCode(t *testing.T) {
	inner := Wrap("FindElement", CodeNotFound, errors.New("missing"), nil)
	outer := Wrap("Child", CodeActionFailed, inner, nil)

	assert.Equal(t, CodeActionFailed, CodeOf(outer))
	assert.True(t, HasCode(outer, CodeNotFound))
	assert.False(t, HasCode(outer, CodeTimeout))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.False(t, HasCode(nil, CodeInternal))
}

func TestTimeoutError(t *testing.T) {
	last := errors.New("stale element")
	err := Wrap("Element", CodeTimeout, &TimeoutError{
		Target:    "xpath=//img[@class='logo']",
		Condition: "visible",
		Timeout:   2 * time.Second,
		LastErr:   last,
	}, nil)

	timeout, ok := AsTimeout(err)
	require.True(t, ok)
	assert.Equal(t, "visible", timeout.Condition)
	assert.Contains(t, err.Error(), "xpath=//img[@class='logo']")
	assert.Contains(t, err.Error(), "2s")
	assert.ErrorIs(t, err, last)

	_, ok = AsParse(err)
	assert.False(t, ok)
}

func TestNotFoundValueError(t *testing.T) {
	err := fmt.Errorf("search: %w", &NotFoundValueError{
		Wanted:   "Ban",
		Observed: []string{"Apple", "Banana"},
	})

	nf, ok := AsNotFound(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Apple", "Banana"}, nf.Observed)
	assert.Equal(t, `search: no element with exact value "Ban", observed values: ["Apple", "Banana"]`, err.Error())
}

func TestParseError(t *testing.T) {
	err := &ParseError{Input: "Score 4", Format: "{}: {}", Reason: "format does not match"}
	assert.Equal(t, `parse "Score 4" with format "{}: {}": format does not match`, err.Error())

	numeric := &ParseError{Input: "n/a", Reason: "no digits"}
	assert.Equal(t, `parse "n/a": no digits`, numeric.Error())
}
