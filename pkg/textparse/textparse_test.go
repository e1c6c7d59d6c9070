package textparse

import (
	"testing"
	"web-ui-harness/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeric(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		isInteger bool
		str       string
		float     float64
	}{
		{name: "price", input: "Total: $12.50", isInteger: false, str: "12.5", float: 12.5},
		{name: "quantity", input: "Qty: 4", isInteger: true, str: "4", float: 4},
		{name: "whole with decimals", input: "$16.00", isInteger: true, str: "16", float: 16},
		{name: "digits spread over text", input: "1 2 3 items", isInteger: true, str: "123", float: 123},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Numeric(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.isInteger, n.IsInteger())
			assert.Equal(t, tt.str, n.String())
			assert.InDelta(t, tt.float, n.Float(), 1e-9)
		})
	}
}

func TestNumericQuantityIsInteger(t *testing.T) {
	n, err := Numeric("Qty: 4")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n.Int())
}

func TestNumericFailures(t *testing.T) {
	for _, input := range []string{"", "no digits here", "v1.2.3", "..."} {
		t.Run(input, func(t *testing.T) {
			_, err := Numeric(input)
			require.Error(t, err)

			perr, ok := apperr.AsParse(err)
			require.True(t, ok)
			assert.Equal(t, input, perr.Input)
		})
	}
}

func TestFragment(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		format string
		which  int
		want   string
	}{
		{name: "second", text: "Score: 4/10", format: "{}: {}/{}", which: 2, want: "4"},
		{name: "third", text: "Score: 4/10", format: "{}: {}/{}", which: 3, want: "10"},
		{name: "first with spaces", text: "This is my score: 4/10", format: "{}: {}/{}", which: 1, want: "This is my score"},
		{name: "case insensitive literal", text: "TOTAL = 7", format: "total = {}", which: 1, want: "7"},
		{name: "regex characters are literal", text: "(3) items [x]", format: "({}) items [{}]", which: 2, want: "x"},
		{name: "escaped braces", text: "{a} 5", format: "{{a}} {}", which: 1, want: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fragment(tt.text, tt.format, tt.which)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFragmentFailures(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		format string
		which  int
	}{
		{name: "no match", text: "Score 4 of 10", format: "{}: {}/{}", which: 1},
		{name: "fragment zero", text: "Score: 4/10", format: "{}: {}/{}", which: 0},
		{name: "fragment past end", text: "Score: 4/10", format: "{}: {}/{}", which: 4},
		{name: "named field", text: "Score: 4", format: "{label}: {}", which: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fragment(tt.text, tt.format, tt.which)
			require.Error(t, err)

			perr, ok := apperr.AsParse(err)
			require.True(t, ok)
			assert.Equal(t, tt.format, perr.Format)
		})
	}
}
