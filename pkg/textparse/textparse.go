// Package textparse extracts values from text read off page elements.
package textparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"web-ui-harness/pkg/apperr"
)

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// Number is a value pulled out of free text. Whole values report IsInteger so
// "Qty: 4" reads back as 4 rather than 4.0.
type Number struct {
	value float64
}

func (n Number) IsInteger() bool {
	return !math.IsInf(n.value, 0) && math.Trunc(n.value) == n.value
}

func (n Number) Int() int64 {
	return int64(n.value)
}

func (n Number) Float() float64 {
	return n.value
}

func (n Number) String() string {
	if n.IsInteger() {
		return strconv.FormatInt(n.Int(), 10)
	}

	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

// Numeric strips every character other than digits and dots from s and
// parses what is left.
func Numeric(s string) (Number, error) {
	stripped := nonNumeric.ReplaceAllString(s, "")
	if stripped == "" {
		return Number{}, &apperr.ParseError{Input: s, Reason: "no digits"}
	}

	value, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return Number{}, &apperr.ParseError{Input: s, Reason: "not a number", Err: err}
	}

	return Number{value: value}, nil
}

// Fragment splits text against format, where each "{}" is a captured field
// and "{{"/"}}" are literal braces, and returns the field at the 1-based
// position which. Matching is case-insensitive and must cover the whole text.
//
//	Fragment("Score: 4/10", "{}: {}/{}", 2) == "4"
func Fragment(text, format string, which int) (string, error) {
	re, fields, err := compileFormat(format)
	if err != nil {
		return "", &apperr.ParseError{Input: text, Format: format, Reason: "invalid format", Err: err}
	}

	if which < 1 || which > fields {
		return "", &apperr.ParseError{
			Input:  text,
			Format: format,
			Reason: "fragment " + strconv.Itoa(which) + " out of range 1.." + strconv.Itoa(fields),
		}
	}

	match := re.FindStringSubmatch(text)
	if match == nil {
		return "", &apperr.ParseError{Input: text, Format: format, Reason: "format does not match"}
	}

	return match[which], nil
}

func compileFormat(format string) (*regexp.Regexp, int, error) {
	var (
		b       strings.Builder
		literal strings.Builder
		fields  int
	)

	flush := func() {
		b.WriteString(regexp.QuoteMeta(literal.String()))
		literal.Reset()
	}

	b.WriteString(`(?is)^`)

	for i := 0; i < len(format); i++ {
		c := format[i]

		switch {
		case c == '{' && i+1 < len(format) && format[i+1] == '{':
			literal.WriteByte('{')
			i++
		case c == '}' && i+1 < len(format) && format[i+1] == '}':
			literal.WriteByte('}')
			i++
		case c == '{' && i+1 < len(format) && format[i+1] == '}':
			flush()
			b.WriteString(`(.+?)`)
			fields++
			i++
		case c == '{' || c == '}':
			return nil, 0, errUnsupportedField(format, i)
		default:
			literal.WriteByte(c)
		}
	}

	flush()
	b.WriteString(`$`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, 0, err
	}

	return re, fields, nil
}

type fieldError struct {
	format string
	pos    int
}

func (e *fieldError) Error() string {
	return "unsupported field at position " + strconv.Itoa(e.pos) + " in " + strconv.Quote(e.format)
}

func errUnsupportedField(format string, pos int) error {
	return &fieldError{format: format, pos: pos}
}
