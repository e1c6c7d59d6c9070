package entity

import (
	"fmt"
	"strings"
)

type Strategy string

const (
	StrategyID              Strategy = "id"
	StrategyXPath           Strategy = "xpath"
	StrategyCSS             Strategy = "css selector"
	StrategyLinkText        Strategy = "link text"
	StrategyPartialLinkText Strategy = "partial link text"
	StrategyName            Strategy = "name"
	StrategyTag             Strategy = "tag name"
	StrategyClass           Strategy = "class name"
)

var strategies = map[string]Strategy{
	"id":                StrategyID,
	"xpath":             StrategyXPath,
	"css":               StrategyCSS,
	"css selector":      StrategyCSS,
	"link text":         StrategyLinkText,
	"partial link text": StrategyPartialLinkText,
	"name":              StrategyName,
	"tag":               StrategyTag,
	"tag name":          StrategyTag,
	"class":             StrategyClass,
	"class name":        StrategyClass,
}

// ParseStrategy accepts the WebDriver strategy names ("css selector",
// "tag name", ...) and their short forms.
func ParseStrategy(s string) (Strategy, error) {
	strategy, ok := strategies[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown locator strategy %q", s)
	}

	return strategy, nil
}

// Locator identifies elements by a strategy and an expression. It is a plain
// value: two locators are interchangeable only when both fields are equal.
type Locator struct {
	Strategy   Strategy
	Expression string
}

func ByID(id string) Locator { return Locator{Strategy: StrategyID, Expression: id} }
func ByXPath(xpath string) Locator { return Locator{Strategy: StrategyXPath, Expression: xpath} }
func ByCSS(css string) Locator { return Locator{Strategy: StrategyCSS, Expression: css} }
func ByLinkText(text string) Locator { return Locator{Strategy: StrategyLinkText, Expression: text} }
func ByName(name string) Locator { return Locator{Strategy: StrategyName, Expression: name} }
func ByTag(tag string) Locator { return Locator{Strategy: StrategyTag, Expression: tag} }
func ByClass(class string) Locator { return Locator{Strategy: StrategyClass, Expression: class} }
func ByPartialLinkText(text string) Locator {
	return Locator{Strategy: StrategyPartialLinkText, Expression: text}
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.Strategy, l.Expression)
}

func (l Locator) IsZero() bool {
	return l.Expression == ""
}

// XPathLiteral quotes s for use inside an XPath expression. XPath 1.0 has
// no escape sequences, so strings holding both quote kinds go through
// concat().
func XPathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}

	parts := strings.Split(s, `"`)
	args := make([]string, 0, len(parts)*2)

	for i, part := range parts {
		if i > 0 {
			args = append(args, `'"'`)
		}

		if part != "" {
			args = append(args, `"`+part+`"`)
		}
	}

	return "concat(" + strings.Join(args, ", ") + ")"
}
