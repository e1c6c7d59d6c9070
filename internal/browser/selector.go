package browser

import (
	"fmt"
	"strings"
	"web-ui-harness/internal/entity"
)

// selectorFor translates a locator into a playwright selector with an
// explicit engine prefix.
func selectorFor(locator entity.Locator) (string, error) {
	expr := locator.Expression
	if expr == "" {
		return "", fmt.Errorf("empty locator expression for strategy %q", locator.Strategy)
	}

	switch locator.Strategy {
	case entity.StrategyCSS:
		return "css=" + expr, nil
	case entity.StrategyXPath:
		return "xpath=" + expr, nil
	case entity.StrategyID:
		return fmt.Sprintf("css=[id=%s]", cssString(expr)), nil
	case entity.StrategyName:
		return fmt.Sprintf("css=[name=%s]", cssString(expr)), nil
	case entity.StrategyTag:
		return "css=" + expr, nil
	case entity.StrategyClass:
		return "css=." + expr, nil
	case entity.StrategyLinkText:
		return fmt.Sprintf("xpath=//a[normalize-space(.)=%s]", entity.XPathLiteral(expr)), nil
	case entity.StrategyPartialLinkText:
		return fmt.Sprintf("xpath=//a[contains(., %s)]", entity.XPathLiteral(expr)), nil
	default:
		return "", fmt.Errorf("unsupported locator strategy %q", locator.Strategy)
	}
}

// childSelectorFor is selectorFor scoped to a parent element. XPath
// expressions starting at the document root are rewritten to the context
// node, matching WebDriver's find-from-element behaviour for "//x".
func childSelectorFor(locator entity.Locator) (string, error) {
	selector, err := selectorFor(locator)
	if err != nil {
		return "", err
	}

	if rest, ok := strings.CutPrefix(selector, "xpath=//"); ok {
		return "xpath=.//" + rest, nil
	}

	return selector, nil
}

func cssString(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
