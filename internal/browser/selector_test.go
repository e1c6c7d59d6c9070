package browser

import (
	"testing"
	"web-ui-harness/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorFor(t *testing.T) {
	tests := []struct {
		name    string
		locator entity.Locator
		want    string
	}{
		{name: "css", locator: entity.ByCSS("div.cart > a"), want: "css=div.cart > a"},
		{name: "xpath", locator: entity.ByXPath("//a[@class='login']"), want: "xpath=//a[@class='login']"},
		{name: "id", locator: entity.ByID("search_query_top"), want: `css=[id="search_query_top"]`},
		{name: "name", locator: entity.ByName("submit_search"), want: `css=[name="submit_search"]`},
		{name: "tag", locator: entity.ByTag("img"), want: "css=img"},
		{name: "class", locator: entity.ByClass("logo"), want: "css=.logo"},
		{name: "link text", locator: entity.ByLinkText("Sign in"), want: `xpath=//a[normalize-space(.)="Sign in"]`},
		{name: "partial link text", locator: entity.ByPartialLinkText("Sign"), want: `xpath=//a[contains(., "Sign")]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectorFor(tt.locator)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectorForRejectsInvalidLocators(t *testing.T) {
	_, err := selectorFor(entity.Locator{Strategy: entity.StrategyCSS})
	assert.Error(t, err)

	_, err = selectorFor(entity.Locator{Strategy: "shadow", Expression: "x"})
	assert.Error(t, err)
}

func TestChildSelectorForRebasesXPath(t *testing.T) {
	got, err := childSelectorFor(entity.ByXPath("//span[@class='price']"))
	require.NoError(t, err)
	assert.Equal(t, "xpath=.//span[@class='price']", got)

	got, err = childSelectorFor(entity.ByCSS("span.price"))
	require.NoError(t, err)
	assert.Equal(t, "css=span.price", got)
}
