// Package steps binds step texts to page object calls for the storefront
// scenarios.
package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"web-ui-harness/internal/config"
	"web-ui-harness/internal/pages"
	"web-ui-harness/internal/scenario"

	"go.uber.org/fx"
)

var ErrLogoHidden = errors.New("main logo is not displayed")

type Storefront struct {
	base    *pages.Base
	header  *pages.MainHeader
	baseURL string
}

type Params struct {
	fx.In

	Config *config.Config
	Base   *pages.Base
	Header *pages.MainHeader
}

func NewStorefront(params Params) *Storefront {
	return &Storefront{
		base:    params.Base,
		header:  params.Header,
		baseURL: params.Config.EnvironmentConfig.BaseURL(),
	}
}

func (s *Storefront) OpenMainPage(ctx context.Context) error {
	_, err := s.base.Open(ctx, s.baseURL)

	return err
}

func (s *Storefront) SeeMainLogo(ctx context.Context) error {
	shown, err := s.header.IsMainBannerDisplayed(ctx)
	if err != nil {
		return err
	}

	if !shown {
		return ErrLogoHidden
	}

	return nil
}

func (s *Storefront) Search(query string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := s.header.TypeSearch(ctx, query); err != nil {
			return err
		}

		return s.header.ClickSearchButton(ctx)
	}
}

func (s *Storefront) URLContains(fragment string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		current, err := s.base.URL(ctx)
		if err != nil {
			return err
		}

		if !strings.Contains(current, fragment) {
			return fmt.Errorf("current url %q does not contain %q", current, fragment)
		}

		return nil
	}
}

// Scenarios returns the storefront suite in run order.
func (s *Storefront) Scenarios() []scenario.Scenario {
	openMainPage := scenario.Step{Keyword: scenario.When, Text: "The user opens up main page", Run: s.OpenMainPage}

	return []scenario.Scenario{
		{
			Name: "Main page shows the logo",
			Steps: []scenario.Step{
				openMainPage,
				{Keyword: scenario.Then, Text: "The user sees main logo", Run: s.SeeMainLogo},
			},
		},
		{
			Name: "Search from the header",
			Steps: []scenario.Step{
				openMainPage,
				{Keyword: scenario.And, Text: `The user searches for "dress"`, Run: s.Search("dress")},
				{Keyword: scenario.Then, Text: `The current url contains "search_query=dress"`, Run: s.URLContains("search_query=dress")},
			},
		},
	}
}
