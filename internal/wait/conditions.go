package wait

import (
	"context"
	"net/url"
	"strconv"
	"time"
	"web-ui-harness/internal/entity"
	"web-ui-harness/pkg/apperr"
)

const (
	tabsTarget = "number of tabs"
	urlTarget  = "current url"
)

func elementTarget(id entity.ElementID) string {
	return "element " + string(id)
}

// Present waits for at least one match and returns the first in DOM order.
func (p *Poller) Present(ctx context.Context, locator entity.Locator, timeout time.Duration) (entity.ElementID, error) {
	return Until(ctx, p, locator.String(), entity.ConditionPresent, timeout,
		func(ctx context.Context) (first entity.ElementID, done bool, err error) {
			ids, err := p.driver.FindElements(ctx, locator)
			defer func() { p.release(ctx, ids, first) }()

			if err != nil || len(ids) == 0 {
				return "", false, err
			}

			return ids[0], true, nil
		})
}

// AllPresent waits for at least one match and returns every match.
func (p *Poller) AllPresent(ctx context.Context, locator entity.Locator, timeout time.Duration) ([]entity.ElementID, error) {
	return Until(ctx, p, locator.String(), entity.ConditionPresent, timeout,
		func(ctx context.Context) ([]entity.ElementID, bool, error) {
			ids, err := p.driver.FindElements(ctx, locator)
			if err != nil || len(ids) == 0 {
				return nil, false, err
			}

			return ids, true, nil
		})
}

// Visible returns the first match that is displayed.
func (p *Poller) Visible(ctx context.Context, locator entity.Locator, timeout time.Duration) (entity.ElementID, error) {
	return Until(ctx, p, locator.String(), entity.ConditionVisible, timeout,
		func(ctx context.Context) (found entity.ElementID, done bool, err error) {
			ids, err := p.driver.FindElements(ctx, locator)
			defer func() { p.release(ctx, ids, found) }()

			if err != nil {
				return "", false, err
			}

			for _, id := range ids {
				shown, err := p.displayed(ctx, id)
				if err != nil {
					return "", false, err
				}

				if shown {
					return id, true, nil
				}
			}

			return "", false, nil
		})
}

// VisibleElement waits for an already resolved element to be displayed.
func (p *Poller) VisibleElement(ctx context.Context, id entity.ElementID, timeout time.Duration) (entity.ElementID, error) {
	return Until(ctx, p, elementTarget(id), entity.ConditionVisible, timeout,
		func(ctx context.Context) (entity.ElementID, bool, error) {
			shown, err := p.driver.IsDisplayed(ctx, id)
			if err != nil {
				return "", false, err
			}

			return id, shown, nil
		})
}

// AnyVisible returns the displayed matches in DOM order once there is at
// least one.
func (p *Poller) AnyVisible(ctx context.Context, locator entity.Locator, timeout time.Duration) ([]entity.ElementID, error) {
	return Until(ctx, p, locator.String(), entity.ConditionAnyVisible, timeout,
		func(ctx context.Context) (visible []entity.ElementID, done bool, err error) {
			ids, err := p.driver.FindElements(ctx, locator)
			defer func() { p.release(ctx, ids, visible...) }()

			if err != nil {
				return nil, false, err
			}

			visible, err = p.filterDisplayed(ctx, ids)
			if err != nil || len(visible) == 0 {
				return nil, false, err
			}

			return visible, true, nil
		})
}

// AllVisible re-queries locator on every poll and succeeds once the match
// set is non-empty and every member is displayed. The members of that poll
// are returned.
func (p *Poller) AllVisible(ctx context.Context, locator entity.Locator, timeout time.Duration) ([]entity.ElementID, error) {
	return Until(ctx, p, locator.String(), entity.ConditionAllVisible, timeout,
		func(ctx context.Context) (members []entity.ElementID, done bool, err error) {
			ids, err := p.driver.FindElements(ctx, locator)
			defer func() { p.release(ctx, ids, members...) }()

			if err != nil || len(ids) == 0 {
				return nil, false, err
			}

			done, err = p.allDisplayed(ctx, ids)
			if err != nil || !done {
				return nil, false, err
			}

			return ids, true, nil
		})
}

// AllVisibleElements waits for every element of a fixed, non-empty set to
// be displayed.
func (p *Poller) AllVisibleElements(ctx context.Context, ids []entity.ElementID, timeout time.Duration) ([]entity.ElementID, error) {
	target := "elements"
	switch {
	case len(ids) == 1:
		target = elementTarget(ids[0])
	case len(ids) > 1:
		target = elementTarget(ids[0]) + " and " + strconv.Itoa(len(ids)-1) + " more"
	}

	return Until(ctx, p, target, entity.ConditionAllVisible, timeout,
		func(ctx context.Context) ([]entity.ElementID, bool, error) {
			if len(ids) == 0 {
				return nil, false, nil
			}

			done, err := p.allDisplayed(ctx, ids)
			if err != nil {
				return nil, false, err
			}

			return ids, done, nil
		})
}

// Clickable returns the first match that is displayed and enabled.
func (p *Poller) Clickable(ctx context.Context, locator entity.Locator, timeout time.Duration) (entity.ElementID, error) {
	return Until(ctx, p, locator.String(), entity.ConditionClickable, timeout,
		func(ctx context.Context) (found entity.ElementID, done bool, err error) {
			ids, err := p.driver.FindElements(ctx, locator)
			defer func() { p.release(ctx, ids, found) }()

			if err != nil {
				return "", false, err
			}

			for _, id := range ids {
				shown, err := p.displayed(ctx, id)
				if err != nil {
					return "", false, err
				}

				if !shown {
					continue
				}

				enabled, err := p.driver.IsEnabled(ctx, id)
				if err != nil {
					return "", false, err
				}

				if enabled {
					return id, true, nil
				}
			}

			return "", false, nil
		})
}

// InvisibleLocator succeeds when nothing matches or no match is displayed.
func (p *Poller) InvisibleLocator(ctx context.Context, locator entity.Locator, timeout time.Duration) error {
	_, err := Until(ctx, p, locator.String(), entity.ConditionInvisible, timeout,
		func(ctx context.Context) (struct{}, bool, error) {
			ids, err := p.driver.FindElements(ctx, locator)
			defer p.release(ctx, ids)

			if err != nil {
				return struct{}{}, false, err
			}

			visible, err := p.filterDisplayed(ctx, ids)
			if err != nil {
				return struct{}{}, false, err
			}

			return struct{}{}, len(visible) == 0, nil
		})

	return err
}

// InvisibleElement succeeds when the element is detached or not displayed.
func (p *Poller) InvisibleElement(ctx context.Context, id entity.ElementID, timeout time.Duration) error {
	_, err := Until(ctx, p, elementTarget(id), entity.ConditionInvisible, timeout,
		func(ctx context.Context) (struct{}, bool, error) {
			attached, err := p.driver.IsAttached(ctx, id)
			if err != nil {
				return struct{}{}, false, err
			}

			if !attached {
				return struct{}{}, true, nil
			}

			shown, err := p.displayed(ctx, id)
			if err != nil {
				return struct{}{}, false, err
			}

			return struct{}{}, !shown, nil
		})

	return err
}

// Stale succeeds once the element is no longer attached to the document.
func (p *Poller) Stale(ctx context.Context, id entity.ElementID, timeout time.Duration) error {
	_, err := Until(ctx, p, elementTarget(id), entity.ConditionStale, timeout,
		func(ctx context.Context) (struct{}, bool, error) {
			attached, err := p.driver.IsAttached(ctx, id)
			if err != nil {
				return struct{}{}, false, err
			}

			return struct{}{}, !attached, nil
		})

	return err
}

// TabCount waits for exactly n open tabs.
func (p *Poller) TabCount(ctx context.Context, n int, timeout time.Duration) error {
	_, err := Until(ctx, p, tabsTarget, entity.Condition(strconv.Itoa(n)), timeout,
		func(ctx context.Context) (struct{}, bool, error) {
			count, err := p.driver.TabCount(ctx)
			if err != nil {
				return struct{}{}, false, err
			}

			return struct{}{}, count == n, nil
		})

	return err
}

// URLPresent waits until the current URL has a host and returns it.
func (p *Poller) URLPresent(ctx context.Context, timeout time.Duration) (string, error) {
	return Until(ctx, p, urlTarget, entity.ConditionPresent, timeout,
		func(ctx context.Context) (string, bool, error) {
			current, err := p.driver.CurrentURL(ctx)
			if err != nil {
				return "", false, err
			}

			parsed, err := url.Parse(current)
			if err != nil {
				return "", false, err
			}

			return current, parsed.Host != "", nil
		})
}

// release hands back the ids of one poll that the caller never sees.
func (p *Poller) release(ctx context.Context, ids []entity.ElementID, kept ...entity.ElementID) {
	if len(ids) == 0 {
		return
	}

	keep := make(map[entity.ElementID]bool, len(kept))
	for _, id := range kept {
		keep[id] = true
	}

	var dropped []entity.ElementID
	for _, id := range ids {
		if !keep[id] {
			dropped = append(dropped, id)
		}
	}

	if len(dropped) > 0 {
		p.driver.Release(ctx, dropped)
	}
}

// displayed treats an element that went stale between lookup and check as
// not displayed.
func (p *Poller) displayed(ctx context.Context, id entity.ElementID) (bool, error) {
	shown, err := p.driver.IsDisplayed(ctx, id)
	if err != nil && apperr.HasCode(err, apperr.CodeStale) {
		return false, nil
	}

	return shown, err
}

func (p *Poller) filterDisplayed(ctx context.Context, ids []entity.ElementID) ([]entity.ElementID, error) {
	var visible []entity.ElementID

	for _, id := range ids {
		shown, err := p.displayed(ctx, id)
		if err != nil {
			return nil, err
		}

		if shown {
			visible = append(visible, id)
		}
	}

	return visible, nil
}

func (p *Poller) allDisplayed(ctx context.Context, ids []entity.ElementID) (bool, error) {
	for _, id := range ids {
		shown, err := p.displayed(ctx, id)
		if err != nil {
			return false, err
		}

		if !shown {
			return false, nil
		}
	}

	return true, nil
}
