package element

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"web-ui-harness/internal/entity"
	"web-ui-harness/internal/wait"
	"web-ui-harness/pkg/apperr"
)

// List is an ordered set of elements, in DOM order as returned by the
// lookup that produced it.
type List struct {
	resolver *Resolver
	elements []*Element
	locator  *entity.Locator
}

func (l *List) Len() int {
	return len(l.elements)
}

// Elements returns a copy of the members.
func (l *List) Elements() []*Element {
	return append([]*Element(nil), l.elements...)
}

func (l *List) Locator() (entity.Locator, bool) {
	if l.locator == nil {
		return entity.Locator{}, false
	}

	return *l.locator, true
}

func (l *List) IDs() []entity.ElementID {
	ids := make([]entity.ElementID, len(l.elements))
	for i, el := range l.elements {
		ids[i] = el.id
	}

	return ids
}

// ClickAll clicks every member in order and stops at the first failure.
func (l *List) ClickAll(ctx context.Context) error {
	for _, el := range l.elements {
		if err := el.Click(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (l *List) Texts(ctx context.Context) ([]string, error) {
	texts := make([]string, 0, len(l.elements))

	for _, el := range l.elements {
		text, err := el.Text(ctx)
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}

	return texts, nil
}

func (l *List) Attributes(ctx context.Context, name string) ([]string, error) {
	values := make([]string, 0, len(l.elements))

	for _, el := range l.elements {
		value, err := el.Attribute(ctx, name)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return values, nil
}

// Nth returns the n-th member, counting from 1.
func (l *List) Nth(n int) (*Element, error) {
	const op = "List.Nth"

	if n < 1 || n > len(l.elements) {
		return nil, apperr.InvalidReqError(op, "n",
			fmt.Errorf("position %d out of range [1, %d]", n, len(l.elements)))
	}

	return l.elements[n-1], nil
}

func (l *List) Random() (*Element, error) {
	const op = "List.Random"

	if len(l.elements) == 0 {
		return nil, apperr.Wrap(op, apperr.CodeInvalidArgument, errors.New("collection is empty"), map[string]any{
			apperr.MetaReason: "empty_collection",
		})
	}

	return l.elements[rand.IntN(len(l.elements))], nil
}

// RandomElements returns min(k, Len) distinct members in random order. A
// negative k is treated as zero.
func (l *List) RandomElements(k int) *List {
	k = max(0, min(k, len(l.elements)))

	picked := make([]*Element, 0, k)
	for _, i := range rand.Perm(len(l.elements))[:k] {
		picked = append(picked, l.elements[i])
	}

	return &List{resolver: l.resolver, elements: picked}
}

// WaitForAllVisible waits until every member is displayed. A list resolved
// from a locator re-queries it on each poll and returns the live set; a
// list built from ids waits on those ids.
func (l *List) WaitForAllVisible(ctx context.Context, opts ...Option) (*List, error) {
	const op = "List.WaitForAllVisible"
	o := buildOptions(entity.ConditionAllVisible, opts)

	if l.locator != nil {
		return l.resolver.Elements(ctx, *l.locator, append(opts, WithCondition(entity.ConditionAllVisible))...)
	}

	ids, err := l.resolver.poller.AllVisibleElements(ctx, l.IDs(), o.timeout)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeOf(err), err, map[string]any{
			apperr.MetaStage:     apperr.StageResolution,
			apperr.MetaCondition: string(entity.ConditionAllVisible),
		})
	}

	return l.resolver.newList(ids, nil), nil
}

// DelayedWaitForAnyVisible waits for any match to be visible, sleeps for
// delay, then waits again and returns the second result. It catches
// members that render after the first one.
func (l *List) DelayedWaitForAnyVisible(ctx context.Context, delay time.Duration, opts ...Option) (*List, error) {
	const op = "List.DelayedWaitForAnyVisible"

	if l.locator == nil {
		return nil, apperr.Wrap(op, apperr.CodeInvalidArgument, ErrNoLocator, map[string]any{
			apperr.MetaReason: "no_locator",
		})
	}

	opts = append(opts, WithCondition(entity.ConditionAnyVisible))

	if _, err := l.resolver.Elements(ctx, *l.locator, opts...); err != nil {
		return nil, err
	}

	if err := wait.Sleep(ctx, delay); err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaStage: apperr.StageResolution,
		})
	}

	return l.resolver.Elements(ctx, *l.locator, opts...)
}

// InnerElements looks up, without waiting, the first descendant matching
// locator under every member, keeping member order.
func (l *List) InnerElements(ctx context.Context, locator entity.Locator) (*List, error) {
	inner := make([]*Element, 0, len(l.elements))

	for _, el := range l.elements {
		child, err := el.Child(ctx, locator)
		if err != nil {
			return nil, err
		}
		inner = append(inner, child)
	}

	return &List{resolver: l.resolver, elements: inner}, nil
}

// reader reads the value a search compares against.
type reader func(ctx context.Context, el *Element) (string, error)

func ownText(ctx context.Context, el *Element) (string, error) {
	return el.Text(ctx)
}

func ownAttribute(name string) reader {
	return func(ctx context.Context, el *Element) (string, error) {
		value, err := el.Attribute(ctx, name)

		return stripQuotes(value), err
	}
}

func innerText(locator entity.Locator) reader {
	return func(ctx context.Context, el *Element) (string, error) {
		child, err := el.Child(ctx, locator)
		if err != nil {
			return "", err
		}
		defer child.release(ctx)

		return child.Text(ctx)
	}
}

func innerAttribute(locator entity.Locator, name string) reader {
	return func(ctx context.Context, el *Element) (string, error) {
		child, err := el.Child(ctx, locator)
		if err != nil {
			return "", err
		}
		defer child.release(ctx)

		value, err := child.Attribute(ctx, name)

		return stripQuotes(value), err
	}
}

func stripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

func matches(value, wanted string, partial bool) bool {
	if partial {
		return strings.Contains(value, wanted)
	}

	return value == wanted
}

// search scans members in order. With first set it stops at the first
// match; otherwise it collects every match. No match is a not_found error
// carrying every value read.
func (l *List) search(ctx context.Context, op, wanted string, partial, first bool, read reader) ([]*Element, error) {
	var (
		found    []*Element
		observed = make([]string, 0, len(l.elements))
	)

	for _, el := range l.elements {
		value, err := read(ctx, el)
		if err != nil {
			return nil, apperr.Wrap(op, apperr.CodeOf(err), err, map[string]any{
				apperr.MetaStage:     apperr.StageSearch,
				apperr.MetaElementID: string(el.id),
			})
		}
		observed = append(observed, value)

		if !matches(value, wanted, partial) {
			continue
		}

		found = append(found, el)
		if first {
			return found, nil
		}
	}

	if len(found) == 0 {
		return nil, apperr.Wrap(op, apperr.CodeNotFound, &apperr.NotFoundValueError{
			Wanted:   wanted,
			Partial:  partial,
			Observed: observed,
		}, map[string]any{
			apperr.MetaReason: "no_matching_value",
			apperr.MetaStage:  apperr.StageSearch,
		})
	}

	return found, nil
}

func (l *List) searchOne(ctx context.Context, op, wanted string, partial bool, read reader) (*Element, error) {
	found, err := l.search(ctx, op, wanted, partial, true, read)
	if err != nil {
		return nil, err
	}

	return found[0], nil
}

func (l *List) searchAll(ctx context.Context, op, wanted string, partial bool, read reader) (*List, error) {
	found, err := l.search(ctx, op, wanted, partial, false, read)
	if err != nil {
		return nil, err
	}

	return &List{resolver: l.resolver, elements: found}, nil
}

// ElementByText returns the first member whose text equals, or with
// partial contains, text.
func (l *List) ElementByText(ctx context.Context, text string, partial bool) (*Element, error) {
	return l.searchOne(ctx, "List.ElementByText", text, partial, ownText)
}

func (l *List) ElementsByText(ctx context.Context, text string, partial bool) (*List, error) {
	return l.searchAll(ctx, "List.ElementsByText", text, partial, ownText)
}

// ElementByAttribute compares against the attribute with double quotes
// removed.
func (l *List) ElementByAttribute(ctx context.Context, name, value string, partial bool) (*Element, error) {
	return l.searchOne(ctx, "List.ElementByAttribute", value, partial, ownAttribute(name))
}

func (l *List) ElementsByAttribute(ctx context.Context, name, value string, partial bool) (*List, error) {
	return l.searchAll(ctx, "List.ElementsByAttribute", value, partial, ownAttribute(name))
}

// ElementByInnerText compares against the text of the first descendant of
// each member matching inner. A member without such a descendant fails the
// search.
func (l *List) ElementByInnerText(ctx context.Context, inner entity.Locator, text string, partial bool) (*Element, error) {
	return l.searchOne(ctx, "List.ElementByInnerText", text, partial, innerText(inner))
}

func (l *List) ElementsByInnerText(ctx context.Context, inner entity.Locator, text string, partial bool) (*List, error) {
	return l.searchAll(ctx, "List.ElementsByInnerText", text, partial, innerText(inner))
}

func (l *List) ElementByInnerAttribute(ctx context.Context, inner entity.Locator, name, value string, partial bool) (*Element, error) {
	return l.searchOne(ctx, "List.ElementByInnerAttribute", value, partial, innerAttribute(inner, name))
}

func (l *List) ElementsByInnerAttribute(ctx context.Context, inner entity.Locator, name, value string, partial bool) (*List, error) {
	return l.searchAll(ctx, "List.ElementsByInnerAttribute", value, partial, innerAttribute(inner, name))
}
