package wait

import (
	"context"
	"errors"
	"testing"
	"time"
	"web-ui-harness/internal/browser/browsertest"
	"web-ui-harness/internal/entity"
	"web-ui-harness/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalog = `<html><body>
<ul id="products">
  <li class="product" style="display:none">Blouse</li>
  <li class="product">Dress</li>
  <li class="product">Skirt</li>
</ul>
<button id="buy" disabled>Buy</button>
<button id="later" style="visibility: hidden">Later</button>
<div id="spinner">Loading</div>
</body></html>`

func TestPresentIgnoresVisibility(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)

	id, err := p.Present(context.Background(), entity.ByCSS("li.product"), 0)
	require.NoError(t, err)
	assert.Equal(t, d.IDOf("li.product"), id)

	all, err := p.AllPresent(context.Background(), entity.ByCSS("li.product"), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestVisibleReturnsFirstDisplayedMatch(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)

	id, err := p.Visible(context.Background(), entity.ByCSS("li.product"), 0)
	require.NoError(t, err)

	text, err := d.Text(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Dress", text)
}

func TestVisibleWaitsForElementToAppear(t *testing.T) {
	d := browsertest.New(t, catalog)
	d.OnFind = func(call int) {
		if call == 4 {
			d.Append("#products", `<li class="sale">Hat</li>`)
		}
	}
	p := newTestPoller(t, d)

	id, err := p.Visible(context.Background(), entity.ByCSS("li.sale"), 0)
	require.NoError(t, err)
	assert.Equal(t, d.IDOf("li.sale"), id)
	assert.Equal(t, 4, d.FindCalls())
}

func TestVisibleTimesOutNamingLocator(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)

	_, err := p.Visible(context.Background(), entity.ByID("later"), 0)
	require.Error(t, err)

	timeout, ok := apperr.AsTimeout(err)
	require.True(t, ok)
	assert.Equal(t, `id=later`, timeout.Target)
	assert.Equal(t, testTimeout, timeout.Timeout)
}

func TestTransientFindErrorsAreRetried(t *testing.T) {
	d := browsertest.New(t, catalog)
	d.FindErrs = []error{errors.New("flaky"), errors.New("flaky")}
	p := newTestPoller(t, d)

	_, err := p.Visible(context.Background(), entity.ByID("spinner"), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, d.FindCalls())
}

func TestInvalidLocatorFailsWithoutWaiting(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)

	start := time.Now()
	_, err := p.Visible(context.Background(), entity.ByXPath("//li"), time.Minute)
	require.Error(t, err)

	assert.Less(t, time.Since(start), testTimeout)
	assert.Equal(t, 1, d.FindCalls())
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidArgument))
	assert.ErrorIs(t, err, browsertest.ErrXPathUnsupported)
	_, isTimeout := apperr.AsTimeout(err)
	assert.False(t, isTimeout)
}

func TestPollsReleaseTheIDsTheyDiscard(t *testing.T) {
	ctx := context.Background()
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)
	blouse := d.IDOf("li.product")

	dress, err := p.Visible(ctx, entity.ByCSS("li.product"), 0)
	require.NoError(t, err)
	skirt := d.IDOf("li.product:last-child")
	assert.Equal(t, []entity.ElementID{blouse, skirt}, d.Released())

	visible, err := p.AnyVisible(ctx, entity.ByCSS("li.product"), 0)
	require.NoError(t, err)
	assert.Equal(t, []entity.ElementID{dress, skirt}, visible)
	assert.Equal(t, []entity.ElementID{blouse, skirt, blouse}, d.Released())

	_, err = p.AllPresent(ctx, entity.ByCSS("li.product"), 0)
	require.NoError(t, err)
	assert.Len(t, d.Released(), 3)
}

func TestTimedOutPollsReleaseEveryMatch(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)

	_, err := p.Visible(context.Background(), entity.ByID("later"), 20*time.Millisecond)
	require.Error(t, err)

	released := d.Released()
	assert.Len(t, released, d.FindCalls())
	for _, id := range released {
		assert.Equal(t, d.IDOf("#later"), id)
	}

	require.NoError(t, p.InvisibleLocator(context.Background(), entity.ByID("later"), 0))
	assert.Len(t, d.Released(), d.FindCalls())
}

func TestVisibleElement(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)
	hidden := d.IDOf("#later")

	_, err := p.VisibleElement(context.Background(), hidden, 0)
	require.Error(t, err)

	d.RemoveAttr("#later", "style")
	id, err := p.VisibleElement(context.Background(), hidden, 0)
	require.NoError(t, err)
	assert.Equal(t, hidden, id)
}

func TestAnyVisibleKeepsDOMOrder(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)

	ids, err := p.AnyVisible(context.Background(), entity.ByCSS("li.product"), 0)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	var texts []string
	for _, id := range ids {
		text, err := d.Text(context.Background(), id)
		require.NoError(t, err)
		texts = append(texts, text)
	}
	assert.Equal(t, []string{"Dress", "Skirt"}, texts)
}

func TestAllVisibleRequiresEveryMember(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)

	_, err := p.AllVisible(context.Background(), entity.ByCSS("li.product"), 0)
	_, isTimeout := apperr.AsTimeout(err)
	require.True(t, isTimeout)

	d.RemoveAttr("li.product", "style")
	ids, err := p.AllVisible(context.Background(), entity.ByCSS("li.product"), 0)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
}

func TestAllVisibleFailsOnEmptySet(t *testing.T) {
	p := newTestPoller(t, browsertest.New(t, catalog))

	_, err := p.AllVisible(context.Background(), entity.ByCSS("li.missing"), 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeTimeout))

	_, err = p.AllVisibleElements(context.Background(), nil, 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeTimeout))
}

func TestClickableSkipsDisabled(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)

	_, err := p.Clickable(context.Background(), entity.ByID("buy"), 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeTimeout))

	polls := 0
	d.OnFind = func(int) {
		if polls++; polls == 2 {
			d.RemoveAttr("#buy", "disabled")
		}
	}

	id, err := p.Clickable(context.Background(), entity.ByID("buy"), 0)
	require.NoError(t, err)
	assert.Equal(t, d.IDOf("#buy"), id)
}

func TestInvisibleLocator(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)

	require.NoError(t, p.InvisibleLocator(context.Background(), entity.ByID("nothing"), 0))
	require.NoError(t, p.InvisibleLocator(context.Background(), entity.ByID("later"), 0))

	polls := 0
	d.OnFind = func(int) {
		if polls++; polls == 3 {
			d.Remove("#spinner")
		}
	}
	require.NoError(t, p.InvisibleLocator(context.Background(), entity.ByID("spinner"), 0))
	assert.Equal(t, 3, polls)
}

func TestInvisibleElementAndStale(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)
	spinner := d.IDOf("#spinner")

	err := p.Stale(context.Background(), spinner, 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeTimeout))

	d.SetAttr("#spinner", "hidden", "")
	require.NoError(t, p.InvisibleElement(context.Background(), spinner, 0))

	err = p.Stale(context.Background(), spinner, 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeTimeout))

	d.Remove("#spinner")
	require.NoError(t, p.Stale(context.Background(), spinner, 0))
	require.NoError(t, p.InvisibleElement(context.Background(), spinner, 0))
}

func TestTabCount(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)

	require.NoError(t, p.TabCount(context.Background(), 1, 0))

	err := p.TabCount(context.Background(), 2, 0)
	timeout, ok := apperr.AsTimeout(err)
	require.True(t, ok)
	assert.Equal(t, "timed out after 150ms waiting for number of tabs to be 2", timeout.Error())

	require.NoError(t, d.OpenTab(context.Background()))
	require.NoError(t, p.TabCount(context.Background(), 2, 0))
}

func TestURLPresent(t *testing.T) {
	d := browsertest.New(t, catalog)
	p := newTestPoller(t, d)

	_, err := p.URLPresent(context.Background(), 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeTimeout))

	d.SetURL("http://automationpractice.com/index.php")
	got, err := p.URLPresent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "http://automationpractice.com/index.php", got)
}
