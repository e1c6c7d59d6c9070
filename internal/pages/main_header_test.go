package pages

import (
	"context"
	"testing"
	"web-ui-harness/internal/entity"
	"web-ui-harness/internal/ports/mocks"
	"web-ui-harness/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockHeader(t *testing.T) (*MainHeader, *mocks.MockDriver) {
	t.Helper()

	base, driver := newMockBase(t)

	return NewMainHeader(MainHeaderParams{Base: base}), driver
}

// expectVisible makes expression resolve to ids, all displayed.
func expectVisible(driver *mocks.MockDriver, expression string, ids ...entity.ElementID) {
	driver.EXPECT().FindElements(gomock.Any(), entity.ByXPath(expression)).Return(ids, nil).AnyTimes()

	for _, id := range ids {
		driver.EXPECT().IsDisplayed(gomock.Any(), id).Return(true, nil).AnyTimes()
	}
}

func expectChild(driver *mocks.MockDriver, parent entity.ElementID, expression string, child entity.ElementID, text string) {
	driver.EXPECT().FindChild(gomock.Any(), parent, entity.ByXPath(expression)).Return(child, nil).AnyTimes()
	driver.EXPECT().Text(gomock.Any(), child).Return(text, nil).AnyTimes()
}

func TestIsMainBannerDisplayed(t *testing.T) {
	header, driver := newMockHeader(t)
	expectVisible(driver, MainBannerImg, "banner")

	shown, err := header.IsMainBannerDisplayed(context.Background())
	require.NoError(t, err)
	assert.True(t, shown)
}

func TestMainBannerMissing(t *testing.T) {
	header, driver := newMockHeader(t)
	driver.EXPECT().FindElements(gomock.Any(), entity.ByXPath(MainBannerImg)).Return(nil, nil).AnyTimes()

	_, err := header.IsMainBannerDisplayed(context.Background())
	timeout, ok := apperr.AsTimeout(err)
	require.True(t, ok)
	assert.Equal(t, entity.ByXPath(MainBannerImg).String(), timeout.Target)
}

func TestHeaderClicks(t *testing.T) {
	header, driver := newMockHeader(t)
	ctx := context.Background()

	verbs := []struct {
		name       string
		expression string
		do         func(context.Context) error
	}{
		{"contact us", ContactUsButton, header.ClickContactUs},
		{"sign in", SignInButton, header.ClickSignIn},
		{"logo", MainLogo, header.ClickMainLogo},
		{"banner", MainBannerImg, header.ClickMainBanner},
		{"search", SearchButton, header.ClickSearchButton},
		{"cart", CartButton, header.ClickCart},
		{"check out", CheckOutButton, header.ClickCheckOut},
		{"women", WomenMenu, header.ClickWomen},
		{"dresses", DressesMenu, header.ClickDresses},
		{"t-shirts", TShirtsMenu, header.ClickTShirts},
	}

	for _, v := range verbs {
		t.Run(v.name, func(t *testing.T) {
			id := entity.ElementID(v.name)
			expectVisible(driver, v.expression, id)
			driver.EXPECT().Click(gomock.Any(), id, entity.ClickOptions{}).Return(nil)

			require.NoError(t, v.do(ctx))
		})
	}
}

func TestHeaderHovers(t *testing.T) {
	header, driver := newMockHeader(t)
	ctx := context.Background()

	expectVisible(driver, CartButton, "cart")
	expectVisible(driver, WomenMenu, "women")
	expectVisible(driver, DressesMenu, "dresses")

	gomock.InOrder(
		driver.EXPECT().Hover(gomock.Any(), entity.ElementID("cart")).Return(nil),
		driver.EXPECT().Hover(gomock.Any(), entity.ElementID("women")).Return(nil),
		driver.EXPECT().Hover(gomock.Any(), entity.ElementID("dresses")).Return(nil),
	)

	require.NoError(t, header.HoverCart(ctx))
	require.NoError(t, header.HoverWomen(ctx))
	require.NoError(t, header.HoverDresses(ctx))
}

func TestTypeSearch(t *testing.T) {
	header, driver := newMockHeader(t)
	expectVisible(driver, SearchInput, "search")

	gomock.InOrder(
		driver.EXPECT().Click(gomock.Any(), entity.ElementID("search"), entity.ClickOptions{}).Return(nil),
		driver.EXPECT().Clear(gomock.Any(), entity.ElementID("search")).Return(nil),
		driver.EXPECT().SendKeys(gomock.Any(), entity.ElementID("search"), "printed dress").Return(nil),
	)

	require.NoError(t, header.TypeSearch(context.Background(), "printed dress"))
}

func TestCartNumbers(t *testing.T) {
	header, driver := newMockHeader(t)
	ctx := context.Background()

	expectVisible(driver, CartQuantityLabel, "qty")
	driver.EXPECT().Text(gomock.Any(), entity.ElementID("qty")).Return("2", nil)

	qty, err := header.CartQuantity(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), qty.Int())

	expectVisible(driver, CartButton, "cart")
	expectVisible(driver, CartTotalAmount, "total")
	driver.EXPECT().Hover(gomock.Any(), entity.ElementID("cart")).Return(nil)
	driver.EXPECT().Text(gomock.Any(), entity.ElementID("total")).Return("$45.51", nil)

	total, err := header.CartTotal(ctx)
	require.NoError(t, err)
	assert.False(t, total.IsInteger())
	assert.InDelta(t, 45.51, total.Float(), 1e-9)
}

func expectCart(driver *mocks.MockDriver) {
	expectVisible(driver, CartButton, "cart")
	driver.EXPECT().Hover(gomock.Any(), entity.ElementID("cart")).Return(nil).AnyTimes()

	expectVisible(driver, CartBoxItems, "item-1", "item-2")
	expectChild(driver, "item-1", CartBoxItemName, "name-1", "Blouse")
	expectChild(driver, "item-2", CartBoxItemName, "name-2", "Printed Dress")
	expectChild(driver, "item-1", CartBoxItemPrice, "price-1", "$27.00")
	expectChild(driver, "item-2", CartBoxItemPrice, "price-2", "$50.99")
}

func TestCartItems(t *testing.T) {
	header, driver := newMockHeader(t)
	ctx := context.Background()
	expectCart(driver)

	names, err := header.CartItemNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Blouse", "Printed Dress"}, names)

	price, err := header.CartItemPrice(ctx, "Printed")
	require.NoError(t, err)
	assert.InDelta(t, 50.99, price.Float(), 1e-9)

	price, err = header.CartItemPrice(ctx, "Blouse")
	require.NoError(t, err)
	assert.True(t, price.IsInteger())
	assert.Equal(t, int64(27), price.Int())

	_, err = header.CartItemPrice(ctx, "Faded Short Sleeve")
	notFound, ok := apperr.AsNotFound(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Blouse", "Printed Dress"}, notFound.Observed)
}

func TestRemoveCartItem(t *testing.T) {
	header, driver := newMockHeader(t)
	expectCart(driver)

	driver.EXPECT().FindChild(gomock.Any(), entity.ElementID("item-1"), entity.ByXPath(CartBoxItemRemoveBtn)).
		Return(entity.ElementID("remove-1"), nil)
	driver.EXPECT().Click(gomock.Any(), entity.ElementID("remove-1"), entity.ClickOptions{}).Return(nil)
	driver.EXPECT().IsAttached(gomock.Any(), entity.ElementID("item-1")).Return(false, nil)

	require.NoError(t, header.RemoveCartItem(context.Background(), "Blouse"))
}
