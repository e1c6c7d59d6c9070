package pages

import (
	"context"
	"web-ui-harness/internal/element"
	"web-ui-harness/pkg/textparse"

	"go.uber.org/fx"
)

// Storefront header catalog. Expressions use the default locator strategy,
// xpath unless configured otherwise.
const (
	MainBannerImg        = "//img[@class='img-responsive']"
	PhoneIcon            = "//span[@class='shop-phone']//i[@class='icon-phone']"
	PhoneOnTop           = "//span[@class='shop-phone']//strong"
	ContactUsButton      = "//div[@id='contact-link']//a"
	SignInButton         = "//a[@class='login']"
	AccountButton        = "//a[@class='account']"
	MainLogo             = "//img[@class='logo img-responsive']"
	SearchInput          = "//input[@id='search_query_top']"
	SearchButton         = "//button[@name='submit_search']"
	CartButton           = "//div[@class='shopping_cart']/a"
	CartEmpty            = "//span[@class='ajax_cart_no_product']"
	CartQuantityLabel    = "//div[@class='shopping_cart']//span[contains(@class, 'ajax_cart_quantity')]"
	CartShippingAmount   = "//span[@class='price cart_block_shipping_cost ajax_cart_shipping_cost']"
	CartTotalAmount      = "//span[@class='price cart_block_total ajax_block_cart_total']"
	CheckOutButton       = "//a[@id='button_order_cart']//span"
	WomenMenu            = "//*[@id='block_top_menu']/ul/li[1]/a"
	DressesMenu          = "//*[@id='block_top_menu']/ul/li[2]/a"
	TShirtsMenu          = "//*[@id='block_top_menu']/ul/li[3]/a"
	WomenDressesSubmenu  = "//ul[contains(@class, 'submenu-container')]//li[@class='sfHover']/a"
	CartBoxItems         = "//dt"
	CartBoxItemName      = "//a[@class='cart_block_product_name']"
	CartBoxItemPrice     = "//span[@class='price']"
	CartBoxItemQuantity  = "//span[@class='quantity']"
	CartBoxItemDetails   = "//div[@class='product-atributes']//a"
	CartBoxItemRemoveBtn = "//a[@class='ajax_cart_block_remove_link']"
)

type MainHeader struct {
	*Base
}

type MainHeaderParams struct {
	fx.In

	Base *Base
}

func NewMainHeader(params MainHeaderParams) *MainHeader {
	return &MainHeader{Base: params.Base}
}

func (h *MainHeader) MainBanner(ctx context.Context) (*element.Element, error) {
	return h.Element(ctx, MainBannerImg)
}

func (h *MainHeader) IsMainBannerDisplayed(ctx context.Context) (bool, error) {
	banner, err := h.MainBanner(ctx)
	if err != nil {
		return false, err
	}

	return banner.IsDisplayed(ctx)
}

func (h *MainHeader) click(ctx context.Context, expression string) error {
	el, err := h.Element(ctx, expression)
	if err != nil {
		return err
	}

	return el.Click(ctx)
}

func (h *MainHeader) hover(ctx context.Context, expression string) error {
	el, err := h.Element(ctx, expression)
	if err != nil {
		return err
	}

	return el.Hover(ctx)
}

func (h *MainHeader) ClickContactUs(ctx context.Context) error {
	return h.click(ctx, ContactUsButton)
}

func (h *MainHeader) ClickSignIn(ctx context.Context) error {
	return h.click(ctx, SignInButton)
}

func (h *MainHeader) ClickMainLogo(ctx context.Context) error {
	return h.click(ctx, MainLogo)
}

func (h *MainHeader) ClickMainBanner(ctx context.Context) error {
	return h.click(ctx, MainBannerImg)
}

// TypeSearch replaces the search box content with query.
func (h *MainHeader) TypeSearch(ctx context.Context, query string) error {
	input, err := h.Element(ctx, SearchInput)
	if err != nil {
		return err
	}

	return input.ClickClearSendKeys(ctx, query)
}

func (h *MainHeader) ClickSearchButton(ctx context.Context) error {
	return h.click(ctx, SearchButton)
}

func (h *MainHeader) ClickCart(ctx context.Context) error {
	return h.click(ctx, CartButton)
}

func (h *MainHeader) ClickCheckOut(ctx context.Context) error {
	return h.click(ctx, CheckOutButton)
}

func (h *MainHeader) ClickWomen(ctx context.Context) error {
	return h.click(ctx, WomenMenu)
}

func (h *MainHeader) ClickDresses(ctx context.Context) error {
	return h.click(ctx, DressesMenu)
}

func (h *MainHeader) ClickTShirts(ctx context.Context) error {
	return h.click(ctx, TShirtsMenu)
}

// HoverCart opens the cart dropdown.
func (h *MainHeader) HoverCart(ctx context.Context) error {
	return h.hover(ctx, CartButton)
}

func (h *MainHeader) HoverWomen(ctx context.Context) error {
	return h.hover(ctx, WomenMenu)
}

func (h *MainHeader) HoverDresses(ctx context.Context) error {
	return h.hover(ctx, DressesMenu)
}

// CartQuantity reads the product count next to the cart button.
func (h *MainHeader) CartQuantity(ctx context.Context) (textparse.Number, error) {
	label, err := h.Element(ctx, CartQuantityLabel)
	if err != nil {
		return textparse.Number{}, err
	}

	return label.NumericFromText(ctx)
}

// CartTotal opens the cart dropdown and reads the order total.
func (h *MainHeader) CartTotal(ctx context.Context) (textparse.Number, error) {
	if err := h.HoverCart(ctx); err != nil {
		return textparse.Number{}, err
	}

	total, err := h.Element(ctx, CartTotalAmount)
	if err != nil {
		return textparse.Number{}, err
	}

	return total.NumericFromText(ctx)
}

func (h *MainHeader) cartItems(ctx context.Context) (*element.List, error) {
	if err := h.HoverCart(ctx); err != nil {
		return nil, err
	}

	return h.Elements(ctx, CartBoxItems)
}

// CartItemNames lists the product names in the cart dropdown in display
// order.
func (h *MainHeader) CartItemNames(ctx context.Context) ([]string, error) {
	items, err := h.cartItems(ctx)
	if err != nil {
		return nil, err
	}

	names, err := items.InnerElements(ctx, h.Locate(CartBoxItemName))
	if err != nil {
		return nil, err
	}

	return names.Texts(ctx)
}

func (h *MainHeader) cartItem(ctx context.Context, name string) (*element.Element, error) {
	items, err := h.cartItems(ctx)
	if err != nil {
		return nil, err
	}

	return items.ElementByInnerText(ctx, h.Locate(CartBoxItemName), name, true)
}

// CartItemPrice returns the price of the cart item whose name contains
// name.
func (h *MainHeader) CartItemPrice(ctx context.Context, name string) (textparse.Number, error) {
	item, err := h.cartItem(ctx, name)
	if err != nil {
		return textparse.Number{}, err
	}

	price, err := item.Child(ctx, h.Locate(CartBoxItemPrice))
	if err != nil {
		return textparse.Number{}, err
	}

	return price.NumericFromText(ctx)
}

// RemoveCartItem removes the cart item whose name contains name and waits
// for it to go away.
func (h *MainHeader) RemoveCartItem(ctx context.Context, name string) error {
	item, err := h.cartItem(ctx, name)
	if err != nil {
		return err
	}

	remove, err := item.Child(ctx, h.Locate(CartBoxItemRemoveBtn))
	if err != nil {
		return err
	}

	if err := remove.Click(ctx); err != nil {
		return err
	}

	return item.WaitForInvisible(ctx)
}
