// Package browsertest provides an in-memory ports.Driver backed by a goquery
// document, for exercising waits and element handles without a browser.
//
// Visibility follows the usual rendering rules: an element is displayed when
// it is attached and neither it nor an ancestor carries the hidden attribute,
// an inline display:none or visibility:hidden style, or is an input of type
// hidden. XPath locators are not supported.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"web-ui-harness/internal/entity"
	"web-ui-harness/internal/ports"
	"web-ui-harness/pkg/apperr"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var _ ports.Driver = (*Driver)(nil)

var ErrXPathUnsupported = errors.New("browsertest: xpath locators are not supported")

// Script is one recorded ExecuteScript call.
type Script struct {
	Source string
	Args   []any
}

// KeyPress is one recorded key press, ID is empty for page-level presses.
type KeyPress struct {
	ID  entity.ElementID
	Key string
}

type Click struct {
	ID   entity.ElementID
	Opts entity.ClickOptions
}

type Driver struct {
	// OnFind runs before every Find* call with the 1-based call number.
	OnFind func(call int)
	// OnClick runs after a click has been recorded.
	OnClick func(id entity.ElementID)
	// OnScript computes the result of ExecuteScript. Nil returns nil.
	OnScript func(script string, args []any) (any, error)
	// FindErrs are returned, one per call, by the next Find* calls.
	FindErrs []error
	// ScreenshotErr fails every Screenshot call when set.
	ScreenshotErr error

	mu          sync.Mutex
	doc         *goquery.Document
	ids         map[*html.Node]entity.ElementID
	nodes       map[entity.ElementID]*html.Node
	values      map[entity.ElementID]string
	finds       int
	url         string
	history     []string
	tabs        int
	current     int
	clicks      []Click
	hovers      []entity.ElementID
	released    []entity.ElementID
	presses     []KeyPress
	scripts     []Script
	screenshots []string
	refreshes   int
}

// New parses markup into the driver's document, with one open tab.
func New(t testing.TB, markup string) *Driver {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)

	return &Driver{
		doc:    doc,
		ids:    make(map[*html.Node]entity.ElementID),
		nodes:  make(map[entity.ElementID]*html.Node),
		values: make(map[entity.ElementID]string),
		tabs:   1,
	}
}

// Mutate runs fn against the document under the driver's lock.
func (d *Driver) Mutate(fn func(doc *goquery.Document)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fn(d.doc)
}

func (d *Driver) SetAttr(selector, name, value string) {
	d.Mutate(func(doc *goquery.Document) { doc.Find(selector).SetAttr(name, value) })
}

func (d *Driver) RemoveAttr(selector, name string) {
	d.Mutate(func(doc *goquery.Document) { doc.Find(selector).RemoveAttr(name) })
}

func (d *Driver) Remove(selector string) {
	d.Mutate(func(doc *goquery.Document) { doc.Find(selector).Remove() })
}

func (d *Driver) Append(selector, markup string) {
	d.Mutate(func(doc *goquery.Document) { doc.Find(selector).AppendHtml(markup) })
}

// IDOf returns the id the driver hands out for the first node matching the
// CSS selector.
func (d *Driver) IDOf(selector string) entity.ElementID {
	d.mu.Lock()
	defer d.mu.Unlock()

	nodes := d.doc.Find(selector).Nodes
	if len(nodes) == 0 {
		return ""
	}

	return d.idFor(nodes[0])
}

func (d *Driver) Clicks() []Click {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]Click(nil), d.clicks...)
}

func (d *Driver) Hovers() []entity.ElementID {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]entity.ElementID(nil), d.hovers...)
}

// Released lists the ids handed back through Release, in call order. Ids
// stay usable here because the fake keys them by node.
func (d *Driver) Released() []entity.ElementID {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]entity.ElementID(nil), d.released...)
}

func (d *Driver) Presses() []KeyPress {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]KeyPress(nil), d.presses...)
}

func (d *Driver) Scripts() []Script {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]Script(nil), d.scripts...)
}

func (d *Driver) Screenshots() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.screenshots...)
}

func (d *Driver) Refreshes() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.refreshes
}

// Value returns what SendKeys and Clear left in the element.
func (d *Driver) Value(id entity.ElementID) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.valueOf(id, d.nodes[id])
}

func (d *Driver) FindCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.finds
}

// SetTabs overrides the number of open tabs.
func (d *Driver) SetTabs(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tabs = n
}

func (d *Driver) SetURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.url = url
}

func (d *Driver) Navigate(_ context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.url != "" {
		d.history = append(d.history, d.url)
	}
	d.url = url

	return nil
}

func (d *Driver) CurrentURL(context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.url, nil
}

func (d *Driver) Refresh(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.refreshes++

	return nil
}

func (d *Driver) GoBack(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n := len(d.history); n > 0 {
		d.url = d.history[n-1]
		d.history = d.history[:n-1]
	}

	return nil
}

func (d *Driver) ExecuteScript(_ context.Context, script string, args ...any) (any, error) {
	d.mu.Lock()
	d.scripts = append(d.scripts, Script{Source: script, Args: args})
	hook := d.OnScript
	d.mu.Unlock()

	if hook == nil {
		return nil, nil
	}

	return hook(script, args)
}

func (d *Driver) PressKey(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.presses = append(d.presses, KeyPress{Key: key})

	return nil
}

func (d *Driver) Screenshot(_ context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ScreenshotErr != nil {
		return d.ScreenshotErr
	}

	d.screenshots = append(d.screenshots, path)

	return nil
}

func (d *Driver) TabCount(context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.tabs, nil
}

func (d *Driver) OpenTab(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tabs++

	return nil
}

func (d *Driver) SwitchTab(_ context.Context, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= d.tabs {
		return apperr.InvalidReqError("SwitchTab", "index", fmt.Errorf("tab index %d out of range", index))
	}
	d.current = index

	return nil
}

func (d *Driver) CloseTab(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tabs > 0 {
		d.tabs--
	}
	d.current = 0

	return nil
}

func (d *Driver) FindElement(ctx context.Context, locator entity.Locator) (entity.ElementID, error) {
	ids, err := d.find("FindElement", nil, locator)
	if err != nil {
		return "", err
	}

	if len(ids) == 0 {
		return "", notFound("FindElement", locator)
	}

	return ids[0], nil
}

func (d *Driver) FindElements(ctx context.Context, locator entity.Locator) ([]entity.ElementID, error) {
	return d.find("FindElements", nil, locator)
}

func (d *Driver) FindChild(ctx context.Context, parent entity.ElementID, locator entity.Locator) (entity.ElementID, error) {
	ids, err := d.find("FindChild", &parent, locator)
	if err != nil {
		return "", err
	}

	if len(ids) == 0 {
		return "", notFound("FindChild", locator)
	}

	return ids[0], nil
}

func (d *Driver) FindChildren(ctx context.Context, parent entity.ElementID, locator entity.Locator) ([]entity.ElementID, error) {
	return d.find("FindChildren", &parent, locator)
}

func (d *Driver) Release(_ context.Context, ids []entity.ElementID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.released = append(d.released, ids...)
}

func (d *Driver) find(op string, parent *entity.ElementID, locator entity.Locator) ([]entity.ElementID, error) {
	d.mu.Lock()
	d.finds++
	call := d.finds
	hook := d.OnFind
	d.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.FindErrs) > 0 {
		err := d.FindErrs[0]
		d.FindErrs = d.FindErrs[1:]

		return nil, err
	}

	root := d.doc.Selection
	if parent != nil {
		node, err := d.node(op, *parent)
		if err != nil {
			return nil, err
		}
		root = goquery.NewDocumentFromNode(node).Selection
	}

	matches, err := query(root, locator)
	if err != nil {
		return nil, apperr.InvalidReqError(op, "locator", err)
	}

	ids := make([]entity.ElementID, len(matches.Nodes))
	for i, node := range matches.Nodes {
		ids[i] = d.idFor(node)
	}

	return ids, nil
}

func query(root *goquery.Selection, locator entity.Locator) (*goquery.Selection, error) {
	expr := locator.Expression

	switch locator.Strategy {
	case entity.StrategyCSS, entity.StrategyTag:
		return root.Find(expr), nil
	case entity.StrategyID:
		return root.Find(fmt.Sprintf("[id=%q]", expr)), nil
	case entity.StrategyName:
		return root.Find(fmt.Sprintf("[name=%q]", expr)), nil
	case entity.StrategyClass:
		return root.Find("." + expr), nil
	case entity.StrategyLinkText:
		return root.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return normalize(s.Text()) == expr
		}), nil
	case entity.StrategyPartialLinkText:
		return root.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.Contains(s.Text(), expr)
		}), nil
	case entity.StrategyXPath:
		return nil, ErrXPathUnsupported
	default:
		return nil, fmt.Errorf("browsertest: unknown strategy %q", locator.Strategy)
	}
}

func (d *Driver) IsDisplayed(_ context.Context, id entity.ElementID) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.node("IsDisplayed", id)
	if err != nil {
		return false, err
	}

	return d.attached(node) && displayed(node), nil
}

func (d *Driver) IsEnabled(_ context.Context, id entity.ElementID) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.node("IsEnabled", id)
	if err != nil {
		return false, err
	}

	_, disabled := attr(node, "disabled")

	return !disabled, nil
}

func (d *Driver) IsAttached(_ context.Context, id entity.ElementID) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.node("IsAttached", id)
	if err != nil {
		return false, err
	}

	return d.attached(node), nil
}

func (d *Driver) Text(_ context.Context, id entity.ElementID) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.live("Text", id)
	if err != nil {
		return "", err
	}

	if !displayed(node) {
		return "", nil
	}

	return normalize(goquery.NewDocumentFromNode(node).Text()), nil
}

func (d *Driver) Attribute(_ context.Context, id entity.ElementID, name string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.live("Attribute", id)
	if err != nil {
		return "", err
	}

	if name == "value" {
		return d.valueOf(id, node), nil
	}

	value, _ := attr(node, name)

	return value, nil
}

func (d *Driver) Click(_ context.Context, id entity.ElementID, opts entity.ClickOptions) error {
	d.mu.Lock()
	if _, err := d.live("Click", id); err != nil {
		d.mu.Unlock()
		return err
	}
	d.clicks = append(d.clicks, Click{ID: id, Opts: opts})
	hook := d.OnClick
	d.mu.Unlock()

	if hook != nil {
		hook(id)
	}

	return nil
}

func (d *Driver) Clear(_ context.Context, id entity.ElementID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.live("Clear", id); err != nil {
		return err
	}
	d.values[id] = ""

	return nil
}

func (d *Driver) SendKeys(_ context.Context, id entity.ElementID, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.live("SendKeys", id)
	if err != nil {
		return err
	}
	d.values[id] = d.valueOf(id, node) + text

	return nil
}

func (d *Driver) Press(_ context.Context, id entity.ElementID, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.live("Press", id); err != nil {
		return err
	}
	d.presses = append(d.presses, KeyPress{ID: id, Key: key})

	return nil
}

func (d *Driver) Hover(_ context.Context, id entity.ElementID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.live("Hover", id); err != nil {
		return err
	}
	d.hovers = append(d.hovers, id)

	return nil
}

func (d *Driver) idFor(node *html.Node) entity.ElementID {
	if id, ok := d.ids[node]; ok {
		return id
	}

	id := entity.ElementID(fmt.Sprintf("node-%d", len(d.ids)+1))
	d.ids[node] = id
	d.nodes[id] = node

	return id
}

func (d *Driver) node(op string, id entity.ElementID) (*html.Node, error) {
	node, ok := d.nodes[id]
	if !ok {
		return nil, apperr.Wrap(op, apperr.CodeNotFound, fmt.Errorf("unknown element id %q", id), map[string]any{
			apperr.MetaReason:    "unknown_element",
			apperr.MetaElementID: string(id),
		})
	}

	return node, nil
}

// live is node that additionally fails for detached elements.
func (d *Driver) live(op string, id entity.ElementID) (*html.Node, error) {
	node, err := d.node(op, id)
	if err != nil {
		return nil, err
	}

	if !d.attached(node) {
		return nil, apperr.Wrap(op, apperr.CodeStale, fmt.Errorf("element %q is not attached to the document", id), map[string]any{
			apperr.MetaReason:    "stale_element",
			apperr.MetaElementID: string(id),
		})
	}

	return node, nil
}

func (d *Driver) attached(node *html.Node) bool {
	root := d.doc.Nodes[0]
	for n := node; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}

	return false
}

func (d *Driver) valueOf(id entity.ElementID, node *html.Node) string {
	if value, ok := d.values[id]; ok {
		return value
	}

	if node == nil {
		return ""
	}

	value, _ := attr(node, "value")

	return value
}

func displayed(node *html.Node) bool {
	for n := node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if _, hidden := attr(n, "hidden"); hidden {
			return false
		}

		if typ, _ := attr(n, "type"); n.Data == "input" && typ == "hidden" {
			return false
		}

		style, _ := attr(n, "style")
		style = strings.ReplaceAll(strings.ToLower(style), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false
		}
	}

	return true
}

func attr(node *html.Node, name string) (string, bool) {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}

	return "", false
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func notFound(op string, locator entity.Locator) error {
	return apperr.Wrap(op, apperr.CodeNotFound, errors.New("no element matches locator"), map[string]any{
		apperr.MetaReason:  "not_found",
		apperr.MetaLocator: locator.String(),
	})
}
