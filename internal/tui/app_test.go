package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/lunchtray/internal/config"
	"github.com/jask/lunchtray/internal/database/repository"
	"github.com/jask/lunchtray/internal/menu"
	"github.com/jask/lunchtray/internal/order"
)

type fakeMenu struct{}

func (fakeMenu) Load(context.Context) (map[menu.Course][]menu.Item, error) {
	return menu.Group(menu.Catalog()), nil
}

type fakeDesk struct {
	submitted []order.Snapshot
	orders    []repository.Order
	err       error
	limits    []int
}

func (d *fakeDesk) Submit(_ context.Context, snap order.Snapshot) (repository.Order, error) {
	if d.err != nil {
		return repository.Order{}, d.err
	}
	d.submitted = append(d.submitted, snap)
	o := repository.Order{ID: "0123456789abcdef", Subtotal: snap.Totals.Subtotal, Tax: snap.Totals.Tax, Total: snap.Totals.Total}
	for _, it := range snap.Items {
		o.Lines = append(o.Lines, repository.OrderLine{Course: it.Course, MenuItemID: it.ID, Name: it.Name, Price: it.Price})
	}
	d.orders = append([]repository.Order{o}, d.orders...)
	return o, nil
}

func (d *fakeDesk) Recent(_ context.Context, limit int) ([]repository.Order, error) {
	d.limits = append(d.limits, limit)
	if len(d.orders) > limit {
		return d.orders[:limit], nil
	}
	return d.orders, nil
}

// flakyMenu fails its first `failures` loads, then serves the catalog.
type flakyMenu struct {
	failures int
	calls    int
}

func (m *flakyMenu) Load(ctx context.Context) (map[menu.Course][]menu.Item, error) {
	m.calls++
	if m.calls <= m.failures {
		return nil, errors.New("database is locked")
	}
	return fakeMenu{}.Load(ctx)
}

type fakeCleaner struct {
	desk  *fakeDesk
	calls int
}

func (c *fakeCleaner) ClearHistory(context.Context) error {
	c.calls++
	c.desk.orders = nil
	return nil
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.Order.TaxRate = "0.08"
	cfg.UI.CurrencySymbol = "$"
	cfg.UI.HistoryLimit = 5
	return cfg
}

func newTestApp(t *testing.T, desk *fakeDesk) *App {
	t.Helper()
	a := New(context.Background(), testConfig(), Services{Menu: fakeMenu{}, Checkout: desk}, nil)
	a.Update(a.Init()())
	require.NotNil(t, a.menu)
	return a
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys in order and returns the command from the last one.
func press(a *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = a.Update(keyMsg(k))
	}
	return cmd
}

func TestOrderFlowSubmitsAndThanks(t *testing.T) {
	desk := &fakeDesk{}
	a := newTestApp(t, desk)
	require.Contains(t, a.View(), "Start Order")

	press(a, "enter")
	require.Equal(t, order.ScreenEntreeMenu, a.state.Screen)
	require.Contains(t, a.View(), "← Choose Entree")

	// Three Bean Chili 4.00, Summer Salad 2.50, Lunch Roll 0.50
	press(a, "j", "enter", "enter", "enter")
	require.Equal(t, order.ScreenCheckout, a.state.Screen)
	view := a.View()
	require.Contains(t, view, "Three Bean Chili")
	require.Contains(t, view, "Subtotal: $7.00")
	require.Contains(t, view, "Tax: $0.56")
	require.Contains(t, view, "Total: $7.56")

	cmd := press(a, "enter")
	require.NotNil(t, cmd)
	require.True(t, a.submitting)
	a.Update(cmd())

	require.Len(t, desk.submitted, 1)
	require.Equal(t, "7.56", desk.submitted[0].Totals.Total.StringFixed(2))
	require.Equal(t, modalThankYou, a.modal)
	require.Equal(t, order.ScreenStart, a.state.Screen)
	require.Contains(t, a.View(), "Thank you for your order!")
	require.Contains(t, a.View(), "01234567")

	press(a, "x")
	require.Equal(t, modalNone, a.modal)
	require.Empty(t, a.flow.Order().Items)
}

func TestNextWithoutSelectionStays(t *testing.T) {
	a := newTestApp(t, &fakeDesk{})
	press(a, "enter", "n")
	require.Equal(t, order.ScreenEntreeMenu, a.state.Screen)
	require.Equal(t, "select an item first", a.status)

	press(a, " ", "n")
	require.Equal(t, order.ScreenSideDishMenu, a.state.Screen)
	require.Empty(t, a.status)
}

func TestCancelReturnsToStart(t *testing.T) {
	a := newTestApp(t, &fakeDesk{})
	press(a, "enter", "enter", "j", "j", "enter")
	require.Equal(t, order.ScreenAccompanimentMenu, a.state.Screen)
	require.Len(t, a.flow.Order().Items, 2)

	press(a, "c")
	require.Equal(t, order.ScreenStart, a.state.Screen)
	require.False(t, a.state.CanGoBack)
	require.Empty(t, a.flow.Order().Items)
	require.Equal(t, "order cancelled", a.status)
}

func TestBackRestoresCursorOnPick(t *testing.T) {
	a := newTestApp(t, &fakeDesk{})
	press(a, "enter", "j", "j", "enter")
	require.Equal(t, order.ScreenSideDishMenu, a.state.Screen)
	require.Equal(t, 0, a.cursor)

	press(a, "esc")
	require.Equal(t, order.ScreenEntreeMenu, a.state.Screen)
	require.Equal(t, 2, a.cursor)
	require.Equal(t, "Mushroom Pasta", a.state.Entree.Name)
	require.Contains(t, a.View(), "(•) Mushroom Pasta")
}

func TestSubmitErrorStaysOnCheckout(t *testing.T) {
	desk := &fakeDesk{err: errors.New("disk full")}
	a := newTestApp(t, desk)
	cmd := press(a, "enter", "enter", "enter", "enter", "enter")
	require.NotNil(t, cmd)
	a.Update(cmd())

	require.False(t, a.submitting)
	require.Equal(t, order.ScreenCheckout, a.state.Screen)
	require.True(t, strings.HasPrefix(a.status, "error: submit order"))
	require.Len(t, a.flow.Order().Items, 3)
}

func TestHistoryModalAndClear(t *testing.T) {
	desk := &fakeDesk{}
	cleaner := &fakeCleaner{desk: desk}
	a := New(context.Background(), testConfig(), Services{Menu: fakeMenu{}, Checkout: desk, Maintenance: cleaner}, nil)
	a.Update(a.Init()())

	cmd := press(a, "h")
	require.NotNil(t, cmd)
	a.Update(cmd())
	require.Equal(t, modalHistory, a.modal)
	require.Contains(t, a.View(), "No orders yet.")
	press(a, "esc")
	require.Equal(t, modalNone, a.modal)

	cmd = press(a, "enter", "enter", "enter", "enter", "enter")
	a.Update(cmd())
	press(a, "x")

	cmd = press(a, "h")
	a.Update(cmd())
	require.Len(t, a.history, 1)
	require.Equal(t, []int{5, 5}, desk.limits)
	require.Contains(t, a.View(), "Cauliflower, Summer Salad, Lunch Roll")

	press(a, "x")
	require.Equal(t, modalConfirmClear, a.modal)
	press(a, "n")
	require.Equal(t, modalHistory, a.modal)

	press(a, "x")
	cmd = press(a, "y")
	require.NotNil(t, cmd)
	a.Update(cmd())
	require.Equal(t, 1, cleaner.calls)
	require.Empty(t, a.history)
	require.Equal(t, "order history cleared", a.status)
}

func TestQuit(t *testing.T) {
	a := newTestApp(t, &fakeDesk{})
	cmd := press(a, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestMenuLoadFailureCanBeRetried(t *testing.T) {
	loader := &flakyMenu{failures: 1}
	a := New(context.Background(), testConfig(), Services{Menu: loader, Checkout: &fakeDesk{}}, nil)
	a.Update(a.Init()())

	require.Nil(t, a.menu)
	view := a.View()
	require.Contains(t, view, "Menu unavailable: database is locked")
	require.NotContains(t, view, "Loading menu...")
	require.Contains(t, view, "retry")

	press(a, "enter")
	require.Equal(t, order.ScreenStart, a.state.Screen)

	cmd := press(a, "r")
	require.NotNil(t, cmd)
	require.Contains(t, a.View(), "Loading menu...")
	a.Update(cmd())

	require.Equal(t, 2, loader.calls)
	require.NotNil(t, a.menu)
	require.Nil(t, a.menuErr)
	require.Contains(t, a.View(), "Start Order")

	require.Nil(t, press(a, "r"))
	require.Equal(t, 2, loader.calls)
	press(a, "enter")
	require.Equal(t, order.ScreenEntreeMenu, a.state.Screen)
}
