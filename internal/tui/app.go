package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/lunchtray/internal/config"
	"github.com/jask/lunchtray/internal/database/repository"
	"github.com/jask/lunchtray/internal/menu"
	"github.com/jask/lunchtray/internal/order"
)

// MenuLoader supplies the catalog for the menu screens.
type MenuLoader interface {
	Load(ctx context.Context) (map[menu.Course][]menu.Item, error)
}

// OrderDesk stores submitted orders and lists past ones.
type OrderDesk interface {
	Submit(ctx context.Context, snap order.Snapshot) (repository.Order, error)
	Recent(ctx context.Context, limit int) ([]repository.Order, error)
}

// HistoryCleaner wipes stored orders.
type HistoryCleaner interface {
	ClearHistory(ctx context.Context) error
}

type Services struct {
	Menu        MenuLoader
	Checkout    OrderDesk
	Maintenance HistoryCleaner // optional
}

// App ties the order flow to the terminal.
type App struct {
	ctx        context.Context
	services   Services
	cfg        config.Config
	log        *zap.Logger
	flow       *order.Flow
	state      order.State
	menu       map[menu.Course][]menu.Item
	menuErr    error
	cursor     int
	status     string
	modal      modalState
	receipt    *repository.Order
	history    []repository.Order
	submitting bool
	keys       keyMap
	help       help.Model
	currency   string
}

type modalState string

const (
	modalNone         modalState = ""
	modalThankYou     modalState = "thankYou"
	modalHistory      modalState = "history"
	modalConfirmClear modalState = "confirmClear"
)

func New(ctx context.Context, cfg config.Config, services Services, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		ctx:      ctx,
		services: services,
		cfg:      cfg,
		log:      log,
		flow:     order.NewFlow(cfg.TaxRate()),
		keys:     newKeyMap(),
		help:     help.New(),
		currency: cfg.UI.CurrencySymbol,
	}
	a.state = a.flow.State()
	a.flow.Subscribe(a.onFlowChange)
	return a
}

func (a *App) onFlowChange(s order.State) {
	prev := a.state.Screen
	a.state = s
	if s.Screen == prev {
		return
	}
	a.log.Debug("screen changed",
		zap.Stringer("from", prev),
		zap.Stringer("to", s.Screen),
		zap.String("subtotal", s.Totals.Subtotal.StringFixed(2)))
	a.syncCursor()
}

// syncCursor puts the cursor on the current pick, or the first item.
func (a *App) syncCursor() {
	a.cursor = 0
	course, ok := a.state.Screen.Course()
	if !ok {
		return
	}
	sel := a.state.Selected(course)
	if sel == nil {
		return
	}
	for i, it := range a.menu[course] {
		if it.ID == sel.ID {
			a.cursor = i
			return
		}
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadMenu()
}

func (a *App) loadMenu() tea.Cmd {
	return func() tea.Msg {
		groups, err := a.services.Menu.Load(a.ctx)
		if err != nil {
			return menuFailedMsg{err}
		}
		return menuLoadedMsg(groups)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = m.Width
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.submitting {
			return a, nil
		}
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		switch a.state.Screen {
		case order.ScreenStart:
			return a.handleStartKey(m)
		case order.ScreenCheckout:
			return a.handleCheckoutKey(m)
		default:
			return a.handleMenuKey(m)
		}
	case menuLoadedMsg:
		a.menu = map[menu.Course][]menu.Item(m)
		a.menuErr = nil
		a.syncCursor()
	case menuFailedMsg:
		a.log.Error("load menu", zap.Error(m.error))
		a.menuErr = m.error
	case submittedMsg:
		a.submitting = false
		if _, ok := a.flow.Confirm(); !ok {
			a.log.Warn("order stored but flow was not on checkout", zap.String("order_id", m.Order.ID))
		}
		o := m.Order
		a.receipt = &o
		a.modal = modalThankYou
		a.status = ""
	case historyMsg:
		a.history = []repository.Order(m)
		a.modal = modalHistory
	case historyClearedMsg:
		a.history = nil
		a.modal = modalHistory
		a.status = "order history cleared"
	case errMsg:
		a.submitting = false
		a.log.Error("ui error", zap.Error(m.error))
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleStartKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Start):
		if a.menu == nil {
			if a.menuErr == nil {
				a.status = "menu is still loading"
			}
			return a, nil
		}
		a.status = ""
		a.flow.Next()
	case key.Matches(m, a.keys.History):
		return a, a.loadHistory()
	case key.Matches(m, a.keys.Retry):
		if a.menu != nil || a.menuErr == nil {
			return a, nil
		}
		a.menuErr = nil
		a.status = ""
		return a, a.loadMenu()
	}
	return a, nil
}

func (a *App) handleMenuKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	course, _ := a.state.Screen.Course()
	items := a.menu[course]
	switch {
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(items)-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.Pick):
		a.pick(items)
	case key.Matches(m, a.keys.Choose):
		if a.pick(items) {
			a.advance()
		}
	case key.Matches(m, a.keys.Next):
		a.advance()
	case key.Matches(m, a.keys.Back):
		a.status = ""
		a.flow.Back()
	case key.Matches(m, a.keys.Cancel):
		a.cancel()
	}
	return a, nil
}

func (a *App) handleCheckoutKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Submit):
		snap := a.flow.Order()
		a.submitting = true
		a.status = "submitting..."
		return a, a.submit(snap)
	case key.Matches(m, a.keys.Back):
		a.status = ""
		a.flow.Back()
	case key.Matches(m, a.keys.Cancel):
		a.cancel()
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalThankYou:
		a.modal = modalNone
		a.receipt = nil
	case modalHistory:
		switch {
		case key.Matches(m, a.keys.Close):
			a.modal = modalNone
			a.status = ""
		case key.Matches(m, a.keys.Clear):
			if a.services.Maintenance == nil || len(a.history) == 0 {
				return a, nil
			}
			a.modal = modalConfirmClear
		case key.Matches(m, a.keys.Quit):
			return a, tea.Quit
		}
	case modalConfirmClear:
		switch {
		case key.Matches(m, a.keys.Yes):
			a.modal = modalNone
			return a, a.clearHistory()
		case key.Matches(m, a.keys.No):
			a.modal = modalHistory
		}
	}
	return a, nil
}

func (a *App) pick(items []menu.Item) bool {
	if a.cursor < 0 || a.cursor >= len(items) {
		return false
	}
	a.status = ""
	return a.flow.Select(items[a.cursor])
}

func (a *App) advance() {
	if a.flow.Next() {
		a.status = ""
		return
	}
	a.status = "select an item first"
}

func (a *App) cancel() {
	if a.flow.Cancel() {
		a.log.Info("order cancelled")
		a.status = "order cancelled"
	}
}

// commands
func (a *App) submit(snap order.Snapshot) tea.Cmd {
	return func() tea.Msg {
		o, err := a.services.Checkout.Submit(a.ctx, snap)
		if err != nil {
			return errMsg{fmt.Errorf("submit order: %w", err)}
		}
		return submittedMsg{Order: o}
	}
}

func (a *App) loadHistory() tea.Cmd {
	limit := a.cfg.UI.HistoryLimit
	return func() tea.Msg {
		orders, err := a.services.Checkout.Recent(a.ctx, limit)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(orders)
	}
}

func (a *App) clearHistory() tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Maintenance.ClearHistory(a.ctx); err != nil {
			return errMsg{err}
		}
		return historyClearedMsg{}
	}
}

// messages
type menuLoadedMsg map[menu.Course][]menu.Item

type menuFailedMsg struct{ error }

type submittedMsg struct {
	Order repository.Order
}

type historyMsg []repository.Order

type historyClearedMsg struct{}

type errMsg struct{ error }
