package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jask/lunchtray/internal/menu"
	"github.com/jask/lunchtray/internal/order"
)

var (
	titleBarStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	headingStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	buttonStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	totalStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (a *App) View() string {
	var body string
	switch a.state.Screen {
	case order.ScreenStart:
		body = a.renderStart()
	case order.ScreenCheckout:
		body = a.renderCheckout()
	default:
		body = a.renderMenu()
	}
	out := a.renderTitleBar() + "\n\n" + body
	if a.modal != modalNone {
		out += "\n\n" + modalStyle.Render(a.renderModal())
	}
	if a.status != "" {
		out += "\n" + statusStyle.Render(a.status)
	}
	return out + "\n\n" + a.help.View(a.helpBindings())
}

func (a *App) renderTitleBar() string {
	title := a.state.Screen.Title()
	if a.state.CanGoBack {
		title = "← " + title
	}
	return titleBarStyle.Render(title)
}

func (a *App) renderStart() string {
	if a.menu == nil {
		if a.menuErr != nil {
			return fmt.Sprintf("Menu unavailable: %v\nPress r to try again.", a.menuErr)
		}
		return "Loading menu..."
	}
	return "Build a lunch tray: one entree, one side dish and one accompaniment.\n\n" + buttonStyle.Render("Start Order")
}

func (a *App) renderMenu() string {
	course, _ := a.state.Screen.Course()
	items := a.menu[course]
	if len(items) == 0 {
		return fmt.Sprintf("No %s items on the menu.", strings.ToLower(course.Label()))
	}
	sel := a.state.Selected(course)
	var b strings.Builder
	for i, it := range items {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		radio := "( )"
		if sel != nil && sel.ID == it.ID {
			radio = "(•)"
		}
		fmt.Fprintf(&b, "%s %s %-26s %8s\n", marker, radio, it.Name, a.price(it.Price))
		fmt.Fprintf(&b, "      %s\n", descStyle.Render(it.Description))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s", a.price(a.state.Totals.Subtotal))
	return b.String()
}

func (a *App) renderCheckout() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Order Summary") + "\n")
	for _, c := range menu.Courses() {
		if it := a.state.Selected(c); it != nil {
			fmt.Fprintf(&b, "%-26s %8s\n", it.Name, a.price(it.Price))
		}
	}
	t := a.state.Totals
	fmt.Fprintf(&b, "\nSubtotal: %s\n", a.price(t.Subtotal))
	fmt.Fprintf(&b, "Tax: %s\n", a.price(t.Tax))
	b.WriteString(totalStyle.Render("Total: " + a.price(t.Total)))
	return b.String()
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalThankYou:
		out := headingStyle.Render("Thank you for your order!")
		if a.receipt != nil {
			out += fmt.Sprintf("\nOrder %s  Total %s", shortID(a.receipt.ID), a.price(a.receipt.Total))
		}
		return out + "\n[any key] Continue"
	case modalHistory:
		out := headingStyle.Render("Recent orders") + "\n"
		if len(a.history) == 0 {
			return out + "No orders yet."
		}
		for _, o := range a.history {
			names := make([]string, 0, len(o.Lines))
			for _, l := range o.Lines {
				names = append(names, l.Name)
			}
			out += fmt.Sprintf("%s  %s  %8s  %s\n", shortID(o.ID), o.SubmittedAt.Local().Format("2006-01-02 15:04"), a.price(o.Total), strings.Join(names, ", "))
		}
		return strings.TrimRight(out, "\n")
	case modalConfirmClear:
		return headingStyle.Render("Clear order history?") + "\nThis deletes every stored order.\n[y] Yes  [n] No"
	}
	return ""
}

func (a *App) helpBindings() bindingSet {
	k := a.keys
	switch a.modal {
	case modalHistory:
		if a.services.Maintenance != nil {
			return bindingSet{k.Close, k.Clear, k.Quit}
		}
		return bindingSet{k.Close, k.Quit}
	case modalConfirmClear:
		return bindingSet{k.Yes, k.No}
	case modalThankYou:
		return nil
	}
	switch a.state.Screen {
	case order.ScreenStart:
		if a.menuErr != nil {
			return bindingSet{k.Retry, k.History, k.Quit}
		}
		return bindingSet{k.Start, k.History, k.Quit}
	case order.ScreenCheckout:
		return bindingSet{k.Submit, k.Back, k.Cancel, k.Quit}
	}
	next := k.Next
	next.SetEnabled(a.state.CanAdvance)
	return bindingSet{k.Up, k.Down, k.Pick, k.Choose, next, k.Back, k.Cancel, k.Quit}
}

// price formats an amount with the configured currency symbol.
func (a *App) price(d decimal.Decimal) string {
	return a.currency + d.StringFixed(2)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
