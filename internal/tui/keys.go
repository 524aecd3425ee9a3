package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start   key.Binding
	Up      key.Binding
	Down    key.Binding
	Pick    key.Binding
	Choose  key.Binding
	Next    key.Binding
	Back    key.Binding
	Cancel  key.Binding
	Submit  key.Binding
	History key.Binding
	Retry   key.Binding
	Clear   key.Binding
	Close   key.Binding
	Yes     key.Binding
	No      key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys("enter", "n"), key.WithHelp("enter", "start order")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Pick:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		Choose:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select & next")),
		Next:    key.NewBinding(key.WithKeys("n", "right", "tab"), key.WithHelp("n", "next")),
		Back:    key.NewBinding(key.WithKeys("esc", "left", "backspace"), key.WithHelp("esc", "back")),
		Cancel:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel order")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear history")),
		Close:   key.NewBinding(key.WithKeys("esc", "h"), key.WithHelp("esc", "close")),
		Yes:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:      key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// bindingSet adapts a flat binding list to help.KeyMap.
type bindingSet []key.Binding

func (b bindingSet) ShortHelp() []key.Binding  { return b }
func (b bindingSet) FullHelp() [][]key.Binding { return [][]key.Binding{b} }
