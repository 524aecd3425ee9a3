package order

// Navigator tracks the current screen and the back stack.
type Navigator struct {
	current Screen
	history []Screen
}

func NewNavigator() *Navigator {
	return &Navigator{current: ScreenStart}
}

func (n *Navigator) Current() Screen {
	return n.current
}

func (n *Navigator) CanGoBack() bool {
	return len(n.history) > 0
}

// History returns a copy of the back stack, oldest first.
func (n *Navigator) History() []Screen {
	return append([]Screen(nil), n.history...)
}

// GoTo pushes the current screen and switches to s. It panics on a screen
// outside the fixed set.
func (n *Navigator) GoTo(s Screen) {
	mustValid(s)
	n.history = append(n.history, n.current)
	n.current = s
}

// GoBack pops one screen. It reports false when the stack is empty.
func (n *Navigator) GoBack() bool {
	if len(n.history) == 0 {
		return false
	}
	last := n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	n.current = last
	return true
}

func (n *Navigator) ResetToStart() {
	n.history = n.history[:0]
	n.current = ScreenStart
}
