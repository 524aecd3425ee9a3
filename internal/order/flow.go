// Package order implements the lunch tray screen flow and the tray it fills.
//
// Flow is the only type the UI needs: it owns a Navigator and a Tray and
// exposes the user actions (next, back, cancel, select, confirm). All
// operations are total; the UI decides what to render from State.
package order

import (
	"github.com/shopspring/decimal"

	"github.com/jask/lunchtray/internal/menu"
)

// State is a read-only view of the flow handed to listeners.
type State struct {
	Screen        Screen
	CanGoBack     bool
	CanAdvance    bool
	Entree        *menu.Item
	Side          *menu.Item
	Accompaniment *menu.Item
	Totals        Totals
}

// Selected returns the pick for a course in this state.
func (s State) Selected(c menu.Course) *menu.Item {
	switch c {
	case menu.CourseEntree:
		return s.Entree
	case menu.CourseSide:
		return s.Side
	case menu.CourseAccompaniment:
		return s.Accompaniment
	}
	return nil
}

// Snapshot is the order as it stood at checkout.
type Snapshot struct {
	Items   []menu.Item
	Totals  Totals
	TaxRate decimal.Decimal
}

type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

type Flow struct {
	nav       *Navigator
	tray      *Tray
	listeners []subscription
	nextID    int
}

func NewFlow(taxRate decimal.Decimal) *Flow {
	return &Flow{nav: NewNavigator(), tray: NewTray(taxRate)}
}

func (f *Flow) Screen() Screen  { return f.nav.Current() }
func (f *Flow) CanGoBack() bool { return f.nav.CanGoBack() }

func (f *Flow) State() State {
	s := State{
		Screen:     f.nav.Current(),
		CanGoBack:  f.nav.CanGoBack(),
		CanAdvance: f.CanAdvance(),
		Totals:     f.tray.Totals(),
	}
	if it, ok := f.tray.Entree(); ok {
		s.Entree = &it
	}
	if it, ok := f.tray.Side(); ok {
		s.Side = &it
	}
	if it, ok := f.tray.Accompaniment(); ok {
		s.Accompaniment = &it
	}
	return s
}

// Order returns the current tray contents without changing anything.
func (f *Flow) Order() Snapshot {
	return Snapshot{Items: f.tray.Items(), Totals: f.tray.Totals(), TaxRate: f.tray.TaxRate()}
}

// CanAdvance reports whether Next would move. A menu screen needs a pick
// for its course first; Checkout never advances.
func (f *Flow) CanAdvance() bool {
	cur := f.nav.Current()
	if _, ok := cur.Next(); !ok {
		return false
	}
	if course, ok := cur.Course(); ok {
		_, picked := f.tray.Selected(course)
		return picked
	}
	return true
}

func (f *Flow) Next() bool {
	if !f.CanAdvance() {
		return false
	}
	next, _ := f.nav.Current().Next()
	f.nav.GoTo(next)
	f.notify()
	return true
}

// Back returns to the previous screen, keeping selections.
func (f *Flow) Back() bool {
	if !f.nav.GoBack() {
		return false
	}
	f.notify()
	return true
}

// Cancel empties the tray and jumps to Start from any other screen.
func (f *Flow) Cancel() bool {
	if f.nav.Current() == ScreenStart {
		return false
	}
	f.reset()
	return true
}

// Select replaces the pick for item's course. It only applies on the menu
// screen for that course.
func (f *Flow) Select(item menu.Item) bool {
	course, ok := f.nav.Current().Course()
	if !ok || course != item.Course {
		return false
	}
	f.tray.Set(item)
	f.notify()
	return true
}

// Confirm finalizes the order on Checkout. The returned snapshot is what was
// ordered; the flow is back on Start with an empty tray afterwards.
func (f *Flow) Confirm() (Snapshot, bool) {
	if f.nav.Current() != ScreenCheckout {
		return Snapshot{}, false
	}
	snap := f.Order()
	f.reset()
	return snap, true
}

// Subscribe registers fn for every subsequent change. The returned func removes it.
func (f *Flow) Subscribe(fn Listener) func() {
	f.nextID++
	id := f.nextID
	f.listeners = append(f.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, s := range f.listeners {
			if s.id == id {
				f.listeners = append(f.listeners[:i], f.listeners[i+1:]...)
				return
			}
		}
	}
}

func (f *Flow) reset() {
	f.tray.Reset()
	f.nav.ResetToStart()
	f.notify()
}

func (f *Flow) notify() {
	if len(f.listeners) == 0 {
		return
	}
	s := f.State()
	for _, l := range append([]subscription(nil), f.listeners...) {
		l.fn(s)
	}
}
