package order

import (
	"fmt"

	"github.com/jask/lunchtray/internal/menu"
)

// Screen is one step of the ordering flow. The zero value is ScreenStart.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenEntreeMenu
	ScreenSideDishMenu
	ScreenAccompanimentMenu
	ScreenCheckout
)

var screenMeta = [...]struct {
	route  string
	title  string
	course menu.Course
}{
	ScreenStart:             {route: "START", title: "Lunch Tray"},
	ScreenEntreeMenu:        {route: "ENTREE_MENU", title: "Choose Entree", course: menu.CourseEntree},
	ScreenSideDishMenu:      {route: "SIDE_DISH_MENU", title: "Choose Side Dish", course: menu.CourseSide},
	ScreenAccompanimentMenu: {route: "ACCOMPANIMENT_MENU", title: "Choose Accompaniment", course: menu.CourseAccompaniment},
	ScreenCheckout:          {route: "CHECKOUT", title: "Order Checkout"},
}

// Screens returns every screen in flow order.
func Screens() []Screen {
	return []Screen{ScreenStart, ScreenEntreeMenu, ScreenSideDishMenu, ScreenAccompanimentMenu, ScreenCheckout}
}

func (s Screen) Valid() bool {
	return s >= ScreenStart && s <= ScreenCheckout
}

func (s Screen) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Screen(%d)", int(s))
	}
	return screenMeta[s].route
}

func (s Screen) Title() string {
	if !s.Valid() {
		return ""
	}
	return screenMeta[s].title
}

// Course reports which course a menu screen offers. ok is false for Start and Checkout.
func (s Screen) Course() (menu.Course, bool) {
	if !s.Valid() || screenMeta[s].course == "" {
		return "", false
	}
	return screenMeta[s].course, true
}

// Next returns the following screen in the fixed sequence. ok is false on Checkout.
func (s Screen) Next() (Screen, bool) {
	if !s.Valid() || s == ScreenCheckout {
		return s, false
	}
	return s + 1, true
}

func mustValid(s Screen) {
	if !s.Valid() {
		panic(fmt.Sprintf("order: unknown screen %d", int(s)))
	}
}
