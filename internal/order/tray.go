package order

import (
	"github.com/shopspring/decimal"

	"github.com/jask/lunchtray/internal/menu"
)

// DefaultTaxRate is applied when no rate is configured.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Totals is the derived price breakdown of a tray.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums prices and applies rate. Tax is rounded to cents half to even.
func ComputeTotals(items []menu.Item, rate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price)
	}
	tax := subtotal.Mul(rate).RoundBank(2)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}

// Tray holds at most one item per course.
type Tray struct {
	entree        *menu.Item
	side          *menu.Item
	accompaniment *menu.Item
	taxRate       decimal.Decimal
}

func NewTray(taxRate decimal.Decimal) *Tray {
	return &Tray{taxRate: taxRate}
}

func (t *Tray) TaxRate() decimal.Decimal { return t.taxRate }

func (t *Tray) SetEntree(item menu.Item)        { t.entree = &item }
func (t *Tray) SetSide(item menu.Item)          { t.side = &item }
func (t *Tray) SetAccompaniment(item menu.Item) { t.accompaniment = &item }

// Set places item in the slot for its course, replacing any previous pick.
func (t *Tray) Set(item menu.Item) bool {
	switch item.Course {
	case menu.CourseEntree:
		t.SetEntree(item)
	case menu.CourseSide:
		t.SetSide(item)
	case menu.CourseAccompaniment:
		t.SetAccompaniment(item)
	default:
		return false
	}
	return true
}

func (t *Tray) Entree() (menu.Item, bool)        { return deref(t.entree) }
func (t *Tray) Side() (menu.Item, bool)          { return deref(t.side) }
func (t *Tray) Accompaniment() (menu.Item, bool) { return deref(t.accompaniment) }

// Selected returns the pick for a course.
func (t *Tray) Selected(c menu.Course) (menu.Item, bool) {
	switch c {
	case menu.CourseEntree:
		return t.Entree()
	case menu.CourseSide:
		return t.Side()
	case menu.CourseAccompaniment:
		return t.Accompaniment()
	}
	return menu.Item{}, false
}

// Items returns present picks in course order.
func (t *Tray) Items() []menu.Item {
	var out []menu.Item
	for _, c := range menu.Courses() {
		if it, ok := t.Selected(c); ok {
			out = append(out, it)
		}
	}
	return out
}

func (t *Tray) Empty() bool {
	return t.entree == nil && t.side == nil && t.accompaniment == nil
}

func (t *Tray) Reset() {
	t.entree, t.side, t.accompaniment = nil, nil, nil
}

func (t *Tray) Totals() Totals {
	return ComputeTotals(t.Items(), t.taxRate)
}

func deref(it *menu.Item) (menu.Item, bool) {
	if it == nil {
		return menu.Item{}, false
	}
	return *it, true
}
