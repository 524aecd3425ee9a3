package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/lunchtray/internal/menu"
)

func item(course menu.Course, name, price string) menu.Item {
	return menu.Item{
		ID:     menu.ItemID(course, name),
		Course: course,
		Name:   name,
		Price:  decimal.RequireFromString(price),
	}
}

func requireDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestTotalsEmpty(t *testing.T) {
	tr := NewTray(DefaultTaxRate)
	tot := tr.Totals()
	require.True(t, tot.Subtotal.IsZero())
	require.True(t, tot.Tax.IsZero())
	require.True(t, tot.Total.IsZero())
	require.True(t, tr.Empty())
}

func TestTotalsFullTray(t *testing.T) {
	tr := NewTray(DefaultTaxRate)
	tr.SetEntree(item(menu.CourseEntree, "Pasta", "5.00"))
	tr.SetSide(item(menu.CourseSide, "Salad", "2.00"))
	tr.SetAccompaniment(item(menu.CourseAccompaniment, "Roll", "1.50"))

	tot := tr.Totals()
	requireDec(t, "8.50", tot.Subtotal)
	requireDec(t, "0.68", tot.Tax)
	requireDec(t, "9.18", tot.Total)
	require.Equal(t, "9.18", tot.Total.StringFixed(2))
}

func TestTotalsSkipAbsentItems(t *testing.T) {
	tr := NewTray(DefaultTaxRate)
	tr.SetSide(item(menu.CourseSide, "Soup", "3.00"))
	tot := tr.Totals()
	requireDec(t, "3.00", tot.Subtotal)
	requireDec(t, "0.24", tot.Tax)
	requireDec(t, "3.24", tot.Total)
}

func TestTaxRoundsHalfToEven(t *testing.T) {
	// 0.3125 * 0.08 = 0.025 exactly; banker's rounding keeps 0.02.
	tot := ComputeTotals([]menu.Item{item(menu.CourseEntree, "x", "0.3125")}, DefaultTaxRate)
	requireDec(t, "0.02", tot.Tax)
}

func TestSelectingReplacesPriorPick(t *testing.T) {
	tr := NewTray(DefaultTaxRate)
	tr.SetEntree(item(menu.CourseEntree, "Cauliflower", "7.00"))
	tr.SetEntree(item(menu.CourseEntree, "Chili", "4.00"))

	got, ok := tr.Entree()
	require.True(t, ok)
	require.Equal(t, "Chili", got.Name)
	require.Len(t, tr.Items(), 1)
	requireDec(t, "4.00", tr.Totals().Subtotal)
}

func TestTraySetDispatchesOnCourse(t *testing.T) {
	tr := NewTray(DefaultTaxRate)
	require.True(t, tr.Set(item(menu.CourseAccompaniment, "Berries", "1.00")))
	require.False(t, tr.Set(menu.Item{Name: "mystery"}))

	items := tr.Items()
	require.Len(t, items, 1)
	require.Equal(t, menu.CourseAccompaniment, items[0].Course)

	tr.Reset()
	require.True(t, tr.Empty())
	_, ok := tr.Accompaniment()
	require.False(t, ok)
}
