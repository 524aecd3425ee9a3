package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/lunchtray/internal/menu"
)

// Order represents a submitted order row with its lines.
type Order struct {
	ID          string
	Lines       []OrderLine
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	TaxRate     decimal.Decimal
	SubmittedAt time.Time
}

// OrderLine is one picked item, copied at submit time so later menu edits
// do not rewrite history.
type OrderLine struct {
	Course     menu.Course
	MenuItemID string
	Name       string
	Price      decimal.Decimal
}
