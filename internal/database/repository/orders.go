package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/lunchtray/internal/menu"
)

// OrderRepo handles submitted orders.
type OrderRepo struct{ db *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// Insert writes the order and its lines atomically.
func (r *OrderRepo) Insert(ctx context.Context, o Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO orders(id, subtotal, tax, total, tax_rate, submitted_at)
	VALUES(?, ?, ?, ?, ?, ?)
	`, o.ID, o.Subtotal.String(), o.Tax.String(), o.Total.String(), o.TaxRate.String(), o.SubmittedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, l := range o.Lines {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_lines(order_id, course, menu_item_id, name, price)
		VALUES(?, ?, ?, ?, ?)
		`, o.ID, string(l.Course), l.MenuItemID, l.Name, l.Price.String()); err != nil {
			return fmt.Errorf("insert order line %s: %w", l.Course, err)
		}
	}
	return tx.Commit()
}

// Recent returns the newest orders first, at most limit of them.
func (r *OrderRepo) Recent(ctx context.Context, limit int) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, subtotal, tax, total, tax_rate, submitted_at FROM orders ORDER BY submitted_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Subtotal, &o.Tax, &o.Total, &o.TaxRate, &o.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		lines, err := r.fetchLines(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Lines = lines
	}
	return out, nil
}

func (r *OrderRepo) fetchLines(ctx context.Context, orderID string) ([]OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT course, menu_item_id, name, price FROM order_lines WHERE order_id = ?
	ORDER BY CASE course WHEN 'entree' THEN 0 WHEN 'side' THEN 1 ELSE 2 END`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []OrderLine
	for rows.Next() {
		var (
			l      OrderLine
			course string
		)
		if err := rows.Scan(&course, &l.MenuItemID, &l.Name, &l.Price); err != nil {
			return nil, err
		}
		if l.Course, err = menu.ParseCourse(course); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
