package repository

import (
	"context"
	"database/sql"

	"github.com/jask/lunchtray/internal/menu"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// MenuRepo handles menu items.
type MenuRepo struct {
	db DBTX
}

func NewMenuRepo(db DBTX) *MenuRepo {
	return &MenuRepo{db: db}
}

func (r *MenuRepo) Upsert(ctx context.Context, it menu.Item) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO menu_items(id, course, name, description, price, image, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 course=excluded.course,
	 name=excluded.name,
	 description=excluded.description,
	 price=excluded.price,
	 image=excluded.image,
	 sort_order=excluded.sort_order;
	`, it.ID, string(it.Course), it.Name, it.Description, it.Price.String(), it.Image, it.SortOrder)
	return err
}

// List returns every item ordered by course then sort order.
func (r *MenuRepo) List(ctx context.Context) ([]menu.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, course, name, description, price, image, sort_order FROM menu_items
	ORDER BY CASE course WHEN 'entree' THEN 0 WHEN 'side' THEN 1 ELSE 2 END, sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []menu.Item
	for rows.Next() {
		var (
			it     menu.Item
			course string
		)
		if err := rows.Scan(&it.ID, &course, &it.Name, &it.Description, &it.Price, &it.Image, &it.SortOrder); err != nil {
			return nil, err
		}
		if it.Course, err = menu.ParseCourse(course); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
