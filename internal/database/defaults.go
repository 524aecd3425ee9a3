package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/lunchtray/internal/database/repository"
	"github.com/jask/lunchtray/internal/menu"
)

// SeedMenu upserts the given catalog in one transaction. Item ids are
// stable, so it is idempotent and safe to run on every startup.
func SeedMenu(ctx context.Context, db *sql.DB, items []menu.Item) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		menuRepo := repository.NewMenuRepo(tx)
		for _, it := range items {
			if err := menuRepo.Upsert(ctx, it); err != nil {
				return fmt.Errorf("seed %s: %w", it.Name, err)
			}
		}
		return nil
	})
}
