package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/lunchtray/internal/database"
)

// MaintenanceService houses destructive actions surfaced through the TUI.
type MaintenanceService struct {
	DB *sql.DB
}

// ClearHistory deletes every stored order. The menu is left alone.
func (s *MaintenanceService) ClearHistory(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	return database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"order_lines", "orders"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("clear table %s: %w", t, err)
			}
		}
		return nil
	})
}
