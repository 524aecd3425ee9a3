package service

import (
	"context"
	"fmt"

	"github.com/jask/lunchtray/internal/database/repository"
	"github.com/jask/lunchtray/internal/menu"
)

// MenuService loads the catalog for the menu screens.
type MenuService struct {
	Menu *repository.MenuRepo
}

// Load returns every item grouped by course.
func (s *MenuService) Load(ctx context.Context) (map[menu.Course][]menu.Item, error) {
	if s.Menu == nil {
		return nil, fmt.Errorf("menu: repo not configured")
	}
	items, err := s.Menu.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	return menu.Group(items), nil
}
