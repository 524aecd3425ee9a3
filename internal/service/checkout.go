package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/lunchtray/internal/database"
	"github.com/jask/lunchtray/internal/database/repository"
	"github.com/jask/lunchtray/internal/messaging"
	"github.com/jask/lunchtray/internal/order"
)

// ErrEmptyTray is returned when checkout is attempted with nothing picked.
var ErrEmptyTray = errors.New("checkout: tray is empty")

// KitchenNotifier receives a ticket for every stored order.
type KitchenNotifier interface {
	PublishTicket(ctx context.Context, t messaging.Ticket) error
}

// CheckoutService stores confirmed orders and forwards them to the kitchen.
type CheckoutService struct {
	Orders  *repository.OrderRepo
	Kitchen KitchenNotifier // optional
	Log     *zap.Logger
	Now     func() time.Time
}

// Submit persists snap as a new order. A kitchen publish failure is logged
// but does not fail the call since the order is already stored.
func (s *CheckoutService) Submit(ctx context.Context, snap order.Snapshot) (repository.Order, error) {
	if len(snap.Items) == 0 {
		return repository.Order{}, ErrEmptyTray
	}
	if s.Orders == nil {
		return repository.Order{}, fmt.Errorf("checkout: orders repo not configured")
	}
	now := database.Now
	if s.Now != nil {
		now = s.Now
	}

	o := repository.Order{
		ID:          uuid.NewString(),
		Subtotal:    snap.Totals.Subtotal,
		Tax:         snap.Totals.Tax,
		Total:       snap.Totals.Total,
		TaxRate:     snap.TaxRate,
		SubmittedAt: now(),
	}
	for _, it := range snap.Items {
		o.Lines = append(o.Lines, repository.OrderLine{
			Course:     it.Course,
			MenuItemID: it.ID,
			Name:       it.Name,
			Price:      it.Price,
		})
	}
	if err := s.Orders.Insert(ctx, o); err != nil {
		return repository.Order{}, fmt.Errorf("store order: %w", err)
	}
	s.logger().Info("order submitted",
		zap.String("order_id", o.ID),
		zap.Int("items", len(o.Lines)),
		zap.String("total", o.Total.StringFixed(2)))

	if s.Kitchen != nil {
		if err := s.Kitchen.PublishTicket(ctx, ticketFor(o)); err != nil {
			s.logger().Warn("kitchen ticket not sent", zap.String("order_id", o.ID), zap.Error(err))
		}
	}
	return o, nil
}

// Recent returns the latest orders, newest first.
func (s *CheckoutService) Recent(ctx context.Context, limit int) ([]repository.Order, error) {
	if s.Orders == nil {
		return nil, fmt.Errorf("checkout: orders repo not configured")
	}
	return s.Orders.Recent(ctx, limit)
}

func (s *CheckoutService) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func ticketFor(o repository.Order) messaging.Ticket {
	t := messaging.Ticket{
		OrderID:     o.ID,
		Total:       o.Total.StringFixed(2),
		SubmittedAt: o.SubmittedAt,
	}
	for _, l := range o.Lines {
		t.Items = append(t.Items, messaging.TicketItem{Course: string(l.Course), Name: l.Name})
	}
	return t
}
