package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/events"
)

// ExpenseService records and lists spending for one user at a time.
type ExpenseService struct {
	store     ExpenseStore
	publisher Publisher
}

func NewExpenseService(store ExpenseStore, publisher Publisher) *ExpenseService {
	return &ExpenseService{
		store:     store,
		publisher: publisher,
	}
}

// Create validates and persists an expense, then publishes a created event.
// Validation failures never reach the store.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	saved, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, events.NewEvent(events.ExpenseCreated, saved.UserID, saved.ID))
	return saved, nil
}

// ListCurrentMonth returns the user's expenses since the first of now's
// month, newest first.
func (s *ExpenseService) ListCurrentMonth(ctx context.Context, userID int64, now time.Time) ([]core.Expense, error) {
	expenses, err := s.store.ListExpensesSince(ctx, userID, core.MonthStart(now))
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Delete removes an expense. Other records are untouched; past deposits and
// budgets never change retroactively.
func (s *ExpenseService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.store.DeleteExpense(ctx, userID, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.publish(ctx, events.NewEvent(events.ExpenseDeleted, userID, id))
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// Best-effort: the write already succeeded.
		slog.ErrorContext(ctx, "Failed to publish event",
			"type", event.Type, "entity_id", event.EntityID, "error", err)
	}
}
