package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
)

// BudgetService manages spending limits and derives their utilization.
type BudgetService struct {
	budgets  BudgetStore
	expenses ExpenseStore
}

func NewBudgetService(budgets BudgetStore, expenses ExpenseStore) *BudgetService {
	return &BudgetService{
		budgets:  budgets,
		expenses: expenses,
	}
}

// Create validates and persists a budget.
func (s *BudgetService) Create(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	saved, err := s.budgets.CreateBudget(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("save budget: %w", err)
	}
	return saved, nil
}

// Statuses computes the spend-vs-limit view for every monthly budget of the
// user. Budgets and expenses are independent read-only queries, so they are
// fetched concurrently; aggregation starts once both have returned.
func (s *BudgetService) Statuses(ctx context.Context, userID int64, now time.Time) ([]core.BudgetStatus, error) {
	periodStart := core.MonthStart(now)

	var (
		budgets  []core.Budget
		expenses []core.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.ListBudgets(gctx, userID, core.PeriodMonthly)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListExpensesSince(gctx, userID, periodStart)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load budget statuses: %w", err)
	}

	return core.ComputeBudgetStatuses(budgets, expenses, periodStart), nil
}

// UpdateLimit changes a budget's limit amount.
func (s *BudgetService) UpdateLimit(ctx context.Context, userID, id int64, limit core.Money) error {
	if err := limit.Validate(); err != nil {
		return err
	}
	if err := s.budgets.UpdateBudget(ctx, userID, id, limit); err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return nil
}

// Delete removes a budget. Past expense records are unaffected.
func (s *BudgetService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.budgets.DeleteBudget(ctx, userID, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}
