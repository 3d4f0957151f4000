package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
)

// DashboardService assembles the landing-page summary from the three record
// sets. Nothing is cached; every call recomputes from fresh reads.
type DashboardService struct {
	expenses ExpenseStore
	budgets  BudgetStore
	goals    GoalStore
}

func NewDashboardService(expenses ExpenseStore, budgets BudgetStore, goals GoalStore) *DashboardService {
	return &DashboardService{
		expenses: expenses,
		budgets:  budgets,
		goals:    goals,
	}
}

// Summary fetches the user's current-month expenses, monthly budgets and
// savings goals concurrently, then folds them into one summary.
func (s *DashboardService) Summary(ctx context.Context, userID int64, now time.Time) (core.DashboardSummary, error) {
	periodStart := core.MonthStart(now)

	var (
		expenses []core.Expense
		budgets  []core.Budget
		goals    []core.SavingsGoal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListExpensesSince(gctx, userID, periodStart)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.ListBudgets(gctx, userID, core.PeriodMonthly)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.goals.ListGoals(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.DashboardSummary{}, fmt.Errorf("load dashboard: %w", err)
	}

	return core.ComputeDashboardSummary(expenses, budgets, goals, periodStart), nil
}
