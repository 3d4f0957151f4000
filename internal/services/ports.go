// Package services orchestrates storage, the aggregation engine and event
// publishing. Services own no state beyond their collaborators; every view
// is recomputed from a fresh fetch.
package services

import (
	"context"
	"time"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/events"
)

// ExpenseStore is the persistence surface for expenses. There is no update:
// expenses are immutable once created.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	ListExpensesSince(ctx context.Context, userID int64, since time.Time) ([]core.Expense, error)
	DeleteExpense(ctx context.Context, userID, id int64) error
}

// BudgetStore is the persistence surface for budgets.
type BudgetStore interface {
	CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	ListBudgets(ctx context.Context, userID int64, period core.Period) ([]core.Budget, error)
	UpdateBudget(ctx context.Context, userID, id int64, limit core.Money) error
	DeleteBudget(ctx context.Context, userID, id int64) error
}

// GoalStore is the persistence surface for savings goals. AddDeposit must
// be an atomic conditional increment, not read-modify-write.
type GoalStore interface {
	CreateGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error)
	ListGoals(ctx context.Context, userID int64) ([]core.SavingsGoal, error)
	GetGoal(ctx context.Context, userID, id int64) (core.SavingsGoal, error)
	AddDeposit(ctx context.Context, userID, goalID int64, amount core.Money) (core.SavingsGoal, error)
	DeleteGoal(ctx context.Context, userID, id int64) error
}

// Publisher sends domain events. Services treat a nil Publisher as
// "publishing disabled" and never fail a write over it.
type Publisher interface {
	Publish(ctx context.Context, event *events.Event) error
}
