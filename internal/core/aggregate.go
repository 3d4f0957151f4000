package core

import (
	"sort"
	"time"
)

// BudgetState classifies budget utilization for display. It is a pure
// function of the percentage, never stored.
type BudgetState string

const (
	BudgetOnTrack   BudgetState = "on_track"
	BudgetNearLimit BudgetState = "near_limit"
	BudgetOver      BudgetState = "over_budget"

	nearLimitThreshold = 80.0
	overThreshold      = 100.0

	// RecentExpenseLimit is how many expenses the dashboard shows.
	RecentExpenseLimit = 5
)

// BudgetStatus is the derived spend-vs-limit view for one budget.
// Recomputed fresh on every load; never persisted.
type BudgetStatus struct {
	Budget     Budget  `json:"budget"`
	Spent      Money   `json:"spent"`
	Percentage float64 `json:"percentage"`
}

// State returns the threshold classification for this status.
func (s BudgetStatus) State() BudgetState {
	switch {
	case s.Percentage > overThreshold:
		return BudgetOver
	case s.Percentage > nearLimitThreshold:
		return BudgetNearLimit
	default:
		return BudgetOnTrack
	}
}

// DashboardSummary is the derived overview for the current period.
type DashboardSummary struct {
	TotalMonthlySpend      Money     `json:"total_monthly_spend"`
	TotalMonthlyBudget     Money     `json:"total_monthly_budget"`
	AverageSavingsProgress float64   `json:"average_savings_progress_percentage"`
	RecentExpenses         []Expense `json:"recent_expenses"`
}

// ComputeBudgetStatuses derives the spend and utilization percentage for
// each budget from the expenses of the current period. Expenses count when
// their date is on or after periodStart and their category matches. The
// result preserves the input budget order. A zero limit yields percentage 0
// rather than a division by zero; the store never creates such a budget, but
// malformed rows must not break the load.
func ComputeBudgetStatuses(budgets []Budget, expenses []Expense, periodStart time.Time) []BudgetStatus {
	spentByCategory := make(map[Category]int64, len(budgets))
	for _, e := range expenses {
		if e.Date.Before(periodStart) {
			continue
		}
		spentByCategory[e.Category] += e.Amount.Cents
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[b.Category]
		statuses = append(statuses, BudgetStatus{
			Budget:     b,
			Spent:      Money{Cents: spent},
			Percentage: percentage(spent, b.Limit.Cents),
		})
	}
	return statuses
}

// ComputeDashboardSummary derives the dashboard metrics. The total budget
// sums every monthly budget, duplicates per category included. The savings
// average covers incomplete goals only and is deliberately uncapped: an
// overfunded goal pulls the average above 100. Zero incomplete goals yield 0.
func ComputeDashboardSummary(expenses []Expense, budgets []Budget, goals []SavingsGoal, periodStart time.Time) DashboardSummary {
	var spent int64
	for _, e := range expenses {
		if e.Date.Before(periodStart) {
			continue
		}
		spent += e.Amount.Cents
	}

	var budgeted int64
	for _, b := range budgets {
		if b.Period == PeriodMonthly {
			budgeted += b.Limit.Cents
		}
	}

	var progressSum float64
	var incomplete int
	for _, g := range goals {
		if g.Completed {
			continue
		}
		incomplete++
		progressSum += Progress(g)
	}
	var avg float64
	if incomplete > 0 {
		avg = progressSum / float64(incomplete)
	}

	return DashboardSummary{
		TotalMonthlySpend:      Money{Cents: spent},
		TotalMonthlyBudget:     Money{Cents: budgeted},
		AverageSavingsProgress: avg,
		RecentExpenses:         RecentExpenses(expenses, RecentExpenseLimit),
	}
}

// RecentExpenses returns up to limit expenses with the latest dates, most
// recent first. Ties on the same date go to the later-created expense,
// relying on IDs being assigned in creation order.
func RecentExpenses(expenses []Expense, limit int) []Expense {
	sorted := make([]Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
