package core

import (
	"testing"
	"time"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestComputeBudgetStatuses(t *testing.T) {
	periodStart := date(2026, 3, 1)
	budget := Budget{ID: 1, Category: CategoryFood, Limit: Money{Cents: 10000}, Period: PeriodMonthly}
	expenses := []Expense{
		{ID: 1, Amount: Money{Cents: 5000}, Category: CategoryFood, Date: date(2026, 3, 3)},
		{ID: 2, Amount: Money{Cents: 3000}, Category: CategoryFood, Date: date(2026, 3, 20)},
		{ID: 3, Amount: Money{Cents: 9999}, Category: CategoryRent, Date: date(2026, 3, 5)},
		{ID: 4, Amount: Money{Cents: 4000}, Category: CategoryFood, Date: date(2026, 2, 28)}, // previous period
	}

	statuses := ComputeBudgetStatuses([]Budget{budget}, expenses, periodStart)
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	got := statuses[0]
	if got.Spent.Cents != 8000 {
		t.Fatalf("spent = %d cents, want 8000", got.Spent.Cents)
	}
	if got.Percentage != 80 {
		t.Fatalf("percentage = %v, want 80", got.Percentage)
	}
	// Exactly 80 is still on track; near-limit starts strictly above it.
	if got.State() != BudgetOnTrack {
		t.Fatalf("state = %s, want %s", got.State(), BudgetOnTrack)
	}
}

func TestComputeBudgetStatusesNearLimit(t *testing.T) {
	periodStart := date(2026, 3, 1)
	budgets := []Budget{{Category: CategoryFood, Limit: Money{Cents: 10000}, Period: PeriodMonthly}}
	expenses := []Expense{
		{Amount: Money{Cents: 8500}, Category: CategoryFood, Date: date(2026, 3, 3)},
	}
	statuses := ComputeBudgetStatuses(budgets, expenses, periodStart)
	if statuses[0].Percentage != 85 {
		t.Fatalf("percentage = %v, want 85", statuses[0].Percentage)
	}
	if statuses[0].State() != BudgetNearLimit {
		t.Fatalf("state = %s, want %s", statuses[0].State(), BudgetNearLimit)
	}
}

func TestComputeBudgetStatusesPeriodStartInclusive(t *testing.T) {
	periodStart := date(2026, 3, 1)
	budgets := []Budget{{Category: CategoryBooks, Limit: Money{Cents: 1000}, Period: PeriodMonthly}}
	expenses := []Expense{
		{Amount: Money{Cents: 500}, Category: CategoryBooks, Date: periodStart},
	}
	statuses := ComputeBudgetStatuses(budgets, expenses, periodStart)
	if statuses[0].Spent.Cents != 500 {
		t.Fatalf("expense on periodStart must count, got %d cents", statuses[0].Spent.Cents)
	}
}

func TestComputeBudgetStatusesZeroLimit(t *testing.T) {
	// Malformed row: the UI never creates a zero limit, but the engine must
	// not divide by zero.
	budgets := []Budget{{Category: CategoryOther, Limit: Money{Cents: 0}, Period: PeriodMonthly}}
	expenses := []Expense{
		{Amount: Money{Cents: 100}, Category: CategoryOther, Date: date(2026, 3, 3)},
	}
	statuses := ComputeBudgetStatuses(budgets, expenses, date(2026, 3, 1))
	if statuses[0].Percentage != 0 {
		t.Fatalf("zero limit: percentage = %v, want 0", statuses[0].Percentage)
	}
}

func TestComputeBudgetStatusesPreservesInputOrder(t *testing.T) {
	budgets := []Budget{
		{ID: 7, Category: CategoryRent, Limit: Money{Cents: 50000}, Period: PeriodMonthly},
		{ID: 3, Category: CategoryFood, Limit: Money{Cents: 10000}, Period: PeriodMonthly},
		{ID: 9, Category: CategoryBooks, Limit: Money{Cents: 2000}, Period: PeriodMonthly},
	}
	statuses := ComputeBudgetStatuses(budgets, nil, date(2026, 3, 1))
	for i := range budgets {
		if statuses[i].Budget.ID != budgets[i].ID {
			t.Fatalf("position %d: got budget %d, want %d", i, statuses[i].Budget.ID, budgets[i].ID)
		}
	}
}

func TestBudgetStateThresholds(t *testing.T) {
	cases := []struct {
		pct  float64
		want BudgetState
	}{
		{0, BudgetOnTrack},
		{79.9, BudgetOnTrack},
		{80, BudgetOnTrack},
		{80.1, BudgetNearLimit},
		{100, BudgetNearLimit},
		{100.1, BudgetOver},
		{250, BudgetOver},
	}
	for i, tc := range cases {
		got := BudgetStatus{Percentage: tc.pct}.State()
		if got != tc.want {
			t.Fatalf("case %d (pct=%v): got %s, want %s", i, tc.pct, got, tc.want)
		}
	}
}

func TestComputeDashboardSummary(t *testing.T) {
	periodStart := date(2026, 3, 1)
	expenses := []Expense{
		{ID: 1, Amount: Money{Cents: 5000}, Category: CategoryFood, Date: date(2026, 3, 3)},
		{ID: 2, Amount: Money{Cents: 3000}, Category: CategoryRent, Date: date(2026, 3, 10)},
		{ID: 3, Amount: Money{Cents: 700}, Category: CategoryFood, Date: date(2026, 2, 20)}, // excluded
	}
	budgets := []Budget{
		{Category: CategoryFood, Limit: Money{Cents: 10000}, Period: PeriodMonthly},
		{Category: CategoryFood, Limit: Money{Cents: 4000}, Period: PeriodMonthly}, // duplicate category sums
		{Category: CategoryRent, Limit: Money{Cents: 50000}, Period: PeriodMonthly},
	}
	goals := []SavingsGoal{
		{Target: Money{Cents: 100000}, Current: Money{Cents: 40000}},                  // 40%
		{Target: Money{Cents: 50000}, Current: Money{Cents: 60000}},                   // 120%, uncapped
		{Target: Money{Cents: 1000}, Current: Money{Cents: 1000}, Completed: true},    // excluded
	}

	sum := ComputeDashboardSummary(expenses, budgets, goals, periodStart)
	if sum.TotalMonthlySpend.Cents != 8000 {
		t.Fatalf("total spend = %d cents, want 8000", sum.TotalMonthlySpend.Cents)
	}
	if sum.TotalMonthlyBudget.Cents != 64000 {
		t.Fatalf("total budget = %d cents, want 64000", sum.TotalMonthlyBudget.Cents)
	}
	if sum.AverageSavingsProgress != 80 {
		t.Fatalf("avg savings progress = %v, want 80 (mean of 40 and 120)", sum.AverageSavingsProgress)
	}
	if len(sum.RecentExpenses) != 2 {
		t.Fatalf("recent expenses = %d, want 2", len(sum.RecentExpenses))
	}
	if sum.RecentExpenses[0].ID != 2 {
		t.Fatalf("most recent expense = %d, want 2", sum.RecentExpenses[0].ID)
	}
}

func TestComputeDashboardSummaryNoGoals(t *testing.T) {
	sum := ComputeDashboardSummary(nil, nil, nil, date(2026, 3, 1))
	if sum.AverageSavingsProgress != 0 {
		t.Fatalf("avg with zero goals = %v, want 0", sum.AverageSavingsProgress)
	}
	if sum.TotalMonthlySpend.Cents != 0 || sum.TotalMonthlyBudget.Cents != 0 {
		t.Fatalf("empty inputs must yield zero totals, got %+v", sum)
	}
}

func TestComputeDashboardSummaryAllGoalsCompleted(t *testing.T) {
	goals := []SavingsGoal{
		{Target: Money{Cents: 1000}, Current: Money{Cents: 1000}, Completed: true},
		{Target: Money{Cents: 2000}, Current: Money{Cents: 2500}, Completed: true},
	}
	sum := ComputeDashboardSummary(nil, nil, goals, date(2026, 3, 1))
	if sum.AverageSavingsProgress != 0 {
		t.Fatalf("avg with only completed goals = %v, want 0", sum.AverageSavingsProgress)
	}
}

func TestRecentExpensesOrderingAndTies(t *testing.T) {
	d := date(2026, 3, 15)
	expenses := []Expense{
		{ID: 1, Date: date(2026, 3, 2)},
		{ID: 2, Date: d},
		{ID: 3, Date: d}, // same date, created later, wins the tie
		{ID: 4, Date: date(2026, 3, 20)},
		{ID: 5, Date: date(2026, 3, 1)},
		{ID: 6, Date: date(2026, 3, 10)},
	}
	got := RecentExpenses(expenses, 5)
	wantIDs := []int64{4, 3, 2, 6, 1}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d expenses, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Fatalf("position %d: got expense %d, want %d", i, got[i].ID, want)
		}
	}
	// The input must not be reordered.
	if expenses[0].ID != 1 || expenses[5].ID != 6 {
		t.Fatal("RecentExpenses must not mutate its input")
	}
}

func TestRecentExpensesShortInput(t *testing.T) {
	got := RecentExpenses([]Expense{{ID: 1, Date: date(2026, 3, 2)}}, 5)
	if len(got) != 1 {
		t.Fatalf("got %d expenses, want 1", len(got))
	}
}
