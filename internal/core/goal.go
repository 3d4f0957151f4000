package core

// ApplyDeposit returns the goal with a deposit applied. The amount must be
// positive, and completed goals accept no further deposits. There is no
// upper clamp: overfunding is allowed and persisted as-is. Completed is
// recomputed from the new balance on every deposit, never drifted.
//
// The operation is not safe to retry after an ambiguous failure; a blind
// retry would double-apply the deposit. Callers persist the result through
// the store's conditional increment instead of read-modify-write.
func ApplyDeposit(goal SavingsGoal, amount Money) (SavingsGoal, error) {
	if amount.Cents <= 0 {
		return goal, ErrInvalidAmount
	}
	if goal.Completed {
		return goal, ErrGoalCompleted
	}
	goal.Current = goal.Current.Add(amount)
	goal.Completed = goal.Current.Cents >= goal.Target.Cents
	return goal, nil
}

// Progress returns the goal's completion percentage, uncapped. Display
// layers clamp to 100 for progress bars; aggregate statistics use the raw
// value.
func Progress(goal SavingsGoal) float64 {
	return percentage(goal.Current.Cents, goal.Target.Cents)
}
