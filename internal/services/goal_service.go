package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/events"
)

// GoalWithProgress pairs a savings goal with its completion percentage for
// presentation. The percentage is derived and never stored.
type GoalWithProgress struct {
	core.SavingsGoal
	Progress float64 `json:"progress_percentage"`
}

// GoalService manages savings goals and their deposit ledger.
type GoalService struct {
	store     GoalStore
	publisher Publisher
}

func NewGoalService(store GoalStore, publisher Publisher) *GoalService {
	return &GoalService{
		store:     store,
		publisher: publisher,
	}
}

// Create validates and persists a savings goal. New goals start at zero
// saved and incomplete.
func (s *GoalService) Create(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}

	g.Current = core.Money{}
	g.Completed = false

	saved, err := s.store.CreateGoal(ctx, g)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("save goal: %w", err)
	}
	return saved, nil
}

// List returns the user's goals, newest first, each with its progress
// percentage.
func (s *GoalService) List(ctx context.Context, userID int64) ([]GoalWithProgress, error) {
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	out := make([]GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalWithProgress{SavingsGoal: g, Progress: core.Progress(g)})
	}
	return out, nil
}

// Deposit adds money to a goal. The increment happens atomically in the
// store, so concurrent deposits cannot lose updates. Reaching the target
// marks the goal completed, which is terminal, and publishes an event.
func (s *GoalService) Deposit(ctx context.Context, userID, goalID int64, amount core.Money) (core.SavingsGoal, error) {
	if err := amount.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}

	goal, err := s.store.AddDeposit(ctx, userID, goalID, amount)
	if err != nil {
		return core.SavingsGoal{}, err
	}

	if goal.Completed {
		slog.InfoContext(ctx, "Savings goal completed",
			"goal_id", goal.ID, "user_id", goal.UserID)
		s.publish(ctx, events.NewEvent(events.GoalCompleted, goal.UserID, goal.ID))
	}
	return goal, nil
}

// Delete removes a goal and its accumulated amount.
func (s *GoalService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.store.DeleteGoal(ctx, userID, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func (s *GoalService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish event",
			"type", event.Type, "entity_id", event.EntityID, "error", err)
	}
}
