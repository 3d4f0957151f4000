// Package worker consumes domain events off the queue and turns them into
// notification records. It runs as a separate binary so a broker outage
// never touches the API process.
package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/events"
	applog "github.com/patilmallikarjuna1130-maker/finance-track/internal/log"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/storage"
)

// GoalGetter is the slice of storage the notifier needs.
type GoalGetter interface {
	GetGoal(ctx context.Context, userID, id int64) (core.SavingsGoal, error)
}

// Notifier handles consumed events. Goal completions are enriched with the
// goal record; expense events pass through as activity entries.
type Notifier struct {
	goals GoalGetter
	log   *applog.Logger
}

func NewNotifier(goals GoalGetter) *Notifier {
	return &Notifier{
		goals: goals,
		log:   applog.New(applog.DefaultConfig()).WithComponent("worker"),
	}
}

// HandleEvent processes one delivery. Returning an error requeues it, so
// only transient failures may propagate; a missing record is final.
func (n *Notifier) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Type {
	case events.GoalCompleted:
		return n.handleGoalCompleted(ctx, event)
	case events.ExpenseCreated, events.ExpenseDeleted:
		n.log.InfoContext(ctx, "Activity recorded",
			"type", event.Type,
			"user_id", event.UserID,
			"expense_id", event.EntityID,
			"at", event.Timestamp)
		return nil
	default:
		n.log.WarnContext(ctx, "Unknown event type, dropping", "type", event.Type)
		return nil
	}
}

func (n *Notifier) handleGoalCompleted(ctx context.Context, event *events.Event) error {
	goal, err := n.goals.GetGoal(ctx, event.UserID, event.EntityID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Goal deleted between completion and consumption.
			n.log.WarnContext(ctx, "Completed goal no longer exists",
				"goal_id", event.EntityID, "user_id", event.UserID)
			return nil
		}
		return fmt.Errorf("load completed goal %d: %w", event.EntityID, err)
	}

	n.log.InfoContext(ctx, "Savings goal reached",
		"goal_id", goal.ID,
		"user_id", goal.UserID,
		"title", goal.Title,
		"target", goal.Target.String(),
		"saved", goal.Current.String())
	return nil
}
