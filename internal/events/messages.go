package events

import (
	"encoding/json"
	"time"
)

// Type identifies what happened to which entity.
type Type string

const (
	ExpenseCreated Type = "expense.created"
	ExpenseDeleted Type = "expense.deleted"
	GoalCompleted  Type = "goal.completed"
)

// Event is the wire form of a domain event. It carries ids only; consumers
// fetch the full record if they need it.
type Event struct {
	Type      Type      `json:"type"`
	UserID    int64     `json:"user_id"`
	EntityID  int64     `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(t Type, userID, entityID int64) *Event {
	return &Event{
		Type:      t,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON creates an event from JSON bytes
func EventFromJSON(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
