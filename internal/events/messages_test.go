package events

import (
	"testing"
)

func TestEventJSONRoundTrip(t *testing.T) {
	e := NewEvent(GoalCompleted, 7, 42)
	data, err := e.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := EventFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Type != GoalCompleted || back.UserID != 7 || back.EntityID != 42 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if back.Timestamp.IsZero() {
		t.Fatal("timestamp must survive the round trip")
	}
}

func TestEventFromJSONInvalid(t *testing.T) {
	if _, err := EventFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
