package http

import (
	"net/http"
	"time"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/auth"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/services"
)

type createGoalRequest struct {
	Title      string     `json:"title"`
	Target     core.Money `json:"target_amount"`
	TargetDate string     `json:"target_date,omitempty"`
}

type depositRequest struct {
	Amount core.Money `json:"amount"`
}

func (h *Handlers) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	var req createGoalRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	goal := core.SavingsGoal{
		UserID: user.ID,
		Title:  req.Title,
		Target: req.Target,
	}
	if req.TargetDate != "" {
		goal.TargetDate, err = time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			writeBadRequest(w, "target_date must be YYYY-MM-DD")
			return
		}
	}

	saved, err := h.goals.Create(r.Context(), goal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handlers) handleListGoals(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	goals, err := h.goals.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if goals == nil {
		goals = []services.GoalWithProgress{}
	}
	writeJSON(w, http.StatusOK, goals)
}

// handleDeposit adds money to a goal and returns the updated goal. A
// deposit on a completed goal is rejected with a conflict.
func (h *Handlers) handleDeposit(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid id")
		return
	}

	var req depositRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	goal, err := h.goals.Deposit(r.Context(), user.ID, id, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *Handlers) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid id")
		return
	}

	if err := h.goals.Delete(r.Context(), user.ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
