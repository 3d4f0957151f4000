package http

import (
	"net/http"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/auth"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
)

type createBudgetRequest struct {
	Category string     `json:"category"`
	Limit    core.Money `json:"limit_amount"`
}

type updateBudgetRequest struct {
	Limit core.Money `json:"limit_amount"`
}

// budgetStatusResponse flattens a computed status for the wire.
type budgetStatusResponse struct {
	core.Budget
	Spent      core.Money       `json:"spent"`
	Percentage float64          `json:"percentage"`
	State      core.BudgetState `json:"state"`
}

func (h *Handlers) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	var req createBudgetRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	category, err := core.ParseCategory(req.Category)
	if err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.budgets.Create(r.Context(), core.Budget{
		UserID:   user.ID,
		Category: category,
		Limit:    req.Limit,
		Period:   core.PeriodMonthly,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// handleBudgetStatuses returns every budget with its current-month spend,
// utilization percentage and state.
func (h *Handlers) handleBudgetStatuses(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	statuses, err := h.budgets.Statuses(r.Context(), user.ID, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]budgetStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, budgetStatusResponse{
			Budget:     st.Budget,
			Spent:      st.Spent,
			Percentage: st.Percentage,
			State:      st.State(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
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

	var req updateBudgetRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := h.budgets.UpdateLimit(r.Context(), user.ID, id, req.Limit); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handlers) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
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

	if err := h.budgets.Delete(r.Context(), user.ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
