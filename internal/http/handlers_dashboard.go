package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/auth"
)

// handleDashboard returns the landing-page summary: total monthly spend,
// total monthly budget, average savings progress and the five most recent
// expenses.
func (h *Handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	summary, err := h.dashboard.Summary(r.Context(), user.ID, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleExportExpenses streams the current month's expenses as an xlsx
// attachment.
func (h *Handlers) handleExportExpenses(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	now := h.now()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "expenses_"+now.Format("200601")+".xlsx"))

	if err := h.export.MonthlyXLSX(r.Context(), user.ID, now, w); err != nil {
		// Headers are out already; all we can do is log.
		slog.ErrorContext(r.Context(), "Export failed",
			"user_id", user.ID, "error", err)
	}
}
