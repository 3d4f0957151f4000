package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/auth"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/services"
)

// UserStore is the user persistence surface the API needs for login and
// token verification.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (core.User, error)
	GetUserByID(ctx context.Context, id int64) (core.User, error)
}

// Handlers bundles the services behind the API endpoints.
type Handlers struct {
	expenses  *services.ExpenseService
	budgets   *services.BudgetService
	goals     *services.GoalService
	dashboard *services.DashboardService
	export    *services.ExportService
	users     UserStore

	jwtSecret string
	tokenTTL  time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

func NewHandlers(
	expenses *services.ExpenseService,
	budgets *services.BudgetService,
	goals *services.GoalService,
	dashboard *services.DashboardService,
	export *services.ExportService,
	users UserStore,
	jwtSecret string,
	tokenTTL time.Duration,
) *Handlers {
	return &Handlers{
		expenses:  expenses,
		budgets:   budgets,
		goals:     goals,
		dashboard: dashboard,
		export:    export,
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (h *Handlers) authMiddleware(next http.Handler) http.Handler {
	return auth.Middleware(h.jwtSecret, h.users)(next)
}

// pathID extracts the {id} path value as an int64.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
