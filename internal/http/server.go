package http

import (
	"net"
	"net/http"
	"time"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/middleware/ratelimit"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/middleware/security"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/middleware/trace"
)

// Server wires the JSON API routes behind the middleware chain.
type Server struct {
	http.Server
	handlers    *Handlers
	rateLimiter *ratelimit.Limiter
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, h *Handlers) *Server {
	mux := http.NewServeMux()

	limiter := ratelimit.NewLimiter(ratelimit.DefaultConfig())
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		handlers:    h,
		rateLimiter: limiter,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/auth/login", h.handleLogin)

	authed := http.NewServeMux()
	authed.HandleFunc("GET /api/dashboard", h.handleDashboard)
	authed.HandleFunc("GET /api/export/expenses.xlsx", h.handleExportExpenses)

	authed.HandleFunc("POST /api/expenses", h.handleCreateExpense)
	authed.HandleFunc("GET /api/expenses", h.handleListExpenses)
	authed.HandleFunc("DELETE /api/expenses/{id}", h.handleDeleteExpense)

	authed.HandleFunc("POST /api/budgets", h.handleCreateBudget)
	authed.HandleFunc("GET /api/budgets", h.handleBudgetStatuses)
	authed.HandleFunc("PUT /api/budgets/{id}", h.handleUpdateBudget)
	authed.HandleFunc("DELETE /api/budgets/{id}", h.handleDeleteBudget)

	authed.HandleFunc("POST /api/goals", h.handleCreateGoal)
	authed.HandleFunc("GET /api/goals", h.handleListGoals)
	authed.HandleFunc("POST /api/goals/{id}/deposits", h.handleDeposit)
	authed.HandleFunc("DELETE /api/goals/{id}", h.handleDeleteGoal)

	mux.Handle("/api/", h.authMiddleware(authed))

	chain := trace.Middleware(
		security.Headers(security.DefaultHeadersConfig())(
			limiter.Middleware(clientIP)(mux)))
	s.Handler = chain

	return s
}

// Stop releases the rate limiter's cleanup goroutine. Call alongside
// Shutdown.
func (s *Server) Stop() {
	s.rateLimiter.Stop()
}

// clientIP buckets rate limiting by the TCP peer. Forwarding headers are
// client-controlled and would let a caller pick its own bucket; a deployment
// behind a trusted proxy should terminate rate limiting there instead.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
