package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/auth"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/services"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/storage"
)

const testSecret = "test-secret-0123456789abcdef"

type testAPI struct {
	server *Server
	repo   *storage.SQLiteRepository
	token  string
	userID int64
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	user, err := repo.CreateUser(context.Background(), "alice", hash)
	require.NoError(t, err)

	handlers := NewHandlers(
		services.NewExpenseService(repo, nil),
		services.NewBudgetService(repo, repo),
		services.NewGoalService(repo, nil),
		services.NewDashboardService(repo, repo, repo),
		services.NewExportService(repo),
		repo,
		testSecret,
		time.Hour,
	)
	handlers.now = func() time.Time {
		return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	}

	server := NewServer(":0", handlers)
	t.Cleanup(server.Stop)

	token, err := auth.GenerateToken(testSecret, user.ID, time.Hour)
	require.NoError(t, err)

	return &testAPI{server: server, repo: repo, token: token, userID: user.ID}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+a.token)
	rec := httptest.NewRecorder()
	a.server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)

	t.Run("valid credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"username":"alice","password":"hunter22"}`))
		rec := httptest.NewRecorder()
		api.server.Handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp loginResponse
		decodeInto(t, rec, &resp)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"username":"alice","password":"wrong"}`))
		rec := httptest.NewRecorder()
		api.server.Handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user looks the same as wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"username":"mallory","password":"hunter22"}`))
		rec := httptest.NewRecorder()
		api.server.Handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAPIRequiresToken(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	api.server.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpenseEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/expenses", map[string]any{
		"amount":      "12.50",
		"category":    "food",
		"description": "groceries",
		"date":        "2026-03-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created core.Expense
	decodeInto(t, rec, &created)
	assert.Equal(t, int64(1250), created.Amount.Cents)

	rec = api.do(t, http.MethodGet, "/api/expenses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []core.Expense
	decodeInto(t, rec, &list)
	require.Len(t, list, 1)

	rec = api.do(t, http.MethodPost, "/api/expenses", map[string]any{
		"amount": "5.00", "category": "snacks", "date": "2026-03-10",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/expenses/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/expenses/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBudgetEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/budgets", map[string]any{
		"category": "food", "limit_amount": "100.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/budgets", map[string]any{
		"category": "food", "limit_amount": "50.00",
	})
	assert.Equal(t, http.StatusConflict, rec.Code, "one budget per category and period")

	for _, amount := range []string{"55.00", "30.00"} {
		rec = api.do(t, http.MethodPost, "/api/expenses", map[string]any{
			"amount": amount, "category": "food", "date": "2026-03-05",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/budgets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var statuses []budgetStatusResponse
	decodeInto(t, rec, &statuses)
	require.Len(t, statuses, 1)
	assert.Equal(t, int64(8500), statuses[0].Spent.Cents)
	assert.InDelta(t, 85.0, statuses[0].Percentage, 1e-9)
	assert.Equal(t, core.BudgetNearLimit, statuses[0].State)

	rec = api.do(t, http.MethodPut, "/api/budgets/1", map[string]any{
		"limit_amount": "200.00",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/budgets/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGoalEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/goals", map[string]any{
		"title": "Spring trip", "target_amount": "10.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var goal core.SavingsGoal
	decodeInto(t, rec, &goal)

	rec = api.do(t, http.MethodPost, "/api/goals/1/deposits", map[string]any{
		"amount": "4.00",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &goal)
	assert.Equal(t, int64(400), goal.Current.Cents)
	assert.False(t, goal.Completed)

	rec = api.do(t, http.MethodPost, "/api/goals/1/deposits", map[string]any{
		"amount": "6.00",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &goal)
	assert.True(t, goal.Completed)

	rec = api.do(t, http.MethodPost, "/api/goals/1/deposits", map[string]any{
		"amount": "1.00",
	})
	assert.Equal(t, http.StatusConflict, rec.Code, "completed goals take no more deposits")

	rec = api.do(t, http.MethodGet, "/api/goals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var goals []services.GoalWithProgress
	decodeInto(t, rec, &goals)
	require.Len(t, goals, 1)
	assert.InDelta(t, 100.0, goals[0].Progress, 1e-9)

	rec = api.do(t, http.MethodDelete, "/api/goals/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/budgets", map[string]any{
		"category": "food", "limit_amount": "100.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = api.do(t, http.MethodPost, "/api/expenses", map[string]any{
		"amount": "25.00", "category": "food", "date": "2026-03-04",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary core.DashboardSummary
	decodeInto(t, rec, &summary)
	assert.Equal(t, int64(2500), summary.TotalMonthlySpend.Cents)
	assert.Equal(t, int64(10000), summary.TotalMonthlyBudget.Cents)
	assert.Len(t, summary.RecentExpenses, 1)
}

func TestExportEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/expenses", map[string]any{
		"amount": "9.99", "category": "books", "date": "2026-03-12",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/export/expenses.xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())
}

func TestOverlongFieldsAreUnprocessable(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/expenses", map[string]any{
		"amount":      "5.00",
		"category":    "food",
		"description": strings.Repeat("x", 201),
		"date":        "2026-03-10",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp errorResponse
	decodeInto(t, rec, &resp)
	assert.Contains(t, resp.Error, "description too long")

	rec = api.do(t, http.MethodPost, "/api/goals", map[string]any{
		"title":         strings.Repeat("x", 101),
		"target_amount": "10.00",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	decodeInto(t, rec, &resp)
	assert.Contains(t, resp.Error, "title too long")
}

func TestClientIPIgnoresForwardingHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.RemoteAddr = "198.51.100.7:4242"
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	req.Header.Set("X-Real-IP", "10.0.0.2")

	assert.Equal(t, "198.51.100.7", clientIP(req))
}

type failingExpenseStore struct{}

func (failingExpenseStore) CreateExpense(_ context.Context, _ core.Expense) (core.Expense, error) {
	return core.Expense{}, errors.New("db down")
}

func (failingExpenseStore) ListExpensesSince(_ context.Context, _ int64, _ time.Time) ([]core.Expense, error) {
	return nil, errors.New("db down")
}

func (failingExpenseStore) DeleteExpense(_ context.Context, _, _ int64) error {
	return errors.New("db down")
}

func TestExportFailureDoesNotWriteErrorBody(t *testing.T) {
	h := &Handlers{
		export: services.NewExportService(failingExpenseStore{}),
		now:    time.Now,
	}

	req := httptest.NewRequest(http.MethodGet, "/api/export/expenses.xlsx", nil)
	req = req.WithContext(auth.WithUser(req.Context(), core.User{ID: 1}))
	rec := httptest.NewRecorder()
	h.handleExportExpenses(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "headers are already committed")
	assert.Zero(t, rec.Body.Len(), "no error JSON after streaming headers")
}

func TestBadRequestBody(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/expenses",
		bytes.NewBufferString(`{"amount": `))
	req.Header.Set("Authorization", "Bearer "+api.token)
	rec := httptest.NewRecorder()
	api.server.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
