// Package storage implements the record store on embedded SQLite. Every
// read and write is scoped by user id in the WHERE clause; ownership is
// never checked after the fact.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound covers rows that do not exist or belong to another user;
	// the two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateBudget signals the (user, category, period) uniqueness
	// constraint on budgets.
	ErrDuplicateBudget = errors.New("budget already exists for category")
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- users ---

func (r *SQLiteRepository) CreateUser(ctx context.Context, username, passwordHash string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)
		 RETURNING id, username, password_hash, created_at`,
		username, passwordHash,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id int64) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// --- expenses ---

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO expenses (user_id, amount_cents, category, description, date)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`,
		e.UserID, e.Amount.Cents, string(e.Category), e.Description, e.Date,
	).Scan(&e.ID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"category", e.Category,
		"amount_cents", e.Amount.Cents)
	return e, nil
}

// ListExpensesSince returns the user's expenses dated on or after since,
// newest first with creation order breaking date ties.
func (r *SQLiteRepository) ListExpensesSince(ctx context.Context, userID int64, since time.Time) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount_cents, category, description, date
		 FROM expenses
		 WHERE user_id = ? AND date >= ?
		 ORDER BY date DESC, id DESC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		var category string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount.Cents, &category, &e.Description, &e.Date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Category = core.Category(category)
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- budgets ---

func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO budgets (user_id, category, limit_cents, period)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		b.UserID, string(b.Category), b.Limit.Cents, string(b.Period),
	).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Budget{}, ErrDuplicateBudget
		}
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return b, nil
}

// ListBudgets returns the user's monthly budgets ordered by category.
func (r *SQLiteRepository) ListBudgets(ctx context.Context, userID int64, period core.Period) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, category, limit_cents, period
		 FROM budgets
		 WHERE user_id = ? AND period = ?
		 ORDER BY category`,
		userID, string(period),
	)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var b core.Budget
		var category, p string
		if err := rows.Scan(&b.ID, &b.UserID, &category, &b.Limit.Cents, &p); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Category = core.Category(category)
		b.Period = core.Period(p)
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, userID, id int64, limit core.Money) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET limit_cents = ? WHERE id = ? AND user_id = ?`,
		limit.Cents, id, userID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- savings goals ---

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	var targetDate any
	if !g.TargetDate.IsZero() {
		targetDate = g.TargetDate
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO savings_goals (user_id, title, target_cents, current_cents, target_date)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id, created_at`,
		g.UserID, g.Title, g.Target.Cents, g.Current.Cents, targetDate,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("create goal: %w", err)
	}
	return g, nil
}

// ListGoals returns the user's goals, newest first.
func (r *SQLiteRepository) ListGoals(ctx context.Context, userID int64) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, target_cents, current_cents, target_date, completed, created_at
		 FROM savings_goals
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []core.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, userID, id int64) (core.SavingsGoal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, target_cents, current_cents, target_date, completed, created_at
		 FROM savings_goals
		 WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.SavingsGoal{}, ErrNotFound
	}
	if err != nil {
		return core.SavingsGoal{}, err
	}
	return g, nil
}

// AddDeposit applies a deposit as a single conditional increment at the
// storage layer. Concurrent deposits serialize on the row instead of racing
// through read-modify-write, so no update is ever lost. The guard on
// completed rejects deposits into finished goals, and completed itself is
// recomputed from the new balance inside the same statement.
func (r *SQLiteRepository) AddDeposit(ctx context.Context, userID, goalID int64, amount core.Money) (core.SavingsGoal, error) {
	if amount.Cents <= 0 {
		return core.SavingsGoal{}, core.ErrInvalidAmount
	}

	row := r.db.QueryRowContext(ctx,
		`UPDATE savings_goals
		 SET current_cents = current_cents + ?,
		     completed = (current_cents + ? >= target_cents)
		 WHERE id = ? AND user_id = ? AND completed = 0
		 RETURNING id, user_id, title, target_cents, current_cents, target_date, completed, created_at`,
		amount.Cents, amount.Cents, goalID, userID,
	)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		// Either the goal does not exist for this user or it is already
		// completed; look once more to tell the caller which.
		if _, getErr := r.GetGoal(ctx, userID, goalID); getErr == nil {
			return core.SavingsGoal{}, core.ErrGoalCompleted
		}
		return core.SavingsGoal{}, ErrNotFound
	}
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("add deposit: %w", err)
	}

	slog.InfoContext(ctx, "Deposit applied",
		"goal_id", g.ID,
		"amount_cents", amount.Cents,
		"current_cents", g.Current.Cents,
		"completed", g.Completed)
	return g, nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM savings_goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (core.SavingsGoal, error) {
	var g core.SavingsGoal
	var targetDate sql.NullTime
	var completed int64
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Target.Cents, &g.Current.Cents,
		&targetDate, &completed, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.SavingsGoal{}, sql.ErrNoRows
		}
		return core.SavingsGoal{}, fmt.Errorf("scan goal: %w", err)
	}
	if targetDate.Valid {
		g.TargetDate = targetDate.Time
	}
	g.Completed = completed != 0
	return g, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
