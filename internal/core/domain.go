package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// PeriodMonthly is the only budgeting cycle currently defined,
	// anchored to the first calendar day of the month.
	PeriodMonthly Period = "monthly"

	maxDescriptionLen = 200
	maxTitleLen       = 100
)

type (
	Period string

	// Expense is a single spending record. Expenses are immutable once
	// created; there is no update path, only delete.
	Expense struct {
		ID          int64     `json:"id"`
		UserID      int64     `json:"-"`
		Amount      Money     `json:"amount"`
		Category    Category  `json:"category"`
		Description string    `json:"description,omitempty"`
		Date        time.Time `json:"date"`
	}

	// Budget is a per-category monthly spending limit.
	Budget struct {
		ID       int64    `json:"id"`
		UserID   int64    `json:"-"`
		Category Category `json:"category"`
		Limit    Money    `json:"limit_amount"`
		Period   Period   `json:"period"`
	}

	// User is an account holder. Every stored row is owned by exactly one
	// user and queries never cross that boundary.
	User struct {
		ID           int64     `json:"id"`
		Username     string    `json:"username"`
		PasswordHash string    `json:"-"`
		CreatedAt    time.Time `json:"created_at"`
	}

	// SavingsGoal is a user-defined target with incremental deposits.
	// Completed is derived: true iff Current >= Target at last update.
	// There is no withdrawal path, so Completed never reverts.
	SavingsGoal struct {
		ID         int64     `json:"id"`
		UserID     int64     `json:"-"`
		Title      string    `json:"title"`
		Target     Money     `json:"target_amount"`
		Current    Money     `json:"current_amount"`
		TargetDate time.Time `json:"target_date,omitzero"`
		Completed  bool      `json:"completed"`
		CreatedAt  time.Time `json:"created_at"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownPeriod   = errors.New("unknown period")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyTitle      = errors.New("empty title")
	ErrGoalCompleted   = errors.New("goal already completed")

	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrTitleTooLong       = errors.New("title too long (max 100 characters)")
)

func (p Period) Valid() bool {
	return p == PeriodMonthly
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrUnknownCategory
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(e.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

func (b Budget) Validate() error {
	if err := b.Limit.Validate(); err != nil {
		return err
	}
	if !b.Category.Valid() {
		return ErrUnknownCategory
	}
	if !b.Period.Valid() {
		return ErrUnknownPeriod
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if len(strings.TrimSpace(g.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(g.Title) > maxTitleLen {
		return ErrTitleTooLong
	}
	if err := g.Target.Validate(); err != nil {
		return err
	}
	if g.Current.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// MonthStart returns the first calendar day of t's month, the anchor of the
// monthly budgeting period.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
