package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
)

const exportSheet = "Expenses"

// ExportService writes a user's current-month expenses as an xlsx workbook.
type ExportService struct {
	expenses ExpenseStore
}

func NewExportService(expenses ExpenseStore) *ExportService {
	return &ExportService{expenses: expenses}
}

// MonthlyXLSX streams a workbook with one row per expense of now's month,
// newest first, plus a trailing total row.
func (s *ExportService) MonthlyXLSX(ctx context.Context, userID int64, now time.Time, w io.Writer) error {
	expenses, err := s.expenses.ListExpensesSince(ctx, userID, core.MonthStart(now))
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Category", "Description", "Amount"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(exportSheet, cell, h)
	}

	var total core.Money
	for idx, e := range expenses {
		row := idx + 2
		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), e.Date.Format("2006-01-02"))
		f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), string(e.Category))
		f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), e.Description)
		f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), e.Amount.String())
		total = total.Add(e.Amount)
	}

	totalRow := len(expenses) + 2
	f.SetCellValue(exportSheet, fmt.Sprintf("C%d", totalRow), "Total")
	f.SetCellValue(exportSheet, fmt.Sprintf("D%d", totalRow), total.String())

	f.SetColWidth(exportSheet, "A", "A", 12)
	f.SetColWidth(exportSheet, "B", "B", 12)
	f.SetColWidth(exportSheet, "C", "C", 30)
	f.SetColWidth(exportSheet, "D", "D", 12)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
