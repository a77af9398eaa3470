package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Aashish23092/expense-insights/client/llm"
	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/repository"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	GroupByType     = "type"
	GroupByVendor   = "vendor"
	GroupByLocation = "location"
)

var groupKeys = map[string]func(dto.InvoiceRow) string{
	GroupByType:     func(r dto.InvoiceRow) string { return r.Type },
	GroupByVendor:   func(r dto.InvoiceRow) string { return r.Vendor },
	GroupByLocation: func(r dto.InvoiceRow) string { return r.Location },
}

type ExpenseService struct {
	history repository.InvoiceRepository
	llm     llm.LLMProvider
	now     func() time.Time
}

func NewExpenseService(history repository.InvoiceRepository, provider llm.LLMProvider) *ExpenseService {
	return &ExpenseService{
		history: history,
		llm:     provider,
		now:     time.Now,
	}
}

func (s *ExpenseService) employeeRows(ctx context.Context, employeeID int) ([]dto.InvoiceRow, error) {
	rows, err := s.history.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w for employee %d", ErrNoData, employeeID)
	}
	return rows, nil
}

// Breakdown sums the employee's spending per value of groupBy, ordered by key.
func (s *ExpenseService) Breakdown(ctx context.Context, employeeID int, groupBy string) (dto.ExpenseBreakdownResponse, error) {
	keyFn, ok := groupKeys[groupBy]
	if !ok {
		return dto.ExpenseBreakdownResponse{}, fmt.Errorf("unknown grouping %q", groupBy)
	}

	rows, err := s.employeeRows(ctx, employeeID)
	if err != nil {
		return dto.ExpenseBreakdownResponse{}, err
	}

	sums := sumBy(rows, keyFn)
	keys := sortedKeys(sums)

	resp := dto.ExpenseBreakdownResponse{
		EmployeeID: employeeID,
		GroupBy:    groupBy,
		Items:      make([]dto.AmountByKey, 0, len(keys)),
	}
	total := decimal.Zero
	for _, k := range keys {
		resp.Items = append(resp.Items, dto.AmountByKey{Key: k, Amount: sums[k].InexactFloat64()})
		total = total.Add(sums[k])
	}
	resp.Total = total.InexactFloat64()
	return resp, nil
}

const expenseSummaryPrompt = `You are a finance assistant for an expense management portal.
Summarise the employee's spending below in a short paragraph for the employee. Mention the biggest
categories, vendors and locations and anything unusual. Use rupees.`

// Summary asks the LLM to describe the three breakdowns.
func (s *ExpenseService) Summary(ctx context.Context, employeeID int) (dto.ExpenseSummaryResponse, error) {
	sections := make(map[string][]dto.AmountByKey, 3)
	for _, groupBy := range []string{GroupByType, GroupByVendor, GroupByLocation} {
		b, err := s.Breakdown(ctx, employeeID, groupBy)
		if err != nil {
			return dto.ExpenseSummaryResponse{}, err
		}
		sections["by_"+groupBy] = b.Items
	}

	payload, err := json.MarshalIndent(sections, "", "    ")
	if err != nil {
		return dto.ExpenseSummaryResponse{}, err
	}

	userMessage := fmt.Sprintf("Expenses for employee %d:\n%s", employeeID, payload)
	text, err := s.llm.GenerateResponse(ctx, expenseSummaryPrompt, userMessage)
	if err != nil {
		return dto.ExpenseSummaryResponse{}, fmt.Errorf("%w: %s: %w", ErrUpstream, s.llm.GetProviderName(), err)
	}
	return dto.ExpenseSummaryResponse{EmployeeID: employeeID, Summary: text}, nil
}

// LastMonth lists the employee's invoices dated in the previous calendar month.
func (s *ExpenseService) LastMonth(ctx context.Context, employeeID int) (dto.InvoiceListResponse, error) {
	rows, err := s.history.ListByEmployee(ctx, employeeID)
	if err != nil {
		return dto.InvoiceListResponse{}, fmt.Errorf("failed to load invoices: %w", err)
	}

	now := s.now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := thisMonth.AddDate(0, -1, 0)
	to := thisMonth.AddDate(0, 0, -1)

	var invoices []dto.InvoiceRow
	for _, r := range rows {
		if !r.Date.Before(from) && r.Date.Before(thisMonth) {
			invoices = append(invoices, r)
		}
	}
	if len(invoices) == 0 {
		return dto.InvoiceListResponse{}, fmt.Errorf("%w for employee %d in the last month", ErrNoData, employeeID)
	}

	return dto.InvoiceListResponse{
		EmployeeID: employeeID,
		From:       from.Format(dto.HistoryDateLayout),
		To:         to.Format(dto.HistoryDateLayout),
		Invoices:   invoices,
	}, nil
}

var exportColumns = []interface{}{"Invoice ID", "Amount", "Date", "Location", "Type", "Vendor"}

// ExportXLSX renders an invoice list as a single-sheet workbook.
func (s *ExpenseService) ExportXLSX(list dto.InvoiceListResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transactions"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Transaction List for Employee ID: %d", list.EmployeeID)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A3", &exportColumns); err != nil {
		return nil, err
	}

	for i, r := range list.Invoices {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		values := []interface{}{r.InvoiceID, r.Amount.InexactFloat64(), r.Date.Format(dto.HistoryDateLayout), r.Location, r.Type, r.Vendor}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func sumBy(rows []dto.InvoiceRow, key func(dto.InvoiceRow) string) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, r := range rows {
		k := key(r)
		sums[k] = sums[k].Add(r.Amount)
	}
	return sums
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
