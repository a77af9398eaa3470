package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// HistoryDateLayout is the day-first date format used by the invoice history.
const HistoryDateLayout = "02-01-2006"

// InvoiceRow is one line of the invoice history.
type InvoiceRow struct {
	InvoiceID  string
	EmployeeID int
	Amount     decimal.Decimal
	Date       time.Time
	Location   string
	Type       string
	Vendor     string
}

func (r InvoiceRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		InvoiceID  string  `json:"invoice_id"`
		EmployeeID int     `json:"employee_id"`
		Amount     float64 `json:"amount"`
		Date       string  `json:"date"`
		Location   string  `json:"location"`
		Type       string  `json:"type"`
		Vendor     string  `json:"vendor"`
	}{
		InvoiceID:  r.InvoiceID,
		EmployeeID: r.EmployeeID,
		Amount:     r.Amount.InexactFloat64(),
		Date:       r.Date.Format(HistoryDateLayout),
		Location:   r.Location,
		Type:       r.Type,
		Vendor:     r.Vendor,
	})
}

type AmountByKey struct {
	Key    string  `json:"key"`
	Amount float64 `json:"amount"`
}

type ExpenseBreakdownResponse struct {
	EmployeeID int           `json:"employee_id"`
	GroupBy    string        `json:"group_by"`
	Items      []AmountByKey `json:"items"`
	Total      float64       `json:"total"`
}

type ExpenseSummaryResponse struct {
	EmployeeID int    `json:"employee_id"`
	Summary    string `json:"summary"`
}

type InvoiceListResponse struct {
	EmployeeID int          `json:"employee_id"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	Invoices   []InvoiceRow `json:"invoices"`
}

type ForecastPoint struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}

type ForecastPlotResponse struct {
	EmployeeID int             `json:"employee_id"`
	Historical []ForecastPoint `json:"historical"`
	Forecast   []ForecastPoint `json:"forecast"`
}

type MonthlyForecastResponse struct {
	EmployeeID        int     `json:"employee_id"`
	Month             string  `json:"month"`
	Year              int     `json:"year"`
	PredictedSpending float64 `json:"predicted_spending"`
}

type YearlyForecastResponse struct {
	EmployeeID             int     `json:"employee_id"`
	Year                   int     `json:"year"`
	PredictedTotalExpenses float64 `json:"predicted_total_expenses"`
}

type CategoryForecastResponse struct {
	EmployeeID                int     `json:"employee_id"`
	Category                  string  `json:"category"`
	Month                     string  `json:"month"`
	Year                      int     `json:"year"`
	PredictedCategoryExpenses float64 `json:"predicted_category_expenses"`
}
