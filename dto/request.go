package dto

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
)

var (
	ErrMissingEmployeeID = errors.New("employee_id is required")
	ErrMissingQuestion   = errors.New("question is required")
	ErrMissingUserInput  = errors.New("employee ID or user input not provided")
	ErrInvalidDebtAmount = errors.New("debt_amount must be positive")
	ErrMissingParameters = errors.New("missing parameters")
)

// EmployeeRequest identifies an employee. Both employee_id and emp_id are
// accepted, the workbook and the history disagree on the name.
type EmployeeRequest struct {
	EmployeeID FlexInt `json:"employee_id"`
	EmpID      FlexInt `json:"emp_id"`
}

func (r *EmployeeRequest) ID() int {
	if r.EmployeeID != 0 {
		return int(r.EmployeeID)
	}
	return int(r.EmpID)
}

func (r *EmployeeRequest) Validate() error {
	if r.ID() <= 0 {
		return ErrMissingEmployeeID
	}
	return nil
}

type MonthlyForecastRequest struct {
	EmployeeRequest
	Month string  `json:"month_str"`
	Year  FlexInt `json:"year_str"`
}

func (r *MonthlyForecastRequest) Validate() error {
	if r.ID() <= 0 || strings.TrimSpace(r.Month) == "" || r.Year == 0 {
		return ErrMissingParameters
	}
	return nil
}

type YearlyForecastRequest struct {
	EmployeeRequest
	Year FlexInt `json:"year_str"`
}

func (r *YearlyForecastRequest) Validate() error {
	if r.ID() <= 0 || r.Year == 0 {
		return ErrMissingParameters
	}
	return nil
}

type CategoryForecastRequest struct {
	EmployeeRequest
	Category string  `json:"category"`
	Month    string  `json:"month_str"`
	Year     FlexInt `json:"year_str"`
}

func (r *CategoryForecastRequest) Validate() error {
	if r.ID() <= 0 || strings.TrimSpace(r.Category) == "" || strings.TrimSpace(r.Month) == "" || r.Year == 0 {
		return ErrMissingParameters
	}
	return nil
}

type DebtRequest struct {
	EmployeeRequest
	DebtAmount float64 `json:"debt_amount"`
}

func (r *DebtRequest) Validate() error {
	if r.ID() <= 0 {
		return ErrMissingEmployeeID
	}
	if r.DebtAmount <= 0 {
		return ErrInvalidDebtAmount
	}
	return nil
}

type ChatRequest struct {
	EmployeeRequest
	UserInput string `json:"user_input"`
}

func (r *ChatRequest) Validate() error {
	if r.ID() <= 0 || strings.TrimSpace(r.UserInput) == "" {
		return ErrMissingUserInput
	}
	return nil
}

func (r *QueryRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return ErrMissingQuestion
	}
	return nil
}

// ScanRequest carries one uploaded invoice image or PDF.
type ScanRequest struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	Password string                `form:"password"`
}

// FlexInt accepts both 2024 and "2024".
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %s", b)
	}
	*f = FlexInt(n)
	return nil
}
