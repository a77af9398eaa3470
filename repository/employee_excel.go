package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/xuri/excelize/v2"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type EmployeeRepository interface {
	Get(ctx context.Context, employeeID int) (dto.Employee, error)
	UpdateDebt(ctx context.Context, employeeID int, debtBudget, monthlyEMI float64) error
}

// ExcelEmployeeRepository reads Employee.xlsx on every call so edits made
// outside the service are picked up. Writes rewrite the workbook in place.
type ExcelEmployeeRepository struct {
	path string
	mu   sync.Mutex
}

func NewExcelEmployeeRepository(path string) *ExcelEmployeeRepository {
	return &ExcelEmployeeRepository{path: path}
}

// column aliases; the first entry is the canonical name
var employeeColumns = map[string][]string{
	"employee_id": {"employee_id", "emp_id"},
}

type employeeSheet struct {
	file   *excelize.File
	sheet  string
	rows   [][]string
	header map[string]int
}

func (r *ExcelEmployeeRepository) open() (*employeeSheet, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		f.Close()
		return nil, fmt.Errorf("%s: empty sheet", r.path)
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for canonical, aliases := range employeeColumns {
		for _, alias := range aliases {
			if i, ok := header[alias]; ok {
				header[canonical] = i
				break
			}
		}
	}
	if _, ok := header["employee_id"]; !ok {
		f.Close()
		return nil, fmt.Errorf("%s: no employee id column", r.path)
	}

	return &employeeSheet{file: f, sheet: sheet, rows: rows, header: header}, nil
}

func (s *employeeSheet) cell(row []string, col string) string {
	i, ok := s.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (s *employeeSheet) number(row []string, col string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s.cell(row, col), ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// find returns the 0-based index into rows of the employee's row.
func (s *employeeSheet) find(employeeID int) (int, bool) {
	for i := 1; i < len(s.rows); i++ {
		id, err := strconv.ParseFloat(s.cell(s.rows[i], "employee_id"), 64)
		if err == nil && int(id) == employeeID {
			return i, true
		}
	}
	return 0, false
}

func (s *employeeSheet) employee(row []string) dto.Employee {
	return dto.Employee{
		EmployeeID:           int(s.number(row, "employee_id")),
		Name:                 s.cell(row, "name"),
		PhoneNo:              s.cell(row, "phone_no"),
		DOB:                  s.cell(row, "dob"),
		Sex:                  s.cell(row, "sex"),
		Department:           s.cell(row, "department"),
		Role:                 s.cell(row, "role"),
		BalanceMoney:         s.number(row, "balance_money"),
		CTC:                  s.number(row, "ctc"),
		BasePackage:          s.number(row, "base_package"),
		FoodAllowance:        s.number(row, "food_allowance"),
		TransportAllowance:   s.number(row, "transport_allowance"),
		MedicalAllowance:     s.number(row, "medical_allowance"),
		ElectronicsAllowance: s.number(row, "electronics_allowance"),
		MiscAllowance:        s.number(row, "misc_allowance"),
		DebtBudget:           s.number(row, "debt_budget"),
		MonthlyEMI:           s.number(row, "monthly_emi"),
	}
}

func (r *ExcelEmployeeRepository) Get(ctx context.Context, employeeID int) (dto.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.open()
	if err != nil {
		return dto.Employee{}, err
	}
	defer s.file.Close()

	idx, ok := s.find(employeeID)
	if !ok {
		return dto.Employee{}, ErrEmployeeNotFound
	}
	return s.employee(s.rows[idx]), nil
}

func (r *ExcelEmployeeRepository) UpdateDebt(ctx context.Context, employeeID int, debtBudget, monthlyEMI float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.open()
	if err != nil {
		return err
	}
	defer s.file.Close()

	idx, ok := s.find(employeeID)
	if !ok {
		return ErrEmployeeNotFound
	}

	updates := map[string]float64{
		"debt_budget": debtBudget,
		"monthly_emi": monthlyEMI,
	}
	for col, value := range updates {
		c, ok := s.header[col]
		if !ok {
			return fmt.Errorf("%s: no %s column", r.path, col)
		}
		cell, err := excelize.CoordinatesToCellName(c+1, idx+1)
		if err != nil {
			return err
		}
		if err := s.file.SetCellValue(s.sheet, cell, value); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}

	if err := s.file.Save(); err != nil {
		return fmt.Errorf("save %s: %w", r.path, err)
	}
	return nil
}
