package service

import (
	"context"
	"fmt"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/repository"
	"github.com/shopspring/decimal"
)

var ctcColors = []string{"#66b3ff", "#ff9999", "#99ff99", "#ffcc99", "#c2c2f0", "#ffb3e6", "#ff6666"}

type EmployeeService struct {
	employees repository.EmployeeRepository
}

func NewEmployeeService(employees repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees}
}

// NetWorth treats base pay plus allowances as assets and EMI plus the
// remaining debt budget as liabilities.
func (s *EmployeeService) NetWorth(ctx context.Context, employeeID int) (dto.NetWorthResponse, error) {
	e, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return dto.NetWorthResponse{}, err
	}

	assets := e.BasePackage + e.TotalAllowances()
	liabilities := e.MonthlyEMI + e.DebtBudget
	return dto.NetWorthResponse{
		EmployeeID:       employeeID,
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		NetWorth:         assets - liabilities,
	}, nil
}

func (s *EmployeeService) Details(ctx context.Context, employeeID int) (dto.EmployeeDetailsResponse, error) {
	e, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return dto.EmployeeDetailsResponse{}, err
	}

	return dto.EmployeeDetailsResponse{
		EmployeeID:             employeeID,
		TotalCTC:               e.CTC,
		BaseSalary:             e.BasePackage,
		FoodAllowance:          e.FoodAllowance,
		TransportAllowance:     e.TransportAllowance,
		MedicalAllowance:       e.MedicalAllowance,
		ElectronicsAllowance:   e.ElectronicsAllowance,
		MiscellaneousAllowance: e.MiscAllowance,
		MonthlyEMI:             e.MonthlyEMI,
		RemainingBalance:       e.BasePackage - (e.TotalAllowances() + e.MonthlyEMI),
	}, nil
}

func (s *EmployeeService) CTCChart(ctx context.Context, employeeID int) (dto.PieChartData, error) {
	e, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return dto.PieChartData{}, err
	}

	return dto.PieChartData{
		Type:  "pie",
		Title: fmt.Sprintf("CTC Breakdown for Employee %d", employeeID),
		Labels: []string{
			"Base Salary", "Food Allowance", "Transport Allowance", "Medical Allowance",
			"Electronics Allowance", "Miscellaneous Allowance", "Monthly EMI",
		},
		Values: []float64{
			e.BasePackage, e.FoodAllowance, e.TransportAllowance, e.MedicalAllowance,
			e.ElectronicsAllowance, e.MiscAllowance, e.MonthlyEMI,
		},
		Colors: ctcColors,
	}, nil
}

// ManageDebt draws amount from the debt budget and spreads it over a year
// of EMI. The workbook keeps the unrounded EMI.
func (s *EmployeeService) ManageDebt(ctx context.Context, employeeID int, amount float64) (dto.DebtChangeResponse, error) {
	e, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return dto.DebtChangeResponse{}, err
	}

	debt := decimal.NewFromFloat(amount)
	budget := decimal.NewFromFloat(e.DebtBudget)
	if debt.GreaterThan(budget) {
		return dto.DebtChangeResponse{}, ErrInsufficientDebtBudget
	}

	twelve := decimal.NewFromInt(12)
	oldEMI := decimal.NewFromFloat(e.MonthlyEMI)
	newBudget := budget.Sub(debt)
	newEMI := oldEMI.Mul(twelve).Add(debt).Div(twelve)

	if err := s.employees.UpdateDebt(ctx, employeeID, newBudget.InexactFloat64(), newEMI.InexactFloat64()); err != nil {
		return dto.DebtChangeResponse{}, fmt.Errorf("failed to update employee %d: %w", employeeID, err)
	}

	return dto.DebtChangeResponse{
		DebtTaken:     amount,
		OldDebtBudget: e.DebtBudget,
		NewDebtBudget: newBudget.InexactFloat64(),
		OldMonthlyEMI: oldEMI.Round(2).InexactFloat64(),
		NewMonthlyEMI: newEMI.Round(2).InexactFloat64(),
	}, nil
}
