package service

import (
	"context"
	"testing"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmployees() *memoryEmployees {
	return &memoryEmployees{employees: map[int]dto.Employee{
		1: {
			EmployeeID:           1,
			Name:                 "Priya Sharma",
			Department:           "Finance",
			Role:                 "Analyst",
			CTC:                  60000,
			BasePackage:          50000,
			FoodAllowance:        1000,
			TransportAllowance:   1000,
			MedicalAllowance:     1000,
			ElectronicsAllowance: 1000,
			MiscAllowance:        1000,
			DebtBudget:           10000,
			MonthlyEMI:           2000,
		},
		2: {
			EmployeeID: 2,
			DebtBudget: 5000,
			MonthlyEMI: 1000,
		},
	}}
}

func TestNetWorth(t *testing.T) {
	svc := NewEmployeeService(testEmployees())

	resp, err := svc.NetWorth(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, dto.NetWorthResponse{
		EmployeeID:       1,
		TotalAssets:      55000,
		TotalLiabilities: 12000,
		NetWorth:         43000,
	}, resp)
}

func TestNetWorthUnknownEmployee(t *testing.T) {
	svc := NewEmployeeService(testEmployees())

	_, err := svc.NetWorth(context.Background(), 404)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDetails(t *testing.T) {
	svc := NewEmployeeService(testEmployees())

	resp, err := svc.Details(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 60000.0, resp.TotalCTC)
	assert.Equal(t, 1000.0, resp.MiscellaneousAllowance)
	assert.Equal(t, 43000.0, resp.RemainingBalance)
}

func TestCTCChart(t *testing.T) {
	svc := NewEmployeeService(testEmployees())

	chart, err := svc.CTCChart(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, chart.Labels, 7)
	assert.Equal(t, "Base Salary", chart.Labels[0])
	assert.Equal(t, 50000.0, chart.Values[0])
	assert.Equal(t, "Monthly EMI", chart.Labels[6])
	assert.Equal(t, 2000.0, chart.Values[6])
}

func TestManageDebt(t *testing.T) {
	employees := testEmployees()
	svc := NewEmployeeService(employees)

	resp, err := svc.ManageDebt(context.Background(), 1, 1200)
	require.NoError(t, err)

	assert.Equal(t, dto.DebtChangeResponse{
		DebtTaken:     1200,
		OldDebtBudget: 10000,
		NewDebtBudget: 8800,
		OldMonthlyEMI: 2000,
		NewMonthlyEMI: 2100,
	}, resp)
	assert.Equal(t, 8800.0, employees.employees[1].DebtBudget)
	assert.Equal(t, 2100.0, employees.employees[1].MonthlyEMI)
}

func TestManageDebtRoundsEMI(t *testing.T) {
	employees := testEmployees()
	svc := NewEmployeeService(employees)

	resp, err := svc.ManageDebt(context.Background(), 2, 100)
	require.NoError(t, err)

	assert.Equal(t, 1008.33, resp.NewMonthlyEMI)
	assert.InDelta(t, 1008.3333333, employees.employees[2].MonthlyEMI, 1e-6)
}

func TestManageDebtOverBudget(t *testing.T) {
	employees := testEmployees()
	svc := NewEmployeeService(employees)

	_, err := svc.ManageDebt(context.Background(), 1, 20000)
	assert.ErrorIs(t, err, ErrInsufficientDebtBudget)
	assert.Zero(t, employees.updates)
}

func TestManageDebtWholeBudget(t *testing.T) {
	svc := NewEmployeeService(testEmployees())

	resp, err := svc.ManageDebt(context.Background(), 2, 5000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.NewDebtBudget)
}
