package dto

import (
	"fmt"
	"strings"
)

// Employee is one row of the employee workbook. Money columns are whole
// rupees except MonthlyEMI, which accrues fractional amounts as debt is taken.
type Employee struct {
	EmployeeID           int     `json:"employee_id"`
	Name                 string  `json:"name"`
	PhoneNo              string  `json:"phone_no"`
	DOB                  string  `json:"dob"`
	Sex                  string  `json:"sex"`
	Department           string  `json:"department"`
	Role                 string  `json:"role"`
	BalanceMoney         float64 `json:"balance_money"`
	CTC                  float64 `json:"ctc"`
	BasePackage          float64 `json:"base_package"`
	FoodAllowance        float64 `json:"food_allowance"`
	TransportAllowance   float64 `json:"transport_allowance"`
	MedicalAllowance     float64 `json:"medical_allowance"`
	ElectronicsAllowance float64 `json:"electronics_allowance"`
	MiscAllowance        float64 `json:"misc_allowance"`
	DebtBudget           float64 `json:"debt_budget"`
	MonthlyEMI           float64 `json:"monthly_emi"`
}

func (e Employee) TotalAllowances() float64 {
	return e.FoodAllowance + e.TransportAllowance + e.MedicalAllowance + e.ElectronicsAllowance + e.MiscAllowance
}

// Profile renders the employee as labelled lines for prompting.
func (e Employee) Profile() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Employee ID: %d\n", e.EmployeeID)
	fmt.Fprintf(&b, "Name: %s\n", e.Name)
	fmt.Fprintf(&b, "Phone Number: %s\n", e.PhoneNo)
	fmt.Fprintf(&b, "Date of Birth: %s\n", e.DOB)
	fmt.Fprintf(&b, "Sex: %s\n", e.Sex)
	fmt.Fprintf(&b, "Department: %s\n", e.Department)
	fmt.Fprintf(&b, "Role: %s\n", e.Role)
	fmt.Fprintf(&b, "Balance Money: %g\n", e.BalanceMoney)
	fmt.Fprintf(&b, "CTC: %g\n", e.CTC)
	fmt.Fprintf(&b, "Base Package: %g\n", e.BasePackage)
	fmt.Fprintf(&b, "Food Allowance: %g\n", e.FoodAllowance)
	fmt.Fprintf(&b, "Transport Allowance: %g\n", e.TransportAllowance)
	fmt.Fprintf(&b, "Medical Allowance: %g\n", e.MedicalAllowance)
	fmt.Fprintf(&b, "Electronics Allowance: %g\n", e.ElectronicsAllowance)
	fmt.Fprintf(&b, "Miscellaneous Allowance: %g\n", e.MiscAllowance)
	fmt.Fprintf(&b, "Debt Budget: %g\n", e.DebtBudget)
	fmt.Fprintf(&b, "Monthly EMI: %g\n", e.MonthlyEMI)
	return b.String()
}

type NetWorthResponse struct {
	EmployeeID       int     `json:"employee_id"`
	TotalAssets      float64 `json:"total_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	NetWorth         float64 `json:"net_worth"`
}

type EmployeeDetailsResponse struct {
	EmployeeID             int     `json:"employee_id"`
	TotalCTC               float64 `json:"total_ctc"`
	BaseSalary             float64 `json:"base_salary"`
	FoodAllowance          float64 `json:"food_allowance"`
	TransportAllowance     float64 `json:"transport_allowance"`
	MedicalAllowance       float64 `json:"medical_allowance"`
	ElectronicsAllowance   float64 `json:"electronics_allowance"`
	MiscellaneousAllowance float64 `json:"miscellaneous_allowance"`
	MonthlyEMI             float64 `json:"monthly_emi"`
	RemainingBalance       float64 `json:"remaining_balance"`
}

type DebtChangeResponse struct {
	DebtTaken     float64 `json:"Debt taken"`
	OldDebtBudget float64 `json:"Old Debt Budget"`
	NewDebtBudget float64 `json:"New Debt Budget"`
	OldMonthlyEMI float64 `json:"Old Monthly EMI"`
	NewMonthlyEMI float64 `json:"New Monthly EMI"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
