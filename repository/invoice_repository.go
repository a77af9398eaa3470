package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/Aashish23092/expense-insights/dto"
)

var ErrInvalidRow = errors.New("invalid invoice row")

// InvoiceRepository is the invoice history backing the analytics endpoints.
type InvoiceRepository interface {
	ListByEmployee(ctx context.Context, employeeID int) ([]dto.InvoiceRow, error)
	Add(ctx context.Context, row dto.InvoiceRow) error
}

// Reloader is implemented by repositories that cache a file in memory.
type Reloader interface {
	Reload() error
}

func filterByEmployee(rows []dto.InvoiceRow, employeeID int) []dto.InvoiceRow {
	var out []dto.InvoiceRow
	for _, row := range rows {
		if row.EmployeeID == employeeID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
