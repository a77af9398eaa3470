package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHistory = `invoice_id,amount,date,location,type,vendor,employee_id
482913,350,05-01-2024,Pune,Food,Cafe Coffee Day,42
482914,1200.50,5-2-2024,Mumbai,Transport,Uber,42
482915,99,12-02-2024,Delhi,Medicine,Apollo,7
bad,abc,12-02-2024,Delhi,Medicine,Apollo,7
`

func writeHistory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoice_database.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCSVInvoiceRepositoryLoad(t *testing.T) {
	repo, err := NewCSVInvoiceRepository(writeHistory(t, sampleHistory))
	require.NoError(t, err)

	other, err := repo.ListByEmployee(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, other, 1, "invalid rows are skipped")

	rows, err := repo.ListByEmployee(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "482913", rows[0].InvoiceID)
	assert.True(t, decimal.RequireFromString("1200.50").Equal(rows[1].Amount))
	assert.Equal(t, time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC), rows[1].Date)
	assert.Equal(t, "Uber", rows[1].Vendor)
}

func TestCSVInvoiceRepositoryMissingColumn(t *testing.T) {
	_, err := NewCSVInvoiceRepository(writeHistory(t, "invoice_id,amount\n1,2\n"))
	assert.Error(t, err)
}

func TestCSVInvoiceRepositoryMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.csv")
	repo, err := NewCSVInvoiceRepository(path)
	require.NoError(t, err)

	row := dto.InvoiceRow{
		InvoiceID:  "100001",
		EmployeeID: 9,
		Amount:     decimal.NewFromInt(250),
		Date:       time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Location:   "Goa",
		Type:       "Food",
		Vendor:     "Shack",
	}
	require.NoError(t, repo.Add(context.Background(), row))

	// the appended file must load back the same row
	reloaded, err := NewCSVInvoiceRepository(path)
	require.NoError(t, err)
	rows, err := reloaded.ListByEmployee(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Shack", rows[0].Vendor)
	assert.True(t, row.Amount.Equal(rows[0].Amount))
	assert.Equal(t, row.Date, rows[0].Date)
}

func TestCSVInvoiceRepositoryReload(t *testing.T) {
	path := writeHistory(t, sampleHistory)
	repo, err := NewCSVInvoiceRepository(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("invoice_id,amount,date,location,type,vendor,employee_id\n"), 0o600))
	require.NoError(t, repo.Reload())

	rows, err := repo.ListByEmployee(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
