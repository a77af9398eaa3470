package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func expenseHistory() *memoryInvoices {
	return &memoryInvoices{rows: []dto.InvoiceRow{
		invoiceRow("100001", 1, 500, "05-02-2024", "Pune", "Food", "Cafe Coffee Day"),
		invoiceRow("100002", 1, 1500, "10-03-2024", "Mumbai", "Transport", "Uber"),
		invoiceRow("100003", 1, 250, "18-03-2024", "Pune", "Food", "Dominos"),
		invoiceRow("100004", 1, 700, "02-04-2024", "Pune", "Medicine", "Apollo"),
		invoiceRow("200001", 2, 900, "11-03-2024", "Delhi", "Electronics", "Croma"),
	}}
}

func TestBreakdownByType(t *testing.T) {
	svc := NewExpenseService(expenseHistory(), &stubLLM{})

	resp, err := svc.Breakdown(context.Background(), 1, GroupByType)
	require.NoError(t, err)

	assert.Equal(t, []dto.AmountByKey{
		{Key: "Food", Amount: 750},
		{Key: "Medicine", Amount: 700},
		{Key: "Transport", Amount: 1500},
	}, resp.Items)
	assert.Equal(t, 2950.0, resp.Total)
}

func TestBreakdownByLocation(t *testing.T) {
	svc := NewExpenseService(expenseHistory(), &stubLLM{})

	resp, err := svc.Breakdown(context.Background(), 1, GroupByLocation)
	require.NoError(t, err)

	assert.Equal(t, []dto.AmountByKey{
		{Key: "Mumbai", Amount: 1500},
		{Key: "Pune", Amount: 1450},
	}, resp.Items)
}

func TestBreakdownNoData(t *testing.T) {
	svc := NewExpenseService(expenseHistory(), &stubLLM{})

	_, err := svc.Breakdown(context.Background(), 99, GroupByVendor)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "employee 99")
}

func TestBreakdownUnknownGrouping(t *testing.T) {
	svc := NewExpenseService(expenseHistory(), &stubLLM{})

	_, err := svc.Breakdown(context.Background(), 1, "colour")
	assert.Error(t, err)
}

func TestExpenseSummary(t *testing.T) {
	provider := &stubLLM{response: "You mostly spend on transport."}
	svc := NewExpenseService(expenseHistory(), provider)

	resp, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "You mostly spend on transport.", resp.Summary)
	assert.Contains(t, provider.lastMessage, "by_vendor")
	assert.Contains(t, provider.lastMessage, "Cafe Coffee Day")
}

func TestExpenseSummaryProviderFailure(t *testing.T) {
	svc := NewExpenseService(expenseHistory(), &stubLLM{err: errUpstream})

	_, err := svc.Summary(context.Background(), 1)
	assert.ErrorIs(t, err, errUpstream)
}

func TestLastMonth(t *testing.T) {
	svc := NewExpenseService(expenseHistory(), &stubLLM{})
	svc.now = func() time.Time { return time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC) }

	resp, err := svc.LastMonth(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "01-03-2024", resp.From)
	assert.Equal(t, "31-03-2024", resp.To)
	require.Len(t, resp.Invoices, 2)
	assert.Equal(t, "100002", resp.Invoices[0].InvoiceID)
	assert.Equal(t, "100003", resp.Invoices[1].InvoiceID)
}

func TestLastMonthEmpty(t *testing.T) {
	svc := NewExpenseService(expenseHistory(), &stubLLM{})
	svc.now = func() time.Time { return time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC) }

	_, err := svc.LastMonth(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestExportXLSX(t *testing.T) {
	svc := NewExpenseService(expenseHistory(), &stubLLM{})
	svc.now = func() time.Time { return time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC) }

	list, err := svc.LastMonth(context.Background(), 1)
	require.NoError(t, err)

	data, err := svc.ExportXLSX(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Transactions", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Transaction List for Employee ID: 1", title)

	header, err := f.GetCellValue("Transactions", "F3")
	require.NoError(t, err)
	assert.Equal(t, "Vendor", header)

	first, err := f.GetCellValue("Transactions", "A4")
	require.NoError(t, err)
	assert.Equal(t, "100002", first)

	vendor, err := f.GetCellValue("Transactions", "F5")
	require.NoError(t, err)
	assert.Equal(t, "Dominos", vendor)
}

func TestCategoryBarChart(t *testing.T) {
	svc := NewExpenseService(expenseHistory(), &stubLLM{})

	chart, err := svc.CategoryBarChart(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "bar", chart.Type)
	assert.Equal(t, []string{"Food", "Medicine", "Transport"}, chart.Labels)
	require.Len(t, chart.Data, 1)
	assert.Equal(t, []float64{750, 700, 1500}, chart.Data[0].Values)
}

func TestVendorPieChartTopVendors(t *testing.T) {
	history := &memoryInvoices{}
	for i := 0; i < 12; i++ {
		vendor := string(rune('A' + i))
		history.rows = append(history.rows, invoiceRow("10000"+vendor, 3, int64(100*(i+1)), "01-01-2024", "Pune", "Food", vendor))
	}
	svc := NewExpenseService(history, &stubLLM{})

	chart, err := svc.VendorPieChart(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, chart.Labels, 10)
	assert.Equal(t, "L", chart.Labels[0])
	assert.Equal(t, 1200.0, chart.Values[0])
	assert.NotContains(t, chart.Labels, "A")
	assert.NotContains(t, chart.Labels, "B")
}

func TestCategoryLocationHeatmap(t *testing.T) {
	svc := NewExpenseService(expenseHistory(), &stubLLM{})

	heat, err := svc.CategoryLocationHeatmap(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"Food", "Medicine", "Transport"}, heat.Rows)
	assert.Equal(t, []string{"Mumbai", "Pune"}, heat.Columns)
	assert.Equal(t, [][]float64{
		{0, 750},
		{0, 700},
		{1500, 0},
	}, heat.Values)
}
