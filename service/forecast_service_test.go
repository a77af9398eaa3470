package service

import (
	"context"
	"testing"
	"time"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monthly spend of 100, 200, 300, 400 fits a pure drift of 100 a month
func trendHistory() *memoryInvoices {
	return &memoryInvoices{rows: []dto.InvoiceRow{
		invoiceRow("300001", 5, 100, "03-01-2024", "Pune", "Food", "Dominos"),
		invoiceRow("300002", 5, 150, "07-02-2024", "Pune", "Food", "Dominos"),
		invoiceRow("300003", 5, 50, "21-02-2024", "Pune", "Transport", "Uber"),
		invoiceRow("300004", 5, 300, "14-03-2024", "Pune", "Food", "Dominos"),
		invoiceRow("300005", 5, 400, "09-04-2024", "Pune", "Food", "Dominos"),
		invoiceRow("300006", 6, 400, "09-04-2024", "Pune", "Food", "Dominos"),
	}}
}

func employeeReq(id int) dto.EmployeeRequest {
	return dto.EmployeeRequest{EmployeeID: dto.FlexInt(id)}
}

func TestMonthlyPlot(t *testing.T) {
	svc := NewForecastService(trendHistory())

	resp, err := svc.MonthlyPlot(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, resp.Historical, 4)
	assert.Equal(t, dto.ForecastPoint{Period: "2024-02", Amount: 200}, resp.Historical[1])
	require.Len(t, resp.Forecast, 6)
	assert.Equal(t, dto.ForecastPoint{Period: "2024-05", Amount: 500}, resp.Forecast[0])
	assert.Equal(t, dto.ForecastPoint{Period: "2024-10", Amount: 1000}, resp.Forecast[5])
}

func TestMonthlyPlotNoHistory(t *testing.T) {
	svc := NewForecastService(trendHistory())

	_, err := svc.MonthlyPlot(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestMonthlyPlotSingleMonth(t *testing.T) {
	svc := NewForecastService(trendHistory())

	_, err := svc.MonthlyPlot(context.Background(), 6)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Contains(t, err.Error(), "ARIMA")
}

func TestPredictMonth(t *testing.T) {
	svc := NewForecastService(trendHistory())

	resp, err := svc.PredictMonth(context.Background(), dto.MonthlyForecastRequest{
		EmployeeRequest: employeeReq(5),
		Month:           "june",
		Year:            2024,
	})
	require.NoError(t, err)

	assert.Equal(t, "June", resp.Month)
	assert.Equal(t, 2024, resp.Year)
	assert.InDelta(t, 600, resp.PredictedSpending, 1e-6)
}

func TestPredictMonthInPastUsesNextStep(t *testing.T) {
	svc := NewForecastService(trendHistory())

	resp, err := svc.PredictMonth(context.Background(), dto.MonthlyForecastRequest{
		EmployeeRequest: employeeReq(5),
		Month:           "Feb",
		Year:            2024,
	})
	require.NoError(t, err)
	assert.InDelta(t, 500, resp.PredictedSpending, 1e-6)
}

func TestPredictMonthInvalidName(t *testing.T) {
	svc := NewForecastService(trendHistory())

	_, err := svc.PredictMonth(context.Background(), dto.MonthlyForecastRequest{
		EmployeeRequest: employeeReq(5),
		Month:           "Smarch",
		Year:            2024,
	})
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestPredictYear(t *testing.T) {
	history := trendHistory()
	history.rows = append(history.rows, invoiceRow("300007", 5, 5000, "20-12-2023", "Pune", "Food", "Dominos"))
	svc := NewForecastService(history)

	resp, err := svc.PredictYear(context.Background(), dto.YearlyForecastRequest{EmployeeRequest: employeeReq(5), Year: 2024})
	require.NoError(t, err)

	// only 2024 is fitted: 500 + 600 + ... + 1600
	assert.InDelta(t, 12600, resp.PredictedTotalExpenses, 1e-6)
	assert.Equal(t, 2024, resp.Year)
}

func TestPredictYearWithoutRowsInYear(t *testing.T) {
	svc := NewForecastService(trendHistory())

	_, err := svc.PredictYear(context.Background(), dto.YearlyForecastRequest{EmployeeRequest: employeeReq(5), Year: 2019})
	assert.ErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "in the year 2019")
}

func TestPredictYearSingleMonth(t *testing.T) {
	svc := NewForecastService(trendHistory())

	_, err := svc.PredictYear(context.Background(), dto.YearlyForecastRequest{EmployeeRequest: employeeReq(6), Year: 2024})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func categoryHistory() *memoryInvoices {
	return &memoryInvoices{rows: []dto.InvoiceRow{
		invoiceRow("400001", 8, 10, "01-05-2024", "Pune", "Food", "Dominos"),
		invoiceRow("400002", 8, 10, "02-05-2024", "Pune", "Food", "Dominos"),
		invoiceRow("400003", 8, 10, "03-05-2024", "Pune", "Food", "Dominos"),
		invoiceRow("400004", 8, 999, "03-05-2024", "Pune", "Transport", "Uber"),
		invoiceRow("400005", 8, 700, "30-04-2024", "Pune", "Food", "Dominos"),
		invoiceRow("400006", 8, 900, "01-06-2024", "Pune", "Food", "Dominos"),
	}}
}

func TestPredictCategory(t *testing.T) {
	svc := NewForecastService(categoryHistory())

	resp, err := svc.PredictCategory(context.Background(), dto.CategoryForecastRequest{
		EmployeeRequest: employeeReq(8),
		Category:        "food",
		Month:           "5",
		Year:            2024,
	})
	require.NoError(t, err)

	assert.Equal(t, "May", resp.Month)
	assert.Equal(t, 2024, resp.Year)
	// only the three May days count
	assert.InDelta(t, 300, resp.PredictedCategoryExpenses, 1e-6)
}

func TestPredictCategoryOutsideMonth(t *testing.T) {
	svc := NewForecastService(categoryHistory())

	_, err := svc.PredictCategory(context.Background(), dto.CategoryForecastRequest{
		EmployeeRequest: employeeReq(8),
		Category:        "Food",
		Month:           "January",
		Year:            2020,
	})
	assert.ErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "on Food in January 2020")
}

func TestPredictCategoryUnknown(t *testing.T) {
	svc := NewForecastService(trendHistory())

	_, err := svc.PredictCategory(context.Background(), dto.CategoryForecastRequest{
		EmployeeRequest: employeeReq(5),
		Category:        "Jewellery",
		Month:           "May",
		Year:            2024,
	})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestParseMonth(t *testing.T) {
	cases := map[string]time.Month{
		"January": time.January,
		"sep":     time.September,
		"12":      time.December,
		" MAY ":   time.May,
	}
	for in, want := range cases {
		got, err := ParseMonth(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "13", "0", "Ju"} {
		_, err := ParseMonth(in)
		assert.ErrorIs(t, err, ErrInvalidMonth, in)
	}
}
