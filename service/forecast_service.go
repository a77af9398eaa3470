package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/repository"
	"github.com/Aashish23092/expense-insights/utils/forecast"
)

const (
	plotHorizon     = 6
	yearHorizon     = 12
	categoryHorizon = 30
	periodLayout    = "2006-01"
)

type ForecastService struct {
	history repository.InvoiceRepository
}

func NewForecastService(history repository.InvoiceRepository) *ForecastService {
	return &ForecastService{history: history}
}

func (s *ForecastService) employeeRows(ctx context.Context, employeeID int) ([]dto.InvoiceRow, error) {
	rows, err := s.history.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	return rows, nil
}

func (s *ForecastService) monthlySeries(ctx context.Context, employeeID int) ([]forecast.Point, *forecast.Model, error) {
	rows, err := s.employeeRows(ctx, employeeID)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w to build a model for employee %d", ErrInsufficientData, employeeID)
	}

	points := forecast.Monthly(rows)
	model, err := forecast.Fit(forecast.Values(points))
	if err != nil {
		return nil, nil, fmt.Errorf("%w points to build an ARIMA model for employee %d: %v", ErrInsufficientData, employeeID, err)
	}
	return points, model, nil
}

// within keeps the rows dated in [from, to].
func within(rows []dto.InvoiceRow, from, to time.Time) []dto.InvoiceRow {
	var out []dto.InvoiceRow
	for _, r := range rows {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out
}

// MonthlyPlot returns the monthly history and the next six months.
func (s *ForecastService) MonthlyPlot(ctx context.Context, employeeID int) (dto.ForecastPlotResponse, error) {
	points, model, err := s.monthlySeries(ctx, employeeID)
	if err != nil {
		return dto.ForecastPlotResponse{}, err
	}

	resp := dto.ForecastPlotResponse{
		EmployeeID: employeeID,
		Historical: make([]dto.ForecastPoint, 0, len(points)),
		Forecast:   make([]dto.ForecastPoint, 0, plotHorizon),
	}
	for _, p := range points {
		resp.Historical = append(resp.Historical, dto.ForecastPoint{Period: p.Start.Format(periodLayout), Amount: p.Amount})
	}

	next := points[len(points)-1].Start
	for _, v := range model.Forecast(plotHorizon) {
		next = next.AddDate(0, 1, 0)
		resp.Forecast = append(resp.Forecast, dto.ForecastPoint{Period: next.Format(periodLayout), Amount: round2(v)})
	}
	return resp, nil
}

// PredictMonth forecasts spending in the given month. Targets at or before
// the last recorded month get the one-step forecast.
func (s *ForecastService) PredictMonth(ctx context.Context, req dto.MonthlyForecastRequest) (dto.MonthlyForecastResponse, error) {
	month, err := ParseMonth(req.Month)
	if err != nil {
		return dto.MonthlyForecastResponse{}, err
	}
	employeeID := req.ID()
	year := int(req.Year)

	points, model, err := s.monthlySeries(ctx, employeeID)
	if err != nil {
		return dto.MonthlyForecastResponse{}, err
	}

	target := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	steps := forecast.MonthsBetween(points[len(points)-1].Start, target)
	if steps < 1 {
		steps = 1
	}
	values := model.Forecast(steps)

	return dto.MonthlyForecastResponse{
		EmployeeID:        employeeID,
		Month:             month.String(),
		Year:              year,
		PredictedSpending: round2(values[steps-1]),
	}, nil
}

// PredictYear fits the monthly series of the given year and sums the next
// twelve monthly forecasts.
func (s *ForecastService) PredictYear(ctx context.Context, req dto.YearlyForecastRequest) (dto.YearlyForecastResponse, error) {
	employeeID := req.ID()
	year := int(req.Year)

	rows, err := s.employeeRows(ctx, employeeID)
	if err != nil {
		return dto.YearlyForecastResponse{}, err
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows = within(rows, from, time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC))
	if len(rows) == 0 {
		return dto.YearlyForecastResponse{}, fmt.Errorf("%w for employee %d in the year %d", ErrNoData, employeeID, year)
	}

	model, err := forecast.Fit(forecast.Values(forecast.Monthly(rows)))
	if err != nil {
		return dto.YearlyForecastResponse{}, fmt.Errorf("%w to build a model for employee %d in the year %d: %v", ErrInsufficientData, employeeID, year, err)
	}

	return dto.YearlyForecastResponse{
		EmployeeID:             employeeID,
		Year:                   year,
		PredictedTotalExpenses: round2(forecast.Sum(model.Forecast(yearHorizon))),
	}, nil
}

// PredictCategory fits the daily spending in one expense category during
// the given month and sums a thirty-day forecast.
func (s *ForecastService) PredictCategory(ctx context.Context, req dto.CategoryForecastRequest) (dto.CategoryForecastResponse, error) {
	month, err := ParseMonth(req.Month)
	if err != nil {
		return dto.CategoryForecastResponse{}, err
	}
	employeeID := req.ID()
	year := int(req.Year)

	rows, err := s.employeeRows(ctx, employeeID)
	if err != nil {
		return dto.CategoryForecastResponse{}, err
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var inCategory []dto.InvoiceRow
	for _, r := range within(rows, from, from.AddDate(0, 1, -1)) {
		if strings.EqualFold(r.Type, req.Category) {
			inCategory = append(inCategory, r)
		}
	}
	if len(inCategory) == 0 {
		return dto.CategoryForecastResponse{}, fmt.Errorf("%w for employee %d on %s in %s %d", ErrNoData, employeeID, req.Category, month, year)
	}

	model, err := forecast.Fit(forecast.Values(forecast.Daily(inCategory)))
	if err != nil {
		return dto.CategoryForecastResponse{}, fmt.Errorf("%w points to build an ARIMA model for category %s: %v", ErrInsufficientData, req.Category, err)
	}

	return dto.CategoryForecastResponse{
		EmployeeID:                employeeID,
		Category:                  req.Category,
		Month:                     month.String(),
		Year:                      year,
		PredictedCategoryExpenses: round2(forecast.Sum(model.Forecast(categoryHorizon))),
	}, nil
}

// ParseMonth accepts a full or three-letter English month name in any case,
// or a month number.
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, ErrInvalidMonth
		}
		return time.Month(n), nil
	}

	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.EqualFold(s, name) || (len(s) == 3 && strings.EqualFold(s, name[:3])) {
			return m, nil
		}
	}
	return 0, ErrInvalidMonth
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
