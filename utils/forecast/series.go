package forecast

import (
	"time"

	"github.com/Aashish23092/expense-insights/dto"
)

// Point is one period of a resampled series.
type Point struct {
	Start  time.Time
	Amount float64
}

// Monthly sums rows into calendar months from the first to the last month
// seen. Months without rows are present with a zero amount.
func Monthly(rows []dto.InvoiceRow) []Point {
	return resample(rows, monthStart, func(t time.Time) time.Time { return t.AddDate(0, 1, 0) })
}

// Daily sums rows into days, filling gaps with zero.
func Daily(rows []dto.InvoiceRow) []Point {
	return resample(rows, dayStart, func(t time.Time) time.Time { return t.AddDate(0, 0, 1) })
}

func resample(rows []dto.InvoiceRow, bucket func(time.Time) time.Time, next func(time.Time) time.Time) []Point {
	if len(rows) == 0 {
		return nil
	}

	sums := make(map[time.Time]float64)
	first, last := bucket(rows[0].Date), bucket(rows[0].Date)
	for _, row := range rows {
		b := bucket(row.Date)
		sums[b] += row.Amount.InexactFloat64()
		if b.Before(first) {
			first = b
		}
		if b.After(last) {
			last = b
		}
	}

	var points []Point
	for t := first; !t.After(last); t = next(t) {
		points = append(points, Point{Start: t, Amount: sums[t]})
	}
	return points
}

func Values(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Amount
	}
	return out
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthsBetween counts whole calendar months from a to b.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
