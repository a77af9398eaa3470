package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

var ErrTooShort = errors.New("series needs at least two observations")

// Model is an ARIMA(1,1,1) fitted to a series by conditional sum of squares:
//
//	dy[t] = c + phi*dy[t-1] + theta*e[t-1] + e[t]
//
// where dy is the first difference of the series.
type Model struct {
	Phi   float64
	Theta float64
	Const float64

	lastLevel float64
	lastDiff  float64
	lastResid float64
}

// paramLimit bounds |phi| and |theta| so the fit stays stationary and
// invertible.
const paramLimit = 0.98

// Fit estimates phi and theta by minimising the conditional sum of squares
// with Nelder-Mead, starting from a random walk with drift.
func Fit(series []float64) (*Model, error) {
	if len(series) < 2 {
		return nil, ErrTooShort
	}

	diffs := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		diffs[i-1] = series[i] - series[i-1]
	}
	mean := stat.Mean(diffs, nil)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			sse, _ := css(diffs, mean, bounded(x[0]), bounded(x[1]))
			return sse
		},
	}
	result, err := optimize.Minimize(problem, []float64{0, 0}, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("fit ARIMA(1,1,1): %w", err)
	}

	best := &Model{Phi: bounded(result.X[0]), Theta: bounded(result.X[1])}
	_, resid := css(diffs, mean, best.Phi, best.Theta)

	best.Const = mean * (1 - best.Phi)
	best.lastLevel = series[len(series)-1]
	best.lastDiff = diffs[len(diffs)-1]
	best.lastResid = resid
	return best, nil
}

// bounded maps the real line onto (-paramLimit, paramLimit), with 0 at 0.
func bounded(x float64) float64 {
	return paramLimit * math.Tanh(x)
}

// css returns the sum of squared one-step errors and the final error.
// The process is started at its mean with no prior shock.
func css(diffs []float64, mean, phi, theta float64) (float64, float64) {
	c := mean * (1 - phi)
	prev, prevErr := mean, 0.0
	var sse float64
	for _, d := range diffs {
		e := d - (c + phi*prev + theta*prevErr)
		sse += e * e
		prev, prevErr = d, e
	}
	return sse, prevErr
}

// Forecast returns the next steps levels of the series.
func (m *Model) Forecast(steps int) []float64 {
	out := make([]float64, 0, steps)
	level, prev, prevErr := m.lastLevel, m.lastDiff, m.lastResid
	for i := 0; i < steps; i++ {
		d := m.Const + m.Phi*prev + m.Theta*prevErr
		level += d
		out = append(out, level)
		prev, prevErr = d, 0
	}
	return out
}

// Sum adds up a slice.
func Sum(values []float64) float64 {
	return floats.Sum(values)
}
