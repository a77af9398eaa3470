package service

import (
	"context"
	"sort"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/shopspring/decimal"
)

const topVendorCount = 10

// CategoryBarChart is total spending per expense type.
func (s *ExpenseService) CategoryBarChart(ctx context.Context, employeeID int) (dto.ChartData, error) {
	rows, err := s.employeeRows(ctx, employeeID)
	if err != nil {
		return dto.ChartData{}, err
	}

	sums := sumBy(rows, groupKeys[GroupByType])
	keys := sortedKeys(sums)
	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = sums[k].InexactFloat64()
	}

	return dto.ChartData{
		Type:   "bar",
		Title:  "Total Expenses by Category",
		Labels: keys,
		Data:   []dto.ChartSeries{{Name: "Total Amount", Values: values}},
	}, nil
}

// VendorPieChart is the share of the ten vendors with the highest spend.
func (s *ExpenseService) VendorPieChart(ctx context.Context, employeeID int) (dto.PieChartData, error) {
	rows, err := s.employeeRows(ctx, employeeID)
	if err != nil {
		return dto.PieChartData{}, err
	}

	sums := sumBy(rows, groupKeys[GroupByVendor])
	vendors := sortedKeys(sums)
	sort.SliceStable(vendors, func(i, j int) bool {
		return sums[vendors[i]].GreaterThan(sums[vendors[j]])
	})
	if len(vendors) > topVendorCount {
		vendors = vendors[:topVendorCount]
	}

	values := make([]float64, len(vendors))
	for i, v := range vendors {
		values[i] = sums[v].InexactFloat64()
	}

	return dto.PieChartData{
		Type:   "pie",
		Title:  "Top 10 Vendors by Total Spending",
		Labels: vendors,
		Values: values,
	}, nil
}

// CategoryLocationHeatmap is spending per (type, location), zero where the
// employee never spent.
func (s *ExpenseService) CategoryLocationHeatmap(ctx context.Context, employeeID int) (dto.HeatmapData, error) {
	rows, err := s.employeeRows(ctx, employeeID)
	if err != nil {
		return dto.HeatmapData{}, err
	}

	cells := make(map[[2]string]decimal.Decimal)
	types := make(map[string]decimal.Decimal)
	locations := make(map[string]decimal.Decimal)
	for _, r := range rows {
		k := [2]string{r.Type, r.Location}
		cells[k] = cells[k].Add(r.Amount)
		types[r.Type] = decimal.Zero
		locations[r.Location] = decimal.Zero
	}

	rowKeys := sortedKeys(types)
	colKeys := sortedKeys(locations)
	matrix := make([][]float64, len(rowKeys))
	for i, t := range rowKeys {
		matrix[i] = make([]float64, len(colKeys))
		for j, l := range colKeys {
			matrix[i][j] = cells[[2]string{t, l}].InexactFloat64()
		}
	}

	return dto.HeatmapData{
		Type:    "heatmap",
		Title:   "Expense Category vs Location",
		Rows:    rowKeys,
		Columns: colKeys,
		Values:  matrix,
	}, nil
}
