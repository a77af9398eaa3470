package dto

// ChartData is a renderer-agnostic chart description.
type ChartData struct {
	Type   string        `json:"type"` // "line", "bar", "pie", "heatmap"
	Title  string        `json:"title,omitempty"`
	Labels []string      `json:"labels"`
	Data   []ChartSeries `json:"data"`
}

type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Color  string    `json:"color,omitempty"`
}

type PieChartData struct {
	Type   string    `json:"type"`
	Title  string    `json:"title,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
}

// HeatmapData is a row-major matrix: Values[i][j] belongs to Rows[i], Columns[j].
type HeatmapData struct {
	Type    string      `json:"type"`
	Title   string      `json:"title,omitempty"`
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

type ChartResponse struct {
	EmployeeID int         `json:"employee_id"`
	Chart      interface{} `json:"chart"`
}
