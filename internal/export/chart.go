package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"fintrack/internal/core"
)

// TrendChart renders the monthly income/expense trend as a PNG and
// returns the created filename. go-chart needs at least two points per
// series, so a trend shorter than two months is reported as no data.
func TrendChart(dir string, trend []core.MonthTotals, now time.Time) (string, error) {
	if len(trend) < 2 {
		return "", ErrNoData
	}

	months := make([]time.Time, len(trend))
	income := make([]float64, len(trend))
	expenses := make([]float64, len(trend))
	for i, m := range trend {
		months[i] = time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local)
		income[i] = m.Income
		expenses[i] = m.Expenses
	}

	graph := chart.Chart{
		Title: "Monthly Trend",
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Income",
				XValues: months,
				YValues: income,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 77, G: 184, B: 255, A: 255},
					StrokeWidth: 2,
				},
			},
			chart.TimeSeries{
				Name:    "Expenses",
				XValues: months,
				YValues: expenses,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 250, G: 134, B: 94, A: 255},
					StrokeWidth: 2,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	path := filepath.Join(dir, fmt.Sprintf("trend_chart_%s.png", now.Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return path, nil
}
