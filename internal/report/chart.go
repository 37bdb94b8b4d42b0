package report

import (
	"errors"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"frauddash/internal/domain"
)

// ErrNoChartData is returned when there is nothing to draw.
var ErrNoChartData = errors.New("no fraud data to chart")

// RenderFraudChart draws the fraud-count-per-location bar chart as a PNG.
// Bars keep the aggregator's order (highest fraud count first).
func RenderFraudChart(w io.Writer, counts []domain.LocationCount) error {
	if len(counts) == 0 {
		return ErrNoChartData
	}

	bars := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, chart.Value{
			Label: c.Location,
			Value: float64(c.Count),
		})
	}

	barChart := chart.BarChart{
		Title: "Fraud by Location",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		Bars:   bars,
	}
	barChart.YAxis.ValueFormatter = func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.0f")
	}

	return barChart.Render(chart.PNG, w)
}
