package export

import (
	"errors"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/M1XZG/vrcx-query-tools/internal/report"
)

// ErrNoChartData is returned when a chart would contain no bars.
var ErrNoChartData = errors.New("no data to chart")

// WriteHourlyChart renders unique attendance per hour (summed across
// instances and dates) as a PNG bar chart.
func WriteHourlyChart(path, title string, buckets []report.HourlyBucket) error {
	totals := make(map[int]int)
	for _, b := range buckets {
		totals[b.Hour] += b.UniquePeople
	}
	var bars []chart.Value
	for hour := 0; hour < 24; hour++ {
		if n, ok := totals[hour]; ok {
			bars = append(bars, chart.Value{Label: HourLabel(hour), Value: float64(n)})
		}
	}
	return writeBarChart(path, title, bars)
}

// WriteAverageChart renders average unique attendance per hour as a PNG
// bar chart. Hours with no sample days are omitted.
func WriteAverageChart(path, title string, averages []report.HourAverage) error {
	var bars []chart.Value
	for _, a := range averages {
		if a.Samples > 0 {
			bars = append(bars, chart.Value{Label: HourLabel(a.Hour), Value: a.AvgUnique})
		}
	}
	return writeBarChart(path, title, bars)
}

// WriteWeekdayChart renders average unique attendance per weekday as a
// PNG bar chart.
func WriteWeekdayChart(path, title string, averages []report.WeekdayAverage) error {
	var bars []chart.Value
	for _, a := range averages {
		bars = append(bars, chart.Value{Label: a.Weekday.String()[:3], Value: a.AvgUnique})
	}
	return writeBarChart(path, title, bars)
}

// WriteWeeklyChart renders daily unique attendance across a weekly
// breakdown as a PNG bar chart, one bar per date.
func WriteWeeklyChart(path, title string, weeks []report.WeekBucket) error {
	var bars []chart.Value
	for _, w := range weeks {
		bars = append(bars, chart.Value{Label: w.Date[5:], Value: float64(w.UniquePeople)})
	}
	return writeBarChart(path, title, bars)
}

func writeBarChart(path, title string, bars []chart.Value) error {
	if len(bars) == 0 {
		return ErrNoChartData
	}
	max := 0.0
	for _, b := range bars {
		if b.Value > max {
			max = b.Value
		}
	}
	if max == 0 {
		// go-chart cannot render a degenerate Y range.
		max = 1
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      1280,
		Height:     720,
		BarWidth:   28,
		BarSpacing: 14,
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: max},
		},
		Bars: bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}
