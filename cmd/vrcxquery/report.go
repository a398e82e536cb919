package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/M1XZG/vrcx-query-tools/internal/config"
	"github.com/M1XZG/vrcx-query-tools/internal/export"
	"github.com/M1XZG/vrcx-query-tools/internal/report"
	"github.com/M1XZG/vrcx-query-tools/internal/store"
)

func runReport(
	ctx context.Context, logger *zap.Logger, cfg config.Config,
	st *store.Store, opts options, start, end string,
	stdout, stderr io.Writer,
) int {
	events, err := st.PresenceEvents(ctx, start, end)
	if err != nil {
		fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
		return exitStore
	}
	logger.Info("events loaded", zap.Int("count", len(events)))

	if opts.instance != "" {
		events = report.FilterByInstance(events, opts.instance)
	} else if opts.world != "" {
		events = report.FilterByWorld(events, opts.world)
	}

	mode := export.ModeHourly
	switch {
	case opts.avgHour:
		mode = export.ModeHourlyAvg
	case opts.avgDOW:
		mode = export.ModeDayOfWeek
	case opts.weekly:
		mode = export.ModeWeekly
	}

	worldID := opts.world
	if worldID == "" && opts.instance != "" {
		worldID = report.WorldIDOf(opts.instance)
	}
	out := reportOutput{
		cfg:    cfg,
		base:   export.BaseName(mode, start, end, worldID, opts.unique),
		title:  chartTitle(opts, start, end),
		export: opts.export,
		stdout: stdout,
		stderr: stderr,
	}

	var anom report.Anomalies
	switch mode {
	case export.ModeHourlyAvg:
		var averages []report.HourAverage
		if opts.unique {
			averages, anom = report.HourlyAverageUnique(events, start, end)
		} else {
			averages, anom = report.HourlyAverage(events, start, end)
		}
		if err := out.averages(averages); err != nil {
			fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
			return exitStore
		}
	case export.ModeDayOfWeek:
		var averages []report.WeekdayAverage
		if opts.unique {
			averages, anom = report.DayOfWeekAverageUnique(events, start, end)
		} else {
			averages, anom = report.DayOfWeekAverage(events, start, end)
		}
		if err := out.weekdays(averages); err != nil {
			fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
			return exitStore
		}
	case export.ModeWeekly:
		var weeks []report.WeekBucket
		if opts.unique {
			weeks, anom = report.WeeklyBreakdownUnique(events, start, end)
		} else {
			weeks, anom = report.WeeklyBreakdown(events, start, end)
		}
		if err := out.weeks(weeks); err != nil {
			fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
			return exitStore
		}
	default:
		var buckets []report.HourlyBucket
		if opts.unique {
			buckets, anom = report.HourlySummaryRangeUnique(events, start, end)
		} else {
			buckets, anom = report.HourlySummaryRange(events, start, end)
		}
		if err := out.hourly(buckets); err != nil {
			fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
			return exitStore
		}
	}

	if n := anom.Total(); n > 0 {
		fmt.Fprintf(stdout,
			"%d anomalous rows (%d unknown event kinds, %d bad timestamps)\n",
			n, anom.UnknownKind, anom.BadTimestamp)
	}
	return exitOK
}

func chartTitle(opts options, start, end string) string {
	title := "Attendance " + start
	if end != start {
		title += " to " + end
	}
	switch {
	case opts.worldName != "":
		title += " - " + opts.worldName
	case opts.world != "":
		title += " - " + opts.world
	case opts.instance != "":
		title += " - " + opts.instance
	}
	if opts.unique {
		title += " (unique)"
	}
	return title
}

// reportOutput renders one report shape to the console and writes its
// chart (always) and CSV/XLSX (on -export) artifacts.
type reportOutput struct {
	cfg    config.Config
	base   string
	title  string
	export bool
	stdout io.Writer
	stderr io.Writer
}

func (o reportOutput) path(ext string) (string, error) {
	if err := os.MkdirAll(o.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	return filepath.Join(o.cfg.OutputDir, o.base+ext), nil
}

func (o reportOutput) noData() error {
	fmt.Fprintln(o.stdout, "No data for the requested range.")
	if o.export {
		fmt.Fprintln(o.stdout, "Nothing to export.")
	}
	return nil
}

func (o reportOutput) wrote(path string) {
	fmt.Fprintf(o.stdout, "Wrote %s\n", path)
}

// writeTables writes the CSV and XLSX artifacts when -export is set.
func (o reportOutput) writeTables(writeCSV, writeXLSX func(path string) error) error {
	if !o.export {
		return nil
	}
	writers := []struct {
		ext   string
		write func(string) error
	}{
		{".csv", writeCSV},
		{".xlsx", writeXLSX},
	}
	for _, w := range writers {
		path, err := o.path(w.ext)
		if err != nil {
			return err
		}
		if err := w.write(path); err != nil {
			return err
		}
		o.wrote(path)
	}
	return nil
}

func (o reportOutput) chart(render func(path string) error) error {
	path, err := o.path(".png")
	if err != nil {
		return err
	}
	if err := render(path); err != nil {
		if errors.Is(err, export.ErrNoChartData) {
			return nil
		}
		return err
	}
	o.wrote(path)
	return nil
}

func (o reportOutput) hourly(buckets []report.HourlyBucket) error {
	if len(buckets) == 0 {
		return o.noData()
	}

	fmt.Fprintf(o.stdout, "%-12s %-6s %-40s %-30s %6s %7s %5s %7s\n",
		"Date", "Hour", "Instance", "World", "Joins", "Leaves", "Net", "People")
	for _, b := range buckets {
		fmt.Fprintf(o.stdout, "%-12s %-6s %-40s %-30s %6d %7d %5d %7d\n",
			b.Date, export.HourLabel(b.Hour),
			clip(b.Location, 40), clip(b.WorldName, 30),
			b.Joins, b.Leaves, b.NetChange, b.UniquePeople)
	}

	if err := o.chart(func(path string) error {
		return export.WriteHourlyChart(path, o.title, buckets)
	}); err != nil {
		return err
	}
	return o.writeTables(
		func(path string) error { return export.WriteHourlyCSV(path, buckets) },
		func(path string) error { return export.WriteHourlyXLSX(path, buckets) },
	)
}

func (o reportOutput) averages(averages []report.HourAverage) error {
	sampled := false
	for _, a := range averages {
		if a.Samples > 0 {
			sampled = true
			break
		}
	}
	if !sampled {
		return o.noData()
	}

	fmt.Fprintf(o.stdout, "%-6s %10s %10s %10s %8s\n",
		"Hour", "Avg Joins", "Avg Leaves", "Avg People", "Days")
	for _, a := range averages {
		if a.Samples == 0 {
			fmt.Fprintf(o.stdout, "%-6s %10s %10s %10s %8d\n",
				export.HourLabel(a.Hour), "-", "-", "-", 0)
			continue
		}
		fmt.Fprintf(o.stdout, "%-6s %10.2f %10.2f %10.2f %8d\n",
			export.HourLabel(a.Hour), a.AvgJoins, a.AvgLeaves,
			a.AvgUnique, a.Samples)
	}

	if err := o.chart(func(path string) error {
		return export.WriteAverageChart(path, o.title, averages)
	}); err != nil {
		return err
	}
	return o.writeTables(
		func(path string) error { return export.WriteAverageCSV(path, averages) },
		func(path string) error { return export.WriteAverageXLSX(path, averages) },
	)
}

func (o reportOutput) weekdays(averages []report.WeekdayAverage) error {
	if len(averages) == 0 {
		return o.noData()
	}

	fmt.Fprintf(o.stdout, "%-10s %10s %8s\n", "Weekday", "Avg People", "Days")
	for _, a := range averages {
		fmt.Fprintf(o.stdout, "%-10s %10.2f %8d\n",
			a.Weekday.String(), a.AvgUnique, a.Samples)
	}

	if err := o.chart(func(path string) error {
		return export.WriteWeekdayChart(path, o.title, averages)
	}); err != nil {
		return err
	}
	return o.writeTables(
		func(path string) error { return export.WriteWeekdayCSV(path, averages) },
		func(path string) error { return export.WriteWeekdayXLSX(path, averages) },
	)
}

func (o reportOutput) weeks(weeks []report.WeekBucket) error {
	if len(weeks) == 0 {
		return o.noData()
	}

	lastWeek := ""
	for _, w := range weeks {
		if w.WeekStart != lastWeek {
			fmt.Fprintf(o.stdout, "Week of %s\n", w.WeekStart)
			lastWeek = w.WeekStart
		}
		fmt.Fprintf(o.stdout, "  %-10s %-12s %7d\n",
			w.Weekday.String(), w.Date, w.UniquePeople)
	}

	if err := o.chart(func(path string) error {
		return export.WriteWeeklyChart(path, o.title, weeks)
	}); err != nil {
		return err
	}
	return o.writeTables(
		func(path string) error { return export.WriteWeeklyCSV(path, weeks) },
		func(path string) error { return export.WriteWeeklyXLSX(path, weeks) },
	)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
