// Package export renders aggregation results as CSV, spreadsheet, and
// chart files. File names are a deterministic function of the query so
// repeated runs overwrite their own artifacts instead of accumulating.
package export

// Report modes used in artifact names.
const (
	ModeHourly    = "hourly"
	ModeHourlyAvg = "hourly_avg"
	ModeDayOfWeek = "dow"
	ModeWeekly    = "weekly"
)

// BaseName returns the extension-less stem for a report's output files,
// e.g. vrcx_hourly_2025-12-25_to_2025-12-31_wrld_abc_unique.
func BaseName(mode, start, end, worldID string, unique bool) string {
	name := "vrcx_" + mode + "_" + start
	if end != "" && end != start {
		name += "_to_" + end
	}
	if worldID != "" {
		name += "_" + worldID
	}
	if unique {
		name += "_unique"
	}
	return name
}
