package report

import (
	"sort"
	"time"
)

// WeekStart returns the Sunday on or before the given date, matching the
// weekday indexing used by DayOfWeekAverage. Malformed dates come back
// unchanged.
func WeekStart(date string) string {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, -int(t.Weekday())).Format(DateFormat)
}

// WeeklyBreakdown partitions [start, end] into Sunday-start calendar
// weeks and emits one WeekBucket per day that has data, carrying the
// day's raw attendance total. Weeks are chronological; within a week
// days run Sunday through Saturday.
func WeeklyBreakdown(
	events []PresenceEvent, start, end string,
) ([]WeekBucket, Anomalies) {
	buckets, anom := HourlySummaryRange(events, start, end)
	return weekBuckets(dailyTotals(buckets)), anom
}

// WeeklyBreakdownUnique uses each day's distinct-person count as the
// daily total.
func WeeklyBreakdownUnique(
	events []PresenceEvent, start, end string,
) ([]WeekBucket, Anomalies) {
	byDate, dates, anom := splitByDate(events, start, end)
	totals, a := dailyUniqueTotals(byDate, dates)
	anom.UnknownKind += a.UnknownKind
	return weekBuckets(totals), anom
}

// weekBuckets orders daily totals into week-grouped buckets. Sorting by
// date already yields chronological weeks with Sunday-first days, since
// a week's dates are contiguous.
func weekBuckets(dayTotals map[string]int) []WeekBucket {
	dates := make([]string, 0, len(dayTotals))
	for d := range dayTotals {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]WeekBucket, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse(DateFormat, d)
		if err != nil {
			continue
		}
		out = append(out, WeekBucket{
			WeekStart:    WeekStart(d),
			Date:         d,
			Weekday:      t.Weekday(),
			UniquePeople: dayTotals[d],
		})
	}
	return out
}
