package report

import "sort"

// hourKey identifies one hourly bucket within a single date.
type hourKey struct {
	hour     int
	location string
}

// hourAcc accumulates one bucket's counters before it is flattened.
type hourAcc struct {
	joins  int
	leaves int
	names  map[string]bool
	world  string
}

// splitByDate groups parseable events by their UTC date within
// [start, end] inclusive and returns the dates present in ascending
// order. Rows with an unparseable timestamp cannot be assigned to any
// date and are counted once as anomalies.
func splitByDate(
	events []PresenceEvent, start, end string,
) (map[string][]PresenceEvent, []string, Anomalies) {
	var anom Anomalies
	byDate := make(map[string][]PresenceEvent)

	for _, ev := range events {
		if ev.Timestamp.IsZero() {
			anom.BadTimestamp++
			continue
		}
		date := ev.Timestamp.UTC().Format(DateFormat)
		if date < start || date > end {
			continue
		}
		byDate[date] = append(byDate[date], ev)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return byDate, dates, anom
}

// summarizeDay buckets one date's events by (hour, location). Rows with
// an unrecognized kind are excluded from join/leave counts but their
// display name still counts toward the bucket's unique people.
func summarizeDay(
	date string, events []PresenceEvent,
) ([]HourlyBucket, Anomalies) {
	var anom Anomalies
	accs := make(map[hourKey]*hourAcc)

	for _, ev := range events {
		k := hourKey{ev.Timestamp.UTC().Hour(), ev.Location}
		a := accs[k]
		if a == nil {
			a = &hourAcc{names: make(map[string]bool)}
			accs[k] = a
		}
		switch ev.Kind {
		case KindJoin:
			a.joins++
		case KindLeave:
			a.leaves++
		default:
			anom.UnknownKind++
		}
		a.names[ev.DisplayName] = true
		if a.world == "" {
			a.world = ev.WorldName
		}
	}

	return flattenBuckets(date, accs), anom
}

// flattenBuckets converts an accumulator map into the ordered bucket
// slice: hour ascending, then unique people descending so the busiest
// instance within each hour comes first, ties broken by location.
func flattenBuckets(
	date string, accs map[hourKey]*hourAcc,
) []HourlyBucket {
	buckets := make([]HourlyBucket, 0, len(accs))
	for k, a := range accs {
		buckets = append(buckets, HourlyBucket{
			Date:         date,
			Hour:         k.hour,
			Location:     k.location,
			WorldName:    a.world,
			Joins:        a.joins,
			Leaves:       a.leaves,
			NetChange:    a.joins - a.leaves,
			UniquePeople: len(a.names),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Hour != buckets[j].Hour {
			return buckets[i].Hour < buckets[j].Hour
		}
		if buckets[i].UniquePeople != buckets[j].UniquePeople {
			return buckets[i].UniquePeople > buckets[j].UniquePeople
		}
		return buckets[i].Location < buckets[j].Location
	})
	return buckets
}

// HourlySummary returns the per-(hour, location) buckets for a single
// date. An empty result means no data for that date, never a zero-filled
// row.
func HourlySummary(
	events []PresenceEvent, date string,
) ([]HourlyBucket, Anomalies) {
	return HourlySummaryRange(events, date, date)
}

// HourlySummaryRange returns one hourly summary per date in
// [start, end] inclusive, ordered by date ascending then by the
// per-date bucket ordering. Dates without events are omitted: absence
// means "no data", not "zero attendance".
func HourlySummaryRange(
	events []PresenceEvent, start, end string,
) ([]HourlyBucket, Anomalies) {
	byDate, dates, anom := splitByDate(events, start, end)

	var out []HourlyBucket
	for _, d := range dates {
		buckets, a := summarizeDay(d, byDate[d])
		anom.UnknownKind += a.UnknownKind
		out = append(out, buckets...)
	}
	return out, anom
}

// dailyTotals sums each date's bucket unique counts. This is the
// per-date attendance figure the day-granularity reports work from.
func dailyTotals(buckets []HourlyBucket) map[string]int {
	totals := make(map[string]int)
	for _, b := range buckets {
		totals[b.Date] += b.UniquePeople
	}
	return totals
}
