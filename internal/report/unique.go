package report

import "sort"

// Unique-visitor variants: every counted unit is one distinct display
// name per day rather than one join/leave event. A person's single daily
// unit is attributed to the (hour, location) of their first event of the
// day, so repeated join/leave cycles collapse to a single count.

// summarizeDayUnique buckets one date's events counting each display
// name once, at their first event of the day. The unit lands in Joins or
// Leaves according to that first event's kind; an anomalous kind still
// places the person in the bucket without touching either counter.
func summarizeDayUnique(
	date string, events []PresenceEvent,
) ([]HourlyBucket, Anomalies) {
	var anom Anomalies

	// Store order is ascending created_at, but the engine re-sorts so
	// "first event of the day" never depends on caller ordering.
	ordered := make([]PresenceEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	seen := make(map[string]bool)
	accs := make(map[hourKey]*hourAcc)

	for _, ev := range ordered {
		known := ev.Kind == KindJoin || ev.Kind == KindLeave
		if !known {
			anom.UnknownKind++
		}
		if seen[ev.DisplayName] {
			continue
		}
		seen[ev.DisplayName] = true

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
		}
		a.names[ev.DisplayName] = true
		if a.world == "" {
			a.world = ev.WorldName
		}
	}

	return flattenBuckets(date, accs), anom
}

// HourlySummaryUnique is HourlySummary with person-counting semantics.
func HourlySummaryUnique(
	events []PresenceEvent, date string,
) ([]HourlyBucket, Anomalies) {
	return HourlySummaryRangeUnique(events, date, date)
}

// HourlySummaryRangeUnique is HourlySummaryRange with person-counting
// semantics; the daily collapse resets at each date boundary.
func HourlySummaryRangeUnique(
	events []PresenceEvent, start, end string,
) ([]HourlyBucket, Anomalies) {
	byDate, dates, anom := splitByDate(events, start, end)

	var out []HourlyBucket
	for _, d := range dates {
		buckets, a := summarizeDayUnique(d, byDate[d])
		anom.UnknownKind += a.UnknownKind
		out = append(out, buckets...)
	}
	return out, anom
}

// dailyUniqueTotals counts the distinct display names seen on each date,
// regardless of event kind. Anomalous kinds are tallied but the person
// is still counted as present.
func dailyUniqueTotals(
	byDate map[string][]PresenceEvent, dates []string,
) (map[string]int, Anomalies) {
	var anom Anomalies
	totals := make(map[string]int, len(dates))

	for _, d := range dates {
		names := make(map[string]bool)
		for _, ev := range byDate[d] {
			if ev.Kind != KindJoin && ev.Kind != KindLeave {
				anom.UnknownKind++
			}
			names[ev.DisplayName] = true
		}
		totals[d] = len(names)
	}
	return totals, anom
}
