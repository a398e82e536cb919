package report

import "time"

// HourlyAverage returns 24 rows averaging join, leave, and unique counts
// for each hour across the dates in [start, end] that have at least one
// bucket for that hour. The mean is arithmetic over qualifying dates,
// not weighted by how many location buckets a date produced. Hours no
// date reached are reported with Samples == 0 and zero averages.
func HourlyAverage(
	events []PresenceEvent, start, end string,
) ([]HourAverage, Anomalies) {
	buckets, anom := HourlySummaryRange(events, start, end)
	return averageByHour(buckets), anom
}

// HourlyAverageUnique is HourlyAverage over person-counting buckets.
func HourlyAverageUnique(
	events []PresenceEvent, start, end string,
) ([]HourAverage, Anomalies) {
	buckets, anom := HourlySummaryRangeUnique(events, start, end)
	return averageByHour(buckets), anom
}

// averageByHour folds bucket rows into per-date hour totals, then
// averages those totals across the dates that have each hour.
func averageByHour(buckets []HourlyBucket) []HourAverage {
	type dateHour struct {
		date string
		hour int
	}
	type totals struct {
		joins  int
		leaves int
		unique int
	}

	perDate := make(map[dateHour]*totals)
	for _, b := range buckets {
		k := dateHour{b.Date, b.Hour}
		t := perDate[k]
		if t == nil {
			t = &totals{}
			perDate[k] = t
		}
		t.joins += b.Joins
		t.leaves += b.Leaves
		t.unique += b.UniquePeople
	}

	out := make([]HourAverage, 24)
	for h := range out {
		out[h].Hour = h
	}
	for k, t := range perDate {
		out[k.hour].AvgJoins += float64(t.joins)
		out[k.hour].AvgLeaves += float64(t.leaves)
		out[k.hour].AvgUnique += float64(t.unique)
		out[k.hour].Samples++
	}
	for h := range out {
		if n := out[h].Samples; n > 0 {
			out[h].AvgJoins /= float64(n)
			out[h].AvgLeaves /= float64(n)
			out[h].AvgUnique /= float64(n)
		}
	}
	return out
}

// DayOfWeekAverage groups the dates in [start, end] by weekday and
// averages the per-date attendance total (the sum of that date's hourly
// bucket unique counts) across every calendar occurrence of the weekday
// in range. Weekdays the range never touches are omitted.
func DayOfWeekAverage(
	events []PresenceEvent, start, end string,
) ([]WeekdayAverage, Anomalies) {
	buckets, anom := HourlySummaryRange(events, start, end)
	return averageByWeekday(dailyTotals(buckets), start, end), anom
}

// DayOfWeekAverageUnique averages each date's distinct-person count
// instead of the summed hourly figure.
func DayOfWeekAverageUnique(
	events []PresenceEvent, start, end string,
) ([]WeekdayAverage, Anomalies) {
	byDate, dates, anom := splitByDate(events, start, end)
	totals, a := dailyUniqueTotals(byDate, dates)
	anom.UnknownKind += a.UnknownKind
	return averageByWeekday(totals, start, end), anom
}

// averageByWeekday divides weekday sums by the number of calendar dates
// of that weekday in [start, end]; a date with no events contributes
// zero to its weekday's mean.
func averageByWeekday(
	dayTotals map[string]int, start, end string,
) []WeekdayAverage {
	startT, err := time.Parse(DateFormat, start)
	if err != nil {
		return nil
	}
	endT, err := time.Parse(DateFormat, end)
	if err != nil {
		return nil
	}

	var sums, counts [7]int
	for d := startT; !d.After(endT); d = d.AddDate(0, 0, 1) {
		wd := int(d.Weekday())
		sums[wd] += dayTotals[d.Format(DateFormat)]
		counts[wd]++
	}

	var out []WeekdayAverage
	for wd := 0; wd < 7; wd++ {
		if counts[wd] == 0 {
			continue
		}
		out = append(out, WeekdayAverage{
			Weekday:   time.Weekday(wd),
			AvgUnique: float64(sums[wd]) / float64(counts[wd]),
			Samples:   counts[wd],
		})
	}
	return out
}
