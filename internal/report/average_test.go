package report

import (
	"testing"
	"time"
)

func TestHourlyAverage(t *testing.T) {
	// Hour 10 has data on both dates, hour 14 only on the 25th.
	events := []PresenceEvent{
		ev(t, "2025-12-25T10:00:00Z", KindJoin, "Alice", locA),
		ev(t, "2025-12-25T10:05:00Z", KindJoin, "Bob", locA),
		ev(t, "2025-12-25T14:00:00Z", KindJoin, "Carol", locA),
		ev(t, "2025-12-26T10:00:00Z", KindJoin, "Dave", locA),
	}

	rows, anom := HourlyAverage(events, "2025-12-25", "2025-12-26")
	if anom.Total() != 0 {
		t.Fatalf("anomalies = %d, want 0", anom.Total())
	}
	if len(rows) != 24 {
		t.Fatalf("len(rows) = %d, want 24", len(rows))
	}

	t.Run("MeanAcrossQualifyingDates", func(t *testing.T) {
		h10 := rows[10]
		if h10.Samples != 2 {
			t.Errorf("hour 10 samples = %d, want 2", h10.Samples)
		}
		// (2 joins + 1 join) / 2 dates
		if h10.AvgJoins != 1.5 {
			t.Errorf("hour 10 avg joins = %v, want 1.5", h10.AvgJoins)
		}
	})

	t.Run("SingleSampleIsExact", func(t *testing.T) {
		h14 := rows[14]
		if h14.Samples != 1 {
			t.Errorf("hour 14 samples = %d, want 1", h14.Samples)
		}
		if h14.AvgJoins != 1 || h14.AvgUnique != 1 {
			t.Errorf("hour 14 averages = %v/%v, want 1/1",
				h14.AvgJoins, h14.AvgUnique)
		}
	})

	t.Run("NoDataFlaggedByZeroSamples", func(t *testing.T) {
		h3 := rows[3]
		if h3.Samples != 0 {
			t.Errorf("hour 3 samples = %d, want 0", h3.Samples)
		}
		if h3.AvgJoins != 0 || h3.AvgLeaves != 0 || h3.AvgUnique != 0 {
			t.Errorf("hour 3 should average zero, got %+v", h3)
		}
	})
}

func TestDayOfWeekAverage(t *testing.T) {
	t.Run("SingleMondayEqualsItsRawTotal", func(t *testing.T) {
		// 2025-12-22 is a Monday; the range holds exactly one.
		events := []PresenceEvent{
			ev(t, "2025-12-22T10:00:00Z", KindJoin, "Alice", locA),
			ev(t, "2025-12-22T11:00:00Z", KindJoin, "Bob", locA),
			ev(t, "2025-12-22T11:05:00Z", KindJoin, "Carol", locB),
		}

		rows, _ := DayOfWeekAverage(events, "2025-12-21", "2025-12-27")
		if len(rows) != 7 {
			t.Fatalf("len(rows) = %d, want 7", len(rows))
		}

		var monday *WeekdayAverage
		for i := range rows {
			if rows[i].Weekday == time.Monday {
				monday = &rows[i]
			}
		}
		if monday == nil {
			t.Fatal("no Monday row")
		}
		if monday.Samples != 1 {
			t.Errorf("Monday samples = %d, want 1", monday.Samples)
		}
		// Raw daily total: 1 + 1 in hour 10/11 locA, 1 in locB.
		if monday.AvgUnique != 3 {
			t.Errorf("Monday average = %v, want 3", monday.AvgUnique)
		}
	})

	t.Run("WeekdayOutsideRangeOmitted", func(t *testing.T) {
		// Thursday through Saturday only.
		events := []PresenceEvent{
			ev(t, "2025-12-25T10:00:00Z", KindJoin, "Alice", locA),
		}
		rows, _ := DayOfWeekAverage(events, "2025-12-25", "2025-12-27")
		if len(rows) != 3 {
			t.Fatalf("len(rows) = %d, want 3", len(rows))
		}
		for _, r := range rows {
			if r.Weekday == time.Sunday || r.Weekday == time.Monday {
				t.Errorf("weekday %v should be omitted", r.Weekday)
			}
		}
	})

	t.Run("EmptyDateContributesZero", func(t *testing.T) {
		// Two Thursdays in range, one with data.
		events := []PresenceEvent{
			ev(t, "2025-12-25T10:00:00Z", KindJoin, "Alice", locA),
			ev(t, "2025-12-25T10:05:00Z", KindJoin, "Bob", locA),
		}
		rows, _ := DayOfWeekAverage(events, "2025-12-25", "2026-01-01")
		for _, r := range rows {
			if r.Weekday != time.Thursday {
				continue
			}
			if r.Samples != 2 {
				t.Errorf("Thursday samples = %d, want 2", r.Samples)
			}
			if r.AvgUnique != 1 {
				t.Errorf("Thursday average = %v, want 1", r.AvgUnique)
			}
		}
	})
}

func TestDayOfWeekAverageUnique(t *testing.T) {
	// Alice appears in two hours: summed total 2, distinct total 1.
	events := []PresenceEvent{
		ev(t, "2025-12-22T10:00:00Z", KindJoin, "Alice", locA),
		ev(t, "2025-12-22T14:00:00Z", KindJoin, "Alice", locA),
	}

	raw, _ := DayOfWeekAverage(events, "2025-12-22", "2025-12-22")
	uniq, _ := DayOfWeekAverageUnique(events, "2025-12-22", "2025-12-22")

	if len(raw) != 1 || len(uniq) != 1 {
		t.Fatalf("rows = %d/%d, want 1/1", len(raw), len(uniq))
	}
	if raw[0].AvgUnique != 2 {
		t.Errorf("raw average = %v, want 2", raw[0].AvgUnique)
	}
	if uniq[0].AvgUnique != 1 {
		t.Errorf("unique average = %v, want 1", uniq[0].AvgUnique)
	}
}
