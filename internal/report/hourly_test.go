package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	locA = "wrld_A:1~region(us)"
	locB = "wrld_B:77~region(eu)"
)

// ev builds a presence event from a literal timestamp. Fails the test on
// a bad literal so fixtures stay honest.
func ev(t *testing.T, ts, kind, name, location string) PresenceEvent {
	t.Helper()
	parsed, ok := ParseTimestamp(ts)
	if !ok {
		t.Fatalf("bad fixture timestamp %q", ts)
	}
	return PresenceEvent{
		Timestamp:   parsed,
		Kind:        kind,
		DisplayName: name,
		Location:    location,
		WorldName:   "Test World",
	}
}

func TestHourlySummary(t *testing.T) {
	t.Run("JoinsLeavesNetAndUnique", func(t *testing.T) {
		events := []PresenceEvent{
			ev(t, "2025-12-25T12:05:00Z", KindJoin, "Alice", locA),
			ev(t, "2025-12-25T12:15:00Z", KindLeave, "Alice", locA),
			ev(t, "2025-12-25T12:30:00Z", KindJoin, "Alice", locA),
			ev(t, "2025-12-25T12:45:00Z", KindJoin, "Bob", locA),
		}

		buckets, anom := HourlySummary(events, "2025-12-25")
		if anom.Total() != 0 {
			t.Fatalf("anomalies = %d, want 0", anom.Total())
		}

		want := []HourlyBucket{{
			Date:         "2025-12-25",
			Hour:         12,
			Location:     locA,
			WorldName:    "Test World",
			Joins:        3,
			Leaves:       1,
			NetChange:    2,
			UniquePeople: 2,
		}}
		if diff := cmp.Diff(want, buckets); diff != "" {
			t.Errorf("buckets mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("EmptyDateYieldsNoBuckets", func(t *testing.T) {
		events := []PresenceEvent{
			ev(t, "2025-12-25T12:05:00Z", KindJoin, "Alice", locA),
		}
		buckets, anom := HourlySummary(events, "2025-12-26")
		if len(buckets) != 0 {
			t.Errorf("len(buckets) = %d, want 0", len(buckets))
		}
		if anom.Total() != 0 {
			t.Errorf("anomalies = %d, want 0", anom.Total())
		}
	})

	t.Run("UnknownKindCountsPersonNotEvents", func(t *testing.T) {
		events := []PresenceEvent{
			ev(t, "2025-12-25T12:00:00Z", KindJoin, "Alice", locA),
			ev(t, "2025-12-25T12:01:00Z", "ping", "Carol", locA),
		}
		buckets, anom := HourlySummary(events, "2025-12-25")
		if anom.UnknownKind != 1 {
			t.Errorf("UnknownKind = %d, want 1", anom.UnknownKind)
		}
		if len(buckets) != 1 {
			t.Fatalf("len(buckets) = %d, want 1", len(buckets))
		}
		b := buckets[0]
		if b.Joins != 1 || b.Leaves != 0 {
			t.Errorf("joins/leaves = %d/%d, want 1/0", b.Joins, b.Leaves)
		}
		if b.UniquePeople != 2 {
			t.Errorf("UniquePeople = %d, want 2", b.UniquePeople)
		}
	})

	t.Run("BadTimestampCountedOnce", func(t *testing.T) {
		events := []PresenceEvent{
			ev(t, "2025-12-25T12:00:00Z", KindJoin, "Alice", locA),
			{Kind: KindJoin, DisplayName: "Ghost", Location: locA},
		}
		buckets, anom := HourlySummary(events, "2025-12-25")
		if anom.BadTimestamp != 1 {
			t.Errorf("BadTimestamp = %d, want 1", anom.BadTimestamp)
		}
		if len(buckets) != 1 || buckets[0].Joins != 1 {
			t.Errorf("ghost row leaked into buckets: %+v", buckets)
		}
	})

	t.Run("BusiestInstanceFirstWithinHour", func(t *testing.T) {
		events := []PresenceEvent{
			ev(t, "2025-12-25T09:00:00Z", KindJoin, "Alice", locA),
			ev(t, "2025-12-25T09:01:00Z", KindJoin, "Bob", locB),
			ev(t, "2025-12-25T09:02:00Z", KindJoin, "Carol", locB),
			ev(t, "2025-12-25T08:00:00Z", KindJoin, "Dave", locA),
		}
		buckets, _ := HourlySummary(events, "2025-12-25")
		if len(buckets) != 3 {
			t.Fatalf("len(buckets) = %d, want 3", len(buckets))
		}
		if buckets[0].Hour != 8 {
			t.Errorf("first bucket hour = %d, want 8", buckets[0].Hour)
		}
		// Hour 9: locB has 2 unique people, locA has 1.
		if buckets[1].Location != locB {
			t.Errorf("busiest at hour 9 = %q, want %q",
				buckets[1].Location, locB)
		}
		if buckets[2].Location != locA {
			t.Errorf("third bucket = %q, want %q",
				buckets[2].Location, locA)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		events := []PresenceEvent{
			ev(t, "2025-12-25T10:00:00Z", KindJoin, "Alice", locA),
			ev(t, "2025-12-25T10:05:00Z", KindJoin, "Bob", locB),
			ev(t, "2025-12-25T11:00:00Z", KindLeave, "Alice", locA),
		}
		first, _ := HourlySummary(events, "2025-12-25")
		second, _ := HourlySummary(events, "2025-12-25")
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("second run differs:\n%s", diff)
		}
	})
}

func TestHourlySummaryRange(t *testing.T) {
	events := []PresenceEvent{
		ev(t, "2025-12-24T10:00:00Z", KindJoin, "Alice", locA),
		ev(t, "2025-12-26T11:00:00Z", KindJoin, "Bob", locA),
		ev(t, "2025-12-27T12:00:00Z", KindJoin, "Carol", locA),
	}

	t.Run("DatesAscendingGapsOmitted", func(t *testing.T) {
		buckets, _ := HourlySummaryRange(events, "2025-12-24", "2025-12-27")
		wantDates := []string{"2025-12-24", "2025-12-26", "2025-12-27"}
		if len(buckets) != len(wantDates) {
			t.Fatalf("len(buckets) = %d, want %d",
				len(buckets), len(wantDates))
		}
		for i, b := range buckets {
			if b.Date != wantDates[i] {
				t.Errorf("bucket %d date = %q, want %q",
					i, b.Date, wantDates[i])
			}
		}
	})

	t.Run("BoundsInclusive", func(t *testing.T) {
		buckets, _ := HourlySummaryRange(events, "2025-12-26", "2025-12-26")
		if len(buckets) != 1 || buckets[0].Date != "2025-12-26" {
			t.Errorf("buckets = %+v, want one 2025-12-26 row", buckets)
		}
	})
}

// Event-count inequalities from the bucket contract: joins+leaves never
// exceeds the contributing rows, and unique people never exceeds
// joins+leaves when every row has a recognized kind.
func TestBucketCountBounds(t *testing.T) {
	events := []PresenceEvent{
		ev(t, "2025-12-25T12:00:00Z", KindJoin, "Alice", locA),
		ev(t, "2025-12-25T12:01:00Z", KindLeave, "Alice", locA),
		ev(t, "2025-12-25T12:02:00Z", KindJoin, "Bob", locA),
		ev(t, "2025-12-25T12:03:00Z", "ping", "Carol", locA),
	}
	buckets, anom := HourlySummary(events, "2025-12-25")
	if len(buckets) != 1 {
		t.Fatalf("len(buckets) = %d, want 1", len(buckets))
	}
	b := buckets[0]
	if b.Joins+b.Leaves > len(events) {
		t.Errorf("joins+leaves = %d exceeds %d raw events",
			b.Joins+b.Leaves, len(events))
	}
	// Equality holds only without anomalies.
	if got := b.Joins + b.Leaves + anom.UnknownKind; got != len(events) {
		t.Errorf("joins+leaves+anomalies = %d, want %d", got, len(events))
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		ts   string
		ok   bool
	}{
		{"RFC3339", "2025-12-25T10:00:00Z", true},
		{"RFC3339Nano", "2025-12-25T10:00:00.123Z", true},
		{"SpaceSeparated", "2025-12-25 10:00:00", true},
		{"DateOnly", "2025-12-25", false},
		{"Garbage", "not a time", false},
		{"Empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseTimestamp(tt.ts)
			if ok != tt.ok {
				t.Errorf("ParseTimestamp(%q) ok = %v, want %v",
					tt.ts, ok, tt.ok)
			}
		})
	}
}
