package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlySummaryUnique(t *testing.T) {
	t.Run("RejoinCollapsesToFirstHour", func(t *testing.T) {
		// Alice joins at 10:00, leaves at 11:00, rejoins at 14:00.
		events := []PresenceEvent{
			ev(t, "2025-12-25T10:00:00Z", KindJoin, "Alice", locA),
			ev(t, "2025-12-25T11:00:00Z", KindLeave, "Alice", locA),
			ev(t, "2025-12-25T14:00:00Z", KindJoin, "Alice", locA),
		}

		buckets, anom := HourlySummaryUnique(events, "2025-12-25")
		require.Zero(t, anom.Total())
		require.Len(t, buckets, 1, "only the 10:00 bucket should exist")

		b := buckets[0]
		assert.Equal(t, 10, b.Hour)
		assert.Equal(t, 1, b.Joins)
		assert.Equal(t, 0, b.Leaves)
		assert.Equal(t, 1, b.UniquePeople)
	})

	t.Run("CollapseResetsAcrossDays", func(t *testing.T) {
		events := []PresenceEvent{
			ev(t, "2025-12-25T10:00:00Z", KindJoin, "Alice", locA),
			ev(t, "2025-12-26T09:00:00Z", KindJoin, "Alice", locA),
		}
		buckets, _ := HourlySummaryRangeUnique(
			events, "2025-12-25", "2025-12-26",
		)
		require.Len(t, buckets, 2)
		assert.Equal(t, "2025-12-25", buckets[0].Date)
		assert.Equal(t, "2025-12-26", buckets[1].Date)
		for _, b := range buckets {
			assert.Equal(t, 1, b.UniquePeople, "date %s", b.Date)
		}
	})

	t.Run("FirstEventLeaveCountsAsLeave", func(t *testing.T) {
		// Bob was already in the instance when logging started.
		events := []PresenceEvent{
			ev(t, "2025-12-25T10:00:00Z", KindLeave, "Bob", locA),
			ev(t, "2025-12-25T12:00:00Z", KindJoin, "Bob", locA),
		}
		buckets, _ := HourlySummaryUnique(events, "2025-12-25")
		require.Len(t, buckets, 1)
		assert.Equal(t, 10, buckets[0].Hour)
		assert.Equal(t, 0, buckets[0].Joins)
		assert.Equal(t, 1, buckets[0].Leaves)
	})

	t.Run("UnsortedInputStillPicksEarliest", func(t *testing.T) {
		events := []PresenceEvent{
			ev(t, "2025-12-25T14:00:00Z", KindJoin, "Alice", locA),
			ev(t, "2025-12-25T10:00:00Z", KindJoin, "Alice", locA),
		}
		buckets, _ := HourlySummaryUnique(events, "2025-12-25")
		require.Len(t, buckets, 1)
		assert.Equal(t, 10, buckets[0].Hour)
	})

	t.Run("AnomalousFirstEventStillPlacesPerson", func(t *testing.T) {
		events := []PresenceEvent{
			ev(t, "2025-12-25T09:00:00Z", "ping", "Carol", locA),
			ev(t, "2025-12-25T10:00:00Z", KindJoin, "Carol", locA),
		}
		buckets, anom := HourlySummaryUnique(events, "2025-12-25")
		assert.Equal(t, 1, anom.UnknownKind)
		require.Len(t, buckets, 1)
		assert.Equal(t, 9, buckets[0].Hour)
		assert.Equal(t, 0, buckets[0].Joins)
		assert.Equal(t, 1, buckets[0].UniquePeople)
	})
}

// A person seen in two different hours counts once for the day but may
// appear in two hourly buckets, so the daily unique count is bounded by
// the sum of hourly unique counts.
func TestUniqueDailyMonotonicity(t *testing.T) {
	events := []PresenceEvent{
		ev(t, "2025-12-25T10:00:00Z", KindJoin, "Alice", locA),
		ev(t, "2025-12-25T14:00:00Z", KindJoin, "Alice", locA),
		ev(t, "2025-12-25T14:05:00Z", KindJoin, "Bob", locA),
	}

	hourly, _ := HourlySummary(events, "2025-12-25")
	hourlySum := 0
	for _, b := range hourly {
		hourlySum += b.UniquePeople
	}

	byDate, dates, _ := splitByDate(events, "2025-12-25", "2025-12-25")
	daily, _ := dailyUniqueTotals(byDate, dates)

	require.Equal(t, 2, daily["2025-12-25"])
	require.Equal(t, 3, hourlySum)
	assert.LessOrEqual(t, daily["2025-12-25"], hourlySum)
}
