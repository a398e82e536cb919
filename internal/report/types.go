// Package report turns raw VRCX gamelog rows into hour, day-of-week, and
// week attendance aggregates. Every function here is a pure transformation
// of its event-slice input: no clock, no environment, no I/O. That keeps
// the whole package testable with literal fixtures.
package report

import "time"

// Recognized presence event kinds. Anything else is a data-quality
// anomaly: excluded from join/leave counts but still a sighting of the
// person for unique-visitor purposes.
const (
	KindJoin  = "join"
	KindLeave = "leave"
)

// DateFormat is the date layout used for bucket keys and range bounds.
const DateFormat = "2006-01-02"

// PresenceEvent is one join or leave observed in the watcher's current
// instance. Timestamp is UTC; a zero Timestamp marks a row whose stored
// text failed to parse.
type PresenceEvent struct {
	Timestamp   time.Time
	Kind        string
	DisplayName string
	UserID      string
	Location    string
	WorldName   string
}

// LocationEvent is one period the observing user spent in an instance.
type LocationEvent struct {
	Timestamp       time.Time
	Location        string
	WorldID         string
	WorldName       string
	DurationSeconds int
	GroupName       string
}

// HourlyBucket aggregates presence events sharing a (date, hour,
// location) key.
type HourlyBucket struct {
	Date         string
	Hour         int
	Location     string
	WorldName    string
	Joins        int
	Leaves       int
	NetChange    int
	UniquePeople int
}

// HourAverage is one row of the 24-hour average report. Samples is the
// number of dates that contributed; zero samples means "no data for this
// hour", which is distinct from an average of zero.
type HourAverage struct {
	Hour      int
	AvgJoins  float64
	AvgLeaves float64
	AvgUnique float64
	Samples   int
}

// WeekdayAverage is the mean per-date attendance for one day of the
// week (time.Weekday, Sunday=0) across a queried range.
type WeekdayAverage struct {
	Weekday   time.Weekday
	AvgUnique float64
	Samples   int
}

// WeekBucket is one day inside a Sunday-start calendar week, carrying
// the day's raw (not averaged) attendance total.
type WeekBucket struct {
	WeekStart    string
	Date         string
	Weekday      time.Weekday
	UniquePeople int
}

// Anomalies counts source rows that failed to conform to the expected
// enumerations or formats. Anomalous rows never abort a report; they are
// excluded from the affected counts and surfaced here so users can judge
// how trustworthy the data is.
type Anomalies struct {
	UnknownKind  int
	BadTimestamp int
}

// Total returns the combined anomaly count for the run.
func (a Anomalies) Total() int {
	return a.UnknownKind + a.BadTimestamp
}

// timestampLayouts are the accepted forms for stored gamelog timestamps.
// VRCX writes ISO-8601 UTC text; older rows omit the T separator.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a stored gamelog timestamp. The second return is
// false when none of the accepted layouts match.
func ParseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
