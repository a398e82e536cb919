package report

// FilterByWorld narrows events to those whose location belongs to the
// given world, across all of its instances and regions. Events with an
// unparseable location never match. An unmatched world id yields an
// empty slice, not an error; the caller decides how to present that.
func FilterByWorld(
	events []PresenceEvent, worldID string,
) []PresenceEvent {
	var out []PresenceEvent
	for _, ev := range events {
		if WorldIDOf(ev.Location) == worldID {
			out = append(out, ev)
		}
	}
	return out
}

// FilterByInstance narrows events to an exact location match on the
// full opaque identifier.
func FilterByInstance(
	events []PresenceEvent, location string,
) []PresenceEvent {
	var out []PresenceEvent
	for _, ev := range events {
		if ev.Location == location {
			out = append(out, ev)
		}
	}
	return out
}
