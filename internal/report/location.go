package report

import "strings"

// Location is a decomposed VRChat instance identifier of the form
// wrld_<world-id>:<instance-number>~region(<code>)[~tag...].
type Location struct {
	WorldID  string
	Instance string
	Region   string
	Tags     []string
}

// worldPrefix starts every parseable world id.
const worldPrefix = "wrld_"

// ParseLocation decomposes a raw instance identifier. It returns
// ok=false for anything that does not carry a world id and instance
// number ("traveling", "offline", truncated rows); callers treat such
// values as unparseable rather than failing a whole report.
func ParseLocation(raw string) (Location, bool) {
	world, rest, found := strings.Cut(raw, ":")
	if !found || rest == "" {
		return Location{}, false
	}
	if !strings.HasPrefix(world, worldPrefix) ||
		len(world) == len(worldPrefix) {
		return Location{}, false
	}

	parts := strings.Split(rest, "~")
	loc := Location{WorldID: world, Instance: parts[0]}
	if loc.Instance == "" {
		return Location{}, false
	}

	for _, part := range parts[1:] {
		if code, ok := regionCode(part); ok {
			loc.Region = code
			continue
		}
		loc.Tags = append(loc.Tags, part)
	}
	return loc, true
}

// regionCode extracts the code from a "region(<code>)" segment.
func regionCode(segment string) (string, bool) {
	inner, ok := strings.CutPrefix(segment, "region(")
	if !ok {
		return "", false
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return "", false
	}
	return inner, true
}

// WorldIDOf returns the world-id component of a raw location, or ""
// when the location is unparseable.
func WorldIDOf(raw string) string {
	loc, ok := ParseLocation(raw)
	if !ok {
		return ""
	}
	return loc.WorldID
}
