package chrono

import "sort"

// Zone represents a single time zone such as "CET" or "PDT". Name is the
// abbreviation used in formatted output, never the IANA identifier — that
// lives on the enclosing Location.
type Zone struct {
	Name   string // abbreviation, e.g. "CET"
	Offset int    // seconds east of UTC
	IsDST  bool
}

// ZoneTrans records a point at which a Location's active Zone changes.
type ZoneTrans struct {
	When  int64 // seconds since January 1, 1970 UTC
	Index uint8 // index into the enclosing Location's Zones
	IsStd bool  // transition time given in standard (not wall) time
	IsUTC bool  // transition time given in UTC (not local) time
}

// Location maps time instants to the Zone in effect at that instant. It
// models what the IANA database calls a time zone, such as "US/Pacific" or
// "Europe/Zurich" — a named, ordered set of zones and the transitions
// between them. A Location is immutable once constructed, and is safe for
// concurrent use by multiple goroutines (the spec's "scoped-acquisition"
// sharing model: create once, pass down, release at shutdown).
type Location struct {
	name        string
	zones       []Zone
	transitions []ZoneTrans // sorted ascending by When

	// cache of a zone and the range it covers, set once at construction
	// (FixedZone fills it for all time); lookup consults it but never
	// updates it.
	cacheStart int64
	cacheEnd   int64
	cacheZone  *Zone
}

// Name returns the Location's IANA identifier, such as "America/New_York",
// or "UTC"/"local" for the two sentinel locations.
func (l *Location) Name() string {
	if l == nil {
		return "UTC"
	}
	return l.name
}

// String is an alias for Name, so Locations print readably.
func (l *Location) String() string { return l.Name() }

// alpha and omega bound the representable range of a Location with no
// transitions: everything before the dawn of time and after its end, per
// spec §4.G's "Location has no zones" case.
const (
	alpha = -1 << 63
	omega = 1<<63 - 1
)

// UTC represents Universal Coordinated Time.
var UTC *Location = &utcLoc

var utcLoc = Location{name: "UTC"}

// FixedZone returns a Location that always uses the given zone, with no
// transitions — the general case that UTC (offset 0, name "UTC") and a
// fixed-offset Location are both specializations of.
func FixedZone(name string, offset int) *Location {
	l := &Location{
		name:  name,
		zones: []Zone{{Name: name, Offset: offset}},
	}
	l.cacheStart = alpha
	l.cacheEnd = omega
	l.cacheZone = &l.zones[0]
	return l
}

// NewLocation builds a Location from an already-decoded zone table and
// transition list. zoneinfo.Load calls this once per parsed TZif file;
// transitions must already be sorted ascending by When (zoneinfo.Load
// produces them that way, since TZif stores them in that order per §4.E).
func NewLocation(name string, zones []Zone, transitions []ZoneTrans) *Location {
	return &Location{name: name, zones: zones, transitions: transitions}
}

// Zones returns the Location's zone table. The returned slice must not be
// mutated.
func (l *Location) Zones() []Zone { return l.zones }

// Transitions returns the Location's transition table. The returned slice
// must not be mutated.
func (l *Location) Transitions() []ZoneTrans { return l.transitions }

// lookup resolves a Unix second to the Zone in effect at that instant, per
// spec §4.G. It returns the zone's name, offset, DST flag, and the
// half-open [start, end) range of Unix seconds over which that zone
// applies (alpha/omega at the unbounded ends).
func (l *Location) lookup(sec int64) (name string, offset int, isDST bool, start, end int64) {
	if l == nil || len(l.zones) == 0 {
		return "UTC", 0, false, alpha, omega
	}

	if zone := l.cacheZone; zone != nil && l.cacheStart <= sec && sec < l.cacheEnd {
		return zone.Name, zone.Offset, zone.IsDST, l.cacheStart, l.cacheEnd
	}

	if len(l.transitions) == 0 || sec < l.transitions[0].When {
		z := &l.zones[l.lookupFirstZone()]
		end = omega
		if len(l.transitions) > 0 {
			end = l.transitions[0].When
		}
		return z.Name, z.Offset, z.IsDST, alpha, end
	}

	// Binary search for the transition with the largest When <= sec.
	tx := l.transitions
	i := sort.Search(len(tx), func(i int) bool { return tx[i].When > sec }) - 1
	z := &l.zones[tx[i].Index]
	start = tx[i].When
	end = omega
	if i+1 < len(tx) {
		end = tx[i+1].When
	}
	return z.Name, z.Offset, z.IsDST, start, end
}

// lookupFirstZone picks the Zone in effect before the first transition,
// following the four-step rule localtime.c uses (spec §4.G):
//
//  1. If zone index 0 is never referenced by a transition, use it.
//  2. Else, if the first transition points at a DST zone, walk backward
//     from it to the first non-DST zone.
//  3. Else, use the first non-DST zone in the table.
//  4. Else (no non-DST zone exists at all), use zone index 0.
func (l *Location) lookupFirstZone() int {
	zeroUsed := false
	for _, tr := range l.transitions {
		if tr.Index == 0 {
			zeroUsed = true
			break
		}
	}
	if !zeroUsed {
		return 0
	}

	if len(l.transitions) > 0 && l.zones[l.transitions[0].Index].IsDST {
		for i := int(l.transitions[0].Index); i >= 0; i-- {
			if !l.zones[i].IsDST {
				return i
			}
		}
	}

	for i := range l.zones {
		if !l.zones[i].IsDST {
			return i
		}
	}
	return 0
}

// LookupName returns the offset of a Zone named name that was in effect at
// unixSec. It prefers a zone for which offset is self-consistent (the zone
// that lookup would report for unixSec-offset), falling back to the first
// zone in the table with a matching name, and reports an error if no zone
// has that name at all. This supports reconstructing an Instant from a
// textual abbreviation such as "PDT" at a known approximate time.
func (l *Location) LookupName(name string, unixSec int64) (offset int, err error) {
	if l == nil {
		l = &utcLoc
	}

	for i := range l.zones {
		z := &l.zones[i]
		if z.Name == name {
			if n, _, _, _, _ := l.lookup(unixSec - int64(z.Offset)); n == name {
				return z.Offset, nil
			}
		}
	}

	for i := range l.zones {
		z := &l.zones[i]
		if z.Name == name {
			return z.Offset, nil
		}
	}

	return 0, &ZoneNotFoundError{Location: l.Name(), Name: name}
}
