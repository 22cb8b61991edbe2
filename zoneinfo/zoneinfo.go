// Package zoneinfo locates and decodes IANA tzfile data into chrono
// Locations. It is the zone-source capability chrono.Instant itself does
// not know how to reach: disk paths and environment variables live here,
// not in the core package.
package zoneinfo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gotimezone/chrono"
	"github.com/gotimezone/chrono/tzif"
)

// maxZoneFileSize caps how much of a candidate tzdata file is read. Real
// zoneinfo files are a few kilobytes; this only guards against pointing
// the loader at something else entirely.
const maxZoneFileSize = 10 << 20 // 10 MiB

// searchPath lists the directories tried, in order, when resolving a bare
// zone name such as "America/New_York".
var searchPath = []string{
	"/usr/share/zoneinfo/",
	"/usr/share/lib/zoneinfo/",
	"/usr/lib/locale/TZ/",
}

// Load decodes TZif data and builds a Location named name from it.
func Load(name string, data []byte) (*chrono.Location, error) {
	d, err := tzif.DecodeData(bytes.NewReader(data))
	if err != nil {
		return nil, &chrono.MalformedZoneFileError{Path: name, Err: err}
	}
	if err := tzif.Validate(d); err != nil {
		return nil, &chrono.MalformedZoneFileError{Path: name, Err: err}
	}
	return build(name, d)
}

// LoadFile reads path (refusing anything over maxZoneFileSize) and decodes
// it as a zone named name.
func LoadFile(name, path string) (*chrono.Location, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, &chrono.ZoneFileNotFoundError{Name: name}
	}
	if fi.Size() > maxZoneFileSize {
		return nil, &chrono.MalformedZoneFileError{Path: path, Err: fmt.Errorf("file too large: %d bytes", fi.Size())}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &chrono.ZoneFileNotFoundError{Name: name}
	}
	return Load(name, data)
}

// LoadLocation searches searchPath for name and loads the first match. It
// rejects a name that tries to escape the search root via "..".
func LoadLocation(name string) (*chrono.Location, error) {
	if name == "" || name == "UTC" {
		return chrono.UTC, nil
	}
	if containsDotDot(name) {
		return nil, &chrono.ZoneFileNotFoundError{Name: name}
	}
	for _, dir := range searchPath {
		if loc, err := LoadFile(name, filepath.Join(dir, name)); err == nil {
			return loc, nil
		}
	}
	return nil, &chrono.ZoneFileNotFoundError{Name: name}
}

// LoadLocal resolves the default Location the way a Unix process does. If
// the TZ environment variable is set, an empty value or "UTC" gives UTC and
// any other value is loaded as a zone name. If TZ is unset, /etc/localtime
// is loaded under the name "local". Any failure loading a zone falls back
// to UTC rather than propagating, matching the zone-source default flow.
func LoadLocal() *chrono.Location {
	if tz, ok := os.LookupEnv("TZ"); ok {
		if tz == "" || tz == "UTC" {
			return chrono.UTC
		}
		if loc, err := LoadLocation(tz); err == nil {
			return loc
		}
		return chrono.UTC
	}

	loc, err := LoadFile("local", "/etc/localtime")
	if err != nil {
		return chrono.UTC
	}
	return loc
}

func containsDotDot(name string) bool {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' && i+1 < len(name) && name[i+1] == '.' {
			return true
		}
	}
	return false
}

// build converts decoded TZif data into a chrono.Location, choosing the v1
// or v2+ data block according to the file's version.
func build(name string, d tzif.Data) (*chrono.Location, error) {
	if d.Version > tzif.V1 {
		return buildV2(name, d.V2Header, d.V2Data)
	}
	return buildV1(name, d.V1Header, d.V1Data)
}

func buildV1(name string, h tzif.Header, b tzif.V1DataBlock) (*chrono.Location, error) {
	zones, err := buildZones(h, b.LocalTimeTypeRecord, b.TimeZoneDesignation)
	if err != nil {
		return nil, &chrono.MalformedZoneFileError{Path: name, Err: err}
	}
	transitions, err := buildTransitions(len(zones), toInt64s(b.TransitionTimes), b.TransitionTypes, b.StandardWallIndicators, b.UTLocalIndicators)
	if err != nil {
		return nil, &chrono.MalformedZoneFileError{Path: name, Err: err}
	}
	return chrono.NewLocation(name, zones, transitions), nil
}

func buildV2(name string, h tzif.Header, b tzif.V2DataBlock) (*chrono.Location, error) {
	zones, err := buildZones(h, b.LocalTimeTypeRecord, b.TimeZoneDesignation)
	if err != nil {
		return nil, &chrono.MalformedZoneFileError{Path: name, Err: err}
	}
	transitions, err := buildTransitions(len(zones), b.TransitionTimes, b.TransitionTypes, b.StandardWallIndicators, b.UTLocalIndicators)
	if err != nil {
		return nil, &chrono.MalformedZoneFileError{Path: name, Err: err}
	}
	return chrono.NewLocation(name, zones, transitions), nil
}

func toInt64s(v []int32) []int64 {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = int64(x)
	}
	return out
}

// buildZones converts ttinfo records into chrono.Zone values, copying each
// abbreviation out of the shared designation buffer so the Location owns
// its own storage.
func buildZones(h tzif.Header, recs []tzif.LocalTimeTypeRecord, designations []byte) ([]chrono.Zone, error) {
	zones := make([]chrono.Zone, len(recs))
	for i, r := range recs {
		name, err := nulTerminated(designations, int(r.Idx))
		if err != nil {
			return nil, fmt.Errorf("zone %d: %w", i, err)
		}
		zones[i] = chrono.Zone{
			Name:   name,
			Offset: int(r.Utoff),
			IsDST:  r.Dst,
		}
	}
	return zones, nil
}

func nulTerminated(b []byte, start int) (string, error) {
	if start < 0 || start > len(b) {
		return "", fmt.Errorf("abbreviation index %d out of range [0, %d]", start, len(b))
	}
	end := bytes.IndexByte(b[start:], 0)
	if end < 0 {
		return "", fmt.Errorf("abbreviation at index %d missing NUL terminator", start)
	}
	// Copy so the Location does not keep the whole designation buffer
	// alive through one abbreviation.
	return string(append([]byte(nil), b[start:start+end]...)), nil
}

// buildTransitions converts parallel transition-time/type arrays into
// ZoneTrans values. If there are no transitions at all, it synthesizes a
// single one at alpha pointing at the first-zone candidate, so lookup
// always has at least one entry to reason about consistently (per §4.E's
// "tzh_timecnt == 0" case).
func buildTransitions(zoneCount int, times []int64, types []uint8, std, utc []bool) ([]chrono.ZoneTrans, error) {
	if len(times) != len(types) {
		return nil, fmt.Errorf("transition times (%d) and types (%d) length mismatch", len(times), len(types))
	}
	if len(times) == 0 {
		if zoneCount == 0 {
			return nil, nil
		}
		return []chrono.ZoneTrans{{When: alpha, Index: 0}}, nil
	}

	out := make([]chrono.ZoneTrans, len(times))
	for i, when := range times {
		idx := types[i]
		if int(idx) >= zoneCount {
			return nil, fmt.Errorf("transition %d: zone index %d out of range [0, %d)", i, idx, zoneCount)
		}
		out[i] = chrono.ZoneTrans{
			When:  when,
			Index: idx,
			IsStd: boolAt(std, i),
			IsUTC: boolAt(utc, i),
		}
	}
	return out, nil
}

func boolAt(v []bool, i int) bool {
	if i >= len(v) {
		return false
	}
	return v[i]
}

const alpha = -1 << 63
