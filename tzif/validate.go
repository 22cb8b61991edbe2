package tzif

import (
	"errors"
	"fmt"
)

// blockCounts carries the lengths actually present in a decoded data
// block, so validateBlock can check them against the header's declared
// counts without caring whether it is looking at a V1DataBlock or a
// V2DataBlock.
type blockCounts struct {
	utIndicators         int
	stdIndicators        int
	leapRecords          int
	transitionTimes      int
	transitionTypes      int
	localTimeTypeRecords int
	designation          []byte
}

func v1Counts(d V1DataBlock) blockCounts {
	return blockCounts{
		utIndicators:         len(d.UTLocalIndicators),
		stdIndicators:        len(d.StandardWallIndicators),
		leapRecords:          len(d.LeapSecondRecords),
		transitionTimes:      len(d.TransitionTimes),
		transitionTypes:      len(d.TransitionTypes),
		localTimeTypeRecords: len(d.LocalTimeTypeRecord),
		designation:          d.TimeZoneDesignation,
	}
}

func v2Counts(d V2DataBlock) blockCounts {
	return blockCounts{
		utIndicators:         len(d.UTLocalIndicators),
		stdIndicators:        len(d.StandardWallIndicators),
		leapRecords:          len(d.LeapSecondRecords),
		transitionTimes:      len(d.TransitionTimes),
		transitionTypes:      len(d.TransitionTypes),
		localTimeTypeRecords: len(d.LocalTimeTypeRecord),
		designation:          d.TimeZoneDesignation,
	}
}

// Validate checks that a decoded Data block is internally consistent:
// that the header's counts match the data actually present, and that
// the mandatory fields (typecnt, charcnt, the designation terminator)
// satisfy RFC 8536. It reports every violation it finds rather than
// stopping at the first.
func Validate(d Data) error {
	var errs []error
	if d.Version != d.V1Header.Version || d.V1Header.Version != d.V2Header.Version {
		errs = append(errs, fmt.Errorf("inconsistent version: file = %v, v1 header = %v, v2 header = %v", d.Version, d.V1Header.Version, d.V2Header.Version))
	}

	errs = append(errs, validateBlock("v1", d.V1Header, v1Counts(d.V1Data))...)
	if d.Version > V1 {
		errs = append(errs, validateBlock("v2", d.V2Header, v2Counts(d.V2Data))...)
	}

	return errors.Join(errs...)
}

func validateBlock(label string, h Header, c blockCounts) []error {
	var errs []error

	if h.Isutcnt != 0 && h.Isutcnt != h.Typecnt {
		errs = append(errs, fmt.Errorf("invalid %s isutcnt (%d): must be 0 or equal to typecnt (%d)", label, h.Isutcnt, h.Typecnt))
	}
	if c.utIndicators != int(h.Isutcnt) {
		errs = append(errs, fmt.Errorf("invalid %s isutcnt: header = %d, data = %d", label, h.Isutcnt, c.utIndicators))
	}

	if h.Isstdcnt != 0 && h.Isstdcnt != h.Typecnt {
		errs = append(errs, fmt.Errorf("invalid %s isstdcnt (%d): must be 0 or equal to typecnt (%d)", label, h.Isstdcnt, h.Typecnt))
	}
	if c.stdIndicators != int(h.Isstdcnt) {
		errs = append(errs, fmt.Errorf("invalid %s isstdcnt: header = %d, data = %d", label, h.Isstdcnt, c.stdIndicators))
	}

	if c.leapRecords != int(h.Leapcnt) {
		errs = append(errs, fmt.Errorf("invalid %s leapcnt: header = %d, data = %d", label, h.Leapcnt, c.leapRecords))
	}

	if c.transitionTimes != int(h.Timecnt) {
		errs = append(errs, fmt.Errorf("invalid %s timecnt: header = %d, transition times = %d", label, h.Timecnt, c.transitionTimes))
	}
	if c.transitionTimes != c.transitionTypes {
		errs = append(errs, fmt.Errorf("inconsistent %s transitions: transition times = %d, transition types = %d", label, c.transitionTimes, c.transitionTypes))
	}

	if h.Typecnt == 0 {
		errs = append(errs, fmt.Errorf("invalid %s typecnt: must not be zero", label))
	}
	if c.localTimeTypeRecords != int(h.Typecnt) {
		errs = append(errs, fmt.Errorf("invalid %s typecnt: header = %d, data = %d", label, h.Typecnt, c.localTimeTypeRecords))
	}

	if h.Charcnt == 0 {
		errs = append(errs, fmt.Errorf("invalid %s charcnt: must not be zero", label))
	}
	if len(c.designation) != int(h.Charcnt) {
		errs = append(errs, fmt.Errorf("invalid %s charcnt: header = %d, data = %d", label, h.Charcnt, len(c.designation)))
	}
	if len(c.designation) > 0 && c.designation[len(c.designation)-1] != 0 {
		errs = append(errs, fmt.Errorf("invalid %s time zone designations: missing null terminator", label))
	}

	return errs
}
