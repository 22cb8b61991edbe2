package chrono

import "io"

// Layouts are written in terms of a reference instant — Mon Jan 2
// 15:04:05 MST 2006, Unix second 1136239445, in a zone seven hours west of
// UTC — the same trick the spec borrows from the layout language this
// library's formatter implements. Any substring of a layout that matches
// a fragment of the reference instant is replaced with the corresponding
// field of the Instant being formatted; everything else passes through
// literally.
const (
	ANSIC       = "Mon Jan _2 15:04:05 2006"
	UnixDate    = "Mon Jan _2 15:04:05 MST 2006"
	RubyDate    = "Mon Jan 02 15:04:05 -0700 2006"
	RFC822      = "02 Jan 06 15:04 MST"
	RFC822Z     = "02 Jan 06 15:04 -0700"
	RFC850      = "Monday, 02-Jan-06 15:04:05 MST"
	RFC1123     = "Mon, 02 Jan 2006 15:04:05 MST"
	RFC1123Z    = "Mon, 02 Jan 2006 15:04:05 -0700"
	RFC3339     = "2006-01-02T15:04:05Z07:00"
	RFC3339Nano = "2006-01-02T15:04:05.999999999Z07:00"
	Kitchen     = "3:04PM"

	Stamp      = "Jan _2 15:04:05"
	StampMilli = "Jan _2 15:04:05.000"
	StampMicro = "Jan _2 15:04:05.000000"
	StampNano  = "Jan _2 15:04:05.000000000"
)

// chunk identifies a single layout token recognized against the reference
// instant.
type chunk int

const (
	chunkNone chunk = iota
	stdLongMonth
	stdMonth
	stdNumMonth
	stdZeroMonth
	stdLongWeekDay
	stdWeekDay
	stdDay
	stdUnderDay
	stdZeroDay
	stdHour
	stdHour12
	stdZeroHour12
	stdMinute
	stdZeroMinute
	stdSecond
	stdZeroSecond
	stdLongYear
	stdYear
	stdPM
	stdpm
	stdTZ
	stdISO8601TZ
	stdISO8601ColonTZ
	stdISO8601SecondsTZ
	stdISO8601ShortTZ
	stdISO8601ColonSecondsTZ
	stdNumTZ
	stdNumColonTZ
	stdNumSecondsTz
	stdNumShortTZ
	stdNumColonSecondsTZ
	stdFracSecond0
	stdFracSecond9
)

// stdChunk is a single recognized layout token. prec is a side payload for
// stdFracSecond0/stdFracSecond9: the number of fractional digits to
// render.
type stdChunk struct {
	kind chunk
	prec int
}

// startsWithLowerCase reports whether s begins with an ASCII lowercase
// letter. This is how the tokenizer avoids matching "Jan" inside
// "January" (or "Mon" inside "Monday"): a three-letter match is only a
// chunk if the character that follows is not itself lowercase.
func startsWithLowerCase(s string) bool {
	if len(s) == 0 {
		return false
	}
	c := s[0]
	return 'a' <= c && c <= 'z'
}

// nextStdChunk scans layout for the next recognized chunk, returning the
// literal prefix before it, the chunk itself (chunkNone if none was
// found, in which case prefix is the entire remaining layout), and the
// remaining unscanned suffix.
func nextStdChunk(layout string) (prefix string, std stdChunk, suffix string) {
	for i := 0; i < len(layout); i++ {
		switch c := layout[i]; c {
		case 'J': // January, Jan
			if len(layout) >= i+7 && layout[i:i+7] == "January" {
				return layout[:i], stdChunk{kind: stdLongMonth}, layout[i+7:]
			}
			if len(layout) >= i+3 && layout[i:i+3] == "Jan" {
				if !(len(layout) > i+3 && startsWithLowerCase(layout[i+3:])) {
					return layout[:i], stdChunk{kind: stdMonth}, layout[i+3:]
				}
			}

		case 'M': // Monday, Mon, MST
			if len(layout) >= i+6 && layout[i:i+6] == "Monday" {
				return layout[:i], stdChunk{kind: stdLongWeekDay}, layout[i+6:]
			}
			if len(layout) >= i+3 && layout[i:i+3] == "Mon" {
				if !(len(layout) > i+3 && startsWithLowerCase(layout[i+3:])) {
					return layout[:i], stdChunk{kind: stdWeekDay}, layout[i+3:]
				}
			}
			if len(layout) >= i+3 && layout[i:i+3] == "MST" {
				return layout[:i], stdChunk{kind: stdTZ}, layout[i+3:]
			}

		case '0': // 01, 02, 03, 04, 05, 06
			if len(layout) >= i+2 && '1' <= layout[i+1] && layout[i+1] <= '6' {
				switch layout[i+1] {
				case '1':
					return layout[:i], stdChunk{kind: stdZeroMonth}, layout[i+2:]
				case '2':
					return layout[:i], stdChunk{kind: stdZeroDay}, layout[i+2:]
				case '3':
					return layout[:i], stdChunk{kind: stdZeroHour12}, layout[i+2:]
				case '4':
					return layout[:i], stdChunk{kind: stdZeroMinute}, layout[i+2:]
				case '5':
					return layout[:i], stdChunk{kind: stdZeroSecond}, layout[i+2:]
				case '6':
					return layout[:i], stdChunk{kind: stdYear}, layout[i+2:]
				}
			}

		case '1': // 15, 1
			if len(layout) >= i+2 && layout[i+1] == '5' {
				return layout[:i], stdChunk{kind: stdHour}, layout[i+2:]
			}
			return layout[:i], stdChunk{kind: stdNumMonth}, layout[i+1:]

		case '2': // 2006, 2
			if len(layout) >= i+4 && layout[i:i+4] == "2006" {
				return layout[:i], stdChunk{kind: stdLongYear}, layout[i+4:]
			}
			return layout[:i], stdChunk{kind: stdDay}, layout[i+1:]

		case '_': // _2
			if len(layout) >= i+2 && layout[i+1] == '2' {
				return layout[:i], stdChunk{kind: stdUnderDay}, layout[i+2:]
			}

		case '3': // 3
			return layout[:i], stdChunk{kind: stdHour12}, layout[i+1:]

		case '4': // 4
			return layout[:i], stdChunk{kind: stdMinute}, layout[i+1:]

		case '5': // 5
			return layout[:i], stdChunk{kind: stdSecond}, layout[i+1:]

		case 'P': // PM
			if len(layout) >= i+2 && layout[i+1] == 'M' {
				return layout[:i], stdChunk{kind: stdPM}, layout[i+2:]
			}

		case 'p': // pm
			if len(layout) >= i+2 && layout[i+1] == 'm' {
				return layout[:i], stdChunk{kind: stdpm}, layout[i+2:]
			}

		case '-': // -0700, -07:00, -07, -070000, -07:00:00
			if len(layout) >= i+7 && layout[i:i+7] == "-070000" {
				return layout[:i], stdChunk{kind: stdNumSecondsTz}, layout[i+7:]
			}
			if len(layout) >= i+9 && layout[i:i+9] == "-07:00:00" {
				return layout[:i], stdChunk{kind: stdNumColonSecondsTZ}, layout[i+9:]
			}
			if len(layout) >= i+5 && layout[i:i+5] == "-0700" {
				return layout[:i], stdChunk{kind: stdNumTZ}, layout[i+5:]
			}
			if len(layout) >= i+6 && layout[i:i+6] == "-07:00" {
				return layout[:i], stdChunk{kind: stdNumColonTZ}, layout[i+6:]
			}
			if len(layout) >= i+3 && layout[i:i+3] == "-07" {
				return layout[:i], stdChunk{kind: stdNumShortTZ}, layout[i+3:]
			}

		case 'Z': // Z0700, Z07:00, Z07, Z070000, Z07:00:00
			if len(layout) >= i+7 && layout[i:i+7] == "Z070000" {
				return layout[:i], stdChunk{kind: stdISO8601SecondsTZ}, layout[i+7:]
			}
			if len(layout) >= i+9 && layout[i:i+9] == "Z07:00:00" {
				return layout[:i], stdChunk{kind: stdISO8601ColonSecondsTZ}, layout[i+9:]
			}
			if len(layout) >= i+5 && layout[i:i+5] == "Z0700" {
				return layout[:i], stdChunk{kind: stdISO8601TZ}, layout[i+5:]
			}
			if len(layout) >= i+6 && layout[i:i+6] == "Z07:00" {
				return layout[:i], stdChunk{kind: stdISO8601ColonTZ}, layout[i+6:]
			}
			if len(layout) >= i+3 && layout[i:i+3] == "Z07" {
				return layout[:i], stdChunk{kind: stdISO8601ShortTZ}, layout[i+3:]
			}

		case '.': // .0, .00, ..., .9, .99, ...
			if i+1 < len(layout) && (layout[i+1] == '0' || layout[i+1] == '9') {
				ch := layout[i+1]
				j := i + 1
				for j < len(layout) && layout[j] == ch {
					j++
				}
				// Only a valid fractional-second chunk if it's not
				// followed by more digits of a different kind.
				if !isDigit(layout, j) {
					kind := stdFracSecond0
					if ch == '9' {
						kind = stdFracSecond9
					}
					return layout[:i], stdChunk{kind: kind, prec: j - (i + 1)}, layout[j:]
				}
			}
		}
	}
	return layout, stdChunk{kind: chunkNone}, ""
}

func isDigit(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	c := s[i]
	return '0' <= c && c <= '9'
}

// AppendFormat formats t according to layout and appends the result to b,
// returning the extended buffer.
func (t Instant) AppendFormat(b []byte, layout string) []byte {
	var (
		year           int
		month          Month
		day            int
		hour, min, sec int
		name           string
		offset         int
		haveDate       bool
		haveClock      bool
		haveLoc        bool
	)
	for {
		prefix, std, suffix := nextStdChunk(layout)
		b = append(b, prefix...)
		if std.kind == chunkNone {
			break
		}
		layout = suffix

		switch std.kind {
		case stdLongMonth, stdMonth, stdNumMonth, stdZeroMonth:
			if !haveDate {
				year, month, day = t.Date()
				haveDate = true
			}
			switch std.kind {
			case stdLongMonth:
				b = append(b, month.String()...)
			case stdMonth:
				b = append(b, month.String()[:3]...)
			case stdNumMonth:
				b = appendInt(b, int(month), 0)
			case stdZeroMonth:
				b = appendInt(b, int(month), 2)
			}

		case stdLongWeekDay, stdWeekDay:
			wd := t.Weekday()
			name := wd.String()
			if std.kind == stdWeekDay {
				name = name[:3]
			}
			b = append(b, name...)

		case stdDay, stdUnderDay, stdZeroDay:
			if !haveDate {
				year, month, day = t.Date()
				haveDate = true
			}
			switch std.kind {
			case stdDay:
				b = appendInt(b, day, 0)
			case stdUnderDay:
				if day < 10 {
					b = append(b, ' ')
				}
				b = appendInt(b, day, 0)
			case stdZeroDay:
				b = appendInt(b, day, 2)
			}

		case stdHour:
			if !haveClock {
				hour, min, sec = t.Clock()
				haveClock = true
			}
			b = appendInt(b, hour, 2)

		case stdHour12, stdZeroHour12:
			if !haveClock {
				hour, min, sec = t.Clock()
				haveClock = true
			}
			h12 := hour % 12
			if h12 == 0 {
				h12 = 12
			}
			if std.kind == stdZeroHour12 {
				b = appendInt(b, h12, 2)
			} else {
				b = appendInt(b, h12, 0)
			}

		case stdMinute, stdZeroMinute:
			if !haveClock {
				hour, min, sec = t.Clock()
				haveClock = true
			}
			if std.kind == stdZeroMinute {
				b = appendInt(b, min, 2)
			} else {
				b = appendInt(b, min, 0)
			}

		case stdSecond, stdZeroSecond:
			if !haveClock {
				hour, min, sec = t.Clock()
				haveClock = true
			}
			if std.kind == stdZeroSecond {
				b = appendInt(b, sec, 2)
			} else {
				b = appendInt(b, sec, 0)
			}

		case stdLongYear:
			if !haveDate {
				year, month, day = t.Date()
				haveDate = true
			}
			b = appendSignedInt(b, year, 4)

		case stdYear:
			if !haveDate {
				year, month, day = t.Date()
				haveDate = true
			}
			y := year % 100
			if y < 0 {
				y = -y
			}
			b = appendInt(b, y, 2)

		case stdPM, stdpm:
			if !haveClock {
				hour, min, sec = t.Clock()
				haveClock = true
			}
			upper := hour >= 12
			switch {
			case std.kind == stdPM && upper:
				b = append(b, "PM"...)
			case std.kind == stdPM && !upper:
				b = append(b, "AM"...)
			case std.kind == stdpm && upper:
				b = append(b, "pm"...)
			default:
				b = append(b, "am"...)
			}

		case stdTZ:
			if !haveLoc {
				name, offset = t.Zone()
				haveLoc = true
			}
			if name != "" {
				b = append(b, name...)
			} else {
				b = appendNumericTZWithOpts(b, offset, false, false, false)
			}

		case stdISO8601TZ, stdISO8601ColonTZ, stdISO8601ShortTZ,
			stdISO8601SecondsTZ, stdISO8601ColonSecondsTZ:
			if !haveLoc {
				name, offset = t.Zone()
				haveLoc = true
			}
			if offset == 0 {
				b = append(b, 'Z')
				break
			}
			colon := std.kind == stdISO8601ColonTZ || std.kind == stdISO8601ColonSecondsTZ
			seconds := std.kind == stdISO8601SecondsTZ || std.kind == stdISO8601ColonSecondsTZ
			short := std.kind == stdISO8601ShortTZ
			b = appendNumericTZWithOpts(b, offset, colon, seconds, short)

		case stdNumTZ, stdNumColonTZ, stdNumShortTZ,
			stdNumSecondsTz, stdNumColonSecondsTZ:
			if !haveLoc {
				name, offset = t.Zone()
				haveLoc = true
			}
			colon := std.kind == stdNumColonTZ || std.kind == stdNumColonSecondsTZ
			seconds := std.kind == stdNumSecondsTz || std.kind == stdNumColonSecondsTZ
			short := std.kind == stdNumShortTZ
			b = appendNumericTZWithOpts(b, offset, colon, seconds, short)

		case stdFracSecond0, stdFracSecond9:
			b = appendFracSecond(b, t.Nanosecond(), std.prec, std.kind == stdFracSecond9)
		}
	}
	return b
}

// Format formats t according to layout and returns the result as a
// string.
func (t Instant) Format(layout string) string {
	return string(t.AppendFormat(make([]byte, 0, len(layout)+16), layout))
}

// FormatTo writes t formatted according to layout to w.
func (t Instant) FormatTo(w io.Writer, layout string) error {
	_, err := w.Write(t.AppendFormat(make([]byte, 0, len(layout)+16), layout))
	return err
}

// appendNumericTZWithOpts renders a signed numeric offset as
// ±HH[:]MM[[:]SS] (seconds only if requested; short omits the minutes
// when both minutes and seconds are zero).
func appendNumericTZWithOpts(b []byte, offset int, colon, seconds, short bool) []byte {
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	b = append(b, sign)
	h := offset / secondsPerHour
	m := (offset / secondsPerMinute) % 60
	s := offset % 60
	b = appendInt(b, h, 2)
	if short && m == 0 && s == 0 {
		return b
	}
	if colon {
		b = append(b, ':')
	}
	b = appendInt(b, m, 2)
	if seconds {
		if colon {
			b = append(b, ':')
		}
		b = appendInt(b, s, 2)
	}
	return b
}

// appendFracSecond renders nsec as a decimal fraction with prec digits.
// With trim false (the '0' variant) trailing zeros are kept; with trim
// true (the '9' variant) they are dropped and, if every digit trims away,
// the decimal point is omitted too.
func appendFracSecond(b []byte, nsec, prec int, trim bool) []byte {
	// Render all 9 digits, then take the leading prec of them.
	var digits [9]byte
	v := nsec
	for i := 8; i >= 0; i-- {
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	n := prec
	if n > 9 {
		n = 9
	}
	frac := digits[:n]
	if trim {
		end := len(frac)
		for end > 0 && frac[end-1] == '0' {
			end--
		}
		if end == 0 {
			return b
		}
		frac = frac[:end]
	}
	b = append(b, '.')
	b = append(b, frac...)
	return b
}

// appendInt appends the decimal representation of a non-negative int,
// zero-padded to at least width digits.
func appendInt(b []byte, v, width int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	var buf [20]byte
	pos := len(buf)
	if v == 0 {
		pos--
		buf[pos] = '0'
	}
	for v > 0 {
		pos--
		buf[pos] = byte('0' + v%10)
		v /= 10
	}
	for len(buf)-pos < width {
		pos--
		buf[pos] = '0'
	}
	return append(b, buf[pos:]...)
}

// appendSignedInt appends a signed decimal integer zero-padded (after the
// sign, if negative) to at least width digits.
func appendSignedInt(b []byte, v, width int) []byte {
	if v < 0 {
		b = append(b, '-')
		return appendInt(b, -v, width)
	}
	return appendInt(b, v, width)
}
