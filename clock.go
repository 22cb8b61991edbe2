package chrono

import (
	_ "unsafe" // for go:linkname
	"time"
)

// now reports the current wall clock and monotonic clock readings. This is
// the "clock capability" spec §6 describes as a host-provided collaborator:
// the library itself never talks to the OS directly. The wall-clock side
// rides on the host process's own clock via the standard library; the
// monotonic side borrows the runtime's own counter directly, the same way
// the pack's stdlib-derived time.go stub borrows `runtime.nanotime` instead
// of reimplementing a syscall.
func now() (sec int64, nsec int32, mono int64) {
	t := time.Now()
	return t.Unix(), int32(t.Nanosecond()), runtimeNano() - monotonicStart
}

// monotonicStart anchors monotonic readings so the first one observed in a
// process is never exactly zero, the same precaution the stdlib time
// package and this pack's time.go stub both take (callers may want to
// reserve 0 to mean "time not set").
var monotonicStart = runtimeNano() - 1

// runtimeNano returns the current value of the runtime's monotonic clock
// in nanoseconds.
//
//go:linkname runtimeNano runtime.nanotime
func runtimeNano() int64
