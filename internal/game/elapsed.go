package game

import (
	"fmt"
	"strings"
	"time"
)

var elapsedSpans = []struct {
	unit byte
	secs int64
}{
	{'y', 365 * 24 * 60 * 60},
	{'w', 7 * 24 * 60 * 60},
	{'d', 24 * 60 * 60},
	{'h', 60 * 60},
	{'m', 60},
	{'s', 1},
}

// FormatElapsed renders a duration as "2h 3m 1s"-style text. Units are
// single characters out of "ywdhms", given either as one string ("hms")
// or separately ("h", "m", "s"); no units means all of them. Fields with
// a zero value are omitted unless "0" is included in the units, so
// FormatElapsed(d, "hms0") prints "2h 0m 1s" where FormatElapsed(d,
// "hms") prints "2h 1s". The remainder below the smallest selected unit
// is truncated.
func FormatElapsed(d time.Duration, units ...string) string {
	keepZero := false
	var selected []byte
	for _, u := range units {
		for i := 0; i < len(u); i++ {
			if u[i] == '0' {
				keepZero = true
				continue
			}
			selected = append(selected, u[i])
		}
	}
	if len(selected) == 0 {
		selected = []byte("ywdhms")
	}
	has := func(unit byte) bool {
		for _, c := range selected {
			if c == unit {
				return true
			}
		}
		return false
	}

	remaining := int64(d / time.Second)
	fields := make(map[byte]int64)
	for _, span := range elapsedSpans {
		if !has(span.unit) {
			continue
		}
		fields[span.unit] = remaining / span.secs
		remaining -= fields[span.unit] * span.secs
	}

	var out []string
	for _, span := range elapsedSpans {
		v, ok := fields[span.unit]
		if !ok {
			continue
		}
		if v == 0 && !keepZero {
			continue
		}
		out = append(out, fmt.Sprintf("%d%c", v, span.unit))
	}
	return strings.Join(out, " ")
}
