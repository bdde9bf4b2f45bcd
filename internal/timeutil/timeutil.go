// Package timeutil canonicalizes the clinic's heterogeneous clock text into
// minutes since midnight and owns the single overlap rule used by every
// conflict check in the engine.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

const MinutesPerDay = 24 * 60

// ToMinutes converts a time value to minutes since midnight. It accepts
// "HH:MM", "HH:MM:SS", 12-hour forms like "9:30 AM", fractional hours
// ("13.5") and bare minute counts ("810"). The second return is false when
// the value cannot be read; it never panics.
func ToMinutes(value string) (int, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}

	meridiem := ""
	upper := strings.ToUpper(s)
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(upper, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
			break
		}
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) < 2 {
			return 0, false
		}
		h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
			return 0, false
		}
		switch meridiem {
		case "AM":
			if h == 12 {
				h = 0
			}
		case "PM":
			if h < 12 {
				h += 12
			}
		}
		return h*60 + m, true
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if val >= 0 && val < 24 {
		hours := int(val)
		minutes := int((val - float64(hours)) * 60)
		return hours*60 + minutes, true
	}
	if val >= 0 && val < MinutesPerDay {
		return int(val), true
	}
	return 0, false
}

// Window is a [Start, End) interval in minutes since midnight, as parsed;
// End may be numerically before Start for overnight windows.
type Window struct {
	Start int
	End   int
}

// ParseWindow reads a start/end clock pair. ok is false when either side
// is unreadable.
func ParseWindow(start, end string) (Window, bool) {
	s, okS := ToMinutes(start)
	e, okE := ToMinutes(end)
	if !okS || !okE {
		return Window{}, false
	}
	return Window{Start: s, End: e}, true
}

// Normalized returns the window with the overnight wrap applied: an end
// before the start means the window crosses midnight, so the end gains a
// day.
func (w Window) Normalized() Window {
	if w.End < w.Start {
		w.End += MinutesPerDay
	}
	return w
}

// Overlaps reports whether two windows intersect under the half-open rule:
// after overnight normalization they overlap unless one ends at or before
// the other starts. Every conflict check in the engine goes through here.
func Overlaps(a, b Window) bool {
	a = a.Normalized()
	b = b.Normalized()
	return !(a.End <= b.Start || a.Start >= b.End)
}

// Covers reports whether a point-in-time falls inside the window, ends
// inclusive, after overnight normalization. Used for "busy right now"
// readings.
func (w Window) Covers(minute int) bool {
	n := w.Normalized()
	if n.Start <= minute && minute <= n.End {
		return true
	}
	// The current minute may sit past midnight relative to the window.
	wrapped := minute + MinutesPerDay
	return n.Start <= wrapped && wrapped <= n.End
}

// FractionalHour converts minutes since midnight to an hour-of-day with a
// fractional part, the unit rule time thresholds are written in.
func FractionalHour(minutes int) float64 {
	return float64(minutes) / 60.0
}

// HHMM formats minutes since midnight as zero-padded 24-hour clock text.
func HHMM(minutes int) string {
	minutes %= MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Clock12 formats minutes since midnight as zero-padded 12-hour clock
// text, e.g. "09:30 AM".
func Clock12(minutes int) string {
	minutes %= MinutesPerDay
	h, m := minutes/60, minutes%60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, m, period)
}
