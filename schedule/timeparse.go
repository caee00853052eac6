// Package schedule provides natural-language time parsing and a
// SQLite-backed event scheduler exposed as agent tools.
package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ampmRe     = regexp.MustCompile(`(?i)\b(1[0-2]|0?[1-9])\s*(am|pm)\b`)
	hhmmRe     = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	relativeRe = regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(minute|minutes|hour|hours)\b`)
	absoluteRe = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\s+(\d{1,2}):(\d{2})\b`)
)

// ParseNaturalTime resolves a short natural-language time phrase against
// the reference instant now, returning the absolute time and whether any
// rule matched.
//
// Rules are tried in fixed order, first match wins:
//  1. absolute "YYYY-MM-DD HH:MM" anywhere in the string
//  2. relative "in N minutes|hours"
//  3. "tomorrow" with an optional am/pm or HH:MM mention, default 09:00
//  4. "today" / leading "at " / " at " with an am/pm or HH:MM mention,
//     rolled forward a day when not strictly after now
//  5. a bare am/pm or HH:MM mention, rolled forward the same way
//
// The ordering resolves ambiguity deterministically: "tomorrow at 8AM" is
// captured by rule 3 before the bare-time fallback could misfire.
func ParseNaturalTime(text string, now time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)

	if m := absoluteRe.FindStringSubmatch(text); m != nil {
		if t, ok := buildAbsolute(m, now.Location()); ok {
			return t, true
		}
	}

	if m := relativeRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		if strings.HasPrefix(strings.ToLower(m[2]), "minute") {
			return now.Add(time.Duration(n) * time.Minute), true
		}
		return now.Add(time.Duration(n) * time.Hour), true
	}

	lower := strings.ToLower(text)

	if strings.Contains(lower, "tomorrow") {
		base := truncateToMinute(now.AddDate(0, 0, 1))
		if h, min, ok := findClockTime(lower); ok {
			return setClock(base, h, min), true
		}
		return setClock(base, 9, 0), true
	}

	if strings.Contains(lower, "today") || strings.HasPrefix(lower, "at ") || strings.Contains(lower, " at ") {
		base := truncateToMinute(now)
		if h, min, ok := findClockTime(lower); ok {
			return rollForward(setClock(base, h, min), now), true
		}
		// No time mention: fall through to the bare-time rule.
	}

	if h, min, ok := findClockTime(lower); ok {
		return rollForward(setClock(truncateToMinute(now), h, min), now), true
	}

	return time.Time{}, false
}

// buildAbsolute validates the matched date/time fields; an impossible date
// (month 13, minute 75) fails the rule instead of erroring.
func buildAbsolute(m []string, loc *time.Location) (time.Time, bool) {
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// findClockTime looks for an am/pm hour first ("8AM", 12-hour clock with
// 12am -> 0 and 12pm -> 12), then an HH:MM mention.
func findClockTime(lower string) (hour, minute int, ok bool) {
	if m := ampmRe.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.Atoi(m[1])
		return applyAMPM(h, m[2]), 0, true
	}
	if m := hhmmRe.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h <= 23 && min <= 59 {
			return h, min, true
		}
	}
	return 0, 0, false
}

func applyAMPM(hour int, ampm string) int {
	if strings.EqualFold(ampm, "am") {
		if hour == 12 {
			return 0
		}
		return hour
	}
	if hour == 12 {
		return 12
	}
	return hour + 12
}

func truncateToMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

func setClock(t time.Time, hour, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

// rollForward moves t one day ahead when it is not strictly after now.
func rollForward(t, now time.Time) time.Time {
	if t.After(now) {
		return t
	}
	return t.AddDate(0, 0, 1)
}
