/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Input errors. All fail fast, before any portal interaction.
var (
	// ErrInvalidFormat indicates the time range does not match "HH:MM-HH:MM".
	ErrInvalidFormat = errors.New("time range must be \"HH:MM-HH:MM\"")

	// ErrDateOutOfRange indicates an explicit date the portal cannot book
	// (in the past, or more than one day ahead).
	ErrDateOutOfRange = errors.New("date must be today or tomorrow")

	// ErrEndBeforeStart indicates an explicit day whose end time does not
	// follow its start time. Only a day-less range may cross midnight.
	ErrEndBeforeStart = errors.New("end time must be after start time")

	// ErrDurationTooLong indicates a resolved interval beyond 24 hours.
	ErrDurationTooLong = errors.New("interval exceeds 24 hours")
)

var rangePattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*(?:-|to)\s*(\d{1,2}):(\d{2})\s*$`)

// ResolveInterval parses a "HH:MM-HH:MM" range (the word "to" is also
// accepted as separator) and a day token into a concrete interval.
//
// dayToken is "" for the current day with midnight rollover, "today",
// "tomorrow", or an explicit "YYYY-MM-DD" date. Any named day must not
// silently span two days: an end time at or before the start time is only
// interpreted as crossing midnight when dayToken is empty.
//
// The returned label ("today", "tomorrow", or the ISO date) identifies the
// resolved calendar day for reporting.
func ResolveInterval(rangeText, dayToken string, now time.Time) (TimeInterval, string, error) {
	m := rangePattern.FindStringSubmatch(rangeText)
	if m == nil {
		return TimeInterval{}, "", fmt.Errorf("%w: %q", ErrInvalidFormat, rangeText)
	}

	startHour, startMin := atoi(m[1]), atoi(m[2])
	endHour, endMin := atoi(m[3]), atoi(m[4])
	if startHour > 23 || endHour > 23 || startMin > 59 || endMin > 59 {
		return TimeInterval{}, "", fmt.Errorf("%w: %q", ErrInvalidFormat, rangeText)
	}

	base := now
	label := "today"
	explicitDay := false

	switch token := strings.ToLower(strings.TrimSpace(dayToken)); token {
	case "":
		// Current day, rollover allowed.
	case "today":
		explicitDay = true
	case "tomorrow":
		base = now.AddDate(0, 0, 1)
		label = "tomorrow"
		explicitDay = true
	default:
		day, err := time.ParseInLocation("2006-01-02", token, now.Location())
		if err != nil {
			return TimeInterval{}, "", fmt.Errorf("%w: day %q", ErrInvalidFormat, dayToken)
		}
		today := midnight(now)
		if day.Before(today) || day.After(today.AddDate(0, 0, 1)) {
			return TimeInterval{}, "", fmt.Errorf("%w: %s", ErrDateOutOfRange, token)
		}
		base = day
		label = day.Format("2006-01-02")
		explicitDay = true
	}

	start := time.Date(base.Year(), base.Month(), base.Day(), startHour, startMin, 0, 0, now.Location())
	end := time.Date(base.Year(), base.Month(), base.Day(), endHour, endMin, 0, 0, now.Location())

	if !end.After(start) {
		if explicitDay {
			return TimeInterval{}, "", fmt.Errorf("%w: %q on %s", ErrEndBeforeStart, rangeText, label)
		}
		end = end.AddDate(0, 0, 1)
	}

	if end.Sub(start) > 24*time.Hour {
		return TimeInterval{}, "", fmt.Errorf("%w: %q", ErrDurationTooLong, rangeText)
	}

	return TimeInterval{Start: start, End: end}, label, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
