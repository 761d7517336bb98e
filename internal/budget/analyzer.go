/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package budget projects monthly parking time usage from the portal's
// remaining-budget text. Everything here is advisory: a reading that cannot
// be parsed degrades to "unknown" and the caller proceeds without it.
package budget

import (
	"regexp"
	"strconv"
	"time"
)

// Projection is a derived snapshot of the current budget period. Recomputed
// fresh from each account-status reading, never persisted.
type Projection struct {
	MinutesUsed      int
	MinutesRemaining int
	ElapsedDays      int
	DaysInPeriod     int
	DailyAverageUsed float64
	// ProjectedTotal is the estimated minutes used by period end at the
	// current daily average.
	ProjectedTotal float64
	// ScheduleDeltaMinutes is positive when usage is under the pro-rata
	// budget for the elapsed days, negative when over.
	ScheduleDeltaMinutes float64
	OverBudget           bool
}

// The portal renders the remaining budget in several shapes depending on
// locale and page, e.g. "87:23", "87 uur 23 min", "12h 30m", "5 uur".
var remainingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*(?:h(?:ours?)?|uur)\b\s*(?:en\s*)?(\d+)\s*m(?:in(?:uten|utes)?)?\b`),
	regexp.MustCompile(`(\d+):(\d{2})`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:h(?:ours?)?|uur)\b`),
	regexp.MustCompile(`(?i)(\d+)\s*m(?:in(?:uten|utes)?)?\b`),
}

// ParseRemaining extracts a remaining budget in minutes from free-form
// portal text. Returns false when nothing matches or the value is zero.
func ParseRemaining(text string) (int, bool) {
	for i, pattern := range remainingPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		first, _ := strconv.Atoi(m[1])
		minutes := 0
		switch i {
		case 0, 1: // hours and minutes
			second, _ := strconv.Atoi(m[2])
			minutes = first*60 + second
		case 2: // bare hours
			minutes = first * 60
		case 3: // bare minutes
			minutes = first
		}
		if minutes == 0 {
			return 0, false
		}
		return minutes, true
	}
	return 0, false
}

// Analyze projects period-end usage from the remaining-budget text and the
// configured monthly allowance. The elapsed and total days come from now's
// civil month. Returns false when the reading cannot be parsed.
func Analyze(remainingText string, budgetHours int, now time.Time) (Projection, bool) {
	remaining, ok := ParseRemaining(remainingText)
	if !ok {
		return Projection{}, false
	}

	budgetMinutes := budgetHours * 60
	elapsed := now.Day()
	if elapsed < 1 {
		elapsed = 1
	}
	days := daysInMonth(now)

	used := budgetMinutes - remaining
	daily := float64(used) / float64(elapsed)
	projected := daily * float64(days)

	return Projection{
		MinutesUsed:          used,
		MinutesRemaining:     remaining,
		ElapsedDays:          elapsed,
		DaysInPeriod:         days,
		DailyAverageUsed:     daily,
		ProjectedTotal:       projected,
		ScheduleDeltaMinutes: float64(budgetMinutes)/float64(days)*float64(elapsed) - float64(used),
		OverBudget:           projected > float64(budgetMinutes),
	}, true
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
