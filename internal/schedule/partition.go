/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"errors"
	"time"
)

// ViabilityMinutes is the minimum session length worth booking. A trailing
// fragment shorter than this is redistributed into the other sessions
// instead of being emitted on its own.
const ViabilityMinutes = 5

// ErrEmptyInterval indicates a zero-length interval. Interval resolution
// already rejects these; the partitioner still guards against them.
var ErrEmptyInterval = errors.New("interval has no duration")

// Partition splits an interval into sessions of sessionMinutes separated by
// breaks of at most maxGapMinutes. Pure and deterministic.
//
// The output tiles the interval exactly: sessions plus gaps sum to the
// interval duration and the last session ends on the interval end. Gaps are
// between 1 and maxGapMinutes. The final gap shrinks so the last session
// lands on the end; a remainder shorter than ViabilityMinutes is spread
// evenly over all sessions, earliest sessions absorbing the odd minutes.
// An interval no longer than sessionMinutes yields a single session.
func Partition(iv TimeInterval, sessionMinutes, maxGapMinutes int) ([]Session, error) {
	total := iv.Minutes()
	if total <= 0 {
		return nil, ErrEmptyInterval
	}
	if total <= sessionMinutes {
		return []Session{{Start: iv.Start, End: iv.End}}, nil
	}

	durations := []int{sessionMinutes}
	gaps := []int{}
	remaining := total - sessionMinutes

	for remaining >= 1+ViabilityMinutes {
		if remaining-maxGapMinutes >= sessionMinutes {
			// A full session still fits after a maximum break.
			gaps = append(gaps, maxGapMinutes)
			durations = append(durations, sessionMinutes)
			remaining -= maxGapMinutes + sessionMinutes
			continue
		}
		// Last session: the break shrinks so the session consumes the rest.
		gap := remaining - sessionMinutes
		if gap < 1 {
			gap = 1
		}
		gaps = append(gaps, gap)
		durations = append(durations, remaining-gap)
		remaining = 0
	}

	if remaining > 0 {
		// Sub-viability remainder: lengthen the sessions instead of
		// emitting a sliver.
		base, extra := remaining/len(durations), remaining%len(durations)
		for i := range durations {
			durations[i] += base
			if i < extra {
				durations[i]++
			}
		}
	}

	sessions := make([]Session, len(durations))
	cursor := iv.Start
	for i, minutes := range durations {
		end := cursor.Add(time.Duration(minutes) * time.Minute)
		sessions[i] = Session{Start: cursor, End: end}
		if i < len(gaps) {
			cursor = end.Add(time.Duration(gaps[i]) * time.Minute)
		}
	}
	return sessions, nil
}
