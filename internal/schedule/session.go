/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package schedule turns a requested parking window into an ordered
// sequence of bounded sessions separated by mandatory breaks.
package schedule

import (
	"fmt"
	"time"
)

// Session is one bounded parking session. Sessions are value types produced
// by Partition and never mutated afterwards.
type Session struct {
	Start time.Time
	End   time.Time
}

// DurationMinutes returns the session length in whole minutes.
func (s Session) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// String renders the session as wall-clock "HH:MM-HH:MM".
func (s Session) String() string {
	return fmt.Sprintf("%s-%s", s.Start.Format("15:04"), s.End.Format("15:04"))
}

// TimeInterval is a resolved booking window. Start is strictly before End.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the interval length in whole minutes.
func (iv TimeInterval) Minutes() int {
	return int(iv.End.Sub(iv.Start) / time.Minute)
}
