/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package booking

import "github.com/friendsincode/parkwacht/internal/schedule"

// Outcome classifies what happened to one session.
type Outcome string

const (
	OutcomePending          Outcome = "pending"
	OutcomeSucceeded        Outcome = "succeeded"
	OutcomeFailed           Outcome = "failed"
	OutcomeSkippedNoBalance Outcome = "skipped_insufficient_balance"
)

// SessionResult records the outcome of one session, immutable once recorded.
type SessionResult struct {
	Session  schedule.Session
	Outcome  Outcome
	Reason   string
	Attempts int
}

// Report aggregates a whole run. Results keep the original schedule order.
type Report struct {
	RunID     string
	Label     string
	Requested int
	Results   []SessionResult

	StartingBalance float64
	FinalBalance    float64
	// Cost is starting minus final balance, clamped at zero.
	Cost float64
	// RemainingBudget is the raw budget text from the initial status read,
	// for the advisory projection.
	RemainingBudget string
}

// Succeeded returns the successfully booked sessions in schedule order.
func (r *Report) Succeeded() []SessionResult { return r.filter(OutcomeSucceeded) }

// Failed returns the sessions that failed after retries, in schedule order.
func (r *Report) Failed() []SessionResult { return r.filter(OutcomeFailed) }

// Skipped returns the sessions skipped for lack of balance.
func (r *Report) Skipped() []SessionResult { return r.filter(OutcomeSkippedNoBalance) }

// Complete reports whether every requested session was booked.
func (r *Report) Complete() bool {
	return len(r.Succeeded()) == r.Requested
}

func (r *Report) filter(outcome Outcome) []SessionResult {
	var out []SessionResult
	for _, res := range r.Results {
		if res.Outcome == outcome {
			out = append(out, res)
		}
	}
	return out
}
