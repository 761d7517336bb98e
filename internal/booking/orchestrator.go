/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/friendsincode/parkwacht/internal/schedule"
)

// Config bounds the orchestrator's retry and balance behavior.
type Config struct {
	// MaxRetries is the total number of attempts per session.
	MaxRetries int
	// RetryBaseDelay is the first backoff wait; each further attempt
	// doubles it.
	RetryBaseDelay time.Duration
	// BalanceWarningThreshold triggers a warning when the starting balance
	// falls below it, in euros.
	BalanceWarningThreshold float64
}

// Orchestrator books a session schedule strictly in order, one at a time.
// The portal represents a single account and browser context, so there is
// no concurrency here; the only suspension points are the backoff and
// pacing waits, both of which observe the context.
type Orchestrator struct {
	exec   Executor
	cfg    Config
	logger zerolog.Logger

	// sleep is swapped out in tests to observe waits without real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates an orchestrator around an executor.
func New(exec Executor, cfg Config, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		exec:   exec,
		cfg:    cfg,
		logger: logger.With().Str("component", "orchestrator").Logger(),
		sleep:  sleepContext,
	}
}

// Run books every session in order and returns the aggregated report. A
// single session failing never aborts the run; only an insufficient-balance
// signal or a cancelled context halts the loop, and both still produce a
// report covering everything processed so far.
func (o *Orchestrator) Run(ctx context.Context, sessions []schedule.Session, label string) *Report {
	report := &Report{
		RunID:     uuid.NewString(),
		Label:     label,
		Requested: len(sessions),
		Results:   make([]SessionResult, 0, len(sessions)),
	}

	if status, err := o.exec.AccountStatus(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("could not read account status before booking")
	} else {
		report.StartingBalance = status.Balance
		report.FinalBalance = status.Balance
		report.RemainingBudget = status.RemainingBudget
		if status.Balance < o.cfg.BalanceWarningThreshold {
			o.logger.Warn().
				Float64("balance", status.Balance).
				Float64("threshold", o.cfg.BalanceWarningThreshold).
				Msg("balance below warning threshold")
		}
	}

	for i, sess := range sessions {
		if ctx.Err() != nil {
			report.Results = append(report.Results, SessionResult{
				Session: sess,
				Outcome: OutcomeFailed,
				Reason:  "cancelled before attempt",
			})
			continue
		}

		o.logger.Info().
			Str("session", sess.String()).
			Int("index", i+1).
			Int("total", len(sessions)).
			Msg("processing session")

		res := o.bookWithRetry(ctx, sess)
		report.Results = append(report.Results, res)

		if res.Outcome == OutcomeSkippedNoBalance {
			// Will not resolve on its own; skip everything that remains.
			for _, rest := range sessions[i+1:] {
				report.Results = append(report.Results, SessionResult{
					Session: rest,
					Outcome: OutcomeSkippedNoBalance,
					Reason:  "insufficient balance",
				})
			}
			o.logger.Error().Int("skipped", len(sessions)-i).Msg("balance exhausted, halting run")
			break
		}

		if res.Outcome == OutcomeSucceeded && i < len(sessions)-1 {
			// Pacing courtesy toward the portal, not a correctness
			// requirement.
			_ = o.sleep(ctx, pacingDelay(i+1))
		}
	}

	o.finalize(ctx, report)
	return report
}

func (o *Orchestrator) bookWithRetry(ctx context.Context, sess schedule.Session) SessionResult {
	res := SessionResult{Session: sess}
	var lastErr error

	for attempt := 0; attempt < o.cfg.MaxRetries; attempt++ {
		res.Attempts = attempt + 1

		err := o.exec.Book(ctx, sess)
		if err == nil {
			res.Outcome = OutcomeSucceeded
			o.logger.Info().Str("session", sess.String()).Int("attempts", res.Attempts).Msg("session booked")
			return res
		}
		if errors.Is(err, ErrInsufficientBalance) {
			res.Outcome = OutcomeSkippedNoBalance
			res.Reason = err.Error()
			return res
		}
		if ctx.Err() != nil {
			res.Outcome = OutcomeFailed
			res.Reason = "cancelled: " + err.Error()
			return res
		}

		lastErr = err
		if attempt < o.cfg.MaxRetries-1 {
			delay := o.cfg.RetryBaseDelay << attempt
			o.logger.Warn().
				Err(err).
				Str("session", sess.String()).
				Int("attempt", res.Attempts).
				Dur("retry_in", delay).
				Msg("booking attempt failed, retrying")
			if werr := o.sleep(ctx, delay); werr != nil {
				res.Outcome = OutcomeFailed
				res.Reason = "cancelled during retry wait"
				return res
			}
		}
	}

	res.Outcome = OutcomeFailed
	res.Reason = lastErr.Error()
	o.logger.Error().Err(lastErr).Str("session", sess.String()).Msg("session failed after retries")
	return res
}

// finalize records the closing balance best-effort and derives the cost.
func (o *Orchestrator) finalize(ctx context.Context, report *Report) {
	if status, err := o.exec.AccountStatus(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("could not read final account status")
	} else {
		report.FinalBalance = status.Balance
	}
	report.Cost = report.StartingBalance - report.FinalBalance
	if report.Cost < 0 {
		report.Cost = 0
	}
}

// pacingDelay spaces successive bookings: min(2 + 0.5×position, 5) seconds.
func pacingDelay(position int) time.Duration {
	d := time.Duration((2 + 0.5*float64(position)) * float64(time.Second))
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
