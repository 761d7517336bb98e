/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package booking drives a session schedule through an external executor
// with bounded retries and balance-aware short-circuiting.
package booking

import (
	"context"
	"errors"

	"github.com/friendsincode/parkwacht/internal/schedule"
)

// ErrInsufficientBalance signals the account cannot pay for further
// sessions. It is never retried: the condition will not resolve on its own,
// so the orchestrator skips everything that remains.
var ErrInsufficientBalance = errors.New("insufficient balance")

// AccountStatus is a point-in-time reading of the portal account.
type AccountStatus struct {
	// Balance is the prepaid amount in euros.
	Balance float64
	// RemainingBudget is the raw remaining-time text as the portal renders
	// it; the budget analyzer parses it tolerantly.
	RemainingBudget string
}

// Executor performs the side-effecting work for one session. Any
// implementation is substitutable: the browser client in internal/portal,
// an HTTP client, or an in-memory stub for tests.
//
// Book returns nil on success, ErrInsufficientBalance (possibly wrapped)
// when the balance ran out, and any other error for a transient failure the
// orchestrator may retry.
type Executor interface {
	Book(ctx context.Context, sess schedule.Session) error
	AccountStatus(ctx context.Context) (AccountStatus, error)
}
