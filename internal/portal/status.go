/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package portal

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/friendsincode/parkwacht/internal/booking"
)

var balancePattern = regexp.MustCompile(`€\s*([\d,]+\.?\d*)`)

// AccountStatus scrapes the saldo and remaining time budget from the
// account page. Both readings are best-effort: a missing element degrades
// to a zero balance or "unknown" budget text rather than an error.
func (c *Client) AccountStatus(ctx context.Context) (booking.AccountStatus, error) {
	page := c.page.Context(ctx)
	status := booking.AccountStatus{RemainingBudget: "unknown"}

	probe := c.cfg.Timeout / 2
	if probe < time.Second {
		probe = time.Second
	}

	if el, err := page.Timeout(probe).ElementR("*", "€"); err == nil {
		if text, terr := el.Text(); terr == nil {
			if m := balancePattern.FindStringSubmatch(text); m != nil {
				status.Balance, _ = strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			}
		}
	}

	if el, err := page.Timeout(probe).ElementR("*", "(?i)uur"); err == nil {
		if text, terr := el.Text(); terr == nil {
			status.RemainingBudget = strings.TrimSpace(text)
		}
	}

	return status, nil
}
