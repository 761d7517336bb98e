/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/friendsincode/parkwacht/internal/booking"
	"github.com/friendsincode/parkwacht/internal/schedule"
)

// Book fills the new-session form for one session and confirms it. The
// portal wants 12-hour clock times and knows only today ("Vandaag", the
// default) and tomorrow ("Morgen").
func (c *Client) Book(ctx context.Context, sess schedule.Session) error {
	page := c.page.Context(ctx)

	if err := page.Navigate(c.cfg.BaseURL + "/parking-sessions/new"); err != nil {
		return fmt.Errorf("open booking form: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("load booking form: %w", err)
	}

	if !sameDay(sess.Start, time.Now()) {
		day, err := page.Timeout(c.cfg.Timeout).Element("select[name='startDay']")
		if err != nil {
			return fmt.Errorf("find day selector: %w", err)
		}
		if err := day.Select([]string{"Morgen"}, true, rod.SelectorTypeText); err != nil {
			return fmt.Errorf("select tomorrow: %w", err)
		}
	}

	if err := c.setTimeInput(page, "input[name='startTimeRaw']", sess.Start); err != nil {
		return fmt.Errorf("set start time: %w", err)
	}
	if err := c.setTimeInput(page, "input[name='endTimeRaw']", sess.End); err != nil {
		return fmt.Errorf("set end time: %w", err)
	}

	next, err := page.Timeout(c.cfg.Timeout).ElementR("button", "Kenteken")
	if err != nil {
		return fmt.Errorf("find license plate step: %w", err)
	}
	if err := next.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("proceed to license plate: %w", err)
	}

	if err := c.selectPlate(page); err != nil {
		return err
	}

	confirm, err := page.Timeout(c.cfg.Timeout).ElementR("button", "Bevestig")
	if err != nil {
		return fmt.Errorf("find confirm button: %w", err)
	}
	if err := confirm.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("confirm booking: %w", err)
	}

	// Either the portal confirms ("bevestigd"/"gepland") or it refuses for
	// lack of saldo, which is terminal for the whole run.
	_, err = page.Timeout(c.cfg.Timeout).Race().
		ElementR("*", "(?i)bevestigd|gepland").Handle(func(*rod.Element) error {
			return nil
		}).
		ElementR("*", "(?i)onvoldoende").Handle(func(*rod.Element) error {
			return booking.ErrInsufficientBalance
		}).
		Do()
	if err != nil {
		if errors.Is(err, booking.ErrInsufficientBalance) {
			return err
		}
		return fmt.Errorf("booking confirmation not received: %w", err)
	}

	c.logger.Info().Str("session", sess.String()).Msg("booked")
	return nil
}

// setTimeInput writes a wall-clock time into a form field in the 12-hour
// format the portal expects (e.g. "01:30PM").
func (c *Client) setTimeInput(page *rod.Page, selector string, t time.Time) error {
	field, err := page.Timeout(c.cfg.Timeout).Element(selector)
	if err != nil {
		return err
	}
	return fill(field, t.Format("03:04PM"))
}

// selectPlate picks the configured license plate on the second form page.
// The plate renders as a label most of the time, with a button fallback on
// some portal revisions.
func (c *Client) selectPlate(page *rod.Page) error {
	plate := c.cfg.LicensePlate

	if el, err := page.Timeout(c.cfg.Timeout).ElementR("label", plate); err == nil {
		if err := el.Click(proto.InputMouseButtonLeft, 1); err == nil {
			return nil
		}
	}

	buttons, err := page.Elements("button")
	if err == nil {
		for _, btn := range buttons {
			text, terr := btn.Text()
			if terr != nil {
				continue
			}
			if strings.Contains(strings.ToLower(text), strings.ToLower(plate)) {
				if err := btn.Click(proto.InputMouseButtonLeft, 1); err == nil {
					return nil
				}
			}
		}
	}

	return fmt.Errorf("could not select license plate %q", plate)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
