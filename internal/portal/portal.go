/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package portal drives the Amsterdam visitor-parking portal through a
// browser. It implements booking.Executor; nothing outside this package
// touches the portal's pages, so the scheduling and orchestration core
// stays testable without a live browser.
package portal

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// Config carries the portal endpoint, credentials, and browser behavior.
type Config struct {
	BaseURL      string
	Username     string
	Password     string
	LicensePlate string
	Headless     bool
	// Timeout bounds each wait for a page element.
	Timeout time.Duration
}

// Client is a logged-in browser session against the portal. Not safe for
// concurrent use: the portal represents one account in one browser context.
type Client struct {
	cfg     Config
	logger  zerolog.Logger
	browser *rod.Browser
	page    *rod.Page
}

// New creates a client; Connect must be called before any other method.
func New(cfg Config, logger zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger.With().Str("component", "portal").Logger(),
	}
}

// Connect launches the browser and opens a blank page.
func (c *Client) Connect(ctx context.Context) error {
	url, err := launcher.New().Headless(c.cfg.Headless).Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		return fmt.Errorf("open page: %w", err)
	}

	c.browser = browser
	c.page = page
	return nil
}

// Close shuts the browser down.
func (c *Client) Close() error {
	if c.browser == nil {
		return nil
	}
	return c.browser.Close()
}

// Login signs in with the configured meldcode and pincode and waits for the
// account page to confirm it.
func (c *Client) Login(ctx context.Context) error {
	page := c.page.Context(ctx)

	if err := page.Navigate(c.cfg.BaseURL + "/login"); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("load login page: %w", err)
	}

	user, err := c.firstElement(page, "input[placeholder*='meldcode' i]", "input[type='text']")
	if err != nil {
		return fmt.Errorf("find username field: %w", err)
	}
	if err := fill(user, c.cfg.Username); err != nil {
		return fmt.Errorf("enter username: %w", err)
	}

	pass, err := c.firstElement(page, "input[placeholder*='pincode' i]", "input[type='password']")
	if err != nil {
		return fmt.Errorf("find password field: %w", err)
	}
	if err := fill(pass, c.cfg.Password); err != nil {
		return fmt.Errorf("enter password: %w", err)
	}

	submit, err := c.firstElement(page, "button[type='submit']")
	if err != nil {
		return fmt.Errorf("find login button: %w", err)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click login button: %w", err)
	}

	// The account page shows the saldo once the login went through.
	if _, err := page.Timeout(c.cfg.Timeout).ElementR("*", "(?i)saldo"); err != nil {
		return fmt.Errorf("login not confirmed, check credentials: %w", err)
	}

	c.logger.Info().Msg("logged in")
	return nil
}

// firstElement tries selectors in order and returns the first match.
func (c *Client) firstElement(page *rod.Page, selectors ...string) (*rod.Element, error) {
	probe := c.cfg.Timeout / time.Duration(len(selectors))
	if probe < time.Second {
		probe = time.Second
	}
	for _, sel := range selectors {
		el, err := page.Timeout(probe).Element(sel)
		if err == nil {
			return el, nil
		}
	}
	return nil, fmt.Errorf("no element matched %v", selectors)
}

// fill replaces an input's content with text.
func fill(el *rod.Element, text string) error {
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(text)
}
