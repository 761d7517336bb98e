/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/friendsincode/parkwacht/internal/booking"
	"github.com/friendsincode/parkwacht/internal/budget"
	"github.com/friendsincode/parkwacht/internal/portal"
	"github.com/friendsincode/parkwacht/internal/schedule"
)

// Booking flags, shared with the plan command.
var (
	bookSession  int
	bookMaxGap   int
	bookTomorrow bool
	bookDate     string
	bookDryRun   bool
)

var bookCmd = &cobra.Command{
	Use:   "book \"HH:MM-HH:MM\"",
	Short: "Book parking sessions covering a time range",
	Long: `Splits the given time range into sessions separated by mandatory breaks
and books each one against the portal.

Examples:
  parkwacht book "13:00-17:00"
  parkwacht book "09:00-12:30" --tomorrow --session 15 --max-gap 3
  parkwacht book "23:30-00:15" --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runBook,
}

func init() {
	rootCmd.AddCommand(bookCmd)

	bookCmd.Flags().IntVar(&bookSession, "session", 0, "Session duration in minutes (overrides config)")
	bookCmd.Flags().IntVar(&bookMaxGap, "max-gap", 0, "Maximum break between sessions in minutes (overrides config)")
	bookCmd.Flags().BoolVar(&bookTomorrow, "tomorrow", false, "Book for tomorrow instead of today")
	bookCmd.Flags().StringVar(&bookDate, "date", "", "Book for an explicit date (YYYY-MM-DD, today or tomorrow only)")
	bookCmd.Flags().BoolVar(&bookDryRun, "dry-run", false, "Print the calculated schedule without booking")
}

func runBook(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	sessions, label, err := buildSchedule(args[0])
	if err != nil {
		return err
	}

	if bookDryRun {
		printSchedule(sessions, label)
		return nil
	}

	if err := cfg.ValidateCredentials(); err != nil {
		return err
	}

	ctx := cmd.Context()
	client := portal.New(portal.Config{
		BaseURL:      cfg.PortalURL,
		Username:     cfg.Username,
		Password:     cfg.Password,
		LicensePlate: cfg.LicensePlate,
		Headless:     cfg.Headless,
		Timeout:      cfg.Timeout(),
	}, logger)
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn().Err(err).Msg("browser shutdown failed")
		}
	}()
	if err := client.Login(ctx); err != nil {
		return err
	}

	orch := booking.New(client, booking.Config{
		MaxRetries:              cfg.MaxRetries,
		RetryBaseDelay:          cfg.RetryBaseDelay(),
		BalanceWarningThreshold: cfg.BalanceWarningThreshold,
	}, logger)

	logger.Info().
		Int("sessions", len(sessions)).
		Str("range", args[0]).
		Str("day", label).
		Msg("booking sessions")

	report := orch.Run(ctx, sessions, label)
	printReport(report)

	if proj, ok := budget.Analyze(report.RemainingBudget, cfg.MonthlyBudgetHours, time.Now()); ok {
		logBudget(proj)
	} else {
		logger.Debug().Str("text", report.RemainingBudget).Msg("could not parse remaining budget, skipping projection")
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !report.Complete() {
		return errIncompleteRun
	}
	return nil
}

// buildSchedule resolves the day and range and partitions it into sessions
// using the configured (or overridden) durations.
func buildSchedule(rangeText string) ([]schedule.Session, string, error) {
	if bookSession > 0 {
		cfg.SessionMinutes = bookSession
	}
	if bookMaxGap > 0 {
		cfg.MaxGapMinutes = bookMaxGap
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	dayToken, err := dayTokenFromFlags()
	if err != nil {
		return nil, "", err
	}

	interval, label, err := schedule.ResolveInterval(rangeText, dayToken, time.Now())
	if err != nil {
		return nil, "", err
	}

	sessions, err := schedule.Partition(interval, cfg.SessionMinutes, cfg.MaxGapMinutes)
	if err != nil {
		return nil, "", err
	}
	return sessions, label, nil
}

func dayTokenFromFlags() (string, error) {
	if bookTomorrow && bookDate != "" {
		return "", errors.New("--tomorrow and --date are mutually exclusive")
	}
	if bookTomorrow {
		return "tomorrow", nil
	}
	return bookDate, nil
}

func printSchedule(sessions []schedule.Session, label string) {
	fmt.Printf("Planned %d sessions for %s:\n", len(sessions), label)
	parked := 0
	for i, sess := range sessions {
		fmt.Printf("  %2d. %s (%d min)\n", i+1, sess, sess.DurationMinutes())
		parked += sess.DurationMinutes()
	}
	fmt.Printf("Parked time: %d minutes\n", parked)
}

func printReport(report *booking.Report) {
	fmt.Printf("Booked %d/%d sessions for %s (run %s)\n",
		len(report.Succeeded()), report.Requested, report.Label, report.RunID)
	for _, res := range report.Results {
		line := fmt.Sprintf("  %s  %s", res.Session, res.Outcome)
		if res.Reason != "" {
			line += " (" + res.Reason + ")"
		}
		fmt.Println(line)
	}
	if report.Cost > 0 {
		fmt.Printf("Cost: €%.2f (balance €%.2f -> €%.2f)\n",
			report.Cost, report.StartingBalance, report.FinalBalance)
	}
}

func logBudget(proj budget.Projection) {
	evt := logger.Info()
	msg := "monthly budget on track"
	if proj.OverBudget {
		evt = logger.Warn()
		msg = "on pace to exceed monthly budget"
	}
	evt.
		Int("minutes_used", proj.MinutesUsed).
		Int("minutes_remaining", proj.MinutesRemaining).
		Float64("daily_average", proj.DailyAverageUsed).
		Float64("projected_total", proj.ProjectedTotal).
		Float64("schedule_delta", proj.ScheduleDeltaMinutes).
		Msg(msg)
}
