/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/friendsincode/parkwacht/internal/budget"
	"github.com/friendsincode/parkwacht/internal/portal"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show account balance and the monthly budget projection",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
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

	status, err := client.AccountStatus(ctx)
	if err != nil {
		return fmt.Errorf("read account status: %w", err)
	}

	fmt.Printf("Balance: €%.2f\n", status.Balance)
	fmt.Printf("Remaining budget: %s\n", status.RemainingBudget)

	proj, ok := budget.Analyze(status.RemainingBudget, cfg.MonthlyBudgetHours, time.Now())
	if !ok {
		fmt.Println("Budget projection: unknown (could not parse remaining budget)")
		return nil
	}

	fmt.Printf("Used %d of %d minutes over %d/%d days (%.1f min/day)\n",
		proj.MinutesUsed, cfg.MonthlyBudgetHours*60, proj.ElapsedDays, proj.DaysInPeriod, proj.DailyAverageUsed)
	fmt.Printf("Projected month total: %.0f minutes\n", proj.ProjectedTotal)
	if proj.OverBudget {
		fmt.Printf("Over budget pace: %.0f minutes behind schedule\n", -proj.ScheduleDeltaMinutes)
	} else {
		fmt.Printf("Under budget: %.0f minutes of headroom\n", proj.ScheduleDeltaMinutes)
	}
	return nil
}
