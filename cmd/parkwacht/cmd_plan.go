/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan \"HH:MM-HH:MM\"",
	Short: "Calculate and print the session schedule without booking",
	Long: `Resolves the time range and splits it into sessions exactly as the book
command would, then prints the schedule. Never touches the portal, so no
credentials are needed.

Examples:
  parkwacht plan "13:00-17:00"
  parkwacht plan "09:00-12:30" --tomorrow --session 15`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().IntVar(&bookSession, "session", 0, "Session duration in minutes (overrides config)")
	planCmd.Flags().IntVar(&bookMaxGap, "max-gap", 0, "Maximum break between sessions in minutes (overrides config)")
	planCmd.Flags().BoolVar(&bookTomorrow, "tomorrow", false, "Plan for tomorrow instead of today")
	planCmd.Flags().StringVar(&bookDate, "date", "", "Plan for an explicit date (YYYY-MM-DD, today or tomorrow only)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	sessions, label, err := buildSchedule(args[0])
	if err != nil {
		return err
	}

	printSchedule(sessions, label)
	return nil
}
