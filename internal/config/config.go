/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is consulted when no --config flag is given; a missing file
// there is not an error.
const DefaultPath = "parkwacht.yaml"

// Config covers process level configuration. Values come from defaults,
// then an optional YAML file, then PARKWACHT_* environment variables.
type Config struct {
	PortalURL    string `yaml:"portal_url"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	LicensePlate string `yaml:"license_plate"`

	SessionMinutes          int     `yaml:"session_minutes"`
	MaxGapMinutes           int     `yaml:"max_gap_minutes"`
	BalanceWarningThreshold float64 `yaml:"balance_warning_threshold"`
	MonthlyBudgetHours      int     `yaml:"monthly_budget_hours"`

	MaxRetries            int  `yaml:"max_retries"`
	RetryBaseDelaySeconds int  `yaml:"retry_base_delay_seconds"`
	Headless              bool `yaml:"headless"`
	TimeoutSeconds        int  `yaml:"timeout_seconds"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		PortalURL:               "https://aanmeldenparkeren.amsterdam.nl",
		SessionMinutes:          10,
		MaxGapMinutes:           5,
		BalanceWarningThreshold: 30.0,
		MonthlyBudgetHours:      150,
		MaxRetries:              3,
		RetryBaseDelaySeconds:   2,
		Headless:                true,
		TimeoutSeconds:          15,
	}
}

// Load reads the YAML file at path (DefaultPath when empty), applies
// environment overrides, and validates the result. An explicitly given path
// must exist; the default path may be absent.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults plus environment only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.PortalURL = getEnv("PARKWACHT_PORTAL_URL", cfg.PortalURL)
	cfg.Username = getEnv("PARKWACHT_USERNAME", cfg.Username)
	cfg.Password = getEnv("PARKWACHT_PASSWORD", cfg.Password)
	cfg.LicensePlate = getEnv("PARKWACHT_LICENSE_PLATE", cfg.LicensePlate)
	cfg.SessionMinutes = getEnvInt("PARKWACHT_SESSION_MINUTES", cfg.SessionMinutes)
	cfg.MaxGapMinutes = getEnvInt("PARKWACHT_MAX_GAP_MINUTES", cfg.MaxGapMinutes)
	cfg.BalanceWarningThreshold = getEnvFloat("PARKWACHT_BALANCE_WARNING_THRESHOLD", cfg.BalanceWarningThreshold)
	cfg.MonthlyBudgetHours = getEnvInt("PARKWACHT_MONTHLY_BUDGET_HOURS", cfg.MonthlyBudgetHours)
	cfg.MaxRetries = getEnvInt("PARKWACHT_MAX_RETRIES", cfg.MaxRetries)
	cfg.RetryBaseDelaySeconds = getEnvInt("PARKWACHT_RETRY_BASE_DELAY_SECONDS", cfg.RetryBaseDelaySeconds)
	cfg.Headless = getEnvBool("PARKWACHT_HEADLESS", cfg.Headless)
	cfg.TimeoutSeconds = getEnvInt("PARKWACHT_TIMEOUT_SECONDS", cfg.TimeoutSeconds)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the numeric options. Credential presence is checked
// separately so planning-only commands work without an account.
func (c *Config) Validate() error {
	if c.PortalURL == "" {
		return errors.New("portal_url must not be empty")
	}
	if c.SessionMinutes < 5 {
		return fmt.Errorf("session_minutes must be at least 5, got %d", c.SessionMinutes)
	}
	if c.MaxGapMinutes < 1 {
		return fmt.Errorf("max_gap_minutes must be at least 1, got %d", c.MaxGapMinutes)
	}
	if c.MonthlyBudgetHours < 1 {
		return fmt.Errorf("monthly_budget_hours must be positive, got %d", c.MonthlyBudgetHours)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.RetryBaseDelaySeconds < 1 {
		return fmt.Errorf("retry_base_delay_seconds must be at least 1, got %d", c.RetryBaseDelaySeconds)
	}
	if c.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be at least 1, got %d", c.TimeoutSeconds)
	}
	return nil
}

// ValidateCredentials checks the fields the portal login needs.
func (c *Config) ValidateCredentials() error {
	if c.Username == "" || c.Password == "" {
		return errors.New("username and password are required (config file or PARKWACHT_USERNAME/PARKWACHT_PASSWORD)")
	}
	if c.LicensePlate == "" {
		return errors.New("license_plate is required")
	}
	return nil
}

// RetryBaseDelay returns the first backoff wait.
func (c *Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelaySeconds) * time.Second
}

// Timeout returns the per-element portal wait.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return def
}
