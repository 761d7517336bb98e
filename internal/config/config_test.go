package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("PARKWACHT_USERNAME", "meldcode123")
	t.Setenv("PARKWACHT_SESSION_MINUTES", "15")
	t.Setenv("PARKWACHT_HEADLESS", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Username != "meldcode123" {
		t.Fatalf("username = %q, want meldcode123", cfg.Username)
	}
	if cfg.SessionMinutes != 15 {
		t.Fatalf("session_minutes = %d, want 15", cfg.SessionMinutes)
	}
	if cfg.Headless {
		t.Fatal("headless should be overridden to false")
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parkwacht.yaml")
	data := []byte("username: meldcode123\npassword: \"1234\"\nlicense_plate: AB123C\nsession_minutes: 20\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SessionMinutes != 20 {
		t.Fatalf("session_minutes = %d, want 20", cfg.SessionMinutes)
	}
	if err := cfg.ValidateCredentials(); err != nil {
		t.Fatalf("credentials from file should validate: %v", err)
	}
	// Untouched keys keep their defaults.
	if cfg.MaxRetries != 3 {
		t.Fatalf("max_retries = %d, want default 3", cfg.MaxRetries)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parkwacht.yaml")
	if err := os.WriteFile(path, []byte("session_minutes: 20\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PARKWACHT_SESSION_MINUTES", "25")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SessionMinutes != 25 {
		t.Fatalf("session_minutes = %d, want env override 25", cfg.SessionMinutes)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("PARKWACHT_MAX_RETRIES", "0")
	if _, err := Load(""); err == nil {
		t.Fatal("expected validation to reject zero retries")
	}
}

func TestValidateRejectsShortSessions(t *testing.T) {
	cfg := Defaults()
	cfg.SessionMinutes = 3
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation to reject sub-viability sessions")
	}
}

func TestValidateCredentials(t *testing.T) {
	cfg := Defaults()
	if err := cfg.ValidateCredentials(); err == nil {
		t.Fatal("expected missing credentials to fail")
	}
	cfg.Username = "meldcode123"
	cfg.Password = "1234"
	cfg.LicensePlate = "AB123C"
	if err := cfg.ValidateCredentials(); err != nil {
		t.Fatalf("credentials should validate: %v", err)
	}
}
