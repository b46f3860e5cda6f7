package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultEnvOverrides(t *testing.T) {
	t.Setenv("DICE_LEDGER_FILE", "/tmp/custom_ledger.txt")
	t.Setenv("DICE_HEADLESS", "true")
	t.Setenv("DB_PORT", "5433")

	cfg := Default()
	if cfg.LedgerFile != "/tmp/custom_ledger.txt" {
		t.Errorf("LedgerFile = %q", cfg.LedgerFile)
	}
	if !cfg.Headless {
		t.Error("Headless should be true")
	}
	if cfg.DBPort != 5433 {
		t.Errorf("DBPort = %d, want 5433", cfg.DBPort)
	}
}

func TestDefaultIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("DICE_HEADLESS", "not-a-bool")

	cfg := Default()
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, want fallback 5432", cfg.DBPort)
	}
	if cfg.Headless {
		t.Error("Headless should keep its fallback on malformed env")
	}
}

func TestApplyFileMissingIsNoOp(t *testing.T) {
	cfg := Default()
	before := cfg
	if err := cfg.ApplyFile(filepath.Join(t.TempDir(), "absent.yml")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JobTitle != before.JobTitle || cfg.LedgerFile != before.LedgerFile {
		t.Error("missing config file must leave defaults untouched")
	}
}

func TestApplyFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
job_title: SDET
posted_date: SEVEN
employment_types: [FULLTIME]
headless: true
page_delay_seconds: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := cfg.ApplyFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JobTitle != "SDET" {
		t.Errorf("JobTitle = %q", cfg.JobTitle)
	}
	if cfg.PostedDate != "SEVEN" {
		t.Errorf("PostedDate = %q", cfg.PostedDate)
	}
	if len(cfg.EmploymentTypes) != 1 || cfg.EmploymentTypes[0] != "FULLTIME" {
		t.Errorf("EmploymentTypes = %v", cfg.EmploymentTypes)
	}
	if !cfg.Headless {
		t.Error("Headless should be overridden to true")
	}
	if cfg.PageDelay != 5*time.Second {
		t.Errorf("PageDelay = %v", cfg.PageDelay)
	}
	// keys absent from the file keep their defaults
	if cfg.DetailDelay != 2*time.Second {
		t.Errorf("DetailDelay = %v, want default", cfg.DetailDelay)
	}
}

func TestApplyFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := cfg.ApplyFile(path); err == nil {
		t.Error("expected a parse error")
	}
}
