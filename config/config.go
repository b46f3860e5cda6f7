package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for one run.
type Config struct {
	// Search filters (resolved before the discovery loop starts).
	JobTitle        string
	PostedDate      string
	EmploymentTypes []string
	WorkSettings    []string

	// Site endpoints. Overridable so tests can point at fixtures.
	BaseURL  string
	LoginURL string

	// Outputs
	LedgerFile string
	CSVFile    string
	JSONFile   string

	// Browser
	Headless  bool
	UserAgent string

	// Timing
	PageDelay     time.Duration // settle after a search-page navigation
	DetailDelay   time.Duration // settle after a detail-page navigation
	SubmitDelay   time.Duration // settle between the apply and submit clicks
	FindTimeout   time.Duration // bounded wait for a single element
	GlobalTimeout time.Duration

	// Navigation politeness
	NavPerSecond float64
	NavBurst     int

	// Interactive prompts are skipped when true; config/env values are
	// taken as already resolved.
	NonInteractive bool

	// Optional PostgreSQL job store
	DBEnable   bool
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		BaseURL:  "https://www.dice.com",
		LoginURL: "https://www.dice.com/dashboard/login",

		LedgerFile: getEnv("DICE_LEDGER_FILE", "applied_jobs.txt"),
		CSVFile:    getEnv("DICE_CSV_FILE", "dice_job_links.csv"),
		JSONFile:   getEnv("DICE_JSON_FILE", "dice_job_links.json"),

		Headless: getEnvBool("DICE_HEADLESS", false),
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",

		PageDelay:     3 * time.Second,
		DetailDelay:   2 * time.Second,
		SubmitDelay:   2 * time.Second,
		FindTimeout:   20 * time.Second,
		GlobalTimeout: 90 * time.Minute,

		NavPerSecond: 0.5,
		NavBurst:     1,

		NonInteractive: getEnvBool("DICE_NONINTERACTIVE", false),

		DBEnable:   getEnvBool("DB_ENABLE", false),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "dice"),
		DBPassword: getEnv("DB_PASSWORD", "dice"),
		DBName:     getEnv("DB_NAME", "dice_apply"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

// fileConfig is the YAML-editable subset of Config. Absent keys leave the
// corresponding Config fields untouched.
type fileConfig struct {
	JobTitle        *string  `yaml:"job_title"`
	PostedDate      *string  `yaml:"posted_date"`
	EmploymentTypes []string `yaml:"employment_types"`
	WorkSettings    []string `yaml:"work_settings"`
	LedgerFile      *string  `yaml:"ledger_file"`
	CSVFile         *string  `yaml:"csv_file"`
	JSONFile        *string  `yaml:"json_file"`
	Headless        *bool    `yaml:"headless"`
	NonInteractive  *bool    `yaml:"non_interactive"`
	PageDelaySec    *int     `yaml:"page_delay_seconds"`
	DetailDelaySec  *int     `yaml:"detail_delay_seconds"`
	FindTimeoutSec  *int     `yaml:"find_timeout_seconds"`
}

// ApplyFile overlays the YAML file at path onto c. A missing file is not an
// error; the defaults simply stand.
func (c *Config) ApplyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.JobTitle != nil {
		c.JobTitle = *fc.JobTitle
	}
	if fc.PostedDate != nil {
		c.PostedDate = *fc.PostedDate
	}
	if fc.EmploymentTypes != nil {
		c.EmploymentTypes = fc.EmploymentTypes
	}
	if fc.WorkSettings != nil {
		c.WorkSettings = fc.WorkSettings
	}
	if fc.LedgerFile != nil {
		c.LedgerFile = *fc.LedgerFile
	}
	if fc.CSVFile != nil {
		c.CSVFile = *fc.CSVFile
	}
	if fc.JSONFile != nil {
		c.JSONFile = *fc.JSONFile
	}
	if fc.Headless != nil {
		c.Headless = *fc.Headless
	}
	if fc.NonInteractive != nil {
		c.NonInteractive = *fc.NonInteractive
	}
	if fc.PageDelaySec != nil {
		c.PageDelay = time.Duration(*fc.PageDelaySec) * time.Second
	}
	if fc.DetailDelaySec != nil {
		c.DetailDelay = time.Duration(*fc.DetailDelaySec) * time.Second
	}
	if fc.FindTimeoutSec != nil {
		c.FindTimeout = time.Duration(*fc.FindTimeoutSec) * time.Second
	}
	return nil
}

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
