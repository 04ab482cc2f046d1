package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	EndpointURL     string         `yaml:"endpoint_url"`
	MealID          string         `yaml:"mealid"`
	PartySize       int            `yaml:"party_size"`
	PayloadTemplate map[string]any `yaml:"payload_template"`
	DateSelection   struct {
		Dates     []string `yaml:"dates"`
		Year      int      `yaml:"year"`
		Month     int      `yaml:"month"`
		DayOfWeek string   `yaml:"day_of_week"`
	} `yaml:"date_selection"`
	TimeFilters struct {
		Allowlist []string `yaml:"allowlist"`
		Earliest  string   `yaml:"earliest"`
		Latest    string   `yaml:"latest"`
	} `yaml:"time_filters"`
	Ntfy struct {
		Server   string `yaml:"server"`
		Topic    string `yaml:"topic"`
		Title    string `yaml:"title"`
		Priority string `yaml:"priority"`
	} `yaml:"ntfy"`
	Request struct {
		UserAgent      string  `yaml:"user_agent"`
		Origin         string  `yaml:"origin"`
		Referer        string  `yaml:"referer"`
		TimeoutSeconds float64 `yaml:"timeout_seconds"`
		Retries        int     `yaml:"retries"`
		PaceMillis     int     `yaml:"pace_ms"`
	} `yaml:"request"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	DryRun bool `yaml:"dry_run"`
	Debug  bool `yaml:"debug"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ENDPOINT_URL"); v != "" {
		cfg.EndpointURL = v
	}
	if v := os.Getenv("MEALID"); v != "" {
		cfg.MealID = v
	}
	if v := os.Getenv("PARTY_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PartySize = n
		}
	}
	if v := os.Getenv("DATES"); v != "" {
		cfg.DateSelection.Dates = splitCSV(v)
	}
	if v := os.Getenv("YEAR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DateSelection.Year = n
		}
	}
	if v := os.Getenv("MONTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DateSelection.Month = n
		}
	}
	if v := os.Getenv("DAY_OF_WEEK"); v != "" {
		cfg.DateSelection.DayOfWeek = v
	}
	if v := os.Getenv("TIME_WINDOW"); v != "" {
		if earliest, latest, ok := strings.Cut(v, "-"); ok {
			cfg.TimeFilters.Earliest = strings.TrimSpace(earliest)
			cfg.TimeFilters.Latest = strings.TrimSpace(latest)
		}
	}
	if v := os.Getenv("ALLOWLIST"); v != "" {
		cfg.TimeFilters.Allowlist = splitCSV(v)
	}
	if v := os.Getenv("NTFY_SERVER"); v != "" {
		cfg.Ntfy.Server = v
	}
	if v := os.Getenv("NTFY_TOPIC"); v != "" {
		cfg.Ntfy.Topic = v
	}
	if v := os.Getenv("CHECK_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DRY_RUN"); v == "true" {
		cfg.DryRun = true
	}
	if v := os.Getenv("DEBUG"); v == "true" {
		cfg.Debug = true
	}

	// Defaults
	if cfg.DateSelection.Year == 0 {
		cfg.DateSelection.Year = time.Now().Year()
	}
	if cfg.DateSelection.Month == 0 {
		cfg.DateSelection.Month = 11
	}
	if cfg.DateSelection.DayOfWeek == "" {
		cfg.DateSelection.DayOfWeek = "Friday"
	}
	if cfg.Ntfy.Server == "" {
		cfg.Ntfy.Server = "https://ntfy.sh"
	}
	if cfg.Ntfy.Title == "" {
		cfg.Ntfy.Title = "Table availability"
	}
	if cfg.Request.UserAgent == "" {
		cfg.Request.UserAgent = "tablescout/1.0"
	}
	if cfg.Request.TimeoutSeconds == 0 {
		cfg.Request.TimeoutSeconds = 15
	}
	if cfg.Request.Retries == 0 {
		cfg.Request.Retries = 1
	}
	if cfg.Request.PaceMillis == 0 {
		cfg.Request.PaceMillis = 500
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.EndpointURL == "" {
		return fmt.Errorf("endpoint_url is required")
	}
	if c.MealID == "" {
		return fmt.Errorf("mealid is required")
	}
	if c.PartySize <= 0 {
		return fmt.Errorf("party_size must be positive")
	}
	if c.Ntfy.Topic == "" && !c.DryRun {
		return fmt.Errorf("ntfy.topic is required unless dry_run is set")
	}
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
