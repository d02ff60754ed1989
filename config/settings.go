package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the runtime configuration of the dashboard.
type Settings struct {
	DatasetPath  string `yaml:"dataset_path"`
	DatasetSheet string `yaml:"dataset_sheet"`

	ServerPort string `yaml:"server_port"`
	GinMode    string `yaml:"gin_mode"`
	LogDir     string `yaml:"log_dir"`

	ReportTitle     string `yaml:"report_title"`
	ExportBaseName  string `yaml:"export_basename"`
	PDFFontPath     string `yaml:"pdf_font_path"`
	TopSourcesLimit int    `yaml:"top_sources_limit"`
	TopAuthorsLimit int    `yaml:"top_authors_limit"`

	RateLimitRPS       float64  `yaml:"rate_limit_rps"`
	RateLimitBurst     int      `yaml:"rate_limit_burst"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	// MonitorToken enables /monitor when set.
	MonitorToken string `yaml:"monitor_token"`

	Database DatabaseSettings `yaml:"database"`
	Mail     MailSettings     `yaml:"mail"`
}

type DatabaseSettings struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	Name        string `yaml:"name"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	DebugSQL    bool   `yaml:"debug_sql"`
	Environment string `yaml:"environment"`
}

// Configured reports whether a database host was given.
func (d DatabaseSettings) Configured() bool { return d.Host != "" }

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		DatasetPath:     "data/zhubanov_scopus_issn.xlsx",
		DatasetSheet:    "ARTICLE",
		ServerPort:      "8080",
		LogDir:          "logs",
		ReportTitle:     "Zh Scopus — Отчёт (фильтр)",
		ExportBaseName:  "zh_scopus",
		TopSourcesLimit: 10,
		TopAuthorsLimit: 10,
		RateLimitRPS:    20,
		RateLimitBurst:  40,
		CORSAllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:8080",
		},
		Database: DatabaseSettings{Port: "3306"},
		Mail:     MailSettings{Port: 587},
	}
}

// LoadSettings builds Settings from the defaults, the YAML file named by
// DASHBOARD_CONFIG (if any) and then the environment.
func LoadSettings() (Settings, error) {
	return LoadSettingsFrom(os.Getenv("DASHBOARD_CONFIG"), os.Getenv)
}

// LoadSettingsFrom is LoadSettings with an explicit file and env lookup.
func LoadSettingsFrom(path string, getenv func(string) string) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("reading settings file: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parsing settings file %s: %w", path, err)
		}
	}

	if err := applyEnv(&s, getenv); err != nil {
		return s, err
	}
	return s, nil
}

func applyEnv(s *Settings, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", key, v)
		}
		*dst = n
		return nil
	}
	flag := func(key string, dst *bool) {
		switch strings.ToLower(strings.TrimSpace(getenv(key))) {
		case "1", "true", "yes":
			*dst = true
		case "0", "false", "no":
			*dst = false
		}
	}

	str("DATASET_PATH", &s.DatasetPath)
	str("DATASET_SHEET", &s.DatasetSheet)
	str("SERVER_PORT", &s.ServerPort)
	str("GIN_MODE", &s.GinMode)
	str("LOG_DIR", &s.LogDir)
	str("REPORT_TITLE", &s.ReportTitle)
	str("EXPORT_BASENAME", &s.ExportBaseName)
	str("PDF_FONT_PATH", &s.PDFFontPath)
	str("MONITOR_TOKEN", &s.MonitorToken)
	if err := num("TOP_SOURCES_LIMIT", &s.TopSourcesLimit); err != nil {
		return err
	}
	if err := num("TOP_AUTHORS_LIMIT", &s.TopAuthorsLimit); err != nil {
		return err
	}
	if v := strings.TrimSpace(getenv("RATE_LIMIT_RPS")); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %q is not a number", v)
		}
		s.RateLimitRPS = rps
	}
	if err := num("RATE_LIMIT_BURST", &s.RateLimitBurst); err != nil {
		return err
	}
	if v := strings.TrimSpace(getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		s.CORSAllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				s.CORSAllowedOrigins = append(s.CORSAllowedOrigins, origin)
			}
		}
	}

	str("DB_HOST", &s.Database.Host)
	str("DB_PORT", &s.Database.Port)
	str("DB_DATABASE", &s.Database.Name)
	str("DB_USERNAME", &s.Database.User)
	str("DB_PASSWORD", &s.Database.Password)
	str("ENVIRONMENT", &s.Database.Environment)
	flag("DEBUG_SQL", &s.Database.DebugSQL)

	str("SMTP_HOST", &s.Mail.Host)
	if err := num("SMTP_PORT", &s.Mail.Port); err != nil {
		return err
	}
	str("SMTP_USER", &s.Mail.User)
	str("SMTP_PASS", &s.Mail.Password)
	str("SMTP_FROM", &s.Mail.From)
	flag("SMTP_SKIP_TLS_VERIFY", &s.Mail.SkipTLSVerify)
	return nil
}
