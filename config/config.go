// config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type PropertyConfig struct {
	Block string `yaml:"block"`
	Lot   string `yaml:"lot"`
}

type EmailConfig struct {
	SMTPServer   string   `yaml:"smtp_server"`
	SMTPPort     int      `yaml:"smtp_port"`
	FromEmail    string   `yaml:"from_email"`
	FromPassword string   `yaml:"from_password"`
	ToEmails     []string `yaml:"to_emails"`
}

// Configured reports whether delivery is set up at all. An empty recipient
// list disables email without being a configuration error.
func (e EmailConfig) Configured() bool {
	return len(e.ToEmails) > 0
}

type NYCDataConfig struct {
	BaseURL           string `yaml:"base_url"`
	AppToken          string `yaml:"app_token"` // optional Socrata token for higher rate limits
	RecordLimit       int    `yaml:"record_limit"`
	RequestTimeoutStr string `yaml:"request_timeout"`
	RequestTimeout    time.Duration
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite3" (default) or "mysql"

	// sqlite3
	Path string `yaml:"path"`

	// mysql
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type MonitorConfig struct {
	LookbackDays int    `yaml:"lookback_days"`
	ScheduleAt   string `yaml:"schedule_at"` // daily run time, "HH:MM" local
	ListenAddr   string `yaml:"listen_addr"` // optional status/metrics listener for schedule mode
}

type Config struct {
	Property PropertyConfig `yaml:"property"`
	Email    EmailConfig    `yaml:"email"`
	NYCData  NYCDataConfig  `yaml:"nyc_data"`
	Database DatabaseConfig `yaml:"database"`
	Monitor  MonitorConfig  `yaml:"monitor"`
}

// Load reads the YAML config file, layers environment overrides on top, and
// validates the result. It returns an explicit Config value; nothing here is
// stored globally. A .env file next to the process is honored if present so
// secrets can stay out of config.yaml.
func Load(configPath string) (*Config, error) {
	// Not an error if absent; it only exists to populate os.Getenv below.
	_ = godotenv.Load()

	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if cfg.NYCData.RequestTimeoutStr != "" {
		var err error
		cfg.NYCData.RequestTimeout, err = time.ParseDuration(cfg.NYCData.RequestTimeoutStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse nyc_data.request_timeout: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.NYCData.BaseURL == "" {
		c.NYCData.BaseURL = "https://data.cityofnewyork.us/resource"
	}
	if c.NYCData.RecordLimit == 0 {
		c.NYCData.RecordLimit = 1000
	}
	if c.NYCData.RequestTimeout == 0 {
		c.NYCData.RequestTimeout = 30 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite3"
	}
	if c.Database.Path == "" {
		c.Database.Path = "violations.db"
	}
	if c.Monitor.LookbackDays == 0 {
		c.Monitor.LookbackDays = 1
	}
	if c.Monitor.ScheduleAt == "" {
		c.Monitor.ScheduleAt = "09:00"
	}
}

// applyEnvOverrides lets secrets come from the environment (or .env) instead
// of the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("VIOLATIONWATCH_SMTP_PASSWORD"); v != "" {
		c.Email.FromPassword = v
	}
	if v := os.Getenv("VIOLATIONWATCH_SOCRATA_TOKEN"); v != "" {
		c.NYCData.AppToken = v
	}
	if v := os.Getenv("VIOLATIONWATCH_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
}

// Validate enforces the startup-fatal configuration rules: a monitored
// property is mandatory, and delivery settings must be complete whenever
// recipients are configured.
func (c *Config) Validate() error {
	if c.Property.Block == "" || c.Property.Lot == "" {
		return fmt.Errorf("property.block and property.lot must be configured")
	}
	if c.Email.Configured() {
		if c.Email.SMTPServer == "" || c.Email.SMTPPort == 0 {
			return fmt.Errorf("email.smtp_server and email.smtp_port must be configured when recipients are set")
		}
		if c.Email.FromEmail == "" {
			return fmt.Errorf("email.from_email must be configured when recipients are set")
		}
	}
	switch c.Database.Driver {
	case "sqlite3":
		// Path already defaulted.
	case "mysql":
		if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
			return fmt.Errorf("database.host, database.user and database.dbname must be configured for the mysql driver")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q (use sqlite3 or mysql)", c.Database.Driver)
	}
	if c.Monitor.LookbackDays < 1 {
		return fmt.Errorf("monitor.lookback_days must be at least 1")
	}
	if _, err := time.Parse("15:04", c.Monitor.ScheduleAt); err != nil {
		return fmt.Errorf("monitor.schedule_at must be HH:MM: %w", err)
	}
	return nil
}
