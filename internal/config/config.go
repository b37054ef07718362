package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultInterval      = "60s"
	DefaultTimeout       = "10s"
	DefaultRetryBackoff  = "300ms"
	DefaultMaxConcurrent = 4
	DefaultRetryAttempts = 1
)

// Notifications controls how check failures are reported outside the log.
type Notifications struct {
	Enabled      bool   `yaml:"enabled"`
	AppName      string `yaml:"app_name,omitempty"`
	SlackWebhook string `yaml:"slack_webhook,omitempty"`
}

// Config is the statuswatch configuration. Durations are kept as strings
// ("60s", "300ms") and parsed where they are used.
type Config struct {
	URLsFile      string        `yaml:"urls_file"`
	Database      string        `yaml:"database"`               // sqlite file path
	DatabaseURL   string        `yaml:"database_url,omitempty"` // postgres DSN; overrides Database when set
	Interval      string        `yaml:"interval"`
	Timeout       string        `yaml:"timeout"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryBackoff  string        `yaml:"retry_backoff"`
	LogDir        string        `yaml:"log_dir"`
	APIAddr       string        `yaml:"api_addr"`
	Notifications Notifications `yaml:"notifications"`
}

// Default returns the configuration used when no file and no env are present.
func Default() Config {
	return Config{
		URLsFile:      "urls.txt",
		Database:      "status_log.db",
		Interval:      DefaultInterval,
		Timeout:       DefaultTimeout,
		MaxConcurrent: DefaultMaxConcurrent,
		RetryAttempts: DefaultRetryAttempts,
		RetryBackoff:  DefaultRetryBackoff,
		LogDir:        "logs",
		APIAddr:       "127.0.0.1:8090",
		Notifications: Notifications{
			Enabled: true,
			AppName: "statuswatch",
		},
	}
}

// Path returns the config file location: $STATUSWATCH_CONFIG if set,
// otherwise ~/.config/statuswatch/config.yml.
func Path() (string, error) {
	if p := os.Getenv("STATUSWATCH_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "statuswatch", "config.yml"), nil
}

// Load reads the config file at path (default location when path is empty),
// applies environment overrides, and fills in defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults apply
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STATUSWATCH_URLS_FILE"); v != "" {
		c.URLsFile = v
	}
	if v := os.Getenv("STATUSWATCH_DB"); v != "" {
		c.Database = v
	}
	if v := os.Getenv("STATUSWATCH_DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("STATUSWATCH_INTERVAL"); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			c.Interval = v
		}
	}
	if v := os.Getenv("STATUSWATCH_TIMEOUT"); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			c.Timeout = v
		}
	}
	if v := os.Getenv("STATUSWATCH_LOG_DIR"); v != "" {
		c.LogDir = v
	}
	if v := os.Getenv("STATUSWATCH_API_ADDR"); v != "" {
		c.APIAddr = v
	}
	if v := os.Getenv("STATUSWATCH_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv("STATUSWATCH_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RetryAttempts = n
		}
	}
}

func (c *Config) fillDefaults() {
	if c.URLsFile == "" {
		c.URLsFile = "urls.txt"
	}
	if c.Database == "" {
		c.Database = "status_log.db"
	}
	if _, err := time.ParseDuration(c.Interval); err != nil {
		c.Interval = DefaultInterval
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		c.Timeout = DefaultTimeout
	}
	if _, err := time.ParseDuration(c.RetryBackoff); err != nil {
		c.RetryBackoff = DefaultRetryBackoff
	}
	if c.MaxConcurrent < 1 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.RetryAttempts < 1 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.LogDir == "" {
		c.LogDir = "logs"
	}
	if c.APIAddr == "" {
		c.APIAddr = "127.0.0.1:8090"
	}
	if c.Notifications.AppName == "" {
		c.Notifications.AppName = "statuswatch"
	}
}

// IntervalDuration returns the parsed check interval.
func (c Config) IntervalDuration() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		d, _ = time.ParseDuration(DefaultInterval)
	}
	return d
}

// TimeoutDuration returns the parsed per-request timeout.
func (c Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// RetryBackoffDuration returns the parsed pause between retry attempts.
func (c Config) RetryBackoffDuration() time.Duration {
	d, err := time.ParseDuration(c.RetryBackoff)
	if err != nil {
		d, _ = time.ParseDuration(DefaultRetryBackoff)
	}
	return d
}
