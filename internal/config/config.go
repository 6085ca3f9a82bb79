package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultAPIURL         = "http://localhost:8080/api/tasks"
	DefaultTimeoutSeconds = 15
	DefaultTab            = "Today"
	DefaultClockRadius    = 8
	DefaultMarkdownStyle  = "dark"
)

// Config holds the unified application configuration
type Config struct {
	APIURL         string
	TimeoutSeconds int
	StateDir       string
	DefaultTab     string
	ClockRadius    int
	MarkdownStyle  string
	// RefreshSchedule is a five-field cron spec for reloading the TUI list.
	// Empty disables it.
	RefreshSchedule string
}

// Settings represents the config file structure
type Settings struct {
	APIURL         string `json:"api_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	StateDir       string `json:"state_dir,omitempty"`
	DefaultTab     string `json:"default_tab,omitempty"`
	ClockRadius    int    `json:"clock_radius,omitempty"`
	MarkdownStyle  string `json:"markdown_style,omitempty"`
	// RefreshSchedule is a cron spec such as "*/5 * * * *".
	RefreshSchedule string `json:"refresh_schedule,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	APIURL         string
	TimeoutSeconds int
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		APIURL:         DefaultAPIURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		DefaultTab:     DefaultTab,
		ClockRadius:    DefaultClockRadius,
		MarkdownStyle:  DefaultMarkdownStyle,
	}

	stateDir, err := GetDefaultStateDir()
	if err != nil {
		return nil, err
	}
	cfg.StateDir = stateDir

	configPath, err := getConfigPath()
	if err == nil {
		fileConfig, err := loadConfigFile(configPath)
		switch {
		case err == nil:
			cfg.apply(fileConfig)
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading %s: %w", configPath, err)
		}
	}

	// Priority 2: Environment variables override config file
	if v := os.Getenv("MYPLAN_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("MYPLAN_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("MYPLAN_TIMEOUT: %w", err)
		}
		cfg.TimeoutSeconds = secs
	}
	if v := os.Getenv("MYPLAN_STATE_DIR"); v != "" {
		cfg.StateDir = expandPath(v)
	}
	if v := os.Getenv("MYPLAN_REFRESH"); v != "" {
		cfg.RefreshSchedule = v
	}

	// Priority 1: CLI flags override everything
	if flags.APIURL != "" {
		cfg.APIURL = flags.APIURL
	}
	if flags.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = flags.TimeoutSeconds
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) apply(s *Settings) {
	if s.APIURL != "" {
		c.APIURL = s.APIURL
	}
	if s.TimeoutSeconds > 0 {
		c.TimeoutSeconds = s.TimeoutSeconds
	}
	if s.StateDir != "" {
		c.StateDir = expandPath(s.StateDir)
	}
	if s.DefaultTab != "" {
		c.DefaultTab = s.DefaultTab
	}
	if s.ClockRadius > 0 {
		c.ClockRadius = s.ClockRadius
	}
	if s.MarkdownStyle != "" {
		c.MarkdownStyle = s.MarkdownStyle
	}
	if s.RefreshSchedule != "" {
		c.RefreshSchedule = s.RefreshSchedule
	}
}

// Validate checks the values that would otherwise fail much later.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api_url %q: scheme must be http or https", c.APIURL)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.TimeoutSeconds)
	}
	if c.ClockRadius < 4 {
		return fmt.Errorf("clock_radius must be at least 4, got %d", c.ClockRadius)
	}
	switch c.DefaultTab {
	case "Overdue", "Today", "Later":
	default:
		return fmt.Errorf("default_tab must be Overdue, Today or Later, got %q", c.DefaultTab)
	}
	if _, err := c.Refresh(); err != nil {
		return err
	}
	return nil
}

// Refresh parses RefreshSchedule. It returns nil when auto-refresh is off.
func (c *Config) Refresh() (cron.Schedule, error) {
	spec := strings.TrimSpace(c.RefreshSchedule)
	if spec == "" {
		return nil, nil
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh_schedule %q: %w", spec, err)
	}
	return sched, nil
}

// Timeout is the per-request deadline for the task API.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetDefaultStateDir returns where logs and other local state live
func GetDefaultStateDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "state", "myplan"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "myplan", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	settings := Settings{
		APIURL:         DefaultAPIURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		DefaultTab:     DefaultTab,
		ClockRadius:    DefaultClockRadius,
		MarkdownStyle:  DefaultMarkdownStyle,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ParseCommaSeparated splits a comma-separated string into a slice
func ParseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
