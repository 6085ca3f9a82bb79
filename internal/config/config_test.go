package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME at a temp dir and clears the env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MYPLAN_API_URL", "")
	t.Setenv("MYPLAN_TIMEOUT", "")
	t.Setenv("MYPLAN_STATE_DIR", "")
	t.Setenv("MYPLAN_REFRESH", "")
	return home
}

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "myplan")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoad_Default(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected default api url, got %q", cfg.APIURL)
	}
	if cfg.TimeoutSeconds != 15 {
		t.Errorf("expected 15s timeout, got %d", cfg.TimeoutSeconds)
	}
	if cfg.DefaultTab != "Today" {
		t.Errorf("expected default tab 'Today', got %q", cfg.DefaultTab)
	}
	if cfg.ClockRadius != 8 {
		t.Errorf("expected clock radius 8, got %d", cfg.ClockRadius)
	}
	want := filepath.Join(home, ".local", "state", "myplan")
	if cfg.StateDir != want {
		t.Errorf("expected %q, got %q", want, cfg.StateDir)
	}
}

func TestLoad_File(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, `{"api_url":"https://tasks.example.com/api/tasks","default_tab":"Later","state_dir":"~/plan-state","clock_radius":10}`)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://tasks.example.com/api/tasks" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.DefaultTab != "Later" {
		t.Errorf("expected Later, got %q", cfg.DefaultTab)
	}
	if cfg.StateDir != filepath.Join(home, "plan-state") {
		t.Errorf("expected expanded state dir, got %q", cfg.StateDir)
	}
	if cfg.ClockRadius != 10 {
		t.Errorf("expected radius 10, got %d", cfg.ClockRadius)
	}
	if cfg.TimeoutSeconds != 15 {
		t.Errorf("unset fields keep defaults, got timeout %d", cfg.TimeoutSeconds)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, `{"api_url":`)

	if _, err := Load(CLIFlags{}); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestLoad_EnvVar(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, `{"api_url":"http://file.example/api/tasks"}`)
	t.Setenv("MYPLAN_API_URL", "http://env.example/api/tasks")
	t.Setenv("MYPLAN_TIMEOUT", "30")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://env.example/api/tasks" {
		t.Errorf("expected env url, got %q", cfg.APIURL)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("expected 30, got %d", cfg.TimeoutSeconds)
	}
}

func TestLoad_BadEnvTimeout(t *testing.T) {
	isolate(t)
	t.Setenv("MYPLAN_TIMEOUT", "soon")

	if _, err := Load(CLIFlags{}); err == nil {
		t.Fatal("expected error for non-numeric timeout")
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolate(t)
	t.Setenv("MYPLAN_API_URL", "http://env.example/api/tasks")

	cfg, err := Load(CLIFlags{APIURL: "http://cli.example/api/tasks", TimeoutSeconds: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.APIURL != "http://cli.example/api/tasks" {
		t.Errorf("expected cli url, got %q", cfg.APIURL)
	}
	if cfg.Timeout().Seconds() != 3 {
		t.Errorf("expected 3s, got %v", cfg.Timeout())
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		APIURL:         DefaultAPIURL,
		TimeoutSeconds: 1,
		DefaultTab:     "Today",
		ClockRadius:    8,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := base
	bad.APIURL = "ftp://example.com"
	if err := bad.Validate(); err == nil {
		t.Error("expected scheme error")
	}

	bad = base
	bad.DefaultTab = "Someday"
	if err := bad.Validate(); err == nil {
		t.Error("expected tab error")
	}

	bad = base
	bad.ClockRadius = 2
	if err := bad.Validate(); err == nil {
		t.Error("expected radius error")
	}

	bad = base
	bad.RefreshSchedule = "every five minutes"
	if err := bad.Validate(); err == nil {
		t.Error("expected refresh schedule error")
	}
}

func TestRefresh(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, `{"refresh_schedule":"*/5 * * * *"}`)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sched, err := cfg.Refresh()
	if err != nil || sched == nil {
		t.Fatalf("expected a schedule, got %v, %v", sched, err)
	}
	from := time.Date(2024, 5, 2, 12, 1, 0, 0, time.Local)
	if next := sched.Next(from); !next.Equal(from.Add(4 * time.Minute)) {
		t.Errorf("next refresh = %v", next)
	}

	t.Setenv("MYPLAN_REFRESH", "0 9 * * *")
	cfg, err = Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RefreshSchedule != "0 9 * * *" {
		t.Errorf("env should override the file, got %q", cfg.RefreshSchedule)
	}

	off := Config{}
	if sched, err := off.Refresh(); sched != nil || err != nil {
		t.Errorf("empty spec should disable refresh, got %v, %v", sched, err)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := isolate(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(home, ".config", "myplan", "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected defaults from written file, got %q", cfg.APIURL)
	}
}

func TestParseCommaSeparated(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"", 0},
		{"a", 1},
		{"a,b,c", 3},
		{" a , b , c ", 3},
		{"a,,b", 2},
	}

	for _, tt := range tests {
		result := ParseCommaSeparated(tt.input)
		if len(result) != tt.expected {
			t.Errorf("ParseCommaSeparated(%q): expected %d items, got %d", tt.input, tt.expected, len(result))
		}
	}
}
