package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"speechset/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCache := filepath.Join(tempHome, ".cache", "speechset")
	if cfg.Paths.CacheDir != wantCache {
		t.Fatalf("unexpected cache dir: got %q want %q", cfg.Paths.CacheDir, wantCache)
	}
	if cfg.Probe.FFprobeBinary != "ffprobe" {
		t.Fatalf("unexpected ffprobe binary: %q", cfg.Probe.FFprobeBinary)
	}
	if !cfg.Probe.CacheEnabled {
		t.Fatal("expected duration cache enabled by default")
	}
	if cfg.Output.Manifest != "metadata.jsonl" {
		t.Fatalf("unexpected manifest default: %q", cfg.Output.Manifest)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReadsTOMLFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[probe]",
		`ffprobe_binary = "/opt/ffmpeg/bin/ffprobe"`,
		"cache_enabled = false",
		"",
		"[logging]",
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Probe.FFprobeBinary != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("unexpected ffprobe binary: %q", cfg.Probe.FFprobeBinary)
	}
	if cfg.Probe.CacheEnabled {
		t.Fatal("expected cache disabled")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected level: %q", cfg.Logging.Level)
	}
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	t.Setenv("SPEECHSET_FFPROBE", "/usr/local/bin/ffprobe")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Probe.FFprobeBinary != "/usr/local/bin/ffprobe" {
		t.Fatalf("env override ignored: %q", cfg.Probe.FFprobeBinary)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"yaml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for bad log format")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	target := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load of sample config failed: %v", err)
	}
	if !exists {
		t.Fatal("sample config should exist")
	}
	// CacheDir is expanded, so compare the stable fields against defaults.
	if cfg.Probe.FFprobeBinary != "ffprobe" || !cfg.Probe.CacheEnabled {
		t.Fatalf("sample probe settings do not match defaults: %+v", cfg.Probe)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("sample logging settings do not match defaults: %+v", cfg.Logging)
	}
}
