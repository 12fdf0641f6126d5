package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	f, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if f.MaxParallel != nil || f.Timeout != "" || f.Quiet != nil {
		t.Fatalf("expected empty config, got %+v", f)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for an explicitly named missing file")
	}
}

func TestLoadParsesYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	configYAML := strings.TrimSpace(`
max_parallel: 3
timeout: 30s
quiet: true
format: JSON
`)
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if f.MaxParallel == nil || *f.MaxParallel != 3 {
		t.Errorf("expected max_parallel 3, got %v", f.MaxParallel)
	}
	if f.TimeoutDuration() != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", f.TimeoutDuration())
	}
	if f.Quiet == nil || !*f.Quiet {
		t.Error("expected quiet true")
	}
	if f.Format != "json" {
		t.Errorf("expected format normalized to json, got %q", f.Format)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"negative max_parallel", "max_parallel: -1"},
		{"bad timeout", "timeout: fast"},
		{"bad format", "format: yaml"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(c.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
