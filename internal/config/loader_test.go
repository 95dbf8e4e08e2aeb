package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Movebank struct {
		BaseURL string `yaml:"base_url" env:"MOVEBANK_BASE_URL"`
		StudyID int64  `yaml:"study_id" env:"MOVEBANK_STUDY_ID"`
	} `yaml:"movebank"`
	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
}

func TestLoadConfigFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "movebank:\n  base_url: http://example.test\n  study_id: 42\nexport:\n  dir: /tmp/out\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg := &testConfig{}
	if err := LoadConfig(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Movebank.BaseURL != "http://example.test" {
		t.Fatalf("unexpected base url: %q", cfg.Movebank.BaseURL)
	}
	if cfg.Movebank.StudyID != 42 {
		t.Fatalf("unexpected study id: %d", cfg.Movebank.StudyID)
	}
	if cfg.Export.Dir != "/tmp/out" {
		t.Fatalf("unexpected export dir: %q", cfg.Export.Dir)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("movebank:\n  study_id: 42\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MOVEBANK_STUDY_ID", "99")

	cfg := &testConfig{}
	if err := LoadConfig(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Movebank.StudyID != 99 {
		t.Fatalf("expected env override 99, got %d", cfg.Movebank.StudyID)
	}
}

func TestLoadConfigGeneratedEnvKeys(t *testing.T) {
	t.Setenv("EXPORT_DIR", "generated")

	cfg := &testConfig{}
	if err := LoadConfig(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Export.Dir != "generated" {
		t.Fatalf("expected generated env key EXPORT_DIR to apply, got %q", cfg.Export.Dir)
	}
}

func TestLoadConfigRejectsNonPointer(t *testing.T) {
	if err := LoadConfig(testConfig{}); err == nil {
		t.Fatal("expected error for non-pointer target")
	}
	if err := LoadConfig(nil); err == nil {
		t.Fatal("expected error for nil target")
	}
}
