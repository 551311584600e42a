package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.PageWidth != 78 {
		t.Errorf("expected default page_width 78, got %d", cfg.PageWidth)
	}
	if cfg.PageHeight != 58 {
		t.Errorf("expected default page_height 58, got %d", cfg.PageHeight)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `digest_path: /tmp/digest.html
speech_rate: 200
page_width: 100
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DigestPath != "/tmp/digest.html" {
		t.Errorf("expected digest path, got %s", cfg.DigestPath)
	}
	if cfg.SpeechRate != 200 {
		t.Errorf("expected speech_rate 200, got %d", cfg.SpeechRate)
	}
	if cfg.PageWidth != 100 {
		t.Errorf("expected page_width 100, got %d", cfg.PageWidth)
	}
}

func TestLoadNonexistentFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageWidth != 78 {
		t.Errorf("expected defaults when config doesn't exist, got width %d", cfg.PageWidth)
	}

	// First run writes the defaults out
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected defaults written to %s: %v", cfgPath, err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	os.WriteFile(cfgPath, []byte("page_width: [not a number"), 0o644)

	if _, err := Load(cfgPath); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestValidateRejectsNegatives(t *testing.T) {
	tests := []Config{
		{SpeechRate: -1},
		{PageWidth: -10},
		{PageHeight: -5},
	}
	for _, cfg := range tests {
		if err := validate(&cfg); err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
	}
}

func TestResolveExportDir(t *testing.T) {
	cfg := &Config{ExportDir: "/tmp/exports"}
	if got := cfg.ResolveExportDir(); got != "/tmp/exports" {
		t.Errorf("expected configured dir, got %s", got)
	}

	cfg = &Config{}
	if got := cfg.ResolveExportDir(); got == "" {
		t.Error("expected a non-empty fallback export dir")
	}
}
