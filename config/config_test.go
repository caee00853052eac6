package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.AppName != "koru" || s.LogLevel != "info" {
		t.Errorf("defaults = %q/%q, want koru/info", s.AppName, s.LogLevel)
	}
	if s.LLM.Provider != "openai" || s.LLM.Model != "gpt-4o-mini" {
		t.Errorf("llm defaults = %+v", s.LLM)
	}
	if s.Memory.Enabled || s.Memory.Dimensions != 1536 || s.Memory.TopK != 3 {
		t.Errorf("memory defaults = %+v", s.Memory)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "koru.yaml")
	content := "log_level: debug\nllm:\n  provider: anthropic\n  model: claude-sonnet-4-20250514\nmemory:\n  enabled: true\n  top_k: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
	if s.LLM.Provider != "anthropic" {
		t.Errorf("LLM.Provider = %q, want anthropic", s.LLM.Provider)
	}
	if !s.Memory.Enabled || s.Memory.TopK != 5 {
		t.Errorf("Memory = %+v, want enabled with top_k 5", s.Memory)
	}
	// Untouched keys keep their defaults.
	if s.AppName != "koru" {
		t.Errorf("AppName = %q, want default", s.AppName)
	}
}

func TestLoadMissingFileTolerated(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load on missing file failed: %v", err)
	}
	if s.AppName != "koru" {
		t.Errorf("AppName = %q, want default", s.AppName)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("KORU_LLM_PROVIDER", "anthropic")
	t.Setenv("KORU_DATA_DIR", "/tmp/koru-test")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.LLM.Provider != "anthropic" {
		t.Errorf("LLM.Provider = %q, want env override", s.LLM.Provider)
	}
	if s.DataDir != "/tmp/koru-test" {
		t.Errorf("DataDir = %q, want env override", s.DataDir)
	}
}

func TestEnsureDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := &Settings{DataDir: dir}
	if err := s.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("data dir not created: %v", err)
	}
}
