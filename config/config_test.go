package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FASM.Strict {
		t.Error("Expected FASM.Strict=false by default")
	}

	if cfg.Output.Psect != "clb_config" {
		t.Errorf("Expected Psect=clb_config, got %s", cfg.Output.Psect)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected Format=json, got %s", cfg.Output.Format)
	}
	if len(cfg.Output.DeviceMacros) == 0 {
		t.Error("Expected non-empty default device macro list")
	}

	if !cfg.Inspect.ColorOutput {
		t.Error("Expected Inspect.ColorOutput=true")
	}
	if !cfg.Inspect.ShowEquations {
		t.Error("Expected Inspect.ShowEquations=true")
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Expected Log.Level=warn, got %s", cfg.Log.Level)
	}

	if cfg.Service.Addr != "127.0.0.1:8642" {
		t.Errorf("Expected default service address, got %s", cfg.Service.Addr)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}

	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "clbfab" && path != "config.toml" {
			t.Errorf("Expected path in clbfab directory or fallback, got %s", path)
		}
	}
}

func TestGetLogPath(t *testing.T) {
	path := GetLogPath()

	if path == "" {
		t.Error("GetLogPath returned empty string")
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "logs" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		if filepath.Base(path) != "logs" {
			t.Errorf("Expected path to end with logs, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.FASM.Strict = true
	cfg.Output.Psect = "my_clb"
	cfg.Inspect.ColorOutput = false
	cfg.Log.Level = "debug"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if !loaded.FASM.Strict {
		t.Error("Expected FASM.Strict=true")
	}
	if loaded.Output.Psect != "my_clb" {
		t.Errorf("Expected Psect=my_clb, got %s", loaded.Output.Psect)
	}
	if loaded.Inspect.ColorOutput {
		t.Error("Expected Inspect.ColorOutput=false")
	}
	if loaded.Log.Level != "debug" {
		t.Errorf("Expected Log.Level=debug, got %s", loaded.Log.Level)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Output.Format != "json" {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[output]
device_macros = "not a list"  # Invalid: should be an array
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
