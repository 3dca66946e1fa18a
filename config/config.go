package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/clbtoolchain/clbfab/serialize"
)

// Config represents the toolchain configuration
type Config struct {
	// FASM settings
	FASM struct {
		Strict bool `toml:"strict"`
	} `toml:"fasm"`

	// Output settings
	Output struct {
		DeviceMacros []string `toml:"device_macros"`
		Psect        string   `toml:"psect"`
		Format       string   `toml:"format"` // json or asm
	} `toml:"output"`

	// Inspector settings
	Inspect struct {
		ColorOutput    bool `toml:"color_output"`
		ShowEquations  bool `toml:"show_equations"`
		ShowUnset      bool `toml:"show_unset"`
		ShowDiagnostic bool `toml:"show_diagnostics"`
	} `toml:"inspect"`

	// Diagnostic logging settings
	Log struct {
		Level     string `toml:"level"` // debug, info, warn, error
		OutputFile string `toml:"output_file"`
	} `toml:"log"`

	// HTTP service settings
	Service struct {
		Addr          string `toml:"addr"`
		EnableWebUI   bool   `toml:"enable_webui"`
		StreamDiagnostics bool `toml:"stream_diagnostics"`
	} `toml:"service"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// FASM defaults
	cfg.FASM.Strict = false

	// Output defaults
	cfg.Output.DeviceMacros = serialize.DefaultDeviceMacros
	cfg.Output.Psect = serialize.DefaultPsect
	cfg.Output.Format = "json"

	// Inspector defaults
	cfg.Inspect.ColorOutput = true
	cfg.Inspect.ShowEquations = true
	cfg.Inspect.ShowUnset = false
	cfg.Inspect.ShowDiagnostic = true

	// Log defaults
	cfg.Log.Level = "warn"
	cfg.Log.OutputFile = ""

	// Service defaults
	cfg.Service.Addr = "127.0.0.1:8642"
	cfg.Service.EnableWebUI = false
	cfg.Service.StreamDiagnostics = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\clbfab\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "clbfab")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/clbfab/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "clbfab")

	default:
		// Unknown platform: use current directory
		return "config.toml"
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0750); err != nil {
		// If we can't create the directory, fall back to current directory
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\clbfab\logs
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "clbfab", "logs")

	case "darwin", "linux":
		// macOS/Linux: ~/.local/share/clbfab/logs
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "clbfab", "logs")

	default:
		return "logs"
	}

	// Ensure directory exists
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read and parse config file
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	// Encode to TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
