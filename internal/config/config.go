// Package config loads server configuration from a yaml file next to the
// executable, with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

var exeDirCache string

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

// Transport values accepted in Config.Transport.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

type Config struct {
	Transport string        `yaml:"transport"` // "stdio" or "sse"
	Host      string        `yaml:"host"`
	Port      int           `yaml:"port"`
	Logging   LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"` // "json" or "text"
	File         string `yaml:"file"`
	ToFile       bool   `yaml:"to_file"`
	LogRequests  bool   `yaml:"log_requests"`
	LogResponses bool   `yaml:"log_responses"`
}

func DefaultConfig() *Config {
	return &Config{
		Transport: TransportSSE,
		Host:      "0.0.0.0",
		Port:      8000,
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "json",
			File:         "logs/dadjoke-mcp.log",
			ToFile:       false,
			LogRequests:  true,
			LogResponses: true,
		},
	}
}

func ConfigPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".dadjoke-mcp.yaml")
}

// Load reads the config next to the executable, falling back to defaults if
// the file does not exist.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath reads the config from an explicit path. A missing file is not
// an error; defaults are returned.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overlays DADJOKE_* environment variables onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DADJOKE_TRANSPORT"); v != "" {
		c.Transport = v
	}
	if v := os.Getenv("DADJOKE_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("DADJOKE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("DADJOKE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DADJOKE_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("DADJOKE_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("DADJOKE_LOG_TO_FILE"); v != "" {
		c.Logging.ToFile = v == "true" || v == "1"
	}
	if v := os.Getenv("DADJOKE_LOG_REQUESTS"); v != "" {
		c.Logging.LogRequests = v == "true" || v == "1"
	}
	if v := os.Getenv("DADJOKE_LOG_RESPONSES"); v != "" {
		c.Logging.LogResponses = v == "true" || v == "1"
	}
}

// Validate rejects values the server cannot act on.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("unknown transport: %q (want %q or %q)", c.Transport, TransportStdio, TransportSSE)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format: %q (want \"json\" or \"text\")", c.Logging.Format)
	}
	if c.Transport == TransportSSE && (c.Port < 1 || c.Port > 65535) {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

// Addr returns the host:port listen address for the SSE transport.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(), data, 0600)
}
