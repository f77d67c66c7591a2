// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > embedded > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "5s", "500ms", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// FileMode is an os.FileMode written in YAML as an octal string ("0600").
type FileMode struct {
	os.FileMode
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for FileMode.
func (m *FileMode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("unsupported file mode format: %v", value.Kind)
	}
	parsed, err := strconv.ParseUint(value.Value, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid file mode %q: %w", value.Value, err)
	}
	if parsed > 0777 {
		return fmt.Errorf("invalid file mode %q: only permission bits are allowed", value.Value)
	}
	m.FileMode = os.FileMode(parsed)
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for FileMode.
func (m FileMode) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("%04o", uint32(m.FileMode)), nil
}

// Config holds all daemon configuration.
type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Logging    LoggingConfig     `yaml:"logging"`
	Paths      PathsConfig       `yaml:"paths"`
	Render     RenderConfig      `yaml:"render"`
	Network    NetworkConfig     `yaml:"network"`
	Battery    BatteryConfig     `yaml:"battery"`
	CPUFreq    CPUFreqConfig     `yaml:"cpufreq"`
	Clock      ClockConfig       `yaml:"clock"`
	Collectors []CollectorConfig `yaml:"collectors"`
}

// ServerConfig holds the Unix socket settings.
type ServerConfig struct {
	Socket       string   `yaml:"socket"`
	SocketMode   FileMode `yaml:"socket_mode"`
	WriteTimeout Duration `yaml:"write_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// PathsConfig holds the pseudo-filesystem mount points.
type PathsConfig struct {
	Proc string `yaml:"proc"`
	Sys  string `yaml:"sys"`
}

// RenderConfig holds status line rendering settings.
type RenderConfig struct {
	// ErrorPlaceholder replaces a collector's output when sampling fails.
	// Empty omits the collector from the line.
	ErrorPlaceholder string `yaml:"error_placeholder"`
}

// NetworkConfig holds network collector settings.
type NetworkConfig struct {
	Source string   `yaml:"source"`
	Ignore []string `yaml:"ignore"`
}

// BatteryConfig selects the power supply to report.
type BatteryConfig struct {
	Name string `yaml:"name"`
}

// CPUFreqConfig selects the CPU whose frequency is reported.
type CPUFreqConfig struct {
	CPU int `yaml:"cpu"`
}

// ClockConfig holds the clock layout in strftime syntax.
type ClockConfig struct {
	Format string `yaml:"format"`
}

// CollectorConfig enables one collector. The order of the collectors list is
// the order of the status line.
type CollectorConfig struct {
	Name     string   `yaml:"name"`
	Interval Duration `yaml:"interval"`
}

// knownCollectors are the collector names accepted in the collectors list.
var knownCollectors = map[string]bool{
	"network": true,
	"loadavg": true,
	"cpufreq": true,
	"memory":  true,
	"swap":    true,
	"battery": true,
	"clock":   true,
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Socket:     "/tmp/tmux-status-bar.sock",
			SocketMode: FileMode{0600},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Paths: PathsConfig{
			Proc: "/proc",
			Sys:  "/sys",
		},
		Network: NetworkConfig{
			Source: "sysfs",
		},
		Battery: BatteryConfig{
			Name: "BAT0",
		},
		Clock: ClockConfig{
			Format: "%m/%d(%a)%H:%M:%S",
		},
		Collectors: []CollectorConfig{
			{Name: "network", Interval: Duration{5 * time.Second}},
			{Name: "loadavg", Interval: Duration{10 * time.Second}},
			{Name: "cpufreq", Interval: Duration{2 * time.Second}},
			{Name: "memory", Interval: Duration{5 * time.Second}},
			{Name: "swap", Interval: Duration{5 * time.Second}},
			{Name: "battery", Interval: Duration{10 * time.Second}},
			{Name: "clock", Interval: Duration{1 * time.Second}},
		},
	}
}

// LoadFromBytes parses YAML configuration from a byte slice and merges with defaults.
// Environment variables take highest precedence and override values from the byte slice.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config data: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// Load reads configuration from a YAML file and merges with defaults.
// If path is empty or the file does not exist, only defaults and environment
// variables are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromBytes(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return LoadFromBytes(nil)
	}

	return LoadFromBytes(data)
}

// CLIOverrides holds values from command-line flags.
// Empty strings are treated as "not set" and skipped.
type CLIOverrides struct {
	Socket   string
	LogLevel string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > embedded bytes > defaults.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value  → use that path ("" means no external file)
//
// An explicitly named file that cannot be read is an error; a discovered one
// that vanished is skipped.
func LoadLayered(cli CLIOverrides, embedded []byte, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded config: %w", err)
		}
	}

	var filePath string
	explicit := len(configPath) > 0
	if explicit {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		case explicit || !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cli.Socket != "" {
		cfg.Server.Socket = cli.Socket
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0640)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if socket := os.Getenv("STATUSBAR_SOCKET"); socket != "" {
		cfg.Server.Socket = socket
	}
	if level := os.Getenv("STATUSBAR_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if proc := os.Getenv("STATUSBAR_PROC"); proc != "" {
		cfg.Paths.Proc = proc
	}
	if sys := os.Getenv("STATUSBAR_SYS"); sys != "" {
		cfg.Paths.Sys = sys
	}
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var err error

	if c.Server.Socket == "" {
		err = multierr.Append(err, errors.New("server.socket is required"))
	}
	if c.Server.SocketMode.FileMode&0600 != 0600 {
		err = multierr.Append(err, fmt.Errorf("server.socket_mode %04o must allow owner read/write",
			uint32(c.Server.SocketMode.FileMode)))
	}
	if c.Server.WriteTimeout.Duration < 0 {
		err = multierr.Append(err, errors.New("server.write_timeout must not be negative"))
	}
	if !validLevels[c.Logging.Level] {
		err = multierr.Append(err, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	if c.Network.Source != "sysfs" && c.Network.Source != "procfs" {
		err = multierr.Append(err, fmt.Errorf("network.source %q is not one of sysfs, procfs", c.Network.Source))
	}
	for _, pattern := range c.Network.Ignore {
		if _, matchErr := filepath.Match(pattern, ""); matchErr != nil {
			err = multierr.Append(err, fmt.Errorf("network.ignore pattern %q: %w", pattern, matchErr))
		}
	}
	if c.CPUFreq.CPU < 0 {
		err = multierr.Append(err, errors.New("cpufreq.cpu must not be negative"))
	}

	if len(c.Collectors) == 0 {
		err = multierr.Append(err, errors.New("at least one collector is required"))
	}
	seen := make(map[string]bool, len(c.Collectors))
	for i, col := range c.Collectors {
		switch {
		case !knownCollectors[col.Name]:
			err = multierr.Append(err, fmt.Errorf("collectors[%d]: unknown collector %q", i, col.Name))
		case seen[col.Name]:
			err = multierr.Append(err, fmt.Errorf("collectors[%d]: duplicate collector %q", i, col.Name))
		}
		seen[col.Name] = true
		if col.Interval.Duration <= 0 {
			err = multierr.Append(err, fmt.Errorf("collectors[%d]: interval must be positive", i))
		}
	}

	return err
}
