package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all readygate configuration.
type Config struct {
	Gate   GateConfig
	Probe  ProbeConfig
	Status StatusConfig
	Log    LogConfig
}

// GateConfig holds the retry policy.
type GateConfig struct {
	Interval    time.Duration
	MaxAttempts int           // 0 = unlimited
	Timeout     time.Duration // 0 = wait forever
}

// ProbeConfig holds HTTP probe settings.
type ProbeConfig struct {
	Method       string
	Timeout      time.Duration
	ExpectStatus string // e.g. "200-299,301"; empty accepts any response
	Insecure     bool
}

// StatusConfig holds the optional status server settings.
type StatusConfig struct {
	Addr            string // empty disables the server
	ShutdownTimeout time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"interval":      "gate.interval",
	"max-attempts":  "gate.max_attempts",
	"timeout":       "gate.timeout",
	"method":        "probe.method",
	"probe-timeout": "probe.timeout",
	"expect-status": "probe.expect_status",
	"insecure":      "probe.insecure",
	"status-addr":   "status.addr",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

// registerFlags adds the configuration flags to fs.
func registerFlags(fs *pflag.FlagSet) {
	fs.Duration("interval", time.Second, "delay between probes")
	fs.Int("max-attempts", 0, "give up after this many probes (0 = unlimited)")
	fs.Duration("timeout", 0, "give up after this long (0 = wait forever)")
	fs.String("method", "GET", "HTTP method used for probes")
	fs.Duration("probe-timeout", 0, "timeout for a single probe (0 = transport default)")
	fs.String("expect-status", "", "accepted status codes, e.g. 200-299,301 (empty = any response)")
	fs.Bool("insecure", false, "skip TLS certificate verification")
	fs.String("status-addr", "", "serve /healthz, /readyz, /status and /metrics on this address")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-format", "text", "log format (text or json)")
}

// LoadConfig loads configuration from file, environment variables and flags.
// Flags take precedence over the environment, which takes precedence over the file.
func LoadConfig(configPath string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("readygate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Enable environment variable overrides, e.g. READYGATE_GATE_INTERVAL
	v.SetEnvPrefix("readygate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("gate.interval", "1s")
	v.SetDefault("gate.max_attempts", 0)
	v.SetDefault("gate.timeout", "0s")

	v.SetDefault("probe.method", "GET")
	v.SetDefault("probe.timeout", "0s")
	v.SetDefault("probe.expect_status", "")
	v.SetDefault("probe.insecure", false)

	v.SetDefault("status.addr", "")
	v.SetDefault("status.shutdown_timeout", "5s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; using defaults
	}

	var config Config

	config.Gate.Interval = v.GetDuration("gate.interval")
	config.Gate.MaxAttempts = v.GetInt("gate.max_attempts")
	config.Gate.Timeout = v.GetDuration("gate.timeout")

	config.Probe.Method = v.GetString("probe.method")
	config.Probe.Timeout = v.GetDuration("probe.timeout")
	config.Probe.ExpectStatus = v.GetString("probe.expect_status")
	config.Probe.Insecure = v.GetBool("probe.insecure")

	config.Status.Addr = v.GetString("status.addr")
	config.Status.ShutdownTimeout = v.GetDuration("status.shutdown_timeout")

	config.Log.Level = v.GetString("log.level")
	config.Log.Format = v.GetString("log.format")

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.Gate.Interval <= 0 {
		return fmt.Errorf("gate.interval must be positive, got %s", c.Gate.Interval)
	}
	if c.Gate.MaxAttempts < 0 {
		return fmt.Errorf("gate.max_attempts must not be negative, got %d", c.Gate.MaxAttempts)
	}
	if c.Gate.Timeout < 0 || c.Probe.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}
