package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	envWorkers  = "ALMANAC_WORKERS"
	envDebug    = "ALMANAC_DEBUG"
	envLogLevel = "ALMANAC_LOG_LEVEL"
)

// Config holds the settings of the almanac command.
//
// Values are resolved in this order: defaults, the YAML file, environment variables and
// finally command line flags.
type Config struct {
	// Workers is the number of seed ranges evaluated concurrently.
	Workers int `yaml:"workers"`
	// Debug logs every stage of every query. It also forces the debug log level.
	Debug    bool   `yaml:"debug"`
	LogLevel string `yaml:"log_level"`
	// Development switches to zap's human readable console output.
	Development bool `yaml:"development"`
	// StrictChain rejects sections that don't continue the previous one.
	StrictChain bool `yaml:"strict_chain"`
}

func Default() Config {
	return Config{
		Workers:     runtime.GOMAXPROCS(0),
		LogLevel:    "info",
		StrictChain: true,
	}
}

// Load reads the YAML file at path on top of the defaults and applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: fail to read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: fail to parse %q: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: invalid: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(envWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: fail to parse %s=%q: %w", envWorkers, v, err)
		}
		c.Workers = n
	}
	if v := os.Getenv(envDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: fail to parse %s=%q: %w", envDebug, v, err)
		}
		c.Debug = b
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Logger builds the zap logger described by c. Logs go to stderr.
func (c Config) Logger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if c.Debug {
		lvl = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
