// Package config loads pagelayout settings from defaults, a YAML file,
// PAGELAYOUT_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pagelayout/format"
	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/reader"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "PAGELAYOUT"

// Config holds pagelayout configuration.
type Config struct {
	XTolerance      float64 `mapstructure:"x_tolerance" yaml:"x_tolerance"`             // Max gap inside a word
	YTolerance      float64 `mapstructure:"y_tolerance" yaml:"y_tolerance"`             // Line quantization step
	DefaultFontSize float64 `mapstructure:"default_font_size" yaml:"default_font_size"` // Stats for pages without words
	LineOrder       string  `mapstructure:"line_order" yaml:"line_order"`               // "source" or "top-down"

	Tables bool `mapstructure:"tables" yaml:"tables"` // Detect ruled tables
	Images bool `mapstructure:"images" yaml:"images"` // Report image placements

	Workers int    `mapstructure:"workers" yaml:"workers"` // Documents processed in parallel
	Format  string `mapstructure:"format" yaml:"format"`   // json, markdown or html

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`   // logrus level name
	LogFormat string `mapstructure:"log_format" yaml:"log_format"` // text or json
	Progress  bool   `mapstructure:"progress" yaml:"progress"`     // Show a progress bar
}

// Default returns configuration with the standard defaults.
func Default() *Config {
	return &Config{
		XTolerance:      layout.DefaultXTolerance,
		YTolerance:      layout.DefaultYTolerance,
		DefaultFontSize: layout.DefaultFontSize,
		LineOrder:       layout.LineOrderSource.String(),
		Tables:          true,
		Images:          true,
		Workers:         1,
		Format:          format.JSON.String(),
		LogLevel:        "info",
		LogFormat:       "text",
		Progress:        true,
	}
}

// values returns every setting by key, used for defaults and flag binding
func (c *Config) values() map[string]interface{} {
	return map[string]interface{}{
		"x_tolerance":       c.XTolerance,
		"y_tolerance":       c.YTolerance,
		"default_font_size": c.DefaultFontSize,
		"line_order":        c.LineOrder,
		"tables":            c.Tables,
		"images":            c.Images,
		"workers":           c.Workers,
		"format":            c.Format,
		"log_level":         c.LogLevel,
		"log_format":        c.LogFormat,
		"progress":          c.Progress,
	}
}

// Load reads configuration. cfgFile names a config file; when empty,
// pagelayout.yaml is searched for in the working directory and in
// $HOME/.pagelayout, and a missing file is not an error. Flags in flags
// named like the keys with dashes (x-tolerance, log-level, ...) override
// every other source when set. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	for key, val := range Default().values() {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pagelayout")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pagelayout")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for key := range Default().values() {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", f.Name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	var errs []error

	if !(c.XTolerance >= 0) {
		errs = append(errs, fmt.Errorf("x_tolerance must not be negative, got %v", c.XTolerance))
	}
	if !(c.YTolerance > 0) {
		errs = append(errs, fmt.Errorf("y_tolerance must be positive, got %v", c.YTolerance))
	}
	if !(c.DefaultFontSize > 0) {
		errs = append(errs, fmt.Errorf("default_font_size must be positive, got %v", c.DefaultFontSize))
	}
	if _, ok := layout.ParseLineOrder(c.LineOrder); !ok {
		errs = append(errs, fmt.Errorf("line_order must be source or top-down, got %q", c.LineOrder))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if _, err := format.Parse(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// AnalyzerConfig converts the layout settings
func (c *Config) AnalyzerConfig() layout.AnalyzerConfig {
	order, _ := layout.ParseLineOrder(c.LineOrder)
	return layout.AnalyzerConfig{
		Cluster: layout.ClusterConfig{
			XTolerance: c.XTolerance,
			YTolerance: c.YTolerance,
			Order:      order,
		},
		DefaultFontSize: c.DefaultFontSize,
	}
}

// ReaderOptions converts the PDF reader settings
func (c *Config) ReaderOptions() reader.Options {
	opts := reader.DefaultOptions()
	opts.Tables = c.Tables
	opts.Images = c.Images
	return opts
}

// OutputFormat returns the parsed output format
func (c *Config) OutputFormat() format.Format {
	f, err := format.Parse(c.Format)
	if err != nil {
		return format.JSON
	}
	return f
}

// Logger builds a logrus logger from the log settings
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# pagelayout configuration
# Every key can also be set as PAGELAYOUT_<KEY>, e.g. PAGELAYOUT_WORKERS=4

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
