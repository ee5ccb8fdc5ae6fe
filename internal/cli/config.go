package cli

import (
	"bytes"
	"context"
	"os"
	"regexp"
	"strconv"
	"strings"

	fusesandbox "github.com/Argor57/fuseSandbox"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

// Config represents a configuration shared by the probe binaries. Each
// binary only reads the sections it needs.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Access  AccessConfig  `yaml:"access"`
	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// NewConfig returns a new instance of Config with defaults set.
func NewConfig() Config {
	var config Config
	config.Tracing.MaxSize = DefaultTracingMaxSize
	config.Tracing.MaxCount = DefaultTracingMaxCount
	config.Tracing.Compress = DefaultTracingCompress
	return config
}

// LogConfig represents the configuration for the demo logger.
type LogConfig struct {
	// Overrides the built-in default log path. LOG_PATH still takes precedence.
	Path string `yaml:"path"`
}

// AccessConfig represents the configuration for the access checker.
type AccessConfig struct {
	// If true, any failed probe causes a non-zero exit status.
	Strict bool `yaml:"strict"`
}

// Tracing configuration defaults.
const (
	DefaultTracingMaxSize  = 16 // MB
	DefaultTracingMaxCount = 4
	DefaultTracingCompress = true
)

// TracingConfig represents the configuration for the on-disk trace log.
type TracingConfig struct {
	Path     string `yaml:"path"`
	MaxSize  int    `yaml:"max-size"`
	MaxCount int    `yaml:"max-count"`
	Compress bool   `yaml:"compress"`
}

// MetricsConfig represents the configuration for the metrics textfile export.
type MetricsConfig struct {
	Path string `yaml:"path"`
}

// Log path sources, as reported by ResolveLogPath.
const (
	LogPathSourceEnv     = "env"
	LogPathSourceConfig  = "config"
	LogPathSourceDefault = "default"
)

// ResolveLogPath returns the demo log path and where it came from. A non-empty
// LOG_PATH wins, then the config file, then the built-in default.
func (c *Config) ResolveLogPath(getenv func(string) string) (path, source string) {
	if v := getenv(fusesandbox.LogPathEnv); v != "" {
		path, source = v, LogPathSourceEnv
	} else if c.Log.Path != "" {
		path, source = c.Log.Path, LogPathSourceConfig
	} else {
		path, source = fusesandbox.DefaultLogPath, LogPathSourceDefault
	}
	slog.Debug("log path resolved", slog.String("path", path), slog.String("source", source))
	return path, source
}

// UnmarshalConfig unmarshals config from data.
// If expandEnv is true then environment variables are expanded in the config.
func UnmarshalConfig(config *Config, data []byte, expandEnv bool) error {
	// Expand environment variables, if enabled.
	if expandEnv {
		data = []byte(ExpandEnv(string(data)))
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // strict checking
	if err := dec.Decode(config); err != nil {
		return err
	}
	return nil
}

// ReadConfigFile reads & unmarshals the configuration file at path.
// There is no search path: the file is only read when explicitly requested.
func ReadConfigFile(ctx context.Context, path string, expandEnv bool, config *Config) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := UnmarshalConfig(config, buf, expandEnv); err != nil {
		return err
	}
	slog.Debug("config file read", slog.String("path", path))
	return nil
}

// ExpandEnv replaces environment variables just like os.ExpandEnv() but also
// allows for equality/inequality binary expressions within the ${} form.
func ExpandEnv(s string) string {
	return os.Expand(s, func(v string) string {
		v = strings.TrimSpace(v)

		if a := expandExprSingleQuote.FindStringSubmatch(v); a != nil {
			return compare(os.Getenv(a[1]), a[2], a[3])
		}

		if a := expandExprDoubleQuote.FindStringSubmatch(v); a != nil {
			return compare(os.Getenv(a[1]), a[2], a[3])
		}

		if a := expandExprVar.FindStringSubmatch(v); a != nil {
			return compare(os.Getenv(a[1]), a[2], os.Getenv(a[3]))
		}

		return os.Getenv(v)
	})
}

func compare(x, op, y string) string {
	if op == "==" {
		return strconv.FormatBool(x == y)
	}
	return strconv.FormatBool(x != y)
}

var (
	expandExprSingleQuote = regexp.MustCompile(`^(\w+)\s*(==|!=)\s*'(.*)'$`)
	expandExprDoubleQuote = regexp.MustCompile(`^(\w+)\s*(==|!=)\s*"(.*)"$`)
	expandExprVar         = regexp.MustCompile(`^(\w+)\s*(==|!=)\s*(\w+)$`)
)
