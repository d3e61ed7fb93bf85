package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/utils/pointer"
)

const (
	DefaultHealthCheckTimeout = 120
	DefaultStartPort          = 5800
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var LogLevels = []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}

func ParseLogLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range LogLevels {
		if level == known {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
}

func (l *LogLevel) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	level, err := ParseLogLevel(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*l = level
	return nil
}

// Config is the llama-swap configuration document. Keys this tool does not
// know about are kept in Extra and written back unchanged.
type Config struct {
	HealthCheckTimeout *int                    `yaml:"healthCheckTimeout,omitempty"`
	LogLevel           *LogLevel               `yaml:"logLevel,omitempty"`
	StartPort          *int                    `yaml:"startPort,omitempty"`
	Macros             map[string]string       `yaml:"macros,omitempty"`
	Models             map[string]*ModelConfig `yaml:"models"`
	Groups             map[string]*GroupConfig `yaml:"groups,omitempty"`
	Extra              map[string]any          `yaml:",inline"`
}

type ModelConfig struct {
	Cmd           string            `yaml:"cmd"`
	Env           []string          `yaml:"env,omitempty"`
	CmdStop       string            `yaml:"cmdStop,omitempty"`
	Proxy         string            `yaml:"proxy,omitempty"`
	Aliases       []string          `yaml:"aliases,omitempty"`
	CheckEndpoint string            `yaml:"checkEndpoint,omitempty"`
	TTL           *int              `yaml:"ttl,omitempty"`
	UseModelName  string            `yaml:"useModelName,omitempty"`
	Filters       map[string]string `yaml:"filters,omitempty"`
	Unlisted      bool              `yaml:"unlisted,omitempty"`
	Extra         map[string]any    `yaml:",inline"`
}

type GroupConfig struct {
	Swap       *bool          `yaml:"swap,omitempty"`
	Exclusive  *bool          `yaml:"exclusive,omitempty"`
	Persistent *bool          `yaml:"persistent,omitempty"`
	Members    []string       `yaml:"members"`
	Extra      map[string]any `yaml:",inline"`
}

// Default is the document used when no input config is given.
func Default() *Config {
	level := LogLevelInfo
	return &Config{
		HealthCheckTimeout: pointer.Int(DefaultHealthCheckTimeout),
		LogLevel:           &level,
		Macros:             map[string]string{},
		Models:             map[string]*ModelConfig{},
		Groups:             map[string]*GroupConfig{},
	}
}

func NewModelConfig(cmd string) *ModelConfig {
	return &ModelConfig{Cmd: cmd}
}

func (c *Config) ensureMaps() {
	if c.Macros == nil {
		c.Macros = map[string]string{}
	}
	if c.Models == nil {
		c.Models = map[string]*ModelConfig{}
	}
	if c.Groups == nil {
		c.Groups = map[string]*GroupConfig{}
	}
}

func (c *Config) Validate() error {
	for id, model := range c.Models {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("models: empty model id")
		}
		if model == nil || strings.TrimSpace(model.Cmd) == "" {
			return fmt.Errorf("models.%s: cmd is required", id)
		}
	}
	for name, group := range c.Groups {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("groups: empty group name")
		}
		if group == nil {
			return fmt.Errorf("groups.%s: members is required", name)
		}
	}
	return nil
}
