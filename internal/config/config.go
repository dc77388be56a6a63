package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRootName names the root class when neither a root name nor a
// handler name is given.
const DefaultRootName = "Root"

// DefaultMaxDepth bounds JSON nesting accepted by the parser.
const DefaultMaxDepth = 1000

// Config represents the complete configuration for jsoncs
type Config struct {
	HandlerName string           `yaml:"handler_name"`
	RootSuffix  string           `yaml:"root_suffix"`
	RootName    string           `yaml:"root_name"`
	Formatting  FormattingConfig `yaml:"formatting"`
	Output      OutputConfig     `yaml:"output"`
	Types       TypesConfig      `yaml:"types"`
	Naming      NamingConfig     `yaml:"naming"`
	Limits      LimitsConfig     `yaml:"limits"`
	Dev         DevConfig        `yaml:"dev"`
}

// FormattingConfig controls code formatting options
type FormattingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// OutputConfig controls what surrounds the generated declarations
type OutputConfig struct {
	// Dir, when set, makes the CLI write <Dir>/<HandlerName>Handler.cs.
	Dir        string   `yaml:"dir"`
	Namespace  string   `yaml:"namespace"`
	FileHeader string   `yaml:"file_header"`
	Usings     []string `yaml:"usings"`
}

// TypesConfig is the primitive type table of the target language.
type TypesConfig struct {
	Text   string `yaml:"text"`
	Float  string `yaml:"float"`
	Bool   string `yaml:"bool"`
	Object string `yaml:"object"`
	// List is a format string with a single %s for the element type.
	List string `yaml:"list"`
}

// NamingConfig controls member naming
type NamingConfig struct {
	PascalCaseMembers bool `yaml:"pascal_case_members"`
}

// LimitsConfig bounds the input accepted by the parser
type LimitsConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		RootSuffix: "Request",
		Formatting: FormattingConfig{
			Enabled: true,
		},
		Output: OutputConfig{
			Usings: []string{"System", "System.Collections.Generic"},
		},
		Types: DefaultTypes(),
		Limits: LimitsConfig{
			MaxDepth: DefaultMaxDepth,
		},
	}
}

// DefaultTypes returns the C# primitive type table.
func DefaultTypes() TypesConfig {
	return TypesConfig{
		Text:   "string",
		Float:  "double",
		Bool:   "bool",
		Object: "object",
		List:   "List<%s>",
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	configNames := []string{".jsoncs.yml", ".jsoncs.yaml", "jsoncs.yml", "jsoncs.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			return ""
		}
		dir = parentDir
	}
}

// Validate checks the values that the generator and parser depend on.
func (c *Config) Validate() error {
	entries := []struct {
		key, value string
	}{
		{"types.text", c.Types.Text},
		{"types.float", c.Types.Float},
		{"types.bool", c.Types.Bool},
		{"types.object", c.Types.Object},
		{"types.list", c.Types.List},
	}
	for _, e := range entries {
		if strings.TrimSpace(e.value) == "" {
			return fmt.Errorf("%s must not be empty", e.key)
		}
	}
	if strings.Count(c.Types.List, "%s") != 1 {
		return fmt.Errorf("types.list %q must contain exactly one %%s", c.Types.List)
	}
	if c.Limits.MaxDepth <= 0 {
		return fmt.Errorf("limits.max_depth must be positive, got %d", c.Limits.MaxDepth)
	}
	return nil
}

// ResolveRootName returns the seed for the root class: an explicit root
// name, else the handler name plus the root suffix, else DefaultRootName.
func (c *Config) ResolveRootName() string {
	if c.RootName != "" {
		return c.RootName
	}
	if c.HandlerName != "" {
		return c.HandlerName + c.RootSuffix
	}
	return DefaultRootName
}

// HandlerFileName returns the file the CLI writes in Output.Dir.
func (c *Config) HandlerFileName() string {
	return c.HandlerName + "Handler.cs"
}

// Overrides carries CLI values. Empty strings and nil pointers leave the
// loaded configuration untouched.
type Overrides struct {
	HandlerName string
	RootName    string
	Dir         string
	Namespace   string
	Format      *bool
	Debug       bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if o.HandlerName != "" {
		cfg.HandlerName = o.HandlerName
	}
	if o.RootName != "" {
		cfg.RootName = o.RootName
	}
	if o.Dir != "" {
		cfg.Output.Dir = o.Dir
	}
	if o.Namespace != "" {
		cfg.Output.Namespace = o.Namespace
	}
	if o.Format != nil {
		cfg.Formatting.Enabled = *o.Format
	}
	// Debug can only be switched on from the command line.
	if o.Debug {
		cfg.Dev.Debug = true
	}

	return cfg, nil
}
