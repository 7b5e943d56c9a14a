package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"ramlconv/internal/backend"
	"ramlconv/internal/generator"
)

// ErrInvalidConfig marks configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the complete configuration.
type Config struct {
	InputDirectory       string             `yaml:"inputDirectory" json:"inputDirectory"`
	InputFileName        string             `yaml:"inputFileName" json:"inputFileName"`
	OutputDirectory      string             `yaml:"outputDirectory" json:"outputDirectory"`
	GenerateDescriptions bool               `yaml:"generateDescriptions" json:"generateDescriptions"`
	XMLNamespace         string             `yaml:"xmlNamespace" json:"xmlNamespace"`
	RootTypes            []string           `yaml:"rootTypes" json:"rootTypes"`
	IncludeTypes         []string           `yaml:"includeTypes" json:"includeTypes"`
	ExcludeTypes         []string           `yaml:"excludeTypes" json:"excludeTypes"`
	Backends             map[string]Backend `yaml:"backends" json:"backends"`

	// TypeMappings overrides type strings per backend, e.g.
	// {"csharp": {"datetime": "DateTime"}}.
	TypeMappings map[string]map[string]string `yaml:"typeMappings" json:"typeMappings"`
}

// Backend represents one backend section.
type Backend struct {
	Enabled         bool   `yaml:"enabled" json:"enabled"`
	OutputDirectory string `yaml:"outputDirectory" json:"outputDirectory"`
	Namespace       string `yaml:"namespace" json:"namespace"`
	IndentSize      *int   `yaml:"indentSize" json:"indentSize"`
	DisableLint     bool   `yaml:"disableLint" json:"disableLint"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		XMLNamespace: DefaultXMLNamespace,
		Backends:     DefaultBackends(),
		TypeMappings: map[string]map[string]string{},
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return errors.Mark(errors.Wrap(err, "parsing YAML config"), ErrInvalidConfig)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return errors.Mark(errors.Wrap(err, "parsing JSON config"), ErrInvalidConfig)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return errors.Wrapf(ErrInvalidConfig, "unable to parse %s as YAML or JSON", path)
			}
		}
	}

	// Merge loaded config with defaults
	c.merge(&loaded)

	return nil
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	if loaded.InputDirectory != "" {
		c.InputDirectory = loaded.InputDirectory
	}
	if loaded.InputFileName != "" {
		c.InputFileName = loaded.InputFileName
	}
	if loaded.OutputDirectory != "" {
		c.OutputDirectory = loaded.OutputDirectory
	}
	if loaded.XMLNamespace != "" {
		c.XMLNamespace = loaded.XMLNamespace
	}
	if loaded.GenerateDescriptions {
		c.GenerateDescriptions = true
	}
	if loaded.RootTypes != nil {
		c.RootTypes = loaded.RootTypes
	}
	if loaded.IncludeTypes != nil {
		c.IncludeTypes = loaded.IncludeTypes
	}
	if loaded.ExcludeTypes != nil {
		c.ExcludeTypes = loaded.ExcludeTypes
	}

	// Merge backend sections field by field (loaded values override defaults)
	for name, section := range loaded.Backends {
		name = strings.ToLower(name)
		current := c.Backends[name]
		if section.Enabled {
			current.Enabled = true
		}
		if section.OutputDirectory != "" {
			current.OutputDirectory = section.OutputDirectory
		}
		if section.Namespace != "" {
			current.Namespace = section.Namespace
		}
		if section.IndentSize != nil {
			current.IndentSize = section.IndentSize
		}
		if section.DisableLint {
			current.DisableLint = true
		}
		c.Backends[name] = current
	}

	// Merge type mappings
	for name, mappings := range loaded.TypeMappings {
		name = strings.ToLower(name)
		if c.TypeMappings[name] == nil {
			c.TypeMappings[name] = map[string]string{}
		}
		for k, v := range mappings {
			c.TypeMappings[name][k] = v
		}
	}
}

// Validate rejects unknown backend names and negative indent sizes.
func (c *Config) Validate() error {
	for name, section := range c.Backends {
		if _, err := backend.Parse(name); err != nil {
			return errors.Mark(errors.Wrap(err, "backends"), ErrInvalidConfig)
		}
		if section.IndentSize != nil && *section.IndentSize < 0 {
			return errors.Wrapf(ErrInvalidConfig, "backends.%s.indentSize must not be negative, got %d", name, *section.IndentSize)
		}
	}
	for name := range c.TypeMappings {
		if _, err := backend.Parse(name); err != nil {
			return errors.Mark(errors.Wrap(err, "typeMappings"), ErrInvalidConfig)
		}
	}
	return nil
}

// EnableBackend turns a backend on.
func (c *Config) EnableBackend(kind backend.Kind) {
	section := c.Backends[string(kind)]
	section.Enabled = true
	c.Backends[string(kind)] = section
}

// EnabledBackends returns the enabled backends in run order.
func (c *Config) EnabledBackends() []backend.Kind {
	var kinds []backend.Kind
	for _, kind := range backend.Kinds {
		if c.Backends[string(kind)].Enabled {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// InputDir returns the directory scanned for documents. It defaults to the
// working directory.
func (c *Config) InputDir() string {
	if c.InputDirectory == "" {
		return "."
	}
	return c.InputDirectory
}

// OutputDir returns the global output directory. It defaults to the input
// directory.
func (c *Config) OutputDir() string {
	if c.OutputDirectory == "" {
		return c.InputDir()
	}
	return c.OutputDirectory
}

// OptionsFor builds the generator options for one backend. Section values
// override global ones.
func (c *Config) OptionsFor(kind backend.Kind) generator.Options {
	section := c.Backends[string(kind)]

	opts := generator.Options{
		GenerateDescriptions: c.GenerateDescriptions,
		XMLNamespace:         c.XMLNamespace,
		OutputDirectory:      c.OutputDir(),
		IndentSize:           section.IndentSize,
		DisableLint:          section.DisableLint,
		TypeMappings:         c.TypeMappings[string(kind)],
		IncludeTypes:         c.IncludeTypes,
		ExcludeTypes:         c.ExcludeTypes,
	}

	if section.OutputDirectory != "" {
		opts.OutputDirectory = section.OutputDirectory
	}

	switch kind {
	case backend.XSD:
		if section.Namespace != "" {
			opts.XMLNamespace = section.Namespace
		}
	case backend.CSharp:
		opts.TargetNamespace = section.Namespace
	}

	return opts
}
