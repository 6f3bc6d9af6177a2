// Package config holds the generator settings: which markers drive generation,
// which container types carry each calling style, and how generated files are
// named and written.
package config

import (
	"strings"
)

// DefaultVersion is the generator version recorded in generated files
const DefaultVersion = "v0.1.0"

// Config is the complete generator configuration
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Markers   MarkerConfig    `mapstructure:"markers"`
	Types     TypeConfig      `mapstructure:"types"`
	Naming    NamingConfig    `mapstructure:"naming"`
	Output    OutputConfig    `mapstructure:"output"`

	Source string `mapstructure:"-"` // file the config was read from, empty for defaults
}

// GeneratorConfig identifies the generator in generated files
type GeneratorConfig struct {
	Name       string `mapstructure:"name" validate:"required"`
	Version    string `mapstructure:"version" validate:"required,semver"`
	Annotation string `mapstructure:"annotation" validate:"required,qualified"` // metadata marker type
}

// Identity returns the generator identity written to the metadata block
func (g GeneratorConfig) Identity() string {
	return g.Name + " " + g.Version
}

// MarkerConfig names the markers the classifier looks for, as qualified names
type MarkerConfig struct {
	Trigger                string   `mapstructure:"trigger" validate:"required,qualified"`
	Root                   string   `mapstructure:"root" validate:"required,qualified"`
	Operations             []string `mapstructure:"operations" validate:"required,min=1,dive,qualified"`
	NamedBindings          []string `mapstructure:"named_bindings" validate:"dive,qualified"`
	NamedBindingAttributes []string `mapstructure:"named_binding_attributes" validate:"required,min=1,dive,required"`
}

// TypeConfig names the container types of each style
type TypeConfig struct {
	List        string `mapstructure:"list" validate:"required,qualified"`
	AsyncSingle string `mapstructure:"async_single" validate:"required,qualified"`
	AsyncMulti  string `mapstructure:"async_multi" validate:"required,qualified"`
}

// NamingConfig drives derivation of generated type names
type NamingConfig struct {
	ClientSuffix string   `mapstructure:"client_suffix" validate:"required"`
	DirectToken  string   `mapstructure:"direct_token" validate:"required"`
	AsyncToken   string   `mapstructure:"async_token" validate:"required"`
	AsyncAliases []string `mapstructure:"async_aliases" validate:"dive,required"` // also stripped from asynchronous sources
}

// OutputConfig controls where generated files go
type OutputConfig struct {
	Dir       string `mapstructure:"dir"` // empty writes beside the originating source root
	Extension string `mapstructure:"extension" validate:"required,startswith=."`
}

// Default returns the configuration matching the Spring HTTP interface client setup
func Default() *Config {
	const exchange = "org.springframework.web.service.annotation."
	const bind = "org.springframework.web.bind.annotation."

	return &Config{
		Generator: GeneratorConfig{
			Name:       "dualgen",
			Version:    DefaultVersion,
			Annotation: "javax.annotation.processing.Generated",
		},
		Markers: MarkerConfig{
			Trigger: "com.example.annotation.annotation.ClientInterface",
			Root:    exchange + "HttpExchange",
			Operations: []string{
				exchange + "DeleteExchange",
				exchange + "GetExchange",
				exchange + "PatchExchange",
				exchange + "PostExchange",
				exchange + "PutExchange",
			},
			NamedBindings:          []string{bind + "RequestParam", bind + "PathVariable"},
			NamedBindingAttributes: []string{"name", "value"},
		},
		Types: TypeConfig{
			List:        "java.util.List",
			AsyncSingle: "reactor.core.publisher.Mono",
			AsyncMulti:  "reactor.core.publisher.Flux",
		},
		Naming: NamingConfig{
			ClientSuffix: "Client",
			DirectToken:  "Blocking",
			AsyncToken:   "Asynchronous",
			AsyncAliases: []string{"Reactive"},
		},
		Output: OutputConfig{
			Extension: ".java",
		},
	}
}

// KnownNames returns every qualified name the generator cares about. Hosts use
// it to resolve simple names imported through wildcard imports.
func (c *Config) KnownNames() []string {
	names := []string{
		c.Markers.Trigger,
		c.Markers.Root,
		c.Types.List,
		c.Types.AsyncSingle,
		c.Types.AsyncMulti,
	}
	names = append(names, c.Markers.Operations...)
	names = append(names, c.Markers.NamedBindings...)
	return names
}

// SimpleName returns the last segment of a qualified name
func SimpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
