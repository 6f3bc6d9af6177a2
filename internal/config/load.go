package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/toyz/dualgen/internal/errors"
)

// EnvPrefix prefixes environment overrides, e.g. DUALGEN_OUTPUT_DIR
const EnvPrefix = "DUALGEN"

// projectConfigNames are searched in each directory, in order
var projectConfigNames = []string{"dualgen.yaml", "dualgen.yml", "dualgen.toml", ".dualgen.yaml"}

// SetDefaults registers every default value with v. Environment overrides only
// apply to keys viper knows about, so every key is registered here.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("generator.name", d.Generator.Name)
	v.SetDefault("generator.version", d.Generator.Version)
	v.SetDefault("generator.annotation", d.Generator.Annotation)

	v.SetDefault("markers.trigger", d.Markers.Trigger)
	v.SetDefault("markers.root", d.Markers.Root)
	v.SetDefault("markers.operations", d.Markers.Operations)
	v.SetDefault("markers.named_bindings", d.Markers.NamedBindings)
	v.SetDefault("markers.named_binding_attributes", d.Markers.NamedBindingAttributes)

	v.SetDefault("types.list", d.Types.List)
	v.SetDefault("types.async_single", d.Types.AsyncSingle)
	v.SetDefault("types.async_multi", d.Types.AsyncMulti)

	v.SetDefault("naming.client_suffix", d.Naming.ClientSuffix)
	v.SetDefault("naming.direct_token", d.Naming.DirectToken)
	v.SetDefault("naming.async_token", d.Naming.AsyncToken)
	v.SetDefault("naming.async_aliases", d.Naming.AsyncAliases)

	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.extension", d.Output.Extension)
}

// Load reads the configuration. An explicit path must exist; otherwise the
// nearest project config above startDir is used when present. Environment
// variables override file values. The result is validated.
func Load(path, startDir string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path == "" {
		path = FindProjectConfig(startDir)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "failed to read config file %s", path),
				"config files may be YAML or TOML; see dualgen.example.yaml for the available keys",
			)
		}
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	if path != "" {
		cfg.Source = path
	}
	return cfg, nil
}

// LoadWithViper unmarshals and validates the configuration held by v
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindProjectConfig walks up from dir looking for a dualgen config file.
// It returns an empty string when none is found.
func FindProjectConfig(dir string) string {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range projectConfigNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
