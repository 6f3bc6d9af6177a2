package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "dualgen v0.1.0", cfg.Generator.Identity())
	assert.Len(t, cfg.Markers.Operations, 5)
	assert.Equal(t, "Mono", SimpleName(cfg.Types.AsyncSingle))
	assert.Equal(t, "Flux", SimpleName(cfg.Types.AsyncMulti))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad version",
			mutate:  func(c *Config) { c.Generator.Version = "one.two" },
			wantErr: "not a semantic version",
		},
		{
			name:    "missing root marker",
			mutate:  func(c *Config) { c.Markers.Root = "" },
			wantErr: "markers.root is required",
		},
		{
			name:    "unqualified operation",
			mutate:  func(c *Config) { c.Markers.Operations = []string{"Get Exchange"} },
			wantErr: "not a qualified name",
		},
		{
			name:    "no operations",
			mutate:  func(c *Config) { c.Markers.Operations = nil },
			wantErr: "markers.operations is required",
		},
		{
			name:    "same style tokens",
			mutate:  func(c *Config) { c.Naming.AsyncToken = c.Naming.DirectToken },
			wantErr: "both",
		},
		{
			name:    "alias equals direct token",
			mutate:  func(c *Config) { c.Naming.AsyncAliases = []string{"Blocking"} },
			wantErr: "async alias",
		},
		{
			name:    "extension without dot",
			mutate:  func(c *Config) { c.Output.Extension = "java" },
			wantErr: "output.extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsValidVersion(t *testing.T) {
	assert.True(t, IsValidVersion("v1.2.3"))
	assert.True(t, IsValidVersion("1.2.3"))
	assert.True(t, IsValidVersion("v1.0.0-rc.1"))
	assert.False(t, IsValidVersion(""))
	assert.False(t, IsValidVersion("latest"))
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default().Markers, cfg.Markers)
	assert.Empty(t, cfg.Source)
}

func TestLoad_ProjectFileDiscoveredUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "main", "java")
	require.NoError(t, os.MkdirAll(nested, 0755))

	content := `
naming:
  async_token: Reactive
  async_aliases: [Asynchronous]
output:
  dir: build/generated
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "dualgen.yaml"), []byte(content), 0644))

	cfg, err := Load("", nested)
	require.NoError(t, err)
	assert.Equal(t, "Reactive", cfg.Naming.AsyncToken)
	assert.Equal(t, []string{"Asynchronous"}, cfg.Naming.AsyncAliases)
	assert.Equal(t, "build/generated", cfg.Output.Dir)
	assert.Equal(t, "Blocking", cfg.Naming.DirectToken)
	assert.Equal(t, filepath.Join(root, "dualgen.yaml"), cfg.Source)
}

func TestLoad_ExplicitTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	content := `
[generator]
version = "2.0.0"

[types]
async_single = "io.smallrye.mutiny.Uni"
async_multi = "io.smallrye.mutiny.Multi"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.Generator.Version)
	assert.Equal(t, "io.smallrye.mutiny.Uni", cfg.Types.AsyncSingle)
	assert.Equal(t, "java.util.List", cfg.Types.List)
}

func TestLoad_InvalidFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dualgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n  version: soon\n"), 0644))

	_, err := Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "semantic version")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("DUALGEN_OUTPUT_DIR", "out")
	t.Setenv("DUALGEN_NAMING_DIRECT_TOKEN", "Sync")

	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "Sync", cfg.Naming.DirectToken)
}

func TestKnownNames(t *testing.T) {
	names := Default().KnownNames()
	assert.Contains(t, names, "reactor.core.publisher.Mono")
	assert.Contains(t, names, "org.springframework.web.service.annotation.GetExchange")
	assert.Contains(t, names, "org.springframework.web.bind.annotation.PathVariable")
}
