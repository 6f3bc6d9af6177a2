package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/generator"
	"github.com/toyz/dualgen/internal/utils"
)

const (
	userClientPath    = "src/com/example/client/users/UserBlockingClient.java"
	userGeneratedPath = "src/com/example/client/users/UserAsynchronousClient.java"
	weatherGenerated  = "src/com/example/client/weather/WeatherBlockingClient.java"
)

const brokenSource = `package com.example.broken;

public interface Broken {
  void run(
`

const unrootedSource = `package com.example.client.orders;

import com.example.annotation.annotation.ClientInterface;
import org.springframework.web.service.annotation.GetExchange;

@ClientInterface
public interface OrderBlockingClient {

  @GetExchange("/orders")
  String orders();
}
`

// writeProject extracts a txtar fixture into a fresh directory
func writeProject(t *testing.T, name string) string {
	t.Helper()
	archive, err := txtar.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	root := t.TempDir()
	for _, f := range archive.Files {
		writeFile(t, root, f.Name, string(f.Data))
	}
	return root
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(content)
}

func exists(root, rel string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}

// testOutput captures what the CLI prints
type testOutput struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newTestDiagnostics(out *testOutput) *utils.DiagnosticSystem {
	d := utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	d.SetOutput(&out.stdout, &out.stderr)
	d.SetColors(false)
	d.SetShowTime(false)
	return d
}

func newTestReporter(out *testOutput) *DiagnosticReporter {
	r := NewDiagnosticReporter(false)
	r.SetOutput(&out.stderr)
	r.SetColors(false)
	return r
}

// newTestGenerator returns a generator with a fixed clock and captured output
func newTestGenerator(cfg *config.Config, at time.Time) (*Generator, *testOutput) {
	if cfg == nil {
		cfg = config.Default()
	}
	out := &testOutput{}
	g := NewGenerator(cfg, newTestDiagnostics(out), newTestReporter(out))
	g.WithRunOptions(generator.WithClock(func() time.Time { return at }))
	return g, out
}

var testTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func recursive(root string) []string {
	return []string{root + utils.RecursiveSuffix}
}
