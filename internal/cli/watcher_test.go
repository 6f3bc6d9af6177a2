package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_WatchesSourceTree(t *testing.T) {
	root := writeProject(t, "project.txtar")
	writeFile(t, root, "src/build/Out.java", "class Out {}")
	g, _ := newTestGenerator(nil, testTime)

	w, err := NewWatcher(g, recursive(root))
	require.NoError(t, err)
	defer w.watcher.Close()

	dirs := w.Directories()
	assert.Contains(t, dirs, root)
	assert.Contains(t, dirs, filepath.Join(root, "src", "com", "example", "client", "users", "dto"))
	assert.NotContains(t, dirs, filepath.Join(root, "src", "build"))
}

func TestWatcher_SingleDirectoryAndFile(t *testing.T) {
	root := writeProject(t, "project.txtar")
	users := filepath.Join(root, "src", "com", "example", "client", "users")
	g, _ := newTestGenerator(nil, testTime)

	w, err := NewWatcher(g, []string{users, filepath.Join(users, "UserBlockingClient.java")})
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.Equal(t, []string{users}, w.Directories())
}

func TestWatcher_MissingPath(t *testing.T) {
	g, _ := newTestGenerator(nil, testTime)
	_, err := NewWatcher(g, []string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
}

func TestWatcher_IsRelevant(t *testing.T) {
	root := t.TempDir()
	g, _ := newTestGenerator(nil, testTime)
	w, err := NewWatcher(g, []string{root})
	require.NoError(t, err)
	defer w.watcher.Close()

	own := filepath.Join(root, "UserAsynchronousClient.java")
	w.ownFiles[own] = true

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write source", fsnotify.Event{Name: filepath.Join(root, "A.java"), Op: fsnotify.Write}, true},
		{"create source", fsnotify.Event{Name: filepath.Join(root, "A.java"), Op: fsnotify.Create}, true},
		{"remove source", fsnotify.Event{Name: filepath.Join(root, "A.java"), Op: fsnotify.Remove}, true},
		{"rename source", fsnotify.Event{Name: filepath.Join(root, "A.java"), Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: filepath.Join(root, "A.java"), Op: fsnotify.Chmod}, false},
		{"other extension", fsnotify.Event{Name: filepath.Join(root, "notes.md"), Op: fsnotify.Write}, false},
		{"filer temp file", fsnotify.Event{Name: filepath.Join(root, ".dualgen-123.tmp"), Op: fsnotify.Create}, false},
		{"own output", fsnotify.Event{Name: own, Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.isRelevant(tt.event))
		})
	}
}

func TestWatcher_RegeneratesOnChange(t *testing.T) {
	root := writeProject(t, "project.txtar")
	g, _ := newTestGenerator(nil, testTime)

	w, err := NewWatcher(g, recursive(root))
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	summaries := make(chan GenerationSummary, 16)
	w.OnGenerate(func(summary GenerationSummary, err error) {
		summaries <- summary
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor := func(declarations int) GenerationSummary {
		t.Helper()
		timeout := time.After(10 * time.Second)
		for {
			select {
			case summary := <-summaries:
				if summary.Declarations == declarations {
					return summary
				}
			case <-timeout:
				t.Fatalf("no generation with %d declarations", declarations)
			}
		}
	}

	first := waitFor(2)
	assert.Len(t, first.GeneratedFiles, 2)

	writeFile(t, root, "src/com/example/client/orders/OrderBlockingClient.java",
		`package com.example.client.orders;

import com.example.annotation.annotation.ClientInterface;
import org.springframework.web.service.annotation.GetExchange;
import org.springframework.web.service.annotation.HttpExchange;

@ClientInterface
@HttpExchange("/orders")
public interface OrderBlockingClient {

  @GetExchange
  String orders();
}
`)

	second := waitFor(3)
	assert.Len(t, second.GeneratedFiles, 3)
	assert.Eventually(t, func() bool {
		return exists(root, "src/com/example/client/orders/OrderAsynchronousClient.java")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
