package cli

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/utils"
)

// DefaultDebounce is how long the watcher waits for changes to settle
const DefaultDebounce = 500 * time.Millisecond

// tempFilePrefix matches the temp files the filesystem filer renames into place
const tempFilePrefix = ".dualgen-"

// GenerateCallback observes each generation the watcher runs
type GenerateCallback func(GenerationSummary, error)

// Watcher regenerates whenever sources below the watched patterns change.
// Each regeneration is a fresh run.
type Watcher struct {
	generator      *Generator
	patterns       []string
	watcher        *fsnotify.Watcher
	debouncePeriod time.Duration
	trigger        chan struct{}
	onGenerate     GenerateCallback

	mu            sync.Mutex
	debounceTimer *time.Timer
	watched       map[string]bool // directory -> recursive
	ownFiles      map[string]bool // files written by the last generation
}

// NewWatcher creates a watcher over the patterns
func NewWatcher(g *Generator, patterns []string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		generator:      g.EnableCache(),
		patterns:       patterns,
		watcher:        watcher,
		debouncePeriod: DefaultDebounce,
		trigger:        make(chan struct{}, 1),
		watched:        make(map[string]bool),
		ownFiles:       make(map[string]bool),
	}

	for _, pattern := range patterns {
		if err := w.watchPattern(pattern); err != nil {
			watcher.Close()
			return nil, err
		}
	}
	return w, nil
}

// SetDebounce changes the debounce period
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debouncePeriod = d
}

// OnGenerate registers a callback run after every generation
func (w *Watcher) OnGenerate(fn GenerateCallback) {
	w.onGenerate = fn
}

// Directories returns the watched directories
func (w *Watcher) Directories() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	dirs := make([]string, 0, len(w.watched))
	for dir := range w.watched {
		dirs = append(dirs, dir)
	}
	return dirs
}

// Run generates once and then after every settled batch of changes, until
// ctx is done. Generation failures are reported and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	diagnostics := w.generator.diagnostics
	w.generate(ctx)
	diagnostics.Info("watching %d directories for changes", len(w.Directories()))

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				w.watchNewDirectory(event.Name)
			}
			if !w.isRelevant(event) {
				continue
			}
			diagnostics.Verbose("%s %s", strings.ToLower(event.Op.String()), event.Name)
			w.scheduleGenerate()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			diagnostics.Warn("watcher error: %v", err)

		case <-w.trigger:
			w.generate(ctx)
		}
	}
}

// generate runs one generation and remembers the files it wrote
func (w *Watcher) generate(ctx context.Context) {
	summary, err := w.generator.Generate(ctx, w.patterns)
	if err != nil && !errors.Is(err, ErrGenerationFailed) && ctx.Err() == nil {
		w.generator.reporter.ReportError(err)
	}
	w.generator.PrintSummary(summary)

	own := make(map[string]bool, len(summary.GeneratedFiles))
	for _, file := range summary.GeneratedFiles {
		own[absPath(file)] = true
	}
	w.mu.Lock()
	w.ownFiles = own
	w.mu.Unlock()

	if w.onGenerate != nil {
		w.onGenerate(summary, err)
	}
}

// scheduleGenerate debounces rapid file changes
func (w *Watcher) scheduleGenerate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
}

// isRelevant reports whether an event should trigger a generation: a change
// to a source file that is neither a filer temp file nor our own output
func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, tempFilePrefix) {
		return false
	}
	if !strings.HasSuffix(base, w.generator.config.Output.Extension) {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.ownFiles[absPath(event.Name)]
}

// watchPattern adds the directories a pattern covers
func (w *Watcher) watchPattern(pattern string) error {
	root, recursive := utils.SplitPattern(pattern)
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrNotFound, "path %s", root)
		}
		return errors.Wrapf(err, "failed to access %s", root)
	}
	if !info.IsDir() {
		return w.watchDirectory(filepath.Dir(root), false)
	}
	if !recursive {
		return w.watchDirectory(root, false)
	}
	return w.watchTree(root)
}

// watchTree adds root and every directory below it the file processor
// would scan
func (w *Watcher) watchTree(root string) error {
	filter := utils.DefaultDirectoryFilter()
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && !filter(path, entry) {
			return filepath.SkipDir
		}
		return w.watchDirectory(path, true)
	})
}

func (w *Watcher) watchDirectory(dir string, recursive bool) error {
	dir = absPath(dir)

	w.mu.Lock()
	_, seen := w.watched[dir]
	if seen && (w.watched[dir] || !recursive) {
		w.mu.Unlock()
		return nil
	}
	w.watched[dir] = recursive
	w.mu.Unlock()

	if seen {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", dir)
	}
	return nil
}

// watchNewDirectory starts watching a directory created below a recursive root
func (w *Watcher) watchNewDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	recursive := w.watched[absPath(filepath.Dir(path))]
	w.mu.Unlock()
	if !recursive {
		return
	}

	if !utils.DefaultDirectoryFilter()(path, fs.FileInfoToDirEntry(info)) {
		return
	}
	if err := w.watchTree(path); err != nil {
		w.generator.diagnostics.Warn("%v", err)
		return
	}
	// Files may have landed before the watch was in place.
	w.scheduleGenerate()
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
