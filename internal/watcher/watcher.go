// Package watcher organizes TypeScript files when they are saved.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"member-organizer/internal/scanner"
	"member-organizer/internal/service"
	"member-organizer/internal/utils"
	"member-organizer/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

const tickInterval = 50 * time.Millisecond

// Invalidator drops cached configuration when a config file changes.
type Invalidator interface {
	Invalidate(path string)
}

// Stats tracks watcher activity.
type Stats struct {
	Events    int
	Organized int
	Changed   int
	Errors    int
}

// Watcher watches a directory tree and organizes saved files after they
// settle for the debounce interval.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	root        string
	service     service.OrganizeService
	scanner     *scanner.FileScanner
	ignore      scanner.Ignore
	invalidator Invalidator
	isConfig    func(path string) bool
	logger      logger.Logger

	pending     map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	stats       Stats
}

// Options wires the optional collaborators of a Watcher.
type Options struct {
	Debounce time.Duration
	// Invalidator and IsConfigFile together forward config file changes.
	Invalidator  Invalidator
	IsConfigFile func(path string) bool
}

func New(root string, svc service.OrganizeService, fs *scanner.FileScanner, logger logger.Logger, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	isConfig := opts.IsConfigFile
	if isConfig == nil {
		isConfig = func(string) bool { return false }
	}
	return &Watcher{
		watcher:     fw,
		root:        abs,
		service:     svc,
		scanner:     fs,
		ignore:      fs.LoadIgnoreRules(abs),
		invalidator: opts.Invalidator,
		isConfig:    isConfig,
		logger:      logger,
		pending:     make(map[string]time.Time),
		debounceDur: opts.Debounce,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start adds the tree to the watch list and runs the event loop in the
// background. When the tree cannot be watched the OS watches are released
// and Stop becomes a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addTree(w.root); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		if closeErr := w.watcher.Close(); closeErr != nil {
			w.logger.Error("close watcher: %v", closeErr)
		}
		return err
	}
	w.logger.Info("watching %s", w.root)

	go w.run(ctx)
	return nil
}

// Stop ends the event loop and releases the OS watches.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("close watcher: %v", err)
	}
	w.logger.Info("stopped watching %s", w.root)
}

func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// addTree watches dir and every directory below it that is not ignored.
// Only an unreadable dir itself is an error.
func (w *Watcher) addTree(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			w.logger.Warn("access %s failed: %v", path, err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != w.root {
			rel, ok := utils.ToSlashRel(w.root, path)
			if !ok || w.ignore.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher context done: %v", ctx.Err())
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		case <-ticker.C:
			w.processSettled(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		// a removed path may have been a directory holding config files
		gone := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
		if w.invalidator != nil && (gone || w.isConfig(event.Name)) {
			w.invalidator.Invalidate(event.Name)
		}
		return
	}

	w.mu.Lock()
	w.stats.Events++
	w.mu.Unlock()

	if w.isConfig(event.Name) {
		if w.invalidator != nil {
			w.invalidator.Invalidate(event.Name)
		}
		w.logger.Debug("configuration %s changed", event.Name)
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("watch new directory %s: %v", event.Name, err)
			}
		}
		return
	}
	if !w.scanner.Accepts(w.root, w.ignore, event.Name, info) {
		return
	}

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// processSettled organizes files whose last event is older than the debounce interval.
func (w *Watcher) processSettled(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		r := w.service.OrganizeFile(ctx, path, service.RunOptions{Write: true})
		w.mu.Lock()
		w.stats.Organized++
		switch r.Status {
		case service.StatusChanged:
			w.stats.Changed++
			w.logger.Info("organized %s", path)
		case service.StatusFailed:
			w.stats.Errors++
		}
		w.mu.Unlock()
	}
}
