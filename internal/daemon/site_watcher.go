package daemon

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
)

// SiteWatcher reloads the daemon when the config file, the sidebars file,
// a .env file or anything under the docs directory changes.
type SiteWatcher struct {
	daemon       *Daemon
	watcher      *fsnotify.Watcher
	stopOnce     sync.Once
	stopChan     chan struct{}
	reloadChan   chan struct{}
	debounceTime time.Duration

	mu      sync.Mutex
	watched map[string]bool
}

// NewSiteWatcher creates a watcher with a 500ms debounce.
func NewSiteWatcher(d *Daemon) (*SiteWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRuntime, "failed to create file watcher").Build()
	}
	return &SiteWatcher{
		daemon:       d,
		watcher:      w,
		stopChan:     make(chan struct{}),
		reloadChan:   make(chan struct{}, 1),
		debounceTime: 500 * time.Millisecond,
		watched:      map[string]bool{},
	}, nil
}

// WithDebounce overrides the debounce interval.
func (sw *SiteWatcher) WithDebounce(d time.Duration) *SiteWatcher {
	if d > 0 {
		sw.debounceTime = d
	}
	return sw
}

// Start watches the site directories and begins the event loops.
func (sw *SiteWatcher) Start(ctx context.Context) error {
	if err := sw.syncWatches(); err != nil {
		return err
	}
	slog.Info("Starting site watcher", logfields.Config(sw.daemon.configPath))
	go sw.watchLoop(ctx)
	go sw.reloadLoop(ctx)
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (sw *SiteWatcher) Stop() error {
	var err error
	sw.stopOnce.Do(func() {
		slog.Info("Stopping site watcher")
		close(sw.stopChan)
		err = sw.watcher.Close()
	})
	return err
}

// syncWatches adds the config and sidebars directories plus every docs
// directory not yet watched. Directories are watched rather than files so
// editors that replace files by rename are still seen.
func (sw *SiteWatcher) syncWatches() error {
	s := sw.daemon.Site()
	dirs := []string{filepath.Dir(s.SidebarsPath()), s.Dir()}
	_ = filepath.WalkDir(s.DocsDir(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != s.DocsDir() && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
				return filepath.SkipDir
			}
			dirs = append(dirs, p)
		}
		return nil
	})

	sw.mu.Lock()
	defer sw.mu.Unlock()
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil || sw.watched[abs] {
			continue
		}
		if err := sw.watcher.Add(abs); err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to watch directory").
				WithContext("path", abs).
				Build()
		}
		sw.watched[abs] = true
	}
	return nil
}

// relevant reports whether a change to name can affect the loaded site.
func (sw *SiteWatcher) relevant(name string) bool {
	s := sw.daemon.Site()
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	for _, p := range []string{s.ConfigPath(), s.SidebarsPath()} {
		if pa, err := filepath.Abs(p); err == nil && pa == abs {
			return true
		}
	}
	if base := filepath.Base(abs); base == ".env" || base == ".env.local" {
		return filepath.Dir(abs) == mustAbs(s.Dir())
	}
	docs := mustAbs(s.DocsDir())
	return abs == docs || strings.HasPrefix(abs, docs+string(filepath.Separator))
}

func mustAbs(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

func (sw *SiteWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sw.stopChan:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod || !sw.relevant(event.Name) {
				continue
			}
			slog.Debug("Site file change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := sw.syncWatches(); err != nil {
						slog.Warn("Failed to watch new directories", logfields.Error(err))
					}
				}
			}
			sw.triggerReload()
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Site watcher error", logfields.Error(err))
		}
	}
}

// reloadLoop coalesces bursts of changes into one reload per debounce window.
func (sw *SiteWatcher) reloadLoop(ctx context.Context) {
	var reloadTimer *time.Timer
	stop := func() {
		if reloadTimer != nil {
			reloadTimer.Stop()
		}
	}
	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-sw.stopChan:
			stop()
			return
		case <-sw.reloadChan:
			stop()
			reloadTimer = time.AfterFunc(sw.debounceTime, sw.performReload)
		}
	}
}

func (sw *SiteWatcher) triggerReload() {
	select {
	case sw.reloadChan <- struct{}{}:
	default:
	}
}

// performReload reloads the site, then watches any docs directory created
// since the last pass, whether or not the snapshot changed.
func (sw *SiteWatcher) performReload() {
	// Reload logs its own failures.
	_, _ = sw.daemon.Reload()
	if err := sw.syncWatches(); err != nil {
		slog.Warn("Failed to watch new directories", logfields.Error(err))
	}
}
