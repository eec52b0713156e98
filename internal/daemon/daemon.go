// Package daemon keeps a loaded site current while the preview server runs:
// it reloads on file changes, refreshes remote content on a schedule, and
// swaps the served state atomically.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/metrics"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/redirect"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/remotecontent"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/retry"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/site"
)

// state is one consistent view of the site. It is never modified after
// being published.
type state struct {
	site      *site.Site
	redirects *redirect.Table
	snapshot  string
	loadedAt  time.Time
}

// Daemon owns the served state of the site at configPath.
type Daemon struct {
	configPath string
	recorder   metrics.Recorder
	policy     retry.Policy

	current  atomic.Pointer[state]
	reloadMu sync.Mutex
}

// Option customises a Daemon.
type Option func(*Daemon)

func WithRecorder(r metrics.Recorder) Option {
	return func(d *Daemon) {
		if r != nil {
			d.recorder = r
		}
	}
}

// WithRetryPolicy sets the policy used for remote content downloads.
func WithRetryPolicy(p retry.Policy) Option {
	return func(d *Daemon) { d.policy = p }
}

// New loads and validates the site. The initial load must succeed.
func New(configPath string, opts ...Option) (*Daemon, error) {
	d := &Daemon{configPath: configPath, recorder: metrics.NoopRecorder{}, policy: retry.DefaultPolicy()}
	for _, opt := range opts {
		opt(d)
	}
	st, err := d.load()
	if err != nil {
		return nil, err
	}
	d.publish(st)
	slog.Info("Site loaded", logfields.Config(configPath), logfields.Snapshot(st.snapshot))
	return d, nil
}

// load builds a fresh state from disk. A missing docs directory is not an
// error; the site is served without a docs index.
func (d *Daemon) load() (*state, error) {
	s, err := site.Load(d.configPath)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.LoadIndex(); err != nil {
		if !derrors.HasCategory(err, derrors.CategoryNotFound) {
			return nil, err
		}
		slog.Warn("Docs directory missing, serving without docs index", logfields.Path(s.DocsDir()))
	}
	table, err := s.Redirects()
	if err != nil {
		return nil, err
	}
	return &state{site: s, redirects: table, snapshot: s.Snapshot(), loadedAt: time.Now()}, nil
}

func (d *Daemon) publish(st *state) {
	d.current.Store(st)
	if idx := st.site.Index(); idx != nil {
		d.recorder.SetIndexedDocs(idx.Len())
	} else {
		d.recorder.SetIndexedDocs(0)
	}
}

// Site returns the served site.
func (d *Daemon) Site() *site.Site { return d.current.Load().site }

// Redirects returns the served redirect table.
func (d *Daemon) Redirects() *redirect.Table { return d.current.Load().redirects }

// Snapshot returns the digest of the served site.
func (d *Daemon) Snapshot() string { return d.current.Load().snapshot }

// LoadedAt is when the served state was loaded.
func (d *Daemon) LoadedAt() time.Time { return d.current.Load().loadedAt }

// Reload rebuilds the state from disk and swaps it in when it is valid and
// differs from the served snapshot. An invalid reload keeps the served state
// and returns the error. The result reports whether a swap happened.
func (d *Daemon) Reload() (bool, error) {
	d.reloadMu.Lock()
	defer d.reloadMu.Unlock()

	st, err := d.load()
	if err != nil {
		d.recorder.IncReload(metrics.ResultFailed)
		slog.Error("Site reload failed, keeping current site", logfields.Config(d.configPath), logfields.Error(err))
		return false, err
	}
	if st.snapshot == d.Snapshot() {
		d.recorder.IncReload(metrics.ResultSkipped)
		slog.Debug("Site unchanged", logfields.Snapshot(st.snapshot))
		return false, nil
	}
	d.publish(st)
	d.recorder.IncReload(metrics.ResultSuccess)
	slog.Info("Site reloaded", logfields.Config(d.configPath), logfields.Snapshot(st.snapshot))
	return true, nil
}

// RefreshRemoteContent fetches every remote content activation that allows
// runtime downloads into the site directory, then reloads when anything was
// written. Fetch errors are joined; other activations still run.
func (d *Daemon) RefreshRemoteContent(ctx context.Context) error {
	s := d.Site()
	all, err := s.RemoteContent()
	if err != nil {
		return err
	}
	written := 0
	var errs []error
	for _, opts := range all {
		if opts.NoRuntimeDownloads {
			continue
		}
		res, err := remotecontent.NewFetcher(opts).
			WithPolicy(d.policy).
			WithRecorder(d.recorder).
			Fetch(ctx, s.Dir())
		if res != nil {
			written += len(res.Written)
		}
		if err != nil {
			slog.Error("Remote content refresh failed", logfields.Plugin(opts.Name), logfields.Error(err))
			errs = append(errs, err)
		}
	}
	if written > 0 {
		if _, err := d.Reload(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
