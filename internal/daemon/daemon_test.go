package daemon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/config"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/retry"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/sidebar"
)

type testSite struct {
	dir        string
	configPath string
	sidebars   string
}

func newTestSite(t *testing.T) testSite {
	t.Helper()
	dir := t.TempDir()
	ts := testSite{dir: dir, configPath: filepath.Join(dir, "site.yaml"), sidebars: filepath.Join(dir, "sidebars.yaml")}
	require.NoError(t, config.Init(ts.configPath, false))
	require.NoError(t, sidebar.Init(ts.sidebars, false))
	ts.writeDoc(t, "introduction.md", "# Introduction\n")
	return ts
}

func (ts testSite) writeDoc(t *testing.T, rel, content string) {
	t.Helper()
	p := filepath.Join(ts.dir, "docs", filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func (ts testSite) writeSidebars(t *testing.T, sb *sidebar.Sidebars) {
	t.Helper()
	data, err := sidebar.Marshal(sb)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(ts.sidebars, data, 0o600))
}

func TestNew_LoadsSite(t *testing.T) {
	ts := newTestSite(t)
	d, err := New(ts.configPath)
	require.NoError(t, err)
	require.Equal(t, 1, d.Site().Index().Len())
	require.NotEmpty(t, d.Snapshot())

	to, ok := d.Redirects().Resolve("/faq/faq-ps4-ps5-compatibility")
	require.True(t, ok)
	require.Equal(t, "/faq/faq-console-compatibility", to)
}

func TestNew_InvalidSiteFails(t *testing.T) {
	ts := newTestSite(t)
	ts.writeSidebars(t, sidebar.New().Set("docSidebar", sidebar.Doc{ID: "introduction"}))
	_, err := New(ts.configPath)
	require.Error(t, err, "navbar references sidebars that are gone")
}

func TestReload(t *testing.T) {
	ts := newTestSite(t)
	d, err := New(ts.configPath)
	require.NoError(t, err)
	before := d.Snapshot()
	served := d.Site()

	swapped, err := d.Reload()
	require.NoError(t, err)
	require.False(t, swapped, "unchanged files keep the served state")
	require.Same(t, served, d.Site())

	ts.writeDoc(t, "usage.md", "# Usage\n")
	swapped, err = d.Reload()
	require.NoError(t, err)
	require.True(t, swapped)
	require.NotEqual(t, before, d.Snapshot())
	require.Equal(t, 2, d.Site().Index().Len())

	changed := d.Snapshot()
	require.NoError(t, os.WriteFile(ts.sidebars, []byte("docSidebar: [\n"), 0o600))
	swapped, err = d.Reload()
	require.Error(t, err)
	require.False(t, swapped)
	require.Equal(t, changed, d.Snapshot(), "a failed reload keeps the last good site")
}

func TestReload_MissingDocsDir(t *testing.T) {
	ts := newTestSite(t)
	require.NoError(t, os.RemoveAll(filepath.Join(ts.dir, "docs")))
	d, err := New(ts.configPath)
	require.NoError(t, err)
	require.Nil(t, d.Site().Index())
}

func TestSiteWatcher_ReloadsOnChange(t *testing.T) {
	ts := newTestSite(t)
	d, err := New(ts.configPath)
	require.NoError(t, err)
	before := d.Snapshot()

	w, err := NewSiteWatcher(d)
	require.NoError(t, err)
	w.WithDebounce(20 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { require.NoError(t, w.Stop()) }()

	ts.writeDoc(t, "hotkeys.md", "# Hotkeys\n")
	require.Eventually(t, func() bool { return d.Snapshot() != before }, 5*time.Second, 20*time.Millisecond)
	require.True(t, d.Site().Index().Has("hotkeys"))
}

func TestSiteWatcher_WatchesNewDirectories(t *testing.T) {
	ts := newTestSite(t)
	d, err := New(ts.configPath)
	require.NoError(t, err)

	w, err := NewSiteWatcher(d)
	require.NoError(t, err)
	w.WithDebounce(20 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { require.NoError(t, w.Stop()) }()

	guides := filepath.Join(ts.dir, "docs", "guides")
	require.NoError(t, os.Mkdir(guides, 0o755))
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.watched[mustAbs(guides)]
	}, 5*time.Second, 20*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	ts.writeDoc(t, "guides/setup.md", "# Setup\n")
	require.Eventually(t, func() bool {
		idx := d.Site().Index()
		return idx != nil && idx.Has("guides/setup")
	}, 5*time.Second, 20*time.Millisecond)
}

func TestSiteWatcher_Relevant(t *testing.T) {
	ts := newTestSite(t)
	d, err := New(ts.configPath)
	require.NoError(t, err)
	w, err := NewSiteWatcher(d)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.True(t, w.relevant(ts.configPath))
	require.True(t, w.relevant(ts.sidebars))
	require.True(t, w.relevant(filepath.Join(ts.dir, ".env")))
	require.True(t, w.relevant(filepath.Join(ts.dir, "docs", "faq", "new.md")))
	require.False(t, w.relevant(filepath.Join(ts.dir, "README.md")))
	require.False(t, w.relevant(filepath.Join(ts.dir, "docs-old", "x.md")))
}

// withRemote points the example remote content activation at url.
func withRemote(t *testing.T, ts testSite, url string) {
	t.Helper()
	cfg := config.Example()
	cfg.Plugins[0].Options["sourceBaseUrl"] = url + "/"
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(ts.configPath, data, 0o600))
}

func TestRefreshRemoteContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# GP2040-CE\n"))
	}))
	defer srv.Close()

	ts := newTestSite(t)
	withRemote(t, ts, srv.URL)
	d, err := New(ts.configPath, WithRetryPolicy(retry.NewPolicy(retry.ModeFixed, time.Millisecond, time.Millisecond, 0)))
	require.NoError(t, err)

	require.NoError(t, d.RefreshRemoteContent(context.Background()))
	data, err := os.ReadFile(filepath.Join(ts.dir, "README.md"))
	require.NoError(t, err)
	require.Equal(t, "# GP2040-CE\n", string(data))
}

func TestScheduler_RunsRefresh(t *testing.T) {
	hits := make(chan struct{}, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case hits <- struct{}{}:
		default:
		}
		_, _ = w.Write([]byte("# GP2040-CE\n"))
	}))
	defer srv.Close()

	ts := newTestSite(t)
	withRemote(t, ts, srv.URL)
	d, err := New(ts.configPath)
	require.NoError(t, err)

	s, err := NewScheduler()
	require.NoError(t, err)
	id, err := s.ScheduleRemoteRefresh(context.Background(), d, 20*time.Millisecond)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	s.Start()
	defer func() { require.NoError(t, s.Stop()) }()

	select {
	case <-hits:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled refresh did not run")
	}
}
