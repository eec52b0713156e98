package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/config"
	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/site"
)

type testEnv struct {
	dir  string
	root *CLI
	out  *bytes.Buffer
	logs *bytes.Buffer
	g    *Global
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:  dir,
		root: &CLI{Config: filepath.Join(dir, "site.yaml")},
		out:  &bytes.Buffer{},
		logs: &bytes.Buffer{},
	}
	env.g = &Global{Out: env.out, Logger: slog.New(slog.NewTextHandler(env.logs, nil))}
	require.NoError(t, RunInit(env.g, env.root.Config, false))
	env.out.Reset()
	return env
}

func (e *testEnv) writeDoc(t *testing.T, rel, content string) {
	t.Helper()
	p := filepath.Join(e.dir, "docs", filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func (e *testEnv) writeConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(e.root.Config, data, 0o600))
}

func TestInit(t *testing.T) {
	env := newEnv(t)
	require.FileExists(t, filepath.Join(env.dir, "site.yaml"))
	require.FileExists(t, filepath.Join(env.dir, "sidebars.yaml"))
	require.DirExists(t, filepath.Join(env.dir, "docs"))

	err := RunInit(env.g, env.root.Config, false)
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
	require.NoError(t, RunInit(env.g, env.root.Config, true))
}

func TestValidate(t *testing.T) {
	env := newEnv(t)
	require.NoError(t, (&ValidateCmd{}).Run(env.g, env.root))
	require.Contains(t, env.out.String(), "3 sidebars, valid")

	cfg := config.Example()
	cfg.ThemeConfig.Navbar.Items[0].SidebarID = "missingSidebar"
	env.writeConfig(t, cfg)
	err := (&ValidateCmd{}).Run(env.g, env.root)
	require.Error(t, err)
	require.Equal(t, 2, derrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestExport(t *testing.T) {
	env := newEnv(t)
	out := filepath.Join(env.dir, "build")
	require.NoError(t, (&ExportCmd{Out: out}).Run(env.g, env.root))
	require.FileExists(t, filepath.Join(out, site.ConfigFile))
	require.FileExists(t, filepath.Join(out, site.SidebarsFile))

	env.out.Reset()
	require.NoError(t, (&ExportCmd{Stdout: true}).Run(env.g, env.root))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &doc))
	require.Equal(t, "GP2040-CE", doc["title"])
}

func TestNav(t *testing.T) {
	env := newEnv(t)
	env.writeDoc(t, "introduction.md", "# Introduction\n")
	env.writeDoc(t, "installation.md", "---\ntitle: Installation\n---\n")

	require.NoError(t, (&NavCmd{Sidebar: "docSidebar", Doc: "installation"}).Run(env.g, env.root))
	var resp struct {
		SidebarID string `json:"sidebarId"`
		Previous  struct {
			DocID string `json:"docId"`
		} `json:"previous"`
		Next struct {
			DocID string `json:"docId"`
		} `json:"next"`
	}
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &resp))
	require.Equal(t, "docSidebar", resp.SidebarID)
	require.Equal(t, "introduction", resp.Previous.DocID)
	require.Equal(t, "usage", resp.Next.DocID)

	err := (&NavCmd{Sidebar: "nope"}).Run(env.g, env.root)
	require.True(t, derrors.HasCategory(err, derrors.CategoryNotFound))
}

func TestRedirects(t *testing.T) {
	env := newEnv(t)
	require.NoError(t, (&RedirectsCmd{}).Run(env.g, env.root))
	require.Equal(t, "/faq/faq-ps4-ps5-compatibility -> /faq/faq-console-compatibility\n", env.out.String())

	pages := filepath.Join(env.dir, "build")
	require.NoError(t, (&RedirectsCmd{Pages: pages}).Run(env.g, env.root))
	require.FileExists(t, filepath.Join(pages, "faq", "faq-ps4-ps5-compatibility", "index.html"))
}

func TestCheck_BrokenNavbarDoc(t *testing.T) {
	env := newEnv(t)
	env.writeDoc(t, "introduction.md", "# Introduction\n")
	err := (&CheckCmd{}).Run(env.g, env.root)
	require.Error(t, err, "sidebar docs are missing from the docs directory")
	require.Equal(t, 3, derrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	require.Contains(t, env.logs.String(), "installation")
}

func TestCheck_IgnorePolicy(t *testing.T) {
	env := newEnv(t)
	cfg := config.Example()
	cfg.OnBrokenLinks = config.SeverityIgnore
	env.writeConfig(t, cfg)
	require.NoError(t, (&CheckCmd{}).Run(env.g, env.root))
	require.Contains(t, env.out.String(), "0 reported")
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/README.md" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("# GP2040-CE\n"))
	}))
	defer srv.Close()

	env := newEnv(t)
	cfg := config.Example()
	cfg.Plugins[0].Options["sourceBaseUrl"] = srv.URL + "/"
	env.writeConfig(t, cfg)

	cmd := &FetchCmd{Retries: 0, RetryDelay: time.Millisecond, Timeout: time.Minute}
	require.NoError(t, cmd.Run(env.g, env.root))
	require.Equal(t, "README: 1 written, 0 unchanged\n", env.out.String())
	require.FileExists(t, filepath.Join(env.dir, "README.md"))

	env.out.Reset()
	require.NoError(t, cmd.Run(env.g, env.root))
	require.Equal(t, "README: 0 written, 1 unchanged\n", env.out.String())

	env.out.Reset()
	require.NoError(t, (&FetchCmd{Cleanup: true, Timeout: time.Minute}).Run(env.g, env.root))
	require.Equal(t, "README: removed 1\n", env.out.String())
	require.NoFileExists(t, filepath.Join(env.dir, "README.md"))

	err := (&FetchCmd{Plugin: "other", Timeout: time.Minute}).Run(env.g, env.root)
	require.True(t, derrors.HasCategory(err, derrors.CategoryNotFound))
}

func TestFetch_MissingDocumentFails(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	env := newEnv(t)
	cfg := config.Example()
	cfg.Plugins[0].Options["sourceBaseUrl"] = srv.URL + "/"
	env.writeConfig(t, cfg)

	err := (&FetchCmd{Timeout: time.Minute}).Run(env.g, env.root)
	require.Error(t, err)
	require.Equal(t, 4, derrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestServe_StopsOnCancel(t *testing.T) {
	env := newEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	cmd := &ServeCmd{Addr: "127.0.0.1:0", Static: filepath.Join(env.dir, "build"), Debounce: 10 * time.Millisecond}
	go func() { done <- cmd.serve(ctx, env.root.Config) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe_InvalidSite(t *testing.T) {
	env := newEnv(t)
	require.NoError(t, os.WriteFile(env.root.Config, []byte("title: [\n"), 0o600))
	err := (&ServeCmd{Addr: "127.0.0.1:0"}).serve(context.Background(), env.root.Config)
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "json", true).Debug("hello", "k", "v")
	require.True(t, strings.HasPrefix(buf.String(), "{"))
	require.Contains(t, buf.String(), `"level":"DEBUG"`)

	buf.Reset()
	NewLogger(&buf, "text", false).Debug("hidden")
	require.Empty(t, buf.String())
}
