package redirect

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/config"
	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
)

func exampleTable(t *testing.T) *Table {
	t.Helper()
	rules, err := FromConfig(config.Example())
	require.NoError(t, err)
	table, err := NewTable(rules)
	require.NoError(t, err)
	return table
}

func TestResolve_ConsoleCompatibility(t *testing.T) {
	table := exampleTable(t)

	to, ok := table.Resolve("/faq/faq-ps4-ps5-compatibility")
	require.True(t, ok)
	require.Equal(t, "/faq/faq-console-compatibility", to)

	to, ok = table.Resolve("faq/faq-ps4-ps5-compatibility/")
	require.True(t, ok, "paths are normalized before lookup")
	require.Equal(t, "/faq/faq-console-compatibility", to)

	_, ok = table.Resolve("/faq/faq-console-compatibility")
	require.False(t, ok)
}

func TestFromOptions_SingleFrom(t *testing.T) {
	rules, err := FromOptions(config.Activation{Name: config.PluginClientRedirects, Options: map[string]any{
		"redirects": []any{map[string]any{"to": "/new", "from": "/old"}},
	}})
	require.NoError(t, err)
	require.Equal(t, []Rule{{To: "/new", From: Paths{"/old"}}}, rules)
}

func TestNewTable_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		rules []Rule
		path  string
	}{
		{"empty target", []Rule{{To: " ", From: Paths{"/a"}}}, "redirects[0].to"},
		{"no sources", []Rule{{To: "/a"}}, "redirects[0].from"},
		{"empty source", []Rule{{To: "/a", From: Paths{"/b", ""}}}, "redirects[0].from[1]"},
		{"self redirect", []Rule{{To: "/a", From: Paths{"/a/"}}}, "redirects[0].from[0]"},
		{"conflict", []Rule{{To: "/a", From: Paths{"/old"}}, {To: "/b", From: Paths{"old"}}}, "redirects[1].from[0]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTable(tc.rules)
			require.Error(t, err)
			ce, ok := derrors.AsClassified(err)
			require.True(t, ok)
			require.Equal(t, derrors.CategoryValidation, ce.Category())
			path, _ := ce.Context().GetString("path")
			require.Equal(t, tc.path, path)
		})
	}
}

func TestNewTable_DuplicateSameTarget(t *testing.T) {
	table, err := NewTable([]Rule{{To: "/a", From: Paths{"/old"}}, {To: "/a/", From: Paths{"/old/"}}})
	require.NoError(t, err)
	require.Equal(t, []Entry{{From: "/old", To: "/a"}}, table.Entries())
}

func TestNormalize(t *testing.T) {
	for in, want := range map[string]string{
		"/":        "/",
		"docs/":    "/docs",
		"/a//b/":   "/a/b",
		"/a?x=1#h": "/a",
		"  /pad  ": "/pad",
		"/a/../b":  "/b",
	} {
		got, ok := Normalize(in)
		require.True(t, ok, in)
		require.Equal(t, want, got, in)
	}
	_, ok := Normalize("?only=query")
	require.False(t, ok)
}

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := exampleTable(t).Middleware(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/faq/faq-ps4-ps5-compatibility?ref=nav", nil))
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, "/faq/faq-console-compatibility?ref=nav", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/introduction", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/faq/faq-ps4-ps5-compatibility", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestMiddleware_BaseURL(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := exampleTable(t).WithBaseURL("/docs/").Middleware(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/docs/faq/faq-ps4-ps5-compatibility", nil))
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, "/docs/faq/faq-console-compatibility", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/faq/faq-ps4-ps5-compatibility", nil))
	require.Equal(t, http.StatusNotFound, rec.Code, "paths outside the base URL are not redirected")
}

func TestCheckTargets(t *testing.T) {
	table := exampleTable(t)
	require.Empty(t, table.CheckTargets([]string{"/introduction", "/faq/faq-console-compatibility/"}))
	require.Equal(t, []Entry{{From: "/faq/faq-ps4-ps5-compatibility", To: "/faq/faq-console-compatibility"}},
		table.CheckTargets([]string{"/introduction"}))
}

func TestWritePages(t *testing.T) {
	dir := t.TempDir()
	table, err := NewTable([]Rule{
		{To: "/faq/faq-console-compatibility", From: Paths{"/faq/faq-ps4-ps5-compatibility"}},
		{To: "/usage", From: Paths{"/existing"}},
	})
	require.NoError(t, err)

	existing := filepath.Join(dir, "existing", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o755))
	require.NoError(t, os.WriteFile(existing, []byte("real page"), 0o600))

	n, err := table.WithBaseURL("/").WritePages(dir)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	page, err := os.ReadFile(filepath.Join(dir, "faq", "faq-ps4-ps5-compatibility", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), `<meta http-equiv="refresh" content="0; url=/faq/faq-console-compatibility">`)
	require.Contains(t, string(page), `<link rel="canonical" href="/faq/faq-console-compatibility" />`)

	kept, err := os.ReadFile(existing)
	require.NoError(t, err)
	require.Equal(t, "real page", string(kept))
}
