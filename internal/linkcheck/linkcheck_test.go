package linkcheck

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/config"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/docs"
	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/redirect"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/sidebar"
)

func scan(t *testing.T, files map[string]string) *docs.Index {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	idx, err := docs.Scan(root)
	require.NoError(t, err)
	return idx
}

func baseConfig() *config.Config {
	cfg := config.Example()
	cfg.BaseURL = "/"
	cfg.OnBrokenLinks = config.SeverityThrow
	cfg.OnBrokenMarkdownLinks = config.SeverityWarn
	cfg.ThemeConfig.AnnouncementBar = nil
	cfg.ThemeConfig.Navbar.Items = []config.NavbarItem{
		{Type: config.NavbarDocSidebar, SidebarID: "docSidebar", Label: "Home"},
		{Type: config.NavbarDoc, DocID: "downloads/download-page", Label: "Downloads"},
	}
	return cfg
}

func redirects(t *testing.T, rules ...redirect.Rule) *redirect.Table {
	t.Helper()
	table, err := redirect.NewTable(rules)
	require.NoError(t, err)
	return table
}

func TestCheck_Clean(t *testing.T) {
	idx := scan(t, map[string]string{
		"introduction.md":                  "# Intro\n\nSee [FAQ](faq/faq-console-compatibility.md#ps5).\n",
		"faq/faq-console-compatibility.md": "# Consoles\n\nBack to [intro](../introduction.md).\n",
		"downloads/download-page.md":       "# Downloads\n",
	})
	sb := sidebar.New().Set("docSidebar",
		sidebar.Doc{ID: "introduction"},
		sidebar.NewCategory("FAQ", sidebar.Ref{ID: "faq/faq-console-compatibility"}),
	)
	report := Check(Input{
		Config:    baseConfig(),
		Sidebars:  sb,
		Index:     idx,
		RouteBase: "/",
		Redirects: redirects(t, redirect.Rule{To: "/faq/faq-console-compatibility", From: redirect.Paths{"/faq/faq-ps4-ps5-compatibility"}}),
	})
	require.Zero(t, report.Len(), "%v", report.Findings())
	require.NoError(t, report.Err())
}

func TestCheck_FindsBrokenReferences(t *testing.T) {
	idx := scan(t, map[string]string{
		"introduction.md": "# Intro\n\n[gone](missing.md) [web](https://example.com/x.md) [anchor](#top)\n\n```\n[code](not-a-link.md)\n```\n",
	})
	cfg := baseConfig()
	cfg.ThemeConfig.AnnouncementBar = &config.AnnouncementBar{
		ID:      "release",
		Content: `Get it <a href="/introduction">here</a> or <a href="/nowhere">there</a> or <a href="https://github.com">GitHub</a>`,
	}
	cfg.ThemeConfig.Navbar.Items = append(cfg.ThemeConfig.Navbar.Items,
		config.NavbarItem{Type: config.NavbarDocSidebar, SidebarID: "contributeSidebar"})

	category := sidebar.NewCategory("Guides", sidebar.Doc{ID: "introduction"})
	category.Link = &sidebar.CategoryLink{Type: sidebar.LinkDoc, ID: "guides/index"}
	sb := sidebar.New().Set("docSidebar", sidebar.Doc{ID: "introduction"}, sidebar.Ref{ID: "faq/gone"}, category)

	report := Check(Input{
		Config:    cfg,
		Sidebars:  sb,
		Index:     idx,
		RouteBase: "/",
		Redirects: redirects(t, redirect.Rule{To: "/faq/faq-console-compatibility", From: redirect.Paths{"/old"}}),
	})

	targets := map[string]Class{}
	sources := map[string]string{}
	for _, f := range report.Findings() {
		targets[f.Target] = f.Class
		sources[f.Target] = f.Source
	}
	require.Equal(t, map[string]Class{
		"downloads/download-page":        ClassLink,
		"contributeSidebar":              ClassLink,
		"faq/gone":                       ClassLink,
		"guides/index":                   ClassLink,
		"/nowhere":                       ClassLink,
		"/faq/faq-console-compatibility": ClassLink,
		"missing.md":                     ClassMarkdownLink,
	}, targets)
	require.Equal(t, "navbar.items[1]", sources["downloads/download-page"])
	require.Equal(t, "docSidebar[1]", sources["faq/gone"])
	require.Equal(t, "docSidebar[2].link", sources["guides/index"])
	require.Equal(t, "introduction.md", sources["missing.md"])

	err := report.Err()
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryLinks))
	ce, _ := derrors.AsClassified(err)
	count, _ := ce.Context().Get("count")
	require.Equal(t, 6, count)
}

func TestReport_Policies(t *testing.T) {
	r := NewReport(config.SeverityWarn, config.SeverityIgnore)
	r.add(Finding{Class: ClassLink, Source: "navbar.items[0]", Target: "x", Reason: "navbar doc does not exist"})
	r.add(Finding{Class: ClassMarkdownLink, Source: "a.md", Target: "b.md", Reason: "linked markdown file does not exist"})

	require.NoError(t, r.Err(), "warn does not fail")
	require.Len(t, r.Visible(), 1)

	var buf bytes.Buffer
	r.Log(slog.New(slog.NewTextHandler(&buf, nil)))
	out := buf.String()
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "target=x")
	require.NotContains(t, out, "b.md", "ignored findings are dropped")

	r = NewReport(config.SeverityLog, "")
	r.add(Finding{Class: ClassLink, Target: "x"})
	r.add(Finding{Class: ClassMarkdownLink, Target: "y"})
	buf.Reset()
	r.Log(slog.New(slog.NewTextHandler(&buf, nil)))
	require.Contains(t, buf.String(), "level=INFO")
	require.Contains(t, buf.String(), "level=WARN", "markdown links default to warn")
	require.NoError(t, r.Err())
}

func TestCheck_WithoutIndex(t *testing.T) {
	cfg := baseConfig()
	report := Check(Input{Config: cfg, Sidebars: sidebar.New().Set("docSidebar", sidebar.Doc{ID: "anything"})})
	require.Zero(t, report.Len(), "doc checks need a docs tree")
}

func TestAnchorHrefs(t *testing.T) {
	require.Equal(t, []string{"/a", "https://b"}, anchorHrefs(`<p><a href="/a">A</a> <a>none</a> <a href="https://b" target="_blank">B</a></p>`))
	require.Empty(t, anchorHrefs("plain text"))
}
