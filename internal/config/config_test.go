package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
)

const minimalConfig = `
title: Test Site
url: https://docs.example.com
theme_config:
  navbar:
    items:
      - sidebar_id: docSidebar
        label: Home
`

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	require.NoError(t, err)

	require.Equal(t, "/", cfg.BaseURL)
	require.Equal(t, SeverityThrow, cfg.OnBrokenLinks)
	require.Equal(t, SeverityWarn, cfg.OnBrokenMarkdownLinks)
	require.Equal(t, "en", cfg.I18n.DefaultLocale)
	require.Equal(t, []string{"en"}, cfg.I18n.Locales)
	require.Equal(t, ColorModeLight, cfg.ThemeConfig.ColorMode.DefaultMode)

	item := cfg.ThemeConfig.Navbar.Items[0]
	require.Equal(t, NavbarDocSidebar, item.Type)
	require.Equal(t, PositionLeft, item.Position)
}

func TestParse_NormalizesEnumerations(t *testing.T) {
	cfg, err := Parse([]byte(`
title: Test Site
url: https://docs.example.com
on_broken_links: THROW
on_broken_markdown_links: shout
theme_config:
  color_mode:
    default_mode: Dark
  navbar:
    items:
      - type: DOCSIDEBAR
        position: Right
        sidebar_id: docSidebar
`))
	require.NoError(t, err)
	require.Equal(t, SeverityThrow, cfg.OnBrokenLinks)
	require.Equal(t, SeverityWarn, cfg.OnBrokenMarkdownLinks, "unknown values fall back to warn")
	require.Equal(t, ColorModeDark, cfg.ThemeConfig.ColorMode.DefaultMode)
	require.Equal(t, NavbarDocSidebar, cfg.ThemeConfig.Navbar.Items[0].Type)
	require.Equal(t, PositionRight, cfg.ThemeConfig.Navbar.Items[0].Position)
}

func TestParse_UnknownLinkPolicyKeepsThrow(t *testing.T) {
	cfg, err := Parse([]byte("title: T\nurl: https://x.example\non_broken_links: error\n"))
	require.NoError(t, err)
	require.Equal(t, SeverityThrow, cfg.OnBrokenLinks, "a typo must not stop broken links failing the build")
	require.Equal(t, SeverityWarn, cfg.OnBrokenMarkdownLinks)

	res := NormalizeConfig(&Config{OnBrokenLinks: "error"})
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "defaulting to throw")
}

func TestNormalizeConfig_ReportsWarnings(t *testing.T) {
	cfg := &Config{OnBrokenLinks: "Throw", OnBrokenMarkdownLinks: "loud"}
	res := NormalizeConfig(cfg)
	require.Len(t, res.Warnings, 2)
	require.Contains(t, res.Warnings[0], "normalized on_broken_links")
	require.Contains(t, res.Warnings[1], "unknown on_broken_markdown_links 'loud'")
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCS_TITLE", "From Env")
	t.Setenv("RELEASE_VERSION", "")

	cfg, err := Parse([]byte(`
title: ${DOCS_TITLE}
tagline: v${RELEASE_VERSION:-1.2.3}
url: https://docs.example.com
`))
	require.NoError(t, err)
	require.Equal(t, "From Env", cfg.Title)
	require.Equal(t, "v1.2.3", cfg.Tagline)
}

func TestParse_PassesUnknownKeysThrough(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig + "customFields:\n  firmware: gp2040\n"))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"firmware": "gp2040"}, cfg.Extra["customFields"])

	exported, err := json.Marshal(cfg.Export())
	require.NoError(t, err)
	require.Contains(t, string(exported), `"customFields":{"firmware":"gp2040"}`)
}

func TestActivation_Shapes(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig + `
plugins:
  - plain-plugin
  - [remote, {name: README}]
  - name: mapped
    options:
      id: second
`))
	require.NoError(t, err)
	require.Len(t, cfg.Plugins, 3)

	require.Equal(t, "plain-plugin", cfg.Plugins[0].Name)
	require.Nil(t, cfg.Plugins[0].Options)

	require.Equal(t, "remote", cfg.Plugins[1].Name)
	require.Equal(t, "README", cfg.Plugins[1].Options["name"])

	require.Equal(t, "mapped", cfg.Plugins[2].Name)
	require.Equal(t, "second", cfg.Plugins[2].InstanceID())
	require.Equal(t, "default", cfg.Plugins[0].InstanceID())
}

func TestActivation_RejectsBadShapes(t *testing.T) {
	_, err := Parse([]byte(minimalConfig + "plugins:\n  - [a, {x: 1}, extra]\n"))
	require.Error(t, err)

	_, err = Parse([]byte(minimalConfig + "plugins:\n  - [a, notamap]\n"))
	require.Error(t, err)
}

func TestActivation_MarshalRoundTrip(t *testing.T) {
	in := []Activation{{Name: "bare"}, {Name: "with", Options: map[string]any{"k": "v"}}}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)
	require.Contains(t, string(data), "- bare\n")

	var out []Activation
	require.NoError(t, yaml.Unmarshal(data, &out))
	require.Equal(t, in, out)
}

func TestActivation_Decode(t *testing.T) {
	a := Activation{Name: PresetClassic, Options: map[string]any{
		"docs": map[string]any{"sidebarPath": "./sidebars.yaml", "routeBasePath": "/"},
		"blog": false,
	}}
	var opts ClassicOptions
	require.NoError(t, a.Decode(&opts))
	require.Equal(t, "./sidebars.yaml", opts.Docs.SidebarPath)
	require.Equal(t, "/", opts.Docs.RouteBasePath)
}

func TestClassicDocs_Defaults(t *testing.T) {
	cfg := &Config{}
	docs, err := cfg.ClassicDocs()
	require.NoError(t, err)
	require.Equal(t, ClassicDocsOptions{Path: "docs", SidebarPath: "sidebars.yaml", RouteBasePath: "/docs"}, docs)
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		path string
	}{
		{"missing title", "url: https://a.example\n", "title"},
		{"missing url", "title: T\n", "url"},
		{"relative url", "title: T\nurl: docs.example.com\n", "url"},
		{"url with path", "title: T\nurl: https://a.example/docs\n", "url"},
		{"bad base url", "title: T\nurl: https://a.example\nbase_url: docs\n", "base_url"},
		{"default locale missing", "title: T\nurl: https://a.example\ni18n:\n  default_locale: fr\n  locales: [en]\n", "i18n.default_locale"},
		{"empty activation", "title: T\nurl: https://a.example\nthemes:\n  - ''\n", "themes[0]"},
		{"duplicate plugin", "title: T\nurl: https://a.example\nplugins:\n  - p\n  - p\n", "plugins[1]"},
		{"doc item without id", "title: T\nurl: https://a.example\ntheme_config:\n  navbar:\n    items:\n      - type: doc\n        label: D\n", "theme_config.navbar.items[0]"},
		{"link without target", "title: T\nurl: https://a.example\ntheme_config:\n  navbar:\n    items:\n      - label: L\n", "theme_config.navbar.items[0]"},
		{"bar without content", "title: T\nurl: https://a.example\ntheme_config:\n  announcement_bar:\n    id: x\n", "theme_config.announcement_bar.content"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			ce, ok := derrors.AsClassified(err)
			require.True(t, ok)
			require.Equal(t, derrors.CategoryValidation, ce.Category())
			path, _ := ce.Context().GetString("path")
			require.Equal(t, tc.path, path)
		})
	}
}

func TestValidate_DuplicatePluginWithDistinctIDs(t *testing.T) {
	_, err := Parse([]byte(minimalConfig + `
plugins:
  - [p, {id: one}]
  - [p, {id: two}]
`))
	require.NoError(t, err)
}

func TestSidebarIDs_NavbarOrder(t *testing.T) {
	cfg := Example()
	require.Equal(t, []string{"docSidebar", "webConfigSidebar", "contributeSidebar"}, cfg.SidebarIDs())
}

func TestExample_RoundTripsThroughYAML(t *testing.T) {
	t.Setenv("RELEASE_VERSION", "")
	data, err := yaml.Marshal(Example())
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, "GP2040-CE", cfg.Title)
	require.True(t, cfg.Markdown.Mermaid)
	require.Len(t, cfg.ThemeConfig.Navbar.Items, 6)
	require.Contains(t, cfg.ThemeConfig.AnnouncementBar.Content, "v0.7.6 update")
	require.Contains(t, cfg.ThemeConfig.AnnouncementBar.Content, "releases/tag/v0.7.6")

	names := make([]string, 0, len(cfg.Plugins))
	for _, p := range cfg.Plugins {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{PluginRemoteContent, PluginClientRedirects}, names)

	again, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, cfg.Snapshot(), again.Snapshot())
}

func TestSnapshot_ChangesWithOptions(t *testing.T) {
	a := Example()
	b := Example()
	require.Equal(t, a.Snapshot(), b.Snapshot())

	b.Plugins[0].Options["performCleanup"] = false
	require.NotEqual(t, a.Snapshot(), b.Snapshot())
}

func TestExport_FieldOrder(t *testing.T) {
	cfg := Example()
	ApplyDefaults(cfg)
	exported := cfg.Export()

	require.Equal(t, []string{
		"title", "tagline", "favicon", "url", "baseUrl", "organizationName", "projectName",
		"onBrokenLinks", "onBrokenMarkdownLinks", "i18n", "markdown", "presets", "themes",
		"themeConfig", "plugins",
	}, exported.Keys())

	data, err := json.Marshal(exported)
	require.NoError(t, err)
	s := string(data)
	require.True(t, strings.Index(s, `"label":"Home"`) < strings.Index(s, `"label":"Web Configurator"`))
	require.Contains(t, s, `"themes":[["@easyops-cn/docusaurus-search-local",`)
	require.Contains(t, s, `"@docusaurus/theme-mermaid"]`)
	require.Contains(t, s, `{"position":"right","href":"https://discord.gg/k2pxhke7q8","label":"Discord"}`)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}

func TestLoad_ReadsEnvFileBesideConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SITE_TAGLINE_TEST", "")
	require.NoError(t, os.Unsetenv("SITE_TAGLINE_TEST"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITE_TAGLINE_TEST=from dotenv\n"), 0o600))
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig+"tagline: ${SITE_TAGLINE_TEST}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from dotenv", cfg.Tagline)
}

func TestInit(t *testing.T) {
	t.Setenv("RELEASE_VERSION", "")
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "OpenStickCommunity", cfg.OrganizationName)
}
