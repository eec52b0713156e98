package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
)

const releaseAnnouncement = `New Version Available! To get the v${RELEASE_VERSION:-0.7.6} update, go to ` +
	`<a href="https://github.com/OpenStickCommunity/GP2040-CE/releases/tag/v${RELEASE_VERSION:-0.7.6}" target="_blank">GP2040-CE Releases</a>`

// Example returns the GP2040-CE site configuration. Environment references
// are left unexpanded; they are resolved when the written file is loaded.
func Example() *Config {
	return &Config{
		Title:                 "GP2040-CE",
		Tagline:               "Community Edition Firmware",
		Favicon:               "img/favicon.ico",
		URL:                   "https://gp2040-ce.info",
		BaseURL:               "/",
		OrganizationName:      "OpenStickCommunity",
		ProjectName:           "GP2040-CE",
		OnBrokenLinks:         SeverityThrow,
		OnBrokenMarkdownLinks: SeverityWarn,
		I18n:                  I18nConfig{DefaultLocale: "en", Locales: []string{"en"}},
		Markdown:              MarkdownConfig{Mermaid: true},
		Presets: []Activation{
			{Name: PresetClassic, Options: map[string]any{
				"docs": map[string]any{
					"sidebarPath":   "./sidebars.yaml",
					"routeBasePath": "/",
				},
				"blog":  false,
				"theme": map[string]any{"customCss": "./src/css/custom.css"},
			}},
		},
		Themes: []Activation{
			{Name: ThemeSearchLocal, Options: map[string]any{
				"hashed":                           true,
				"highlightSearchTermsOnTargetPage": true,
				"docsRouteBasePath":                "/",
			}},
			{Name: ThemeMermaid},
		},
		ThemeConfig: ThemeConfig{
			ColorMode: ColorModeConfig{
				DefaultMode:               ColorModeLight,
				DisableSwitch:             false,
				RespectPrefersColorScheme: true,
			},
			AnnouncementBar: &AnnouncementBar{
				ID:              "new_release",
				Content:         releaseAnnouncement,
				BackgroundColor: "#ec008c",
				TextColor:       "#FFFFFF",
				IsCloseable:     true,
			},
			Navbar: Navbar{
				Title: "GP2040-CE | Community Edition Firmware",
				Logo:  &NavbarLogo{Alt: "GP2040-CE Logo", Src: "img/gp2040-ce-logo.svg"},
				Items: []NavbarItem{
					{Type: NavbarDocSidebar, Position: PositionLeft, SidebarID: "docSidebar", Label: "Home"},
					{Type: NavbarDocSidebar, Position: PositionLeft, SidebarID: "webConfigSidebar", Label: "Web Configurator"},
					{Type: NavbarDocSidebar, Position: PositionLeft, SidebarID: "contributeSidebar", Label: "Contribute"},
					{Type: NavbarDoc, Position: PositionLeft, DocID: "downloads/download-page", Label: "Downloads"},
					{Type: NavbarLink, Position: PositionRight, Href: "https://discord.gg/k2pxhke7q8", Label: "Discord"},
					{Type: NavbarLink, Position: PositionRight, Href: "https://github.com/OpenStickCommunity/GP2040-CE", Label: "GitHub"},
				},
			},
			Docs:  DocsThemeConfig{Sidebar: DocsSidebarConfig{Hideable: true, AutoCollapseCategories: false}},
			Prism: PrismConfig{Theme: "github", DarkTheme: "dracula"},
		},
		Plugins: []Activation{
			{Name: PluginRemoteContent, Options: map[string]any{
				"name":           "README",
				"sourceBaseUrl":  "https://raw.githubusercontent.com/OpenStickCommunity/GP2040-CE/main/",
				"outDir":         "/",
				"documents":      []any{"README.md"},
				"performCleanup": true,
			}},
			{Name: PluginClientRedirects, Options: map[string]any{
				"redirects": []any{
					map[string]any{
						"to":   "/faq/faq-console-compatibility",
						"from": []any{"/faq/faq-ps4-ps5-compatibility"},
					},
				},
			}},
		},
	}
}

// Init writes the example configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).
			Build()
	}
	data, err := yaml.Marshal(Example())
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to marshal example configuration").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
