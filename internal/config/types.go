package config

// Config is the site-wide configuration record consumed by the site generator.
//
// Keys the record does not model are kept in Extra and passed through to the
// exported document unchanged.
type Config struct {
	Title                 string            `yaml:"title"`
	Tagline               string            `yaml:"tagline,omitempty"`
	Favicon               string            `yaml:"favicon,omitempty"`
	URL                   string            `yaml:"url"`
	BaseURL               string            `yaml:"base_url"`
	OrganizationName      string            `yaml:"organization_name,omitempty"`
	ProjectName           string            `yaml:"project_name,omitempty"`
	OnBrokenLinks         ReportingSeverity `yaml:"on_broken_links,omitempty"`
	OnBrokenMarkdownLinks ReportingSeverity `yaml:"on_broken_markdown_links,omitempty"`
	I18n                  I18nConfig        `yaml:"i18n"`
	Markdown              MarkdownConfig    `yaml:"markdown,omitempty"`
	Presets               []Activation      `yaml:"presets,omitempty"`
	Themes                []Activation      `yaml:"themes,omitempty"`
	ThemeConfig           ThemeConfig       `yaml:"theme_config"`
	Plugins               []Activation      `yaml:"plugins,omitempty"`
	Extra                 map[string]any    `yaml:",inline"`
}

// I18nConfig lists the locales the site is built for.
type I18nConfig struct {
	DefaultLocale string   `yaml:"default_locale"`
	Locales       []string `yaml:"locales"`
}

// MarkdownConfig toggles markdown features.
type MarkdownConfig struct {
	Mermaid bool `yaml:"mermaid,omitempty"`
}

// ThemeConfig holds the theme-level settings.
type ThemeConfig struct {
	ColorMode       ColorModeConfig  `yaml:"color_mode"`
	AnnouncementBar *AnnouncementBar `yaml:"announcement_bar,omitempty"`
	Navbar          Navbar           `yaml:"navbar"`
	Docs            DocsThemeConfig  `yaml:"docs,omitempty"`
	Prism           PrismConfig      `yaml:"prism,omitempty"`
}

// ColorModeConfig is the color-mode policy.
type ColorModeConfig struct {
	DefaultMode               ColorMode `yaml:"default_mode"`
	DisableSwitch             bool      `yaml:"disable_switch"`
	RespectPrefersColorScheme bool      `yaml:"respect_prefers_color_scheme"`
}

// AnnouncementBar is the dismissible banner shown above the navbar.
// Content is HTML.
type AnnouncementBar struct {
	ID              string `yaml:"id"`
	Content         string `yaml:"content"`
	BackgroundColor string `yaml:"background_color,omitempty"`
	TextColor       string `yaml:"text_color,omitempty"`
	IsCloseable     bool   `yaml:"is_closeable"`
}

// Navbar is the top navigation bar.
type Navbar struct {
	Title string       `yaml:"title,omitempty"`
	Logo  *NavbarLogo  `yaml:"logo,omitempty"`
	Items []NavbarItem `yaml:"items,omitempty"`
}

// NavbarLogo is the navbar image.
type NavbarLogo struct {
	Alt string `yaml:"alt,omitempty"`
	Src string `yaml:"src"`
}

// NavbarItem is a single navbar entry. Which fields apply depends on Type.
type NavbarItem struct {
	Type      NavbarItemType `yaml:"type,omitempty"`
	Position  NavbarPosition `yaml:"position,omitempty"`
	Label     string         `yaml:"label,omitempty"`
	SidebarID string         `yaml:"sidebar_id,omitempty"` // docSidebar
	DocID     string         `yaml:"doc_id,omitempty"`     // doc
	Href      string         `yaml:"href,omitempty"`       // link, external
	To        string         `yaml:"to,omitempty"`         // link, internal
}

// DocsThemeConfig configures the docs layout.
type DocsThemeConfig struct {
	Sidebar DocsSidebarConfig `yaml:"sidebar,omitempty"`
}

// DocsSidebarConfig controls sidebar behavior in the docs layout.
type DocsSidebarConfig struct {
	Hideable               bool `yaml:"hideable,omitempty"`
	AutoCollapseCategories bool `yaml:"auto_collapse_categories,omitempty"`
}

// PrismConfig names the code highlighting themes.
type PrismConfig struct {
	Theme     string `yaml:"theme,omitempty"`
	DarkTheme string `yaml:"dark_theme,omitempty"`
}

// SidebarIDs returns the sidebar identifiers referenced from the navbar, in
// navbar order, without duplicates.
func (c *Config) SidebarIDs() []string {
	seen := map[string]bool{}
	var ids []string
	for _, item := range c.ThemeConfig.Navbar.Items {
		if item.Type != NavbarDocSidebar || item.SidebarID == "" || seen[item.SidebarID] {
			continue
		}
		seen[item.SidebarID] = true
		ids = append(ids, item.SidebarID)
	}
	return ids
}

// Preset returns the first preset activation named name.
func (c *Config) Preset(name string) (Activation, bool) {
	return find(c.Presets, name)
}

// Theme returns the first theme activation named name.
func (c *Config) Theme(name string) (Activation, bool) {
	return find(c.Themes, name)
}

// Plugin returns the first plugin activation named name.
func (c *Config) Plugin(name string) (Activation, bool) {
	return find(c.Plugins, name)
}

// PluginsNamed returns every activation of plugin name, in order.
func (c *Config) PluginsNamed(name string) []Activation {
	var out []Activation
	for _, a := range c.Plugins {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out
}

func find(list []Activation, name string) (Activation, bool) {
	for _, a := range list {
		if a.Name == name {
			return a, true
		}
	}
	return Activation{}, false
}
