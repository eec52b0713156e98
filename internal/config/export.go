package config

import (
	"sort"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/ordered"
)

// Export renders the configuration in the site generator's own schema
// (camelCase keys). Field order is fixed; passthrough keys follow the modelled
// fields in sorted order.
func (c *Config) Export() *ordered.Object {
	o := ordered.New().
		Set("title", c.Title).
		SetNonZero("tagline", c.Tagline).
		SetNonZero("favicon", c.Favicon).
		Set("url", c.URL).
		Set("baseUrl", c.BaseURL).
		SetNonZero("organizationName", c.OrganizationName).
		SetNonZero("projectName", c.ProjectName).
		Set("onBrokenLinks", string(c.OnBrokenLinks)).
		Set("onBrokenMarkdownLinks", string(c.OnBrokenMarkdownLinks)).
		Set("i18n", ordered.New().
			Set("defaultLocale", c.I18n.DefaultLocale).
			Set("locales", c.I18n.Locales)).
		SetNonZero("markdown", ordered.New().SetNonZero("mermaid", c.Markdown.Mermaid)).
		SetNonZero("presets", exportActivations(c.Presets)).
		SetNonZero("themes", exportActivations(c.Themes)).
		Set("themeConfig", c.ThemeConfig.export()).
		SetNonZero("plugins", exportActivations(c.Plugins))

	keys := make([]string, 0, len(c.Extra))
	for k := range c.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, taken := o.Get(k); !taken {
			o.Set(k, c.Extra[k])
		}
	}
	return o
}

// Export renders the activation as a bare name or a [name, options] pair.
func (a Activation) Export() any {
	if len(a.Options) == 0 {
		return a.Name
	}
	return []any{a.Name, a.Options}
}

func exportActivations(list []Activation) []any {
	out := make([]any, 0, len(list))
	for _, a := range list {
		out = append(out, a.Export())
	}
	return out
}

func (t ThemeConfig) export() *ordered.Object {
	o := ordered.New().Set("colorMode", ordered.New().
		Set("defaultMode", string(t.ColorMode.DefaultMode)).
		Set("disableSwitch", t.ColorMode.DisableSwitch).
		Set("respectPrefersColorScheme", t.ColorMode.RespectPrefersColorScheme))

	if bar := t.AnnouncementBar; bar != nil {
		o.Set("announcementBar", ordered.New().
			Set("id", bar.ID).
			Set("content", bar.Content).
			SetNonZero("backgroundColor", bar.BackgroundColor).
			SetNonZero("textColor", bar.TextColor).
			Set("isCloseable", bar.IsCloseable))
	}

	navbar := ordered.New().SetNonZero("title", t.Navbar.Title)
	if logo := t.Navbar.Logo; logo != nil {
		navbar.Set("logo", ordered.New().SetNonZero("alt", logo.Alt).Set("src", logo.Src))
	}
	items := make([]any, 0, len(t.Navbar.Items))
	for _, item := range t.Navbar.Items {
		items = append(items, item.export())
	}
	navbar.Set("items", items)
	o.Set("navbar", navbar)

	o.SetNonZero("docs", ordered.New().SetNonZero("sidebar", ordered.New().
		SetNonZero("hideable", t.Docs.Sidebar.Hideable).
		SetNonZero("autoCollapseCategories", t.Docs.Sidebar.AutoCollapseCategories)))
	o.SetNonZero("prism", ordered.New().
		SetNonZero("theme", t.Prism.Theme).
		SetNonZero("darkTheme", t.Prism.DarkTheme))
	return o
}

func (n NavbarItem) export() *ordered.Object {
	o := ordered.New()
	if n.Type != NavbarLink {
		o.Set("type", string(n.Type))
	}
	return o.
		Set("position", string(n.Position)).
		SetNonZero("sidebarId", n.SidebarID).
		SetNonZero("docId", n.DocID).
		SetNonZero("href", n.Href).
		SetNonZero("to", n.To).
		SetNonZero("label", n.Label)
}
