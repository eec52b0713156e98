package config

// DefaultApplier fills in defaults for one area of the configuration.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

type siteDefaults struct{}

func (siteDefaults) Domain() string { return "site" }

func (siteDefaults) ApplyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/"
	}
	if cfg.OnBrokenLinks == "" {
		cfg.OnBrokenLinks = SeverityThrow
	}
	if cfg.OnBrokenMarkdownLinks == "" {
		cfg.OnBrokenMarkdownLinks = SeverityWarn
	}
}

type i18nDefaults struct{}

func (i18nDefaults) Domain() string { return "i18n" }

func (i18nDefaults) ApplyDefaults(cfg *Config) {
	if cfg.I18n.DefaultLocale == "" {
		cfg.I18n.DefaultLocale = "en"
	}
	if len(cfg.I18n.Locales) == 0 {
		cfg.I18n.Locales = []string{cfg.I18n.DefaultLocale}
	}
}

type themeDefaults struct{}

func (themeDefaults) Domain() string { return "theme_config" }

func (themeDefaults) ApplyDefaults(cfg *Config) {
	if cfg.ThemeConfig.ColorMode.DefaultMode == "" {
		cfg.ThemeConfig.ColorMode.DefaultMode = ColorModeLight
	}
	for i := range cfg.ThemeConfig.Navbar.Items {
		item := &cfg.ThemeConfig.Navbar.Items[i]
		if item.Position == "" {
			item.Position = PositionLeft
		}
		if item.Type == "" {
			switch {
			case item.SidebarID != "":
				item.Type = NavbarDocSidebar
			case item.DocID != "":
				item.Type = NavbarDoc
			default:
				item.Type = NavbarLink
			}
		}
	}
}

var defaultAppliers = []DefaultApplier{siteDefaults{}, i18nDefaults{}, themeDefaults{}}

// ApplyDefaults runs every domain applier in order.
func ApplyDefaults(cfg *Config) {
	for _, a := range defaultAppliers {
		a.ApplyDefaults(cfg)
	}
}
