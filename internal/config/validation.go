package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
)

// Validate checks the configuration record. The first problem found is
// returned as a validation error whose "path" context names the field.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	for _, step := range []func() error{
		cv.validateSite,
		cv.validateI18n,
		cv.validateActivations,
		cv.validateNavbar,
		cv.validateAnnouncementBar,
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func invalid(path, message string) error {
	return derrors.ValidationError(message).WithContext("path", path).Build()
}

func (cv *configurationValidator) validateSite() error {
	c := cv.config
	if strings.TrimSpace(c.Title) == "" {
		return invalid("title", "title is required")
	}
	if c.URL == "" {
		return invalid("url", "url is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("url", fmt.Sprintf("url must be an absolute http(s) URL, got %q", c.URL))
	}
	if u.Path != "" && u.Path != "/" {
		return invalid("url", "url must not contain a path; use base_url instead")
	}
	if !strings.HasPrefix(c.BaseURL, "/") || !strings.HasSuffix(c.BaseURL, "/") {
		return invalid("base_url", fmt.Sprintf("base_url must start and end with '/', got %q", c.BaseURL))
	}
	return nil
}

func (cv *configurationValidator) validateI18n() error {
	i := cv.config.I18n
	if !slices.Contains(i.Locales, i.DefaultLocale) {
		return invalid("i18n.default_locale", fmt.Sprintf("default locale %q is not listed in i18n.locales", i.DefaultLocale))
	}
	return nil
}

func (cv *configurationValidator) validateActivations() error {
	groups := []struct {
		name string
		list []Activation
	}{
		{"presets", cv.config.Presets},
		{"themes", cv.config.Themes},
		{"plugins", cv.config.Plugins},
	}
	for _, g := range groups {
		seen := map[string]bool{}
		for i, a := range g.list {
			path := fmt.Sprintf("%s[%d]", g.name, i)
			if strings.TrimSpace(a.Name) == "" {
				return invalid(path, "activation name cannot be empty")
			}
			key := a.Name + "#" + a.InstanceID()
			if seen[key] {
				return invalid(path, fmt.Sprintf("%s is activated twice with instance id %q", a.Name, a.InstanceID()))
			}
			seen[key] = true
		}
	}
	return nil
}

func (cv *configurationValidator) validateNavbar() error {
	for i, item := range cv.config.ThemeConfig.Navbar.Items {
		path := fmt.Sprintf("theme_config.navbar.items[%d]", i)
		switch item.Type {
		case NavbarDocSidebar:
			if item.SidebarID == "" {
				return invalid(path, "docSidebar item requires sidebar_id")
			}
		case NavbarDoc:
			if item.DocID == "" {
				return invalid(path, "doc item requires doc_id")
			}
		case NavbarLink:
			if item.Href == "" && item.To == "" {
				return invalid(path, "link item requires href or to")
			}
			if item.Label == "" {
				return invalid(path, "link item requires a label")
			}
		default:
			return invalid(path, fmt.Sprintf("unsupported navbar item type %q", item.Type))
		}
	}
	return nil
}

func (cv *configurationValidator) validateAnnouncementBar() error {
	bar := cv.config.ThemeConfig.AnnouncementBar
	if bar == nil {
		return nil
	}
	if bar.ID == "" {
		return invalid("theme_config.announcement_bar.id", "announcement bar requires an id")
	}
	if strings.TrimSpace(bar.Content) == "" {
		return invalid("theme_config.announcement_bar.content", "announcement bar requires content")
	}
	return nil
}
