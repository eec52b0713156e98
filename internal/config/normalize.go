package config

import (
	"fmt"
	"strings"
)

// NormalizationResult collects the coercions made by NormalizeConfig.
type NormalizationResult struct {
	Warnings []string
}

// NormalizeConfig canonicalises enumerated fields in place before defaults
// are applied. Unknown values are replaced by the enumeration default and
// reported as warnings.
func NormalizeConfig(c *Config) *NormalizationResult {
	res := &NormalizationResult{}
	linkPolicyNormalizer.normalize("on_broken_links", &c.OnBrokenLinks, res)
	markdownLinkNormalizer.normalize("on_broken_markdown_links", &c.OnBrokenMarkdownLinks, res)
	colorModeNormalizer.normalize("theme_config.color_mode.default_mode", &c.ThemeConfig.ColorMode.DefaultMode, res)

	for i := range c.ThemeConfig.Navbar.Items {
		item := &c.ThemeConfig.Navbar.Items[i]
		prefix := fmt.Sprintf("theme_config.navbar.items[%d]", i)
		navbarTypeNormalizer.normalize(prefix+".type", &item.Type, res)
		positionNormalizer.normalize(prefix+".position", &item.Position, res)
	}

	c.URL = strings.TrimSpace(c.URL)
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	return res
}
