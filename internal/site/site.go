// Package site ties the configuration, the sidebars and the docs tree of one
// documentation site together and checks the contracts between them.
package site

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/config"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/docs"
	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/linkcheck"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/nav"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/redirect"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/remotecontent"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/sidebar"
)

// Site is a loaded site. It is not modified after Load and LoadIndex, so a
// loaded value can be shared between goroutines.
type Site struct {
	Config   *config.Config
	Sidebars *sidebar.Sidebars

	configPath   string
	dir          string
	sidebarsPath string
	docsOpts     config.ClassicDocsOptions
	index        *docs.Index
}

// Load reads the configuration at configPath and the sidebars file named by
// the classic preset's docs.sidebarPath option, relative to the config file.
func Load(configPath string) (*Site, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.ClassicDocs()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "invalid classic preset options").
			WithContext("path", "presets").
			Build()
	}
	s := &Site{
		Config:     cfg,
		configPath: configPath,
		dir:        filepath.Dir(configPath),
		docsOpts:   opts,
	}
	s.sidebarsPath = s.resolve(opts.SidebarPath)

	sb, err := sidebar.Load(s.sidebarsPath)
	if err != nil {
		return nil, err
	}
	s.Sidebars = sb
	slog.Debug("Loaded site",
		logfields.Config(configPath),
		logfields.Path(s.sidebarsPath),
		logfields.Count(sb.Len()))
	return s, nil
}

// New builds a site from values already in memory. dir is the directory
// relative paths are resolved against.
func New(dir string, cfg *config.Config, sb *sidebar.Sidebars) (*Site, error) {
	opts, err := cfg.ClassicDocs()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "invalid classic preset options").Build()
	}
	s := &Site{Config: cfg, Sidebars: sb, dir: dir, docsOpts: opts}
	s.sidebarsPath = s.resolve(opts.SidebarPath)
	return s, nil
}

func (s *Site) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.dir, filepath.FromSlash(p))
}

// Dir is the site directory (the directory holding the config file).
func (s *Site) Dir() string { return s.dir }

// ConfigPath is the path the configuration was loaded from.
func (s *Site) ConfigPath() string { return s.configPath }

// SidebarsPath is the resolved sidebars file path.
func (s *Site) SidebarsPath() string { return s.sidebarsPath }

// DocsDir is the resolved docs directory (classic preset docs.path).
func (s *Site) DocsDir() string { return s.resolve(s.docsOpts.Path) }

// RouteBase is the docs route base path (classic preset docs.routeBasePath).
func (s *Site) RouteBase() string { return s.docsOpts.RouteBasePath }

// Validate checks the configuration, the sidebars and that every sidebar
// referenced from the navbar is defined.
func (s *Site) Validate() error {
	if err := config.Validate(s.Config); err != nil {
		return err
	}
	if err := s.Sidebars.Validate(); err != nil {
		return err
	}
	for i, item := range s.Config.ThemeConfig.Navbar.Items {
		if item.Type != config.NavbarDocSidebar || s.Sidebars.Has(item.SidebarID) {
			continue
		}
		return derrors.ValidationError(fmt.Sprintf("navbar references sidebar %q which is not defined", item.SidebarID)).
			WithContext("path", fmt.Sprintf("theme_config.navbar.items[%d].sidebar_id", i)).
			WithContext("sidebar", item.SidebarID).
			Build()
	}
	return nil
}

// LoadIndex scans DocsDir and keeps the index on the site.
func (s *Site) LoadIndex() (*docs.Index, error) {
	idx, err := docs.Scan(s.DocsDir())
	if err != nil {
		return nil, err
	}
	s.index = idx
	return idx, nil
}

// Index returns the index from LoadIndex, or nil.
func (s *Site) Index() *docs.Index { return s.index }

// Redirects builds the redirect table from every client redirects plugin,
// served under the site base URL.
func (s *Site) Redirects() (*redirect.Table, error) {
	rules, err := redirect.FromConfig(s.Config)
	if err != nil {
		return nil, err
	}
	table, err := redirect.NewTable(rules)
	if err != nil {
		return nil, err
	}
	return table.WithBaseURL(s.Config.BaseURL), nil
}

// RemoteContent returns the remote content plugin options.
func (s *Site) RemoteContent() ([]remotecontent.Options, error) {
	return remotecontent.FromConfig(s.Config)
}

// Nav renders sidebar id against the loaded index.
func (s *Site) Nav(id string) (*nav.Tree, error) {
	return nav.Build(s.Sidebars, id, s.index, s.RouteBase())
}

// Check runs the link checks. Doc checks only run after LoadIndex.
func (s *Site) Check() (*linkcheck.Report, error) {
	table, err := s.Redirects()
	if err != nil {
		return nil, err
	}
	return linkcheck.Check(linkcheck.Input{
		Config:    s.Config,
		Sidebars:  s.Sidebars,
		Index:     s.index,
		RouteBase: s.RouteBase(),
		Redirects: table,
	}), nil
}
