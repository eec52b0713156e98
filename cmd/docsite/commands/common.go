package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/site"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Site configuration file path" default:"site.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text or json)" default:"text" enum:"text,json"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init      InitCmd      `cmd:"" help:"Write an example site configuration and sidebars file"`
	Validate  ValidateCmd  `cmd:"" help:"Validate the site configuration and sidebars"`
	Export    ExportCmd    `cmd:"" help:"Export the configuration and sidebars as generator JSON"`
	Nav       NavCmd       `cmd:"" help:"Render a sidebar as a navigation tree"`
	Redirects RedirectsCmd `cmd:"" help:"List client redirects or write redirect pages"`
	Fetch     FetchCmd     `cmd:"" help:"Download remote content documents"`
	Check     CheckCmd     `cmd:"" help:"Check navbar, sidebar, redirect and markdown links"`
	Serve     ServeCmd     `cmd:"" help:"Serve a built site with live reload of the site definition"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(NewLogger(os.Stderr, c.LogFormat, c.Verbose))
	return nil
}

// NewLogger builds the process logger.
func NewLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadSite loads and validates the site named by the config flag.
func loadSite(root *CLI) (*site.Site, error) {
	s, err := site.Load(root.Config)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadIndex scans the docs directory. A missing directory only warns.
func loadIndex(s *site.Site) error {
	if _, err := s.LoadIndex(); err != nil {
		if !derrors.HasCategory(err, derrors.CategoryNotFound) {
			return err
		}
		slog.Warn("Docs directory missing, doc checks skipped", logfields.Path(s.DocsDir()))
	}
	return nil
}
