package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/config"
	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/sidebar"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing files"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	return RunInit(g, root.Config, i.Force)
}

// RunInit writes the example configuration to configPath and the example
// sidebars next to it, at the path the configuration names.
func RunInit(g *Global, configPath string, force bool) error {
	opts, err := config.Example().ClassicDocs()
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "example configuration has no classic preset").Build()
	}
	dir := filepath.Dir(configPath)
	sidebarsPath := filepath.Join(dir, filepath.FromSlash(opts.SidebarPath))

	out := g.out()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Writing sidebars to %s\n", sidebarsPath)
	if err := sidebar.Init(sidebarsPath, force); err != nil {
		return err
	}
	docsDir := filepath.Join(dir, filepath.FromSlash(opts.Path))
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create docs directory").
			WithContext("path", docsDir).
			Build()
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
