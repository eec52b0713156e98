package commands

import (
	"fmt"
	"path/filepath"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/site"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Out    string `short:"o" help:"Directory to write the JSON files to" default:"." type:"path"`
	Stdout bool   `help:"Print the configuration JSON instead of writing files"`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	s, err := loadSite(root)
	if err != nil {
		return err
	}
	if e.Stdout {
		cfgJSON, _, err := s.Export()
		if err != nil {
			return err
		}
		_, err = g.out().Write(cfgJSON)
		return err
	}
	if err := s.WriteExport(e.Out); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Wrote %s and %s\n",
		filepath.Join(e.Out, site.ConfigFile), filepath.Join(e.Out, site.SidebarsFile))
	return nil
}
