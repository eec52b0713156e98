package commands

import (
	"fmt"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
)

// RedirectsCmd implements the 'redirects' command.
type RedirectsCmd struct {
	Pages string `help:"Write one redirect page per source path into this build directory" type:"path"`
}

func (r *RedirectsCmd) Run(g *Global, root *CLI) error {
	s, err := loadSite(root)
	if err != nil {
		return err
	}
	table, err := s.Redirects()
	if err != nil {
		return err
	}
	out := g.out()
	if r.Pages == "" {
		for _, e := range table.Entries() {
			_, _ = fmt.Fprintf(out, "%s -> %s\n", e.From, e.To)
		}
		return nil
	}
	n, err := table.WritePages(r.Pages)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Wrote %d redirect pages to %s\n", n, r.Pages)
	if skipped := table.Len() - n; skipped > 0 {
		g.logger().Info("Some redirect sources already exist", logfields.Count(skipped))
	}
	return nil
}
