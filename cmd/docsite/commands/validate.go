package commands

import (
	"fmt"
	"log/slog"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	s, err := loadSite(root)
	if err != nil {
		return err
	}
	slog.Debug("Site valid", logfields.Config(root.Config), logfields.Snapshot(s.Snapshot()))
	_, _ = fmt.Fprintf(g.out(), "%s: %d sidebars, valid\n", root.Config, s.Sidebars.Len())
	return nil
}
