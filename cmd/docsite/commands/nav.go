package commands

import (
	"encoding/json"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/server/responses"
)

// NavCmd implements the 'nav' command.
type NavCmd struct {
	Sidebar string `arg:"" help:"Sidebar ID to render"`
	Doc     string `help:"Doc ID to include previous/next links for"`
}

func (n *NavCmd) Run(g *Global, root *CLI) error {
	s, err := loadSite(root)
	if err != nil {
		return err
	}
	if err := loadIndex(s); err != nil {
		return err
	}
	tree, err := s.Nav(n.Sidebar)
	if err != nil {
		return err
	}
	resp := responses.NavResponse{Tree: tree}
	if n.Doc != "" {
		resp.Previous, resp.Next = tree.Pagination(n.Doc)
	}
	enc := json.NewEncoder(g.out())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
