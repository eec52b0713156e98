package commands

import (
	"fmt"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct{}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	s, err := loadSite(root)
	if err != nil {
		return err
	}
	if err := loadIndex(s); err != nil {
		return err
	}
	report, err := s.Check()
	if err != nil {
		return err
	}
	report.Log(g.logger())
	if err := report.Err(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "%d findings, %d reported\n", report.Len(), len(report.Visible()))
	return nil
}
