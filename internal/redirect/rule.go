// Package redirect implements the client-redirect table: old paths that now
// live elsewhere, served as HTTP 301s by the preview server and written out
// as meta-refresh pages for static hosting.
package redirect

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/config"
)

// Rule sends every path in From to To.
type Rule struct {
	To   string `yaml:"to"`
	From Paths  `yaml:"from"`
}

// Paths accepts either a single path or a list of paths.
type Paths []string

// UnmarshalYAML decodes a scalar or a sequence of scalars.
func (p *Paths) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*p = Paths{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*p = list
		return nil
	default:
		return fmt.Errorf("line %d: from must be a path or a list of paths", node.Line)
	}
}

// Options is the option record of the client redirects plugin.
type Options struct {
	Redirects []Rule `yaml:"redirects"`
}

// FromOptions decodes the rules of one client redirects plugin activation.
func FromOptions(a config.Activation) ([]Rule, error) {
	var opts Options
	if err := a.Decode(&opts); err != nil {
		return nil, err
	}
	return opts.Redirects, nil
}

// FromConfig collects the rules of every client redirects activation, in
// activation order.
func FromConfig(cfg *config.Config) ([]Rule, error) {
	var rules []Rule
	for _, a := range cfg.PluginsNamed(config.PluginClientRedirects) {
		r, err := FromOptions(a)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r...)
	}
	return rules, nil
}
