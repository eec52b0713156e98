package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Well-known extension names.
const (
	PresetClassic         = "classic"
	ThemeSearchLocal      = "@easyops-cn/docusaurus-search-local"
	ThemeMermaid          = "@docusaurus/theme-mermaid"
	PluginRemoteContent   = "docusaurus-plugin-remote-content"
	PluginClientRedirects = "@docusaurus/plugin-client-redirects"
)

// Activation instructs the site generator to load a named preset, theme or
// plugin with an options record. The options shape belongs to the extension.
//
// In YAML an activation is either a bare name, a two element sequence
// [name, options], or a mapping {name, options}.
type Activation struct {
	Name    string
	Options map[string]any
}

// UnmarshalYAML accepts the three activation shapes.
func (a *Activation) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		a.Name = node.Value
		a.Options = nil
		return nil
	case yaml.SequenceNode:
		if len(node.Content) == 0 || len(node.Content) > 2 {
			return fmt.Errorf("line %d: activation must be [name] or [name, options], got %d elements", node.Line, len(node.Content))
		}
		if err := node.Content[0].Decode(&a.Name); err != nil {
			return fmt.Errorf("line %d: activation name: %w", node.Line, err)
		}
		a.Options = nil
		if len(node.Content) == 2 {
			return decodeOptions(node.Content[1], &a.Options)
		}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Name    string    `yaml:"name"`
			Options yaml.Node `yaml:"options"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		a.Name = raw.Name
		a.Options = nil
		if raw.Options.Kind != 0 {
			return decodeOptions(&raw.Options, &a.Options)
		}
		return nil
	default:
		return fmt.Errorf("line %d: unsupported activation shape", node.Line)
	}
}

func decodeOptions(node *yaml.Node, into *map[string]any) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: activation options must be a mapping", node.Line)
	}
	return node.Decode(into)
}

// MarshalYAML emits the bare name when there are no options.
func (a Activation) MarshalYAML() (any, error) {
	if len(a.Options) == 0 {
		return a.Name, nil
	}
	return []any{a.Name, a.Options}, nil
}

// Decode converts the opaque options into a typed value. Field names in the
// target use the extension's own option keys.
func (a Activation) Decode(into any) error {
	if len(a.Options) == 0 {
		return nil
	}
	data, err := yaml.Marshal(a.Options)
	if err != nil {
		return fmt.Errorf("%s: encode options: %w", a.Name, err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("%s: decode options: %w", a.Name, err)
	}
	return nil
}

// InstanceID is the plugin instance identifier ("default" unless options set id).
func (a Activation) InstanceID() string {
	if id, ok := a.Options["id"].(string); ok && id != "" {
		return id
	}
	return "default"
}

// ClassicDocsOptions is the docs section of the classic preset options.
type ClassicDocsOptions struct {
	Path          string `yaml:"path"`
	SidebarPath   string `yaml:"sidebarPath"`
	RouteBasePath string `yaml:"routeBasePath"`
}

// ClassicOptions is the subset of the classic preset options the toolkit reads.
type ClassicOptions struct {
	Docs ClassicDocsOptions `yaml:"docs"`
}

// ClassicDocs returns the classic preset docs options with defaults applied.
func (c *Config) ClassicDocs() (ClassicDocsOptions, error) {
	opts := ClassicOptions{}
	if preset, ok := c.Preset(PresetClassic); ok {
		if err := preset.Decode(&opts); err != nil {
			return ClassicDocsOptions{}, err
		}
	}
	if opts.Docs.Path == "" {
		opts.Docs.Path = "docs"
	}
	if opts.Docs.SidebarPath == "" {
		opts.Docs.SidebarPath = "sidebars.yaml"
	}
	if opts.Docs.RouteBasePath == "" {
		opts.Docs.RouteBasePath = "/docs"
	}
	return opts.Docs, nil
}
