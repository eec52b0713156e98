package sidebar

import (
	"bytes"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/ordered"
)

// Marshal encodes the mapping as YAML with two-space indentation. Parse of the
// result yields an identical mapping.
func Marshal(s *Sidebars) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.node()); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML emits sidebars in order. Docs without a label use the string
// shorthand; categories always spell out collapsed and collapsible.
func (s *Sidebars) MarshalYAML() (any, error) {
	return s.node(), nil
}

func (s *Sidebars) node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, id := range s.IDs() {
		items, _ := s.Get(id)
		n.Content = append(n.Content, str(id), itemsNode(items))
	}
	return n
}

func itemsNode(items []Item) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, item := range items {
		n.Content = append(n.Content, itemNode(item))
	}
	return n
}

func itemNode(item Item) *yaml.Node {
	switch v := item.(type) {
	case Doc:
		if v.Label == "" {
			return str(v.ID)
		}
		return mapping("type", str(string(KindDoc)), "id", str(v.ID), "label", str(v.Label))
	case Ref:
		m := mapping("type", str(string(KindRef)), "id", str(v.ID))
		if v.Label != "" {
			m.Content = append(m.Content, str("label"), str(v.Label))
		}
		return m
	case Link:
		return mapping("type", str(string(KindLink)), "label", str(v.Label), "href", str(v.Href))
	case Autogenerated:
		return mapping("type", str(string(KindAutogenerated)), "dir_name", str(v.DirName))
	case Category:
		m := mapping(
			"type", str(string(KindCategory)),
			"label", str(v.Label),
			"collapsed", boolean(v.Collapsed),
			"collapsible", boolean(v.Collapsible),
		)
		if l := v.Link; l != nil {
			link := mapping("type", str(string(l.Type)))
			for _, kv := range [][2]string{{"id", l.ID}, {"slug", l.Slug}, {"title", l.Title}, {"description", l.Description}} {
				if kv[1] != "" {
					link.Content = append(link.Content, str(kv[0]), str(kv[1]))
				}
			}
			m.Content = append(m.Content, str("link"), link)
		}
		m.Content = append(m.Content, str("items"), itemsNode(v.Items))
		return m
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func mapping(kv ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Content = append(n.Content, str(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return n
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func boolean(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

// Export renders the mapping in the site generator's sidebar schema
// (camelCase keys, string shorthand for unlabelled docs).
func (s *Sidebars) Export() *ordered.Object {
	o := ordered.New()
	for _, id := range s.IDs() {
		items, _ := s.Get(id)
		o.Set(id, exportItems(items))
	}
	return o
}

func exportItems(items []Item) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, exportItem(item))
	}
	return out
}

func exportItem(item Item) any {
	switch v := item.(type) {
	case Doc:
		if v.Label == "" {
			return v.ID
		}
		return ordered.New().Set("type", string(KindDoc)).Set("id", v.ID).Set("label", v.Label)
	case Ref:
		return ordered.New().Set("type", string(KindRef)).Set("id", v.ID).SetNonZero("label", v.Label)
	case Link:
		return ordered.New().Set("type", string(KindLink)).Set("label", v.Label).Set("href", v.Href)
	case Autogenerated:
		return ordered.New().Set("type", string(KindAutogenerated)).Set("dirName", v.DirName)
	case Category:
		o := ordered.New().
			Set("type", string(KindCategory)).
			Set("label", v.Label).
			Set("collapsed", v.Collapsed).
			Set("collapsible", v.Collapsible)
		if l := v.Link; l != nil {
			o.Set("link", ordered.New().
				Set("type", string(l.Type)).
				SetNonZero("id", l.ID).
				SetNonZero("slug", l.Slug).
				SetNonZero("title", l.Title).
				SetNonZero("description", l.Description))
		}
		return o.Set("items", exportItems(v.Items))
	}
	return nil
}
