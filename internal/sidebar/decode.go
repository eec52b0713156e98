package sidebar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
)

// Load reads and validates the sidebar file at path. JSON files are accepted
// as well since JSON is valid YAML.
func Load(path string) (*Sidebars, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.ConfigError("sidebar file not found").
				WithContext("path", path).
				Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read sidebar file").
			WithContext("path", path).
			Build()
	}
	s, err := Parse(data)
	if err != nil {
		if ce, ok := derrors.AsClassified(err); ok {
			return nil, ce.WithContext("file", path)
		}
		return nil, err
	}
	return s, nil
}

// Parse decodes and validates a sidebar document.
func Parse(data []byte) (*Sidebars, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to parse sidebar file").Fatal().Build()
	}
	s, err := decodeSidebars(&node)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// UnmarshalYAML decodes the mapping while keeping key order. It does not
// validate; use Parse or Validate for that.
func (s *Sidebars) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := decodeSidebars(node)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

func decodeSidebars(node *yaml.Node) (*Sidebars, error) {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return New(), nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, invalid("", fmt.Sprintf("line %d: sidebar file must be a mapping of sidebar id to entries", node.Line))
	}
	s := New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		id := node.Content[i].Value
		if s.Has(id) {
			return nil, invalid(id, fmt.Sprintf("line %d: duplicate sidebar id %q", node.Content[i].Line, id))
		}
		items, err := decodeItems(id, node.Content[i+1])
		if err != nil {
			return nil, err
		}
		s.Set(id, items...)
	}
	return s, nil
}

func decodeItems(prefix string, node *yaml.Node) ([]Item, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, invalid(prefix, fmt.Sprintf("line %d: entries must be a sequence", node.Line))
	}
	items := make([]Item, 0, len(node.Content))
	for i, child := range node.Content {
		item, err := decodeItem(fmt.Sprintf("%s[%d]", prefix, i), child)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// rawItem is the long form of an entry. Both dir_name and dirName are
// accepted for autogenerated entries.
type rawItem struct {
	Type        string    `yaml:"type"`
	ID          string    `yaml:"id"`
	Label       string    `yaml:"label"`
	Href        string    `yaml:"href"`
	Collapsed   *bool     `yaml:"collapsed"`
	Collapsible *bool     `yaml:"collapsible"`
	Items       yaml.Node `yaml:"items"`
	Link        *rawLink  `yaml:"link"`
	DirName     string    `yaml:"dir_name"`
	DirNameAlt  string    `yaml:"dirName"`
}

type rawLink struct {
	Type        string `yaml:"type"`
	ID          string `yaml:"id"`
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

func decodeItem(path string, node *yaml.Node) (Item, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, invalid(path, "entry cannot be null")
		}
		return Doc{ID: node.Value}, nil
	case yaml.MappingNode:
	default:
		return nil, invalid(path, fmt.Sprintf("line %d: entry must be a doc id or a mapping", node.Line))
	}

	if isShorthandCategory(node) {
		items, err := decodeItems(path+".items", node.Content[1])
		if err != nil {
			return nil, err
		}
		return NewCategory(node.Content[0].Value, items...), nil
	}

	var raw rawItem
	if err := node.Decode(&raw); err != nil {
		return nil, invalid(path, fmt.Sprintf("line %d: %v", node.Line, err))
	}
	switch Kind(raw.Type) {
	case KindDoc:
		return Doc{ID: raw.ID, Label: raw.Label}, nil
	case KindRef:
		return Ref{ID: raw.ID, Label: raw.Label}, nil
	case KindLink:
		return Link{Label: raw.Label, Href: raw.Href}, nil
	case KindAutogenerated:
		dir := raw.DirName
		if dir == "" {
			dir = raw.DirNameAlt
		}
		return Autogenerated{DirName: dir}, nil
	case KindCategory:
		c := NewCategory(raw.Label)
		if raw.Collapsed != nil {
			c.Collapsed = *raw.Collapsed
		}
		if raw.Collapsible != nil {
			c.Collapsible = *raw.Collapsible
		}
		if raw.Items.Kind != 0 {
			items, err := decodeItems(path+".items", &raw.Items)
			if err != nil {
				return nil, err
			}
			c.Items = items
		}
		if l := raw.Link; l != nil {
			c.Link = &CategoryLink{
				Type:        CategoryLinkType(l.Type),
				ID:          l.ID,
				Slug:        l.Slug,
				Title:       l.Title,
				Description: l.Description,
			}
		}
		return c, nil
	case "":
		return nil, invalid(path, fmt.Sprintf("line %d: entry has no type", node.Line))
	default:
		return nil, invalid(path, fmt.Sprintf("line %d: unknown entry type %q", node.Line, raw.Type))
	}
}

// isShorthandCategory matches {"Label": [entries]}.
func isShorthandCategory(node *yaml.Node) bool {
	return len(node.Content) == 2 &&
		node.Content[0].Value != "type" &&
		node.Content[1].Kind == yaml.SequenceNode
}
