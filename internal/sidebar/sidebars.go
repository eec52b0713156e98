package sidebar

import (
	"fmt"
	"strings"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
)

// Sidebars maps sidebar identifiers to their entries. Identifiers keep the
// order in which they were added (source order when decoded).
type Sidebars struct {
	ids   []string
	items map[string][]Item
}

// New returns an empty mapping.
func New() *Sidebars {
	return &Sidebars{items: map[string][]Item{}}
}

// Set adds or replaces the sidebar id. A replaced sidebar keeps its position.
func (s *Sidebars) Set(id string, items ...Item) *Sidebars {
	if s.items == nil {
		s.items = map[string][]Item{}
	}
	if _, ok := s.items[id]; !ok {
		s.ids = append(s.ids, id)
	}
	if items == nil {
		items = []Item{}
	}
	s.items[id] = items
	return s
}

// Get returns the entries of sidebar id.
func (s *Sidebars) Get(id string) ([]Item, bool) {
	if s == nil {
		return nil, false
	}
	items, ok := s.items[id]
	return items, ok
}

// Has reports whether sidebar id is defined.
func (s *Sidebars) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// IDs returns the sidebar identifiers in order.
func (s *Sidebars) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.ids...)
}

// Len returns the number of sidebars.
func (s *Sidebars) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// WalkFunc is called for every entry in depth-first order. path locates the
// entry, e.g. "docSidebar[0].items[2]".
type WalkFunc func(path string, item Item) error

// Walk visits every entry of every sidebar, parents before children. It stops
// at the first error returned by fn.
func (s *Sidebars) Walk(fn WalkFunc) error {
	for _, id := range s.IDs() {
		if err := walkItems(id, s.items[id], fn); err != nil {
			return err
		}
	}
	return nil
}

func walkItems(prefix string, items []Item, fn WalkFunc) error {
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		if err := fn(path, item); err != nil {
			return err
		}
		if c, ok := item.(Category); ok {
			if err := walkItems(path+".items", c.Items, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// DocIDs returns the doc and ref identifiers of sidebar id in display order,
// including category doc links.
func (s *Sidebars) DocIDs(id string) []string {
	items, ok := s.Get(id)
	if !ok {
		return nil
	}
	var ids []string
	_ = walkItems(id, items, func(_ string, item Item) error {
		switch v := item.(type) {
		case Doc:
			ids = append(ids, v.ID)
		case Ref:
			ids = append(ids, v.ID)
		case Category:
			if v.Link != nil && v.Link.Type == LinkDoc {
				ids = append(ids, v.Link.ID)
			}
		}
		return nil
	})
	return ids
}

// Validate checks the shape of every entry. The first problem found is
// returned as a validation error carrying the entry path.
func (s *Sidebars) Validate() error {
	return s.Walk(validateItem)
}

func invalid(path, message string) error {
	return derrors.ValidationError(message).WithContext("path", path).Build()
}

func validateItem(path string, item Item) error {
	switch v := item.(type) {
	case Doc:
		if strings.TrimSpace(v.ID) == "" {
			return invalid(path, "doc entry requires an id")
		}
	case Ref:
		if strings.TrimSpace(v.ID) == "" {
			return invalid(path, "ref entry requires an id")
		}
	case Link:
		if v.Href == "" {
			return invalid(path, "link entry requires an href")
		}
		if v.Label == "" {
			return invalid(path, "link entry requires a label")
		}
	case Category:
		if strings.TrimSpace(v.Label) == "" {
			return invalid(path, "category requires a label")
		}
		if len(v.Items) == 0 {
			return invalid(path, fmt.Sprintf("category %q has no items", v.Label))
		}
		if l := v.Link; l != nil {
			switch l.Type {
			case LinkDoc:
				if l.ID == "" {
					return invalid(path+".link", "doc link requires an id")
				}
			case LinkGeneratedIndex:
			default:
				return invalid(path+".link", fmt.Sprintf("unknown category link type %q", l.Type))
			}
		}
	case Autogenerated:
		if strings.TrimSpace(v.DirName) == "" {
			return invalid(path, "autogenerated entry requires dir_name")
		}
	default:
		return invalid(path, fmt.Sprintf("unsupported entry %T", item))
	}
	return nil
}
