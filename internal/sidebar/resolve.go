package sidebar

import (
	"fmt"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
)

// Generator expands an autogenerated entry into concrete entries.
type Generator interface {
	Autogenerate(dirName string) ([]Item, error)
}

// Resolve returns a copy of the mapping where every Autogenerated entry is
// replaced, in place, by the entries gen produces for its directory. The
// receiver is not modified.
func (s *Sidebars) Resolve(gen Generator) (*Sidebars, error) {
	out := New()
	for _, id := range s.IDs() {
		items, _ := s.Get(id)
		resolved, err := resolveItems(id, items, gen)
		if err != nil {
			return nil, err
		}
		out.Set(id, resolved...)
	}
	return out, nil
}

func resolveItems(prefix string, items []Item, gen Generator) ([]Item, error) {
	out := make([]Item, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		switch v := item.(type) {
		case Autogenerated:
			generated, err := gen.Autogenerate(v.DirName)
			if err != nil {
				if ce, ok := derrors.AsClassified(err); ok {
					return nil, ce.WithContext("path", path)
				}
				return nil, derrors.WrapError(err, derrors.CategoryNotFound, "failed to expand autogenerated entry").
					WithContext("path", path).
					Build()
			}
			out = append(out, generated...)
		case Category:
			children, err := resolveItems(path+".items", v.Items, gen)
			if err != nil {
				return nil, err
			}
			if len(children) == 0 {
				// A category emptied by expansion collapses to its doc link.
				if v.Link != nil && v.Link.Type == LinkDoc {
					out = append(out, Doc{ID: v.Link.ID, Label: v.Label})
				}
				continue
			}
			v.Items = children
			if v.Link != nil {
				link := *v.Link
				v.Link = &link
			}
			out = append(out, v)
		default:
			out = append(out, item)
		}
	}
	return out, nil
}
