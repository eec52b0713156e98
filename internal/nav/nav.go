// Package nav resolves a sidebar definition into the navigation tree a
// reader sees: labels, hrefs and expansion state for every entry.
package nav

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/docs"
	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/sidebar"
)

// NodeKind is the rendered kind of a navigation node.
type NodeKind string

const (
	KindDoc      NodeKind = "doc"
	KindLink     NodeKind = "link"
	KindCategory NodeKind = "category"
	// KindRef links to a doc without making the sidebar its owner.
	KindRef NodeKind = "ref"
	// KindPending marks an autogenerated entry left unexpanded because no
	// docs index was available.
	KindPending NodeKind = "autogenerated"
)

// Node is one entry of a navigation tree.
type Node struct {
	Kind        NodeKind `json:"kind"`
	Label       string   `json:"label"`
	Href        string   `json:"href,omitempty"`
	DocID       string   `json:"docId,omitempty"`
	Collapsed   bool     `json:"collapsed,omitempty"`
	Collapsible bool     `json:"collapsible,omitempty"`
	Items       []*Node  `json:"items,omitempty"`
}

// Tree is the resolved navigation of one sidebar.
type Tree struct {
	SidebarID string  `json:"sidebarId"`
	Items     []*Node `json:"items"`
}

// Build resolves sidebar id against index and renders it. index may be nil,
// in which case labels fall back to doc IDs, hrefs to ID based paths, and
// autogenerated entries stay as KindPending nodes.
func Build(sidebars *sidebar.Sidebars, id string, index *docs.Index, routeBase string) (*Tree, error) {
	items, ok := sidebars.Get(id)
	if !ok {
		return nil, derrors.NotFoundError(fmt.Sprintf("sidebar %q is not defined", id)).
			WithContext("sidebar", id).
			Build()
	}
	if index != nil {
		resolved, err := sidebar.New().Set(id, items...).Resolve(index)
		if err != nil {
			return nil, err
		}
		items, _ = resolved.Get(id)
	}
	b := builder{index: index, routeBase: routeBase}
	return &Tree{SidebarID: id, Items: b.nodes(items)}, nil
}

// BuildAll renders every sidebar in definition order.
func BuildAll(sidebars *sidebar.Sidebars, index *docs.Index, routeBase string) ([]*Tree, error) {
	trees := make([]*Tree, 0, sidebars.Len())
	for _, id := range sidebars.IDs() {
		t, err := Build(sidebars, id, index, routeBase)
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

type builder struct {
	index     *docs.Index
	routeBase string
}

func (b builder) nodes(items []sidebar.Item) []*Node {
	out := make([]*Node, 0, len(items))
	for _, item := range items {
		out = append(out, b.node(item))
	}
	return out
}

func (b builder) node(item sidebar.Item) *Node {
	switch v := item.(type) {
	case sidebar.Doc:
		return b.docNode(v.ID, v.Label)
	case sidebar.Ref:
		n := b.docNode(v.ID, v.Label)
		n.Kind = KindRef
		return n
	case sidebar.Link:
		return &Node{Kind: KindLink, Label: v.Label, Href: v.Href}
	case sidebar.Autogenerated:
		return &Node{Kind: KindPending, Label: v.DirName}
	case sidebar.Category:
		n := &Node{
			Kind:        KindCategory,
			Label:       v.Label,
			Collapsed:   v.Collapsed,
			Collapsible: v.Collapsible,
			Items:       b.nodes(v.Items),
		}
		if l := v.Link; l != nil {
			switch l.Type {
			case sidebar.LinkDoc:
				doc := b.docNode(l.ID, "")
				n.Href, n.DocID = doc.Href, doc.DocID
			case sidebar.LinkGeneratedIndex:
				slug := l.Slug
				if slug == "" {
					slug = path.Join("category", kebab(v.Label))
				}
				n.Href = joinRoute(b.routeBase, slug)
			}
		}
		return n
	}
	return &Node{Kind: KindPending}
}

func (b builder) docNode(id, label string) *Node {
	n := &Node{Kind: KindDoc, DocID: id, Label: label}
	if b.index != nil {
		if doc, ok := b.index.Doc(id); ok {
			if n.Label == "" {
				n.Label = doc.Label()
			}
			n.Href = doc.Permalink(b.routeBase)
			return n
		}
	}
	if n.Label == "" {
		n.Label = id
	}
	fallback := docs.Doc{ID: id}
	n.Href = fallback.Permalink(b.routeBase)
	return n
}

func joinRoute(base, p string) string {
	out := path.Join(base, p)
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	return out
}

func kebab(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return sb.String()
}
