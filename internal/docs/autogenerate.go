package docs

import (
	"fmt"
	"path"
	"sort"
	"strings"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/sidebar"
)

var _ sidebar.Generator = (*Index)(nil)

type generated struct {
	name string
	pos  *float64
	item sidebar.Item
}

// Autogenerate returns the sidebar entries for dirName: the docs directly in
// it and one category per subdirectory, recursively, ordered by position and
// then by name. dirName may be given with or without ordering prefixes;
// "." is the docs root.
//
// In a subdirectory, a doc named index, readme or after the directory becomes
// the category link instead of a child.
func (idx *Index) Autogenerate(dirName string) ([]sidebar.Item, error) {
	dir := path.Clean(strings.TrimPrefix(strings.TrimSpace(dirName), "./"))
	if dir == "" || dir == "/" {
		dir = "."
	}
	if _, ok := idx.dirs[dir]; !ok {
		raw, found := idx.stripped[dir]
		if !found {
			return nil, derrors.NotFoundError(fmt.Sprintf("autogenerated directory %q not found in docs", dirName)).
				WithContext("dir", dirName).
				Build()
		}
		dir = raw
	}
	return idx.generate(dir), nil
}

func (idx *Index) generate(dir string) []sidebar.Item {
	var entries []generated
	for _, id := range idx.files[dir] {
		d := idx.docs[id]
		entries = append(entries, generated{name: fileName(d), pos: d.Position, item: sidebar.Doc{ID: id}})
	}
	for _, sub := range idx.subdirs[dir] {
		if e, ok := idx.category(sub); ok {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.pos != nil && b.pos != nil && *a.pos != *b.pos:
			return *a.pos < *b.pos
		case a.pos != nil && b.pos == nil:
			return true
		case a.pos == nil && b.pos != nil:
			return false
		}
		return a.name < b.name
	})

	items := make([]sidebar.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.item)
	}
	return items
}

func (idx *Index) category(dir string) (generated, bool) {
	meta := idx.dirs[dir]
	base := path.Base(dir)
	name, prefixPos := splitNumberPrefix(base)
	children := idx.generate(dir)

	var link *sidebar.CategoryLink
	if l := meta.Link; l != nil {
		link = &sidebar.CategoryLink{
			Type:        sidebar.CategoryLinkType(l.Type),
			ID:          l.ID,
			Slug:        l.Slug,
			Title:       l.Title,
			Description: l.Description,
		}
	} else {
		for i, child := range children {
			doc, ok := child.(sidebar.Doc)
			if !ok {
				continue
			}
			if d := idx.docs[doc.ID]; d.Dir == dir && isIndexName(docName(d), name) {
				link = &sidebar.CategoryLink{Type: sidebar.LinkDoc, ID: doc.ID}
				children = append(children[:i:i], children[i+1:]...)
				break
			}
		}
	}

	pos := meta.Position
	if pos == nil {
		pos = prefixPos
	}
	if len(children) == 0 {
		if link == nil || link.Type != sidebar.LinkDoc {
			return generated{}, false
		}
		return generated{name: base, pos: pos, item: sidebar.Doc{ID: link.ID}}, true
	}

	label := meta.Label
	if label == "" {
		label = name
	}
	c := sidebar.NewCategory(label, children...)
	if meta.Collapsed != nil {
		c.Collapsed = *meta.Collapsed
	}
	if meta.Collapsible != nil {
		c.Collapsible = *meta.Collapsible
	}
	c.Link = link
	return generated{name: base, pos: pos, item: c}, true
}

// fileName is the doc's file name without extension.
func fileName(d *Doc) string {
	return strings.TrimSuffix(path.Base(d.Path), path.Ext(d.Path))
}

// docName is fileName with the ordering prefix stripped.
func docName(d *Doc) string {
	name, _ := splitNumberPrefix(fileName(d))
	return name
}
