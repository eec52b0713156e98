package docs

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Index is the result of Scan. It is read-only once built.
type Index struct {
	root     string
	docs     map[string]*Doc
	order    []string
	byPath   map[string]string
	dirs     map[string]DirMeta
	subdirs  map[string][]string
	files    map[string][]string
	stripped map[string]string
}

func newIndex(root string) *Index {
	return &Index{
		root:     root,
		docs:     map[string]*Doc{},
		byPath:   map[string]string{},
		dirs:     map[string]DirMeta{},
		subdirs:  map[string][]string{},
		files:    map[string][]string{},
		stripped: map[string]string{},
	}
}

// Root returns the scanned directory.
func (idx *Index) Root() string { return idx.root }

// Len returns the number of docs.
func (idx *Index) Len() int { return len(idx.order) }

// Doc returns the doc with the given ID.
func (idx *Index) Doc(id string) (*Doc, bool) {
	d, ok := idx.docs[normalizeID(id)]
	return d, ok
}

// Has reports whether a doc with the given ID exists.
func (idx *Index) Has(id string) bool {
	_, ok := idx.Doc(id)
	return ok
}

// DocByPath returns the doc stored at the slash separated path relative to
// the docs root.
func (idx *Index) DocByPath(rel string) (*Doc, bool) {
	id, ok := idx.byPath[rel]
	if !ok {
		return nil, false
	}
	return idx.docs[id], true
}

// Docs returns every doc ordered by ID.
func (idx *Index) Docs() []*Doc {
	out := make([]*Doc, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.docs[id])
	}
	return out
}

// Routes returns the permalink of every doc under routeBase, sorted.
func (idx *Index) Routes(routeBase string) []string {
	routes := make([]string, 0, len(idx.order))
	for _, id := range idx.order {
		routes = append(routes, idx.docs[id].Permalink(routeBase))
	}
	sort.Strings(routes)
	return routes
}

// Hash is a digest of every doc's ID, path and content. It changes when any
// doc is added, removed, renamed or edited.
func (idx *Index) Hash() string {
	h := sha256.New()
	for _, id := range idx.order {
		d := idx.docs[id]
		h.Write([]byte(d.ID + "|" + d.Path + "|" + d.ContentHash + "\n"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
