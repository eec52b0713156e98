package nav

// Docs returns the doc nodes of the tree in reading order, including
// categories that link to a doc. Ref nodes are skipped. A doc listed
// twice only counts once.
func (t *Tree) Docs() []*Node {
	var out []*Node
	seen := map[string]bool{}
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.DocID != "" && n.Kind != KindRef && !seen[n.DocID] {
				seen[n.DocID] = true
				out = append(out, n)
			}
			walk(n.Items)
		}
	}
	walk(t.Items)
	return out
}

// Pagination returns the docs before and after docID in reading order.
// Either may be nil; both are nil when docID is not in the tree.
func (t *Tree) Pagination(docID string) (prev, next *Node) {
	list := t.Docs()
	for i, n := range list {
		if n.DocID != docID {
			continue
		}
		if i > 0 {
			prev = list[i-1]
		}
		if i+1 < len(list) {
			next = list[i+1]
		}
		return prev, next
	}
	return nil, nil
}
