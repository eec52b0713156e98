package redirect

import (
	"fmt"
	"net/http"
	"path"
	"sort"
	"strings"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
)

// Entry is one resolved from → to mapping.
type Entry struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Table maps normalized source paths to their targets. Paths are relative to
// the site base URL; WithBaseURL sets the prefix used on the wire.
type Table struct {
	targets map[string]string
	froms   []string
	base    string
}

// NewTable builds the table. Paths gain a leading slash and lose any trailing
// slash; empty paths, self redirects and a source mapped to two different
// targets are rejected.
func NewTable(rules []Rule) (*Table, error) {
	t := &Table{targets: map[string]string{}, base: "/"}
	for i, rule := range rules {
		at := fmt.Sprintf("redirects[%d]", i)
		to, ok := Normalize(rule.To)
		if !ok {
			return nil, invalid(at+".to", "redirect target cannot be empty")
		}
		if len(rule.From) == 0 {
			return nil, invalid(at+".from", "redirect needs at least one source path")
		}
		for j, raw := range rule.From {
			fromAt := fmt.Sprintf("%s.from[%d]", at, j)
			from, ok := Normalize(raw)
			if !ok {
				return nil, invalid(fromAt, "redirect source cannot be empty")
			}
			if from == to {
				return nil, invalid(fromAt, fmt.Sprintf("%s redirects to itself", from))
			}
			if existing, dup := t.targets[from]; dup {
				if existing != to {
					return nil, invalid(fromAt, fmt.Sprintf("%s already redirects to %s", from, existing))
				}
				continue
			}
			t.targets[from] = to
			t.froms = append(t.froms, from)
		}
	}
	sort.Strings(t.froms)
	return t, nil
}

func invalid(path, message string) error {
	return derrors.ValidationError(message).WithContext("path", path).Build()
}

// Normalize returns p with a leading slash and without a trailing slash (the
// root stays "/"). Query and fragment are dropped. ok is false for an empty path.
func Normalize(p string) (string, bool) {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "", false
	}
	p = path.Clean("/" + p)
	return p, true
}

// WithBaseURL returns a copy of the table serving under base.
func (t *Table) WithBaseURL(base string) *Table {
	c := *t
	c.base = "/" + strings.Trim(base, "/")
	return &c
}

// Len returns the number of source paths.
func (t *Table) Len() int { return len(t.froms) }

// Resolve returns the target of p, a path relative to the base URL.
func (t *Table) Resolve(p string) (string, bool) {
	n, ok := Normalize(p)
	if !ok {
		return "", false
	}
	to, found := t.targets[n]
	return to, found
}

// Entries returns every mapping sorted by source path.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.froms))
	for _, from := range t.froms {
		out = append(out, Entry{From: from, To: t.targets[from]})
	}
	return out
}

// CheckTargets returns the entries whose target is not one of routes.
func (t *Table) CheckTargets(routes []string) []Entry {
	known := make(map[string]bool, len(routes))
	for _, r := range routes {
		if n, ok := Normalize(r); ok {
			known[n] = true
		}
	}
	var broken []Entry
	for _, e := range t.Entries() {
		if !known[e.To] {
			broken = append(broken, e)
		}
	}
	return broken
}

// wirePath prefixes a site-relative path with the base URL.
func (t *Table) wirePath(p string) string {
	return path.Join(t.base, p)
}

// Middleware answers GET and HEAD requests for a redirected path with a 301
// to its target, keeping the query string. Other requests pass through.
func (t *Table) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		rel := r.URL.Path
		if t.base != "/" {
			trimmed, ok := strings.CutPrefix(rel, t.base)
			if !ok || (trimmed != "" && !strings.HasPrefix(trimmed, "/")) {
				next.ServeHTTP(w, r)
				return
			}
			rel = trimmed
		}
		to, ok := t.Resolve(rel)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		target := t.wirePath(to)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
}
