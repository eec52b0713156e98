package config

import (
	"fmt"
	"sort"
	"strings"
)

// normalizer maps case-folded raw strings onto a typed enumeration.
type normalizer[T ~string] struct {
	values map[string]T
	keys   []string
	def    T
}

func newNormalizer[T ~string](def T, values ...T) *normalizer[T] {
	n := &normalizer[T]{values: make(map[string]T, len(values)), def: def}
	for _, v := range values {
		n.values[foldKey(string(v))] = v
		n.keys = append(n.keys, string(v))
	}
	sort.Strings(n.keys)
	return n
}

// lookup returns the canonical value and whether raw was recognised.
func (n *normalizer[T]) lookup(raw string) (T, bool) {
	v, ok := n.values[foldKey(raw)]
	return v, ok
}

// normalize canonicalises *field in place. Empty stays empty; unknown values
// fall back to the default and produce a warning.
func (n *normalizer[T]) normalize(name string, field *T, res *NormalizationResult) {
	raw := string(*field)
	if strings.TrimSpace(raw) == "" {
		*field = ""
		return
	}
	if v, ok := n.lookup(raw); ok {
		if v != *field {
			res.Warnings = append(res.Warnings, fmt.Sprintf("normalized %s from '%s' to '%s'", name, raw, v))
			*field = v
		}
		return
	}
	res.Warnings = append(res.Warnings, fmt.Sprintf("unknown %s '%s' (allowed: %s), defaulting to %s",
		name, raw, strings.Join(n.keys, "|"), n.def))
	*field = n.def
}

func foldKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
