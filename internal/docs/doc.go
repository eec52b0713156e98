// Package docs indexes the documentation tree: doc identifiers, titles,
// sidebar metadata and permalinks, plus the directory metadata used to
// expand autogenerated sidebar entries.
package docs

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Doc is one Markdown document of the docs tree.
type Doc struct {
	ID           string   // Dir (prefixes stripped) + frontmatter id or file name
	Title        string   // frontmatter title, first H1, or file name
	SidebarLabel string   // frontmatter sidebar_label
	Position     *float64 // sidebar_position, or the numeric file name prefix
	Slug         string   // frontmatter slug
	Path         string   // slash separated, relative to the docs root
	Dir          string   // slash separated source directory, "." for the root
	Body         []byte   // content without frontmatter
	ContentHash  string   // sha256 of the full file
}

// Label is the text shown for the doc in a sidebar.
func (d *Doc) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	if d.Title != "" {
		return d.Title
	}
	return d.ID
}

// Permalink returns the URL path of the doc under routeBase.
//
// A slug starting with "/" is relative to routeBase, any other slug is
// relative to the doc's directory. Without a slug the doc ID is used, and a
// trailing "index" or "readme" segment maps to its directory.
func (d *Doc) Permalink(routeBase string) string {
	var p string
	switch {
	case strings.HasPrefix(d.Slug, "/"):
		p = path.Join(routeBase, d.Slug)
	case d.Slug != "":
		p = path.Join(routeBase, stripDirPrefixes(d.Dir), d.Slug)
	default:
		id := d.ID
		base := path.Base(id)
		if isIndexName(base, "") {
			id = path.Dir(id)
		}
		p = path.Join(routeBase, id)
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// DirMeta is the content of a _category_ file.
type DirMeta struct {
	Label       string   `yaml:"label"`
	Position    *float64 `yaml:"position"`
	Collapsed   *bool    `yaml:"collapsed"`
	Collapsible *bool    `yaml:"collapsible"`
	Link        *struct {
		Type        string `yaml:"type"`
		ID          string `yaml:"id"`
		Slug        string `yaml:"slug"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"link"`
}

var numberPrefix = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[-_.]\s*`)

// splitNumberPrefix strips an ordering prefix such as "01-" from name and
// returns the prefix value.
func splitNumberPrefix(name string) (string, *float64) {
	m := numberPrefix.FindStringSubmatch(name)
	if m == nil || len(m[0]) == len(name) {
		return name, nil
	}
	pos, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return name, nil
	}
	return name[len(m[0]):], &pos
}

func stripDirPrefixes(dir string) string {
	if dir == "." || dir == "" {
		return ""
	}
	parts := strings.Split(dir, "/")
	for i, p := range parts {
		parts[i], _ = splitNumberPrefix(p)
	}
	return strings.Join(parts, "/")
}

func isIndexName(name, dirName string) bool {
	lower := strings.ToLower(name)
	if lower == "index" || lower == "readme" {
		return true
	}
	return dirName != "" && lower == strings.ToLower(dirName)
}

// normalizeID canonicalizes a doc identifier: NFC, slash separators, no
// leading "./".
func normalizeID(id string) string {
	id = norm.NFC.String(id)
	id = strings.TrimPrefix(path.Clean(strings.ReplaceAll(id, "\\", "/")), "./")
	if id == "." {
		return ""
	}
	return id
}
