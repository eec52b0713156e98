// Package frontmatter splits Markdown documents into their YAML frontmatter
// and body, and reads the doc metadata keys the sidebar cares about.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Document is a Markdown file split at its `---` delimiters. Newline is the
// newline style of the source ("\n" or "\r\n").
type Document struct {
	Frontmatter []byte
	Body        []byte
	Had         bool
	Newline     string
}

// ErrMissingClosingDelimiter is returned for a document that opens a
// frontmatter block but never closes it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter from the body. A document that does not
// start with `---` has no frontmatter and its whole content is the body.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)
	doc := Document{Body: content, Newline: nl}

	delim := []byte("---" + nl)
	if !bytes.HasPrefix(content, delim) {
		return doc, nil
	}
	rest := content[len(delim):]
	if bytes.HasPrefix(rest, delim) {
		doc.Frontmatter, doc.Body, doc.Had = []byte{}, rest[len(delim):], true
		return doc, nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		// A closing delimiter at EOF without a trailing newline.
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			doc.Frontmatter, doc.Body, doc.Had = rest[:len(rest)-len("---")], []byte{}, true
			return doc, nil
		}
		return Document{}, ErrMissingClosingDelimiter
	}
	doc.Frontmatter = rest[:idx+len(nl)]
	doc.Body = rest[idx+len(closing):]
	doc.Had = true
	return doc, nil
}

// Join reassembles the document. Without frontmatter the body is returned as is.
func Join(doc Document) []byte {
	if !doc.Had {
		return doc.Body
	}
	nl := doc.Newline
	if nl == "" {
		nl = "\n"
	}
	out := make([]byte, 0, 2*len("---"+nl)+len(doc.Frontmatter)+len(doc.Body))
	out = append(out, "---"+nl...)
	out = append(out, doc.Frontmatter...)
	out = append(out, "---"+nl...)
	return append(out, doc.Body...)
}

// Fields parses the raw frontmatter into a map. An empty block yields an
// empty map.
func (d Document) Fields() (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(d.Frontmatter)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(d.Frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Meta holds the frontmatter keys that affect a doc's identity and its place
// in a sidebar.
type Meta struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	SidebarLabel    string   `yaml:"sidebar_label"`
	SidebarPosition *float64 `yaml:"sidebar_position"`
	Slug            string   `yaml:"slug"`
}

// Meta decodes the doc metadata keys. Unknown keys are ignored.
func (d Document) Meta() (Meta, error) {
	var m Meta
	if len(bytes.TrimSpace(d.Frontmatter)) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(d.Frontmatter, &m); err != nil {
		return Meta{}, err
	}
	return m, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
