package docs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/frontmatter"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/markdown"
)

// categoryFiles are read in order; the first one found wins.
var categoryFiles = []string{"_category_.json", "_category_.yml", "_category_.yaml"}

// Scan indexes the Markdown files under root. Files and directories whose
// name starts with "_" or "." are skipped, as is node_modules.
func Scan(root string) (*Index, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, derrors.NotFoundError("docs directory not found").
			WithContext("path", root).
			Build()
	}

	idx := newIndex(root)
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && skipName(d.Name()) {
				return filepath.SkipDir
			}
			return idx.addDir(p, rel)
		}
		if skipName(d.Name()) || !isMarkdown(d.Name()) {
			return nil
		}
		return idx.addFile(p, rel)
	})
	if err != nil {
		if _, ok := derrors.AsClassified(err); ok {
			return nil, err
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to scan docs directory").
			WithContext("path", root).
			Build()
	}

	sort.Strings(idx.order)
	slog.Info("Documentation indexed", logfields.Path(root), logfields.Count(len(idx.order)))
	return idx, nil
}

func skipName(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "node_modules"
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

func (idx *Index) addDir(abs, rel string) error {
	idx.dirs[rel] = DirMeta{}
	if rel != "." {
		parent := path.Dir(rel)
		idx.subdirs[parent] = append(idx.subdirs[parent], rel)
		idx.stripped[stripDirPrefixes(rel)] = rel
	}
	for _, name := range categoryFiles {
		data, err := os.ReadFile(filepath.Join(abs, name))
		if err != nil {
			continue
		}
		var meta DirMeta
		if err := yaml.Unmarshal(data, &meta); err != nil {
			return derrors.ValidationError(fmt.Sprintf("invalid %s: %v", name, err)).
				WithContext("path", path.Join(rel, name)).
				Build()
		}
		idx.dirs[rel] = meta
		break
	}
	return nil
}

func (idx *Index) addFile(abs, rel string) error {
	content, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	doc, err := frontmatter.Split(content)
	if err != nil {
		return derrors.ValidationError(err.Error()).WithContext("path", rel).Build()
	}
	meta, err := doc.Meta()
	if err != nil {
		return derrors.ValidationError(fmt.Sprintf("invalid frontmatter: %v", err)).WithContext("path", rel).Build()
	}

	dir := path.Dir(rel)
	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	name, prefixPos := splitNumberPrefix(base)

	if strings.Contains(meta.ID, "/") {
		return derrors.ValidationError(fmt.Sprintf("frontmatter id %q must not contain '/'", meta.ID)).
			WithContext("path", rel).
			Build()
	}
	leaf := name
	if meta.ID != "" {
		leaf = meta.ID
	}
	id := normalizeID(path.Join(stripDirPrefixes(dir), leaf))

	title := meta.Title
	if title == "" {
		title = markdown.Title(doc.Body)
	}
	if title == "" {
		title = name
	}
	pos := meta.SidebarPosition
	if pos == nil {
		pos = prefixPos
	}

	if existing, ok := idx.docs[id]; ok {
		return derrors.ValidationError(fmt.Sprintf("duplicate doc id %q (also defined by %s)", id, existing.Path)).
			WithContext("path", rel).
			Build()
	}
	sum := sha256.Sum256(content)
	idx.docs[id] = &Doc{
		ID:           id,
		Title:        title,
		SidebarLabel: meta.SidebarLabel,
		Position:     pos,
		Slug:         meta.Slug,
		Path:         rel,
		Dir:          dir,
		Body:         doc.Body,
		ContentHash:  hex.EncodeToString(sum[:]),
	}
	idx.byPath[rel] = id
	idx.order = append(idx.order, id)
	idx.files[dir] = append(idx.files[dir], id)
	return nil
}
