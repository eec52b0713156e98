package redirect

import (
	"bytes"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
)

var pageTemplate = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <meta http-equiv="refresh" content="0; url={{.To}}">
    <link rel="canonical" href="{{.To}}" />
  </head>
  <script>
    window.location.href = '{{.To}}' + window.location.search + window.location.hash;
  </script>
</html>
`))

// WritePages writes one <from>/index.html redirect page per source path
// under dir. Existing files are left alone, since a real page at that path
// wins. It returns the number of pages written.
func (t *Table) WritePages(dir string) (int, error) {
	written := 0
	for _, e := range t.Entries() {
		rel := strings.TrimPrefix(e.From, "/")
		file := filepath.Join(dir, filepath.FromSlash(rel), "index.html")
		if _, err := os.Stat(file); err == nil {
			slog.Warn("Redirect source already exists, skipping", logfields.Path(e.From), slog.String("file", file))
			continue
		}

		var buf bytes.Buffer
		if err := pageTemplate.Execute(&buf, struct{ To string }{To: t.wirePath(e.To)}); err != nil {
			return written, derrors.WrapError(err, derrors.CategoryInternal, "failed to render redirect page").
				WithContext("path", e.From).
				Build()
		}
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return written, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create redirect directory").
				WithContext("path", file).
				Build()
		}
		if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
			return written, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write redirect page").
				WithContext("path", file).
				Build()
		}
		written++
	}
	return written, nil
}
