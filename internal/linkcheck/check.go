package linkcheck

import (
	"fmt"
	"path"
	"strings"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/config"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/docs"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/markdown"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/redirect"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/sidebar"
)

// Input is everything a check looks at. Index may be nil, in which case
// only checks that need no docs tree run.
type Input struct {
	Config    *config.Config
	Sidebars  *sidebar.Sidebars
	Index     *docs.Index
	RouteBase string
	Redirects *redirect.Table
}

// Check runs every link check and returns the report.
func Check(in Input) *Report {
	r := NewReport(in.Config.OnBrokenLinks, in.Config.OnBrokenMarkdownLinks)
	c := checker{in: in, report: r, routes: map[string]bool{}}
	if in.Index != nil {
		for _, route := range in.Index.Routes(in.RouteBase) {
			if n, ok := redirect.Normalize(route); ok {
				c.routes[n] = true
			}
		}
	}
	c.navbar()
	c.sidebars()
	c.announcementBar()
	c.redirects()
	c.markdown()
	return r
}

type checker struct {
	in     Input
	report *Report
	routes map[string]bool
}

func (c *checker) hasDocs() bool { return c.in.Index != nil }

func (c *checker) navbar() {
	for i, item := range c.in.Config.ThemeConfig.Navbar.Items {
		source := fmt.Sprintf("navbar.items[%d]", i)
		switch item.Type {
		case config.NavbarDoc:
			if c.hasDocs() && !c.in.Index.Has(item.DocID) {
				c.report.add(Finding{Class: ClassLink, Source: source, Target: item.DocID, Reason: "navbar doc does not exist"})
			}
		case config.NavbarDocSidebar:
			if c.in.Sidebars != nil && !c.in.Sidebars.Has(item.SidebarID) {
				c.report.add(Finding{Class: ClassLink, Source: source, Target: item.SidebarID, Reason: "navbar sidebar does not exist"})
			}
		case config.NavbarLink:
			if item.To != "" {
				c.internalHref(source, item.To)
			}
		}
	}
}

func (c *checker) sidebars() {
	if c.in.Sidebars == nil || !c.hasDocs() {
		return
	}
	_ = c.in.Sidebars.Walk(func(p string, item sidebar.Item) error {
		switch v := item.(type) {
		case sidebar.Doc:
			c.docRef(p, v.ID)
		case sidebar.Ref:
			c.docRef(p, v.ID)
		case sidebar.Category:
			if v.Link != nil && v.Link.Type == sidebar.LinkDoc {
				c.docRef(p+".link", v.Link.ID)
			}
		}
		return nil
	})
}

func (c *checker) docRef(source, id string) {
	if !c.in.Index.Has(id) {
		c.report.add(Finding{Class: ClassLink, Source: source, Target: id, Reason: "sidebar doc does not exist"})
	}
}

func (c *checker) announcementBar() {
	bar := c.in.Config.ThemeConfig.AnnouncementBar
	if bar == nil {
		return
	}
	for _, href := range anchorHrefs(bar.Content) {
		c.internalHref("announcement_bar.content", href)
	}
}

// internalHref checks a site-internal URL path against the known routes and
// redirect sources. External URLs and anchors are not checked.
func (c *checker) internalHref(source, href string) {
	if !c.hasDocs() || !isInternal(href) {
		return
	}
	rel := strings.TrimPrefix(href, strings.TrimSuffix(c.in.Config.BaseURL, "/"))
	n, ok := redirect.Normalize(rel)
	if !ok || c.routes[n] {
		return
	}
	if c.in.Redirects != nil {
		if _, ok := c.in.Redirects.Resolve(n); ok {
			return
		}
	}
	c.report.add(Finding{Class: ClassLink, Source: source, Target: href, Reason: "no page at this path"})
}

func (c *checker) redirects() {
	if c.in.Redirects == nil || !c.hasDocs() {
		return
	}
	known := make([]string, 0, len(c.routes))
	for r := range c.routes {
		known = append(known, r)
	}
	for _, e := range c.in.Redirects.CheckTargets(known) {
		c.report.add(Finding{Class: ClassLink, Source: "redirect " + e.From, Target: e.To, Reason: "redirect target does not exist"})
	}
}

func (c *checker) markdown() {
	if !c.hasDocs() {
		return
	}
	for _, d := range c.in.Index.Docs() {
		seen := map[string]bool{}
		for _, link := range markdown.Links(d.Body) {
			target, ok := markdownTarget(link.Destination)
			if !ok || seen[target] {
				continue
			}
			seen[target] = true
			resolved := path.Clean(path.Join(d.Dir, target))
			if _, found := c.in.Index.DocByPath(resolved); !found {
				c.report.add(Finding{Class: ClassMarkdownLink, Source: d.Path, Target: link.Destination, Reason: "linked markdown file does not exist"})
			}
		}
	}
}

// markdownTarget returns the path part of a relative link to a .md or .mdx
// file.
func markdownTarget(dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") || strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return "", false
	}
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		dest = dest[:i]
	}
	if !strings.HasSuffix(dest, ".md") && !strings.HasSuffix(dest, ".mdx") {
		return "", false
	}
	return dest, true
}

func isInternal(href string) bool {
	return strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")
}
