// Package sidebar models the sidebar definition: a mapping from sidebar
// identifier to an ordered tree of navigation entries.
//
// Entries are a closed set of variants (Doc, Ref, Link, Category,
// Autogenerated). Child order is significant and preserved through
// decoding, encoding and resolution.
package sidebar

// Kind identifies an entry variant. The values match the "type" key used in
// sidebar files.
type Kind string

const (
	KindDoc           Kind = "doc"
	KindRef           Kind = "ref"
	KindLink          Kind = "link"
	KindCategory      Kind = "category"
	KindAutogenerated Kind = "autogenerated"
)

// Item is one sidebar entry.
type Item interface {
	Kind() Kind
}

// Doc references a document and claims it for the sidebar it appears in.
type Doc struct {
	ID    string
	Label string
}

// Ref references a document without claiming it, so the document keeps the
// sidebar it belongs to elsewhere.
type Ref struct {
	ID    string
	Label string
}

// Link is an external link leaf.
type Link struct {
	Label string
	Href  string
}

// Category groups child entries under a label.
type Category struct {
	Label       string
	Collapsed   bool
	Collapsible bool
	Items       []Item
	Link        *CategoryLink
}

// Autogenerated is replaced by the docs found in DirName at resolution time.
type Autogenerated struct {
	DirName string
}

func (Doc) Kind() Kind           { return KindDoc }
func (Ref) Kind() Kind           { return KindRef }
func (Link) Kind() Kind          { return KindLink }
func (Category) Kind() Kind      { return KindCategory }
func (Autogenerated) Kind() Kind { return KindAutogenerated }

// CategoryLinkType selects what a category label links to.
type CategoryLinkType string

const (
	LinkDoc            CategoryLinkType = "doc"
	LinkGeneratedIndex CategoryLinkType = "generated-index"
)

// CategoryLink makes a category label clickable. Doc links use ID; generated
// index pages use Slug, Title and Description.
type CategoryLink struct {
	Type        CategoryLinkType
	ID          string
	Slug        string
	Title       string
	Description string
}

// NewCategory returns a category with the file format defaults applied
// (collapsed and collapsible).
func NewCategory(label string, items ...Item) Category {
	return Category{Label: label, Collapsed: true, Collapsible: true, Items: items}
}
