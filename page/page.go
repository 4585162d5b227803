// Package page assembles complete HTML pages from converted documents.
package page

import (
	_ "embed"
	"errors"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/hesusruiz/xwl/sliceedit"
	"github.com/hesusruiz/xwl/xwl"
)

// ContentPlaceholder marks where the body of the page goes.
const ContentPlaceholder = "HERE_GOES_THE_CONTENT"

// Metadata placeholders, replaced with the escaped values of the document Info.
const (
	TitlePlaceholder      = "{#title}"
	KindPlaceholder       = "{#kind}"
	CreatedAtPlaceholder  = "{#createdAt}"
	ModifiedAtPlaceholder = "{#modifiedAt}"
	TagsPlaceholder       = "{#tags}"
)

// ErrNoContentPlaceholder is returned for a template without ContentPlaceholder.
var ErrNoContentPlaceholder = errors.New("template has no " + ContentPlaceholder + " placeholder")

//go:embed template.html
var defaultTemplate []byte

// Template is an HTML page with placeholders.
type Template struct {
	Name string
	raw  []byte
}

// Default returns the built-in template.
func Default() *Template {
	return &Template{Name: "default", raw: defaultTemplate}
}

// New returns a template with the given contents.
func New(name string, raw []byte) (*Template, error) {
	if len(sliceedit.FindAll(raw, ContentPlaceholder)) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoContentPlaceholder)
	}
	return &Template{Name: name, raw: raw}, nil
}

// Load reads a template file. An empty path selects the built-in template.
func Load(path string) (*Template, error) {
	if len(path) == 0 {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(path, raw)
}

// Fill returns the page with content and the metadata of info.
// The content is inserted as is, so a placeholder inside it is left untouched.
func (t *Template) Fill(content string, info xwl.Info) []byte {
	b := sliceedit.NewBuffer(t.raw)
	b.ReplaceAllString(ContentPlaceholder, content)

	// The placeholders are distinct, so the edits never overlap
	b.ReplacePairs(
		TitlePlaceholder, html.EscapeString(info.Title),
		KindPlaceholder, html.EscapeString(info.Kind),
		CreatedAtPlaceholder, html.EscapeString(info.CreatedAt),
		ModifiedAtPlaceholder, html.EscapeString(info.ModifiedAt),
		TagsPlaceholder, html.EscapeString(strings.Join(info.Tags, ", ")),
	)
	return b.Bytes()
}

// Article wraps the content of a document in an <article> element.
func Article(content string) string {
	return "<article>\n" + content + "\n</article>"
}
