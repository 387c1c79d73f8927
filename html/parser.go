// Package html builds a document model from HTML markup, using
// golang.org/x/net/html as the underlying parser implementation.
//
// Only elements are kept: text and comments carry no geometry in the
// absolute-positioning layout. <script> elements are collected so the
// caller can run them against the resulting document.
package html

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/vibepopper/dom"
)

// Default viewport size used when the page has no viewport meta tag.
const (
	DefaultViewportWidth  = 1024
	DefaultViewportHeight = 768
)

// Script is a script element in document order. External scripts carry
// Src and an empty Code until a loader fills it in.
type Script struct {
	// Name identifies the script in error messages, e.g. "script[0]".
	Name string
	Src  string
	Code string
}

// Page is a parsed document plus its scripts.
type Page struct {
	Document *dom.Document
	Scripts  []Script
}

// Parse parses HTML from a string.
func Parse(htmlContent string) (*Page, error) {
	return ParseReader(strings.NewReader(htmlContent))
}

// ParseReader parses HTML from an io.Reader. The viewport size is read
// from <meta name="viewport" content="width=..., height=...">.
func ParseReader(r io.Reader) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	width, height := float64(DefaultViewportWidth), float64(DefaultViewportHeight)
	if meta := find(root, isViewportMeta); meta != nil {
		w, h := ParseViewport(attr(meta, "content"))
		if w > 0 {
			width = w
		}
		if h > 0 {
			height = h
		}
	}

	page := &Page{Document: dom.NewDocument(width, height)}
	doc := page.Document

	if n := find(root, byAtom(atom.Html)); n != nil {
		copyAttributes(doc.DocumentElement(), n)
	}
	if head := find(root, byAtom(atom.Head)); head != nil {
		page.collectScripts(head)
	}
	if body := find(root, byAtom(atom.Body)); body != nil {
		copyAttributes(doc.Body(), body)
		page.convertChildren(doc.Body(), body)
	}
	return page, nil
}

// ParseViewport reads width and height from a viewport meta content
// string. Missing or non-numeric values are returned as zero.
func ParseViewport(content string) (width, height float64) {
	for _, part := range strings.FieldsFunc(content, func(r rune) bool { return r == ',' || r == ';' }) {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "width":
			width = v
		case "height":
			height = v
		}
	}
	return width, height
}

// convertChildren appends the element children of n to parent.
func (p *Page) convertChildren(parent *dom.Element, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Script {
			p.addScript(c)
			continue
		}
		el := p.Document.CreateElement(c.Data)
		copyAttributes(el, c)
		// Both come from the same document and el is fresh, so this
		// cannot fail.
		_ = parent.AppendChild(el)
		p.convertChildren(el, c)
	}
}

func (p *Page) collectScripts(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Script {
			p.addScript(c)
		}
	}
}

func (p *Page) addScript(n *html.Node) {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	p.Scripts = append(p.Scripts, Script{
		Name: "script[" + strconv.Itoa(len(p.Scripts)) + "]",
		Src:  attr(n, "src"),
		Code: sb.String(),
	})
}

func copyAttributes(el *dom.Element, n *html.Node) {
	for _, a := range n.Attr {
		el.SetAttribute(a.Key, a.Val)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func byAtom(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func isViewportMeta(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Meta && strings.EqualFold(attr(n, "name"), "viewport")
}

// find returns the first node in document order matching pred.
func find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, pred); found != nil {
			return found
		}
	}
	return nil
}
