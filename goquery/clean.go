package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// cleanableTags are removed when empty and collapsed when they only wrap
// another element.
var cleanableTags = map[string]bool{
	"a": true, "b": true, "div": true, "p": true, "span": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"article": true, "section": true, "ul": true, "li": true,
}

// wrapperKeepTags are never unwrapped by wrapper collapsing.
var wrapperKeepTags = map[string]bool{"img": true, "b": true, "strong": true, "i": true}

// presentationAttrs are stripped from every element of the fragment.
var presentationAttrs = []string{"class", "id", "style", "align"}

// Clean normalizes an article fragment in place. The steps run in order:
// empty elements are removed, single-child wrappers are collapsed, divs
// holding only inline content become paragraphs, and presentation
// attributes are stripped. Cleaning a cleaned fragment changes nothing.
func Clean(fragment *goquery.Selection) {
	removeEmpty(fragment)
	collapseWrappers(fragment)
	divsToParagraphs(fragment)
	stripAttributes(fragment)
}

// removeEmpty deletes descendants that have neither an image nor any
// non-whitespace text.
func removeEmpty(fragment *goquery.Selection) {
	fragment.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if !cleanableTags[sel.Get(0).Data] {
			return
		}
		if sel.Find("img").Length() > 0 {
			return
		}
		if strings.TrimSpace(sel.Text()) == "" {
			sel.Remove()
		}
	})
}

// collapseWrappers replaces the only child element of a wrapper with that
// child's own children until the wrapper no longer qualifies.
func collapseWrappers(fragment *goquery.Selection) {
	for _, n := range withDescendants(fragment) {
		if !cleanableTags[n.Data] {
			continue
		}
		for {
			child := n.FirstChild
			if child == nil || child != n.LastChild || child.Type != html.ElementNode || wrapperKeepTags[child.Data] {
				break
			}
			unwrap(child)
		}
	}
}

// divsToParagraphs renames every div whose inner markup holds no block
// element to p.
func divsToParagraphs(fragment *goquery.Selection) {
	for _, n := range withDescendants(fragment) {
		if n.Data != "div" {
			continue
		}
		if !LooksLikeBlockContainer(innerHTML(n)) {
			n.Data = "p"
			n.DataAtom = atom.P
		}
	}
}

func stripAttributes(fragment *goquery.Selection) {
	all := fragment.Find("*").AddSelection(fragment)
	for _, key := range presentationAttrs {
		all.RemoveAttr(key)
	}
}

// withDescendants lists the fragment roots followed by their element
// descendants in document order.
func withDescendants(fragment *goquery.Selection) []*html.Node {
	nodes := make([]*html.Node, 0, len(fragment.Nodes))
	for _, n := range fragment.Nodes {
		if n.Type == html.ElementNode {
			nodes = append(nodes, n)
		}
	}
	return append(nodes, fragment.Find("*").Nodes...)
}

// unwrap replaces n with its children.
func unwrap(n *html.Node) {
	parent := n.Parent
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// Rendering into a bytes.Buffer cannot fail.
		_ = html.Render(&buf, c)
	}
	return buf.String()
}
