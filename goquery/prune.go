package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Pruner removes subtrees whose id and class mark them as boilerplate.
// It runs before scoring so the scorer walks a smaller tree.
type Pruner struct {
	Logger *slog.Logger
}

// Prune walks the elements below root in document order and detaches every
// rejected element together with its subtree. Detached subtrees are never
// visited. It returns the number of subtrees removed.
func (p *Pruner) Prune(root *goquery.Selection) int {
	removed := 0
	for _, n := range root.Nodes {
		removed += p.pruneChildren(n)
	}
	return removed
}

func (p *Pruner) pruneChildren(parent *html.Node) int {
	removed := 0
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			if s := classString(c); isRejected(s) {
				loggerOrDiscard(p.Logger).Debug("reject node and its children", "tag", c.Data, "id_class", s)
				parent.RemoveChild(c)
				removed++
			} else {
				removed += p.pruneChildren(c)
			}
		}
		c = next
	}
	return removed
}

// isRejected reports whether an id/class string marks a subtree for removal.
func isRejected(s string) bool {
	return IsSocialPlugin(s) || (IsUnlikelyCandidate(s) && !IsPositive(s))
}

// classString joins the id and the class tokens of n with underscores.
func classString(n *html.Node) string {
	var parts []string
	if id := attr(n, "id"); id != "" {
		parts = append(parts, id)
	}
	parts = append(parts, strings.Fields(attr(n, "class"))...)
	return strings.Join(parts, "_")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
