package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readmode/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseBody(t *testing.T, source string) *gq.Selection {
	t.Helper()

	doc, err := gq.NewDocumentFromReader(strings.NewReader(source))
	require.NoError(t, err)
	return doc.Find("body").First()
}

func TestPruner(t *testing.T) {
	t.Parallel()

	t.Run("removes rejected subtrees without revisiting them", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<html><body>`+
			`<div class="menu"><div class="sidebar">s</div></div>`+
			`<div class="header">h</div>`+
			`<div id="main">m</div>`+
			`</body></html>`)

		p := &goquery.Pruner{}
		removed := p.Prune(body)

		assert.Equal(t, 2, removed)
		assert.Equal(t, 1, body.Find("*").Length())
		assert.Equal(t, "main", body.Children().AttrOr("id", ""))
	})

	t.Run("keeps unlikely names that carry a positive keyword", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<body>`+
			`<div id="main" class="sidebar">kept</div>`+
			`<div class="post-footer">kept</div>`+
			`</body>`)

		removed := (&goquery.Pruner{}).Prune(body)

		assert.Equal(t, 0, removed)
		assert.Equal(t, 2, body.Children().Length())
	})

	t.Run("rejects social plugins even with a positive keyword", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<body><div class="jiathis_style content">x</div><p>y</p></body>`)

		removed := (&goquery.Pruner{}).Prune(body)

		assert.Equal(t, 1, removed)
		assert.Equal(t, "p", gq.NodeName(body.Children()))
	})

	t.Run("removes descendants of rejected ancestors", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<body><div id="comments"><p class="content">Nice post</p></div><p>Body</p></body>`)

		(&goquery.Pruner{}).Prune(body)

		assert.NotContains(t, body.Text(), "Nice post")
		assert.Equal(t, "Body", body.Text())
	})
}
