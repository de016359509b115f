// Package goquery implements the native reader-mode engine on top of
// goquery. A Readability session prunes boilerplate subtrees, scores the
// remaining elements, and returns a cleaned copy of the winning subtree.
package goquery

import (
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readmode"
	"golang.org/x/net/html"
)

// uselessTags are removed from the whole document before pruning; they
// never hold readable content and would inflate text lengths.
const uselessTags = "script, style, link, textarea"

// Option configures a Readability session.
type Option func(*options)

type options struct {
	rawURL   string
	extended bool
	logger   *slog.Logger
}

// WithURL sets the URL the document was fetched from. When set, image
// sources in the article are made absolute against it.
func WithURL(rawURL string) Option {
	return func(o *options) {
		o.rawURL = rawURL
	}
}

// WithExtendedScoring enables the elimination rounds after round one.
// Disabled by default.
func WithExtendedScoring(enabled bool) Option {
	return func(o *options) {
		o.extended = enabled
	}
}

// WithLogger sets the logger used for scoring rounds and image warnings.
// Defaults to discarding all output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Readability is the extraction session for one document. All results are
// computed by NewReadability; accessors never modify the session.
type Readability struct {
	source  string
	baseURL *url.URL
	doc     *goquery.Document

	title      string
	article    *goquery.Selection
	candidates []*Candidate
	tops       []*Candidate
	warnings   []ImageResolutionWarning
}

// NewReadability extracts the title and article of source.
//
// Returns EINVALID for blank or non UTF-8 input or an unparsable URL,
// EMALFORMED when the document has no body, and EEMPTY when the body
// holds no element after pruning.
func NewReadability(source string, opts ...Option) (*Readability, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := loggerOrDiscard(o.logger)

	if strings.TrimSpace(source) == "" {
		return nil, readmode.Errorf(readmode.EINVALID, "empty HTML input")
	}
	if !utf8.ValidString(source) {
		return nil, readmode.Errorf(readmode.EINVALID, "HTML input is not valid UTF-8 text")
	}

	r := &Readability{source: source}

	if o.rawURL != "" {
		u, err := url.Parse(o.rawURL)
		if err != nil {
			return nil, readmode.Errorf(readmode.EINVALID, "invalid source URL: %v", err)
		}
		r.baseURL = u
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(FormatHTML(source)))
	if err != nil {
		return nil, readmode.Errorf(readmode.EINVALID, "failed to parse HTML: %v", err)
	}
	r.doc = doc

	r.title = strings.TrimSpace(doc.Find("title").First().Text())
	logger.Debug("got html title", "title", r.title)

	doc.Find(uselessTags).Remove()

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, readmode.Errorf(readmode.EMALFORMED, "document has no body")
	}

	pruner := &Pruner{Logger: logger}
	removed := pruner.Prune(body)
	logger.Debug("pruned document", "removed", removed)

	scorer := &Scorer{Extended: o.extended, Logger: logger}
	r.candidates, r.tops, err = scorer.Score(body)
	if err != nil {
		return nil, err
	}

	// The winner is copied so the scored tree stays intact for inspection.
	r.article = r.tops[0].Selection().Clone()
	Clean(r.article)

	if r.baseURL != nil {
		r.warnings = FixImages(r.article, r.baseURL)
		for _, w := range r.warnings {
			logger.Warn("image resolution failed", "src", w.Src, "err", w.Err)
		}
		// Dropped images can leave empty wrappers behind.
		Clean(r.article)
	}

	return r, nil
}

// Title returns the trimmed document title, empty if there is none.
func (r *Readability) Title() string {
	return r.title
}

// Article returns the cleaned article fragment.
func (r *Readability) Article() *goquery.Selection {
	return r.article
}

// HTML serializes the article fragment.
func (r *Readability) HTML() (string, error) {
	return goquery.OuterHtml(r.article)
}

// Text returns the flattened visible text of the article fragment.
func (r *Readability) Text() string {
	return r.article.Text()
}

// Source returns the document exactly as it was passed in.
func (r *Readability) Source() string {
	return r.source
}

// URL returns the parsed source URL, or nil if none was given.
func (r *Readability) URL() *url.URL {
	return r.baseURL
}

// Document returns the pruned tree the candidates were scored on.
func (r *Readability) Document() *goquery.Document {
	return r.doc
}

// Candidates returns every scored candidate in document order.
func (r *Readability) Candidates() []*Candidate {
	return append([]*Candidate(nil), r.candidates...)
}

// Tops returns the candidates that survived scoring, best first.
func (r *Readability) Tops() []*Candidate {
	return append([]*Candidate(nil), r.tops...)
}

// Winner returns the highest-priority candidate.
func (r *Readability) Winner() *Candidate {
	return r.tops[0]
}

// Warnings returns the non-fatal problems met while fixing image paths.
func (r *Readability) Warnings() []ImageResolutionWarning {
	return append([]ImageResolutionWarning(nil), r.warnings...)
}

// Attached reports whether n is still part of the scored document.
func (r *Readability) Attached(n *html.Node) bool {
	root := r.doc.Get(0)
	return n == root || isAncestor(root, n)
}
