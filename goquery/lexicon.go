package goquery

import "regexp"

// Keyword patterns used to classify id and class strings. Matching is
// case-insensitive and unanchored: one keyword anywhere triggers the category.
var (
	unlikelyCandidatesRe = regexp.MustCompile(`(?i)combx|comment|comments|cmt|cmts|community|disqus|extra|foot|header|menu|remark|rss|shoutbox|sidebar|sponsor|ad-break|agegate|pagination|pager|popup|tweet|twitter`)
	okMaybeCandidateRe   = regexp.MustCompile(`(?i)and|article|body|column|main|shadow|post`)
	socialPluginsRe      = regexp.MustCompile(`(?i)linkwithin|jiathis`)
	positiveRe           = regexp.MustCompile(`(?i)article|body|content|entry|hentry|main|page|pagination|post|text|blog|story|footnote`)
	negativeRe           = regexp.MustCompile(`(?i)combx|comment|cmt|com|contact|foot|footer|masthead|media|meta|outbrain|promo|related|scroll|shoutbox|sidebar|sponsor|shopping|tags|tool|widget`)
	extraneousRe         = regexp.MustCompile(`(?i)print|archive|comment|discuss|e-?mail|share|reply|all|login|sign|single`)
)

// Markup patterns applied to serialized HTML.
var (
	divToPElementsRe = regexp.MustCompile(`(?i)<(a|blockquote|dl|div|img|ol|p|pre|table|ul)`)
	deprecatedTagRe  = regexp.MustCompile(`(?i)<wbr[^>]*>`)
	fontTagRe        = regexp.MustCompile(`(?i)<(/?)font[^>]*>`)
	normalizeRe      = regexp.MustCompile(`\s{2,}`)
)

// IsUnlikelyCandidate reports whether s names a region that rarely holds
// article content (comments, headers, menus, sidebars, ...).
func IsUnlikelyCandidate(s string) bool { return unlikelyCandidatesRe.MatchString(s) }

// IsOkMaybeCandidate reports whether s carries a keyword that can redeem
// an otherwise unlikely candidate.
func IsOkMaybeCandidate(s string) bool { return okMaybeCandidateRe.MatchString(s) }

// IsSocialPlugin reports whether s names a social sharing widget.
func IsSocialPlugin(s string) bool { return socialPluginsRe.MatchString(s) }

// IsPositive reports whether s suggests article content.
func IsPositive(s string) bool { return positiveRe.MatchString(s) }

// IsNegative reports whether s suggests boilerplate.
func IsNegative(s string) bool { return negativeRe.MatchString(s) }

// IsExtraneous reports whether s names page furniture such as print,
// share or login controls.
func IsExtraneous(s string) bool { return extraneousRe.MatchString(s) }

// LooksLikeBlockContainer reports whether the HTML fragment contains any
// block-level or media element.
func LooksLikeBlockContainer(fragment string) bool { return divToPElementsRe.MatchString(fragment) }

// HasDeprecatedTag reports whether the markup contains a <wbr> tag.
func HasDeprecatedTag(markup string) bool { return deprecatedTagRe.MatchString(markup) }

// HasLegacyFontTag reports whether the markup contains <font> or </font>.
func HasLegacyFontTag(markup string) bool { return fontTagRe.MatchString(markup) }

// NormalizeSpaces collapses every run of two or more whitespace
// characters into a single space.
func NormalizeSpaces(s string) string { return normalizeRe.ReplaceAllString(s, " ") }

// FormatHTML rewrites markup the parser handles poorly: <wbr> tags are
// dropped and <font> tags become <span>.
func FormatHTML(source string) string {
	if HasDeprecatedTag(source) {
		source = deprecatedTagRe.ReplaceAllString(source, "")
	}
	if HasLegacyFontTag(source) {
		source = fontTagRe.ReplaceAllString(source, "<${1}span>")
	}
	return source
}
