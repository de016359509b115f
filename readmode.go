// Package readmode provides reader-mode content extraction for HTML pages.
// It locates the subtree most likely to hold the article body, cleans it,
// and returns it together with the page title.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, trafilatura/).
package readmode
