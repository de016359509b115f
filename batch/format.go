package batch

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Size is a byte count that prints in binary units.
type Size int

func (s Size) String() string {
	const (
		kib = 1 << 10
		mib = 1 << 20
	)
	switch {
	case s >= mib:
		return fmt.Sprintf("%.1f MiB", float64(s)/mib)
	case s >= kib:
		return fmt.Sprintf("%.1f KiB", float64(s)/kib)
	default:
		return fmt.Sprintf("%d B", int(s))
	}
}

// String summarizes the batch outcome on one line.
func (r *Result) String() string {
	return fmt.Sprintf("Saved %d articles (%s), %d failed, %d skipped", r.Saved, r.Bytes, r.Failed, r.Skipped)
}

// ShortURL renders rawURL for a progress line of at most width characters.
// The scheme is dropped. A longer URL keeps its host and the end of its
// path around an ellipsis.
func ShortURL(rawURL string, width int) string {
	if width <= 0 {
		return ""
	}
	s := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
	if utf8.RuneCountInString(s) <= width {
		return s
	}

	runes := []rune(s)
	host, _, _ := strings.Cut(s, "/")
	if n := utf8.RuneCountInString(host); n+2 <= width {
		return host + "…" + string(runes[len(runes)-(width-n-1):])
	}
	return "…" + string(runes[len(runes)-(width-1):])
}
