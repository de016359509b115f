package http

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// DecodeHTML converts an HTML document to valid UTF-8. The encoding is
// taken from a byte order mark, the contentType charset parameter, or a
// <meta> declaration in the first 1024 bytes, in that order. Without any
// of them, valid UTF-8 is kept and anything else is read as windows-1252.
//
// UTF-8 bodies lose a character cut off at the end, as left by a size
// limit, and invalid bytes elsewhere become U+FFFD.
func DecodeHTML(body []byte, contentType string) (string, error) {
	enc, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" {
		return strings.ToValidUTF8(string(trimPartialRune(body)), string(utf8.RuneError)), nil
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return "", fmt.Errorf("decoding %s body: %w", name, err)
	}
	return string(decoded), nil
}

// trimPartialRune drops an incomplete multi-byte sequence at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}
		if !utf8.FullRune(b[i:]) {
			return b[:i]
		}
		return b
	}
	return b
}
