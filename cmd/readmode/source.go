package main

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/readmode"
	rmhttp "github.com/fwojciec/readmode/http"
)

// readSource returns the decoded HTML of source and, for URLs, the URL it
// was fetched from. source is "-" for stdin, an http(s) URL, or a path.
func readSource(deps *Dependencies, source string) (html, pageURL string, err error) {
	switch {
	case source == "-":
		body, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", "", err
		}
		html, err = rmhttp.DecodeHTML(body, "")
		return html, "", err

	case isHTTPURL(source):
		html, err = deps.Fetcher.Fetch(deps.Ctx, source)
		return html, source, err

	default:
		body, err := os.ReadFile(source)
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", readmode.Errorf(readmode.ENOTFOUND, "file %q not found", source)
		}
		if err != nil {
			return "", "", err
		}
		html, err = rmhttp.DecodeHTML(body, "")
		return html, "", err
	}
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// readURLList reads one URL per line, skipping blank lines and lines
// starting with '#'.
func readURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
