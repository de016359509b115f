// Package bloom provides URL deduplication using Bloom filters.
package bloom

import (
	"net"
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// URLSet remembers which URLs have been seen. Membership is probabilistic:
// a URL never added is reported as seen at most at the configured false
// positive rate; an added URL is always reported as seen.
//
// URLSet is safe for concurrent use.
type URLSet struct {
	mu    sync.Mutex
	f     *bloom.BloomFilter
	added uint
}

// NewURLSet creates a set sized for n expected URLs with the given false
// positive rate.
func NewURLSet(n uint, fpRate float64) *URLSet {
	return &URLSet{f: bloom.NewWithEstimates(n, fpRate)}
}

// Seen records rawURL and reports whether an equivalent URL was recorded
// before. URLs are compared in their Normalize form.
func (s *URLSet) Seen(rawURL string) bool {
	key := Normalize(rawURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f.TestAndAddString(key) {
		return true
	}
	s.added++
	return false
}

// Contains reports whether an equivalent URL was recorded, without
// recording it.
func (s *URLSet) Contains(rawURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.TestString(Normalize(rawURL))
}

// Len returns the number of distinct URLs recorded.
func (s *URLSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.added)
}

// Normalize returns the form of rawURL used for comparison: the scheme and
// host are lowercased, default ports and the fragment are dropped, and an
// empty path becomes "/". Unparsable input is returned trimmed.
func Normalize(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	u.Host = host
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}
