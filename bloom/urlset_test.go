package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/readmode/bloom"
	"github.com/stretchr/testify/assert"
)

func TestURLSet_Seen(t *testing.T) {
	t.Parallel()

	s := bloom.NewURLSet(1000, 0.01)

	assert.False(t, s.Seen("https://example.com/post-1"))
	assert.True(t, s.Seen("https://example.com/post-1"))
	assert.False(t, s.Seen("https://example.com/post-2"))
	assert.Equal(t, 2, s.Len())
}

func TestURLSet_SeenTreatsEquivalentURLsAsEqual(t *testing.T) {
	t.Parallel()

	s := bloom.NewURLSet(1000, 0.01)

	assert.False(t, s.Seen("https://Example.COM/post#comments"))
	assert.True(t, s.Seen("https://example.com/post"))
	assert.True(t, s.Seen("HTTPS://example.com:443/post"))
	assert.Equal(t, 1, s.Len())
}

func TestURLSet_Contains(t *testing.T) {
	t.Parallel()

	s := bloom.NewURLSet(1000, 0.01)

	assert.False(t, s.Contains("https://example.com/a"))
	assert.False(t, s.Contains("https://example.com/a"))
	s.Seen("https://example.com/a")
	assert.True(t, s.Contains("https://example.com/a"))
	assert.Equal(t, 1, s.Len())
}

func TestURLSet_ConcurrentUse(t *testing.T) {
	t.Parallel()

	s := bloom.NewURLSet(10000, 0.001)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 250 {
				s.Seen(fmt.Sprintf("https://example.com/%d/%d", w, i))
			}
		}()
	}
	wg.Wait()

	for w := range 4 {
		for i := range 250 {
			assert.True(t, s.Contains(fmt.Sprintf("https://example.com/%d/%d", w, i)))
		}
	}
}

func TestURLSet_LowFalsePositiveRate(t *testing.T) {
	t.Parallel()

	s := bloom.NewURLSet(1000, 0.01)
	for i := range 1000 {
		s.Seen(fmt.Sprintf("https://example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range 1000 {
		if s.Contains(fmt.Sprintf("https://example.com/other/%d", i)) {
			falsePositives++
		}
	}
	assert.Less(t, falsePositives, 50, "false positive rate too high")
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"https://Example.com", "https://example.com/"},
		{"HTTP://example.com:80/a?b=1#frag", "http://example.com/a?b=1"},
		{"https://example.com:8443/a", "https://example.com:8443/a"},
		{"  https://example.com/a  ", "https://example.com/a"},
		{"http://[::1]:80/x", "http://[::1]/x"},
		{"http://[::1]:8080/x", "http://[::1]:8080/x"},
		{"https://[FE80::1]:8443/", "https://[fe80::1]:8443/"},
		{"not a url", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bloom.Normalize(tt.in))
		})
	}
}
