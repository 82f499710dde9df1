package urlutil_test

import (
	"testing"

	"github.com/rohmanhakim/digester/pkg/urlutil"
	"github.com/stretchr/testify/assert"
)

func TestEnsureScheme(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare host",
			input:    "example.com",
			expected: "https://example.com",
		},
		{
			name:     "host with path, query and trailing slash",
			input:    "example.com/docs/?q=1#top",
			expected: "https://example.com/docs/?q=1#top",
		},
		{
			name:     "www host",
			input:    "www.example.com",
			expected: "https://www.example.com",
		},
		{
			name:     "https kept",
			input:    "https://example.com/a",
			expected: "https://example.com/a",
		},
		{
			name:     "http kept",
			input:    "http://example.com",
			expected: "http://example.com",
		},
		{
			name:     "mixed case scheme kept verbatim",
			input:    "HTTP://Example.com/Path/",
			expected: "HTTP://Example.com/Path/",
		},
		{
			name:     "protocol relative gets prefixed",
			input:    "//example.com",
			expected: "https:////example.com",
		},
		{
			name:     "leading colon is not a scheme",
			input:    ":example",
			expected: "https://:example",
		},
		{
			name:     "digit first is not a scheme",
			input:    "1http://example.com",
			expected: "https://1http://example.com",
		},
		{
			name:     "host:port parses as a scheme",
			input:    "localhost:8080",
			expected: "localhost:8080",
		},
		{
			name:     "slash before colon means no scheme",
			input:    "example.com/a:b",
			expected: "https://example.com/a:b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, urlutil.EnsureScheme(tt.input))
		})
	}
}

func TestEnsureScheme_Idempotent(t *testing.T) {
	inputs := []string{"example.com", "https://example.com", "example.com/a?b=c"}
	for _, in := range inputs {
		once := urlutil.EnsureScheme(in)
		assert.Equal(t, once, urlutil.EnsureScheme(once), "input %q", in)
	}
}

func TestHasScheme(t *testing.T) {
	assert.True(t, urlutil.HasScheme("ftp://x"))
	assert.True(t, urlutil.HasScheme("git+ssh://x"))
	assert.True(t, urlutil.HasScheme("mailto:someone@example.com"))
	assert.False(t, urlutil.HasScheme(""))
	assert.False(t, urlutil.HasScheme("example.com"))
	assert.False(t, urlutil.HasScheme("exa mple:x"))
}
