package naming

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		original string
		pattern  string
	}{
		{name: "png", original: "cat.png", pattern: `^[0-9a-f]{32}\.png$`},
		{name: "pdf", original: "report.pdf", pattern: `^[0-9a-f]{32}\.pdf$`},
		{name: "double extension keeps last", original: "backup.tar.gz", pattern: `^[0-9a-f]{32}\.gz$`},
		{name: "no extension", original: "Makefile", pattern: `^[0-9a-f]{32}$`},
		{name: "path components dropped", original: "dir.v2/notes", pattern: `^[0-9a-f]{32}$`},
		{name: "empty", original: "", pattern: `^[0-9a-f]{32}$`},
		{name: "dotfile has no extension", original: ".env", pattern: `^[0-9a-f]{32}$`},
		{name: "bare dot", original: ".", pattern: `^[0-9a-f]{32}$`},
		{name: "trailing dot", original: "archive.", pattern: `^[0-9a-f]{32}\.$`},
		{name: "extension case kept", original: "report.PDF", pattern: `^[0-9a-f]{32}\.PDF$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.original)
			assert.Regexp(t, regexp.MustCompile(tt.pattern), got)
			assert.NotEqual(t, tt.original, got)
		})
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cat.png", ".png"},
		{"backup.tar.gz", ".gz"},
		{".env", ""},
		{".config.yaml", ".yaml"},
		{"archive.", "."},
		{"Makefile", ""},
		{"", ""},
		{".", ""},
		{"..", ""},
		{"dir.v2/notes", ""},
		{"photos/cat.JPG", ".JPG"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.in))
		})
	}
}

func TestDerive_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		n := Derive("a.txt")
		_, dup := seen[n]
		require.False(t, dup, "duplicate stored name %s", n)
		seen[n] = struct{}{}
	}
}

func TestRandomHex(t *testing.T) {
	s, err := RandomHex(24)
	require.NoError(t, err)
	assert.Len(t, s, 48)
	assert.Regexp(t, `^[0-9a-f]+$`, s)
}
