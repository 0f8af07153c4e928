package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple name", input: "Acme Corp", want: "acme-corp"},
		{name: "punctuation collapsed", input: "Foo & Bar, Inc.", want: "foo-bar-inc"},
		{name: "leading and trailing whitespace", input: "  Spaced Out  ", want: "spaced-out"},
		{name: "consecutive separators", input: "a -- b", want: "a-b"},
		{name: "digits kept", input: "Web3 Studio", want: "web3-studio"},
		{name: "unicode letters kept", input: "Café Münster", want: "café-münster"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestGenerateSlug(t *testing.T) {
	slug := GenerateSlug("Acme Corp")

	assert.True(t, strings.HasPrefix(slug, "acme-corp-"), "slug %q", slug)
	assert.Len(t, slug, len("acme-corp-")+6)

	// Suffix makes repeated names distinct
	assert.NotEqual(t, slug, GenerateSlug("Acme Corp"))
}
