package domain

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateSlug turns a display name into a URL-safe identifier with a
// random 6-char suffix so two companies or postings with the same name
// never collide.
func GenerateSlug(name string) string {
	return Slugify(name) + "-" + uuid.NewString()[:6]
}

// Slugify lowercases a name and collapses everything that is not a
// letter or digit into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
