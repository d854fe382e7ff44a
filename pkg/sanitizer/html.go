// Package sanitizer cleans user-visible strings before they reach a client.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var strict = sync.OnceValue(bluemonday.StrictPolicy)

// StripTags removes every HTML element from s and returns plain text.
// Entities escaped by the policy are decoded again, so "it's" stays "it's"
// and the result is safe to JSON-encode or to embed through an escaping
// template.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(strict().Sanitize(s)))
}
