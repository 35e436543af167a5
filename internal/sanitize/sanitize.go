// Package sanitize escapes user-supplied text before it is stored or shown.
package sanitize

import "strings"

// htmlReplacer covers the characters that can open a tag, an attribute
// value or an entity. strings.Replacer scans left to right, so an "&"
// produced by one replacement is never escaped again.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// HTML escapes &, <, >, " and ' in s.
func HTML(s string) string {
	return htmlReplacer.Replace(s)
}
