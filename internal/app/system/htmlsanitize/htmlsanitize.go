// Package htmlsanitize cleans caller-supplied rich text before storage.
//
// Descriptions, instructions, and application essays arrive from an
// untrusted SPA and are later rendered back to other users, so script
// content and event handlers are stripped at the edge.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var (
	// ugc keeps the formatting tags reasonable for user-generated
	// content (p, b, em, lists, safe links) and drops everything else.
	ugc = bluemonday.UGCPolicy()

	// strict strips all markup, leaving plain text.
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans rich-text fields, preserving basic formatting.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Strip removes all markup from single-line fields (names, titles, tags).
func Strip(s string) string {
	return strict.Sanitize(s)
}

// StripAll applies Strip to every element of a list in place and returns it.
func StripAll(list []string) []string {
	for i, s := range list {
		list[i] = Strip(s)
	}
	return list
}
