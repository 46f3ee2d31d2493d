// Package util contains small text and identity helpers shared across the
// research packages. This lives in internal to avoid committing to public
// API stability prematurely.
package util

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a new unique identifier for runs and branches.
func NewID() string { return uuid.NewString() }

// TrimPrompt truncates text to at most maxChars characters, cutting at a
// rune boundary so multi-byte content is never split mid-character.
func TrimPrompt(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}

// Dedupe returns items with duplicates removed, preserving first-seen order.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// BulletList renders items as a newline-separated Markdown bullet list.
func BulletList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s", item)
	}
	return b.String()
}
