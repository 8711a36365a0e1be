package helper

import (
	"log"
	"strings"
)

// Sanitize trims free-text input and strips anything tag-shaped so stored
// answers are plain text. Oversized inputs are logged, not rejected; length
// limits are a validation concern.
func Sanitize(text string) string {
	sanitized := strings.TrimSpace(stripTags(text))
	if len(sanitized) > 1000 {
		log.Printf("[WARN] long input detected: %d characters", len(sanitized))
	}
	return sanitized
}

func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
