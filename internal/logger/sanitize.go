package logger

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxPathLength is the maximum length for URL paths in logs
const MaxPathLength = 500

// SanitizePath sanitizes a URL path for safe logging: validates UTF-8,
// strips control characters and truncates.
func SanitizePath(path string) string {
	return sanitize(path, MaxPathLength)
}

func sanitize(s string, maxLength int) string {
	if s == "" {
		return ""
	}

	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}

	var builder strings.Builder
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			builder.WriteRune(r)
		}
	}
	s = builder.String()

	if len(s) > maxLength {
		s = s[:maxLength] + "..."
	}

	return s
}
