package cache

import (
	"strings"
	"unicode"
)

// toSegment converts the provided string to snake_case using ASCII-aware
// rules. Namespace and entity names come from callers as Go identifiers or
// display names; leaving uppercase runes or punctuation in a key segment
// would break prefix-based invalidation and produce keys Redis rejects.
func toSegment(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	lastUnderscore := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case unicode.IsUpper(r):
			if b.Len() > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if (unicode.IsLower(prev) || unicode.IsDigit(prev) || nextLower) && !lastUnderscore {
					b.WriteByte('_')
					lastUnderscore = true
				}
			}
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false

		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false

		case r == '_', r == '-', unicode.IsSpace(r):
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}

		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(b.String(), "_")
}
