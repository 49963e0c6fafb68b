package textutil

import (
	"strings"
	"unicode"
)

// SanitizeToken converts value into a lowercase token safe for file names,
// such as a per-run log file. ASCII letters, digits, '-' and '_' survive;
// any other run of characters collapses into one underscore. Returns
// "unknown" when nothing usable remains.
func SanitizeToken(value string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(value) {
		r = unicode.ToLower(r)
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}
