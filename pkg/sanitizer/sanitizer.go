// Package sanitizer normalizes user-supplied text before it is validated or
// embedded into HTML documents.
package sanitizer

import (
	"strings"
)

// markupEntities maps markup-significant characters to their HTML entity.
// The backslash is included so a cleaned value never carries escape sequences.
var markupEntities = map[rune]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#39;",
	'\\': "&#92;",
}

// Clean trims surrounding whitespace, removes backslash escaping and escapes
// markup characters. Existing entities are left untouched, so Clean is
// idempotent: Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = StripSlashes(s)
	s = EscapeHTML(s)
	return strings.TrimSpace(s)
}

// StripSlashes removes one level of backslash escaping: `\x` becomes `x` and
// `\\` becomes `\`. A trailing lone backslash is dropped.
func StripSlashes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeHTML escapes markup characters without double-encoding ampersands that
// already start a well-formed entity such as &amp; or &#39;.
func EscapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c == '&' {
			if n := entityLen(s[i:]); n > 0 {
				b.WriteString(s[i : i+n])
				i += n
				continue
			}
		}
		if ent, ok := markupEntities[rune(c)]; ok {
			b.WriteString(ent)
		} else {
			b.WriteByte(c)
		}
		i++
	}
	return b.String()
}

// entityLen reports the byte length of the entity at the start of s, or 0 if
// s does not start with one. Accepted forms: &name; &#123; &#x1F;
func entityLen(s string) int {
	const maxEntity = 32

	end := strings.IndexByte(s, ';')
	if end < 2 || end > maxEntity {
		return 0
	}
	body := s[1:end]

	if body[0] == '#' {
		digits := body[1:]
		hex := false
		if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
			digits = digits[1:]
			hex = true
		}
		if digits == "" {
			return 0
		}
		for _, r := range digits {
			if !isDigit(r) && !(hex && isHexLetter(r)) {
				return 0
			}
		}
		return end + 1
	}

	for i, r := range body {
		if !isLetter(r) && !(i > 0 && isDigit(r)) {
			return 0
		}
	}
	return end + 1
}

func isDigit(r rune) bool     { return r >= '0' && r <= '9' }
func isLetter(r rune) bool    { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isHexLetter(r rune) bool { return (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') }
