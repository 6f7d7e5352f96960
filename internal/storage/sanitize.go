package storage

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SanitizeFilename reduces a client-supplied filename to a safe ASCII name.
// Accents are folded, path separators and whitespace become underscores, every
// character outside [A-Za-z0-9_.-] is dropped, and leading or trailing dots and
// underscores are trimmed. A name that sanitizes to nothing yields ErrInvalidFilename.
func SanitizeFilename(name string) (string, error) {
	folded := norm.NFKD.String(name)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '/' || r == '\\' {
			r = ' '
		}
		b.WriteRune(r)
	}

	joined := strings.Join(strings.Fields(b.String()), "_")

	b.Reset()
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_', r == '.', r == '-':
			b.WriteRune(r)
		}
	}

	safe := strings.Trim(b.String(), "._")
	if safe == "" {
		return "", ErrInvalidFilename
	}
	return safe, nil
}
