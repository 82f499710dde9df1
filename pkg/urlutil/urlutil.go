package urlutil

import "strings"

const DefaultScheme = "https"

// EnsureScheme prefixes raw with "https://" when it carries no URI scheme.
// Anything else about the input is preserved verbatim: no trailing-slash
// cleanup, no query or fragment stripping, no case folding.
//
// Properties:
//   - Pure: no state, no memory
//   - Idempotent: EnsureScheme(EnsureScheme(s)) == EnsureScheme(s)
func EnsureScheme(raw string) string {
	if HasScheme(raw) {
		return raw
	}
	return DefaultScheme + "://" + raw
}

// HasScheme reports whether raw starts with an RFC 3986 scheme followed by ':'.
//
//	scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
//
// Like most URL parsers this reads "localhost:8080" as scheme "localhost".
func HasScheme(raw string) bool {
	i := strings.IndexByte(raw, ':')
	if i < 1 {
		return false
	}
	for j := 0; j < i; j++ {
		c := raw[j]
		switch {
		case isAlpha(c):
		case j > 0 && (isDigit(c) || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
