package designation

import (
	"strings"
)

// Token is one separator-delimited piece of a designation split into its
// letter prefix, numeric part and any trailing text.
//
//	"AR0.5" -> {Prefix: "AR", Number: "0.5"}
//	"A2fl"  -> {Prefix: "A", Number: "2", Suffix: "fl"}
//	"H"     -> {Prefix: "H"}
type Token struct {
	Raw    string
	Prefix string
	Number string
	Suffix string
}

// IsClass reports whether the token has the plain <PREFIX><number> class shape.
func (t Token) IsClass(prefix string) bool {
	return t.Prefix == prefix && t.Number != "" && t.Suffix == ""
}

// IsMarker reports whether the token is exactly the bare letters marker.
func (t Token) IsMarker(marker string) bool {
	return t.Prefix == marker && t.Number == "" && t.Suffix == ""
}

// Tokenize splits a designation on Separator and classifies each piece.
// Empty pieces are dropped.
func Tokenize(s string) []Token {
	parts := strings.Split(strings.TrimSpace(s), Separator)
	tokens := make([]Token, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tokens = append(tokens, scanToken(part))
	}
	return tokens
}

func scanToken(raw string) Token {
	i := 0
	for i < len(raw) && raw[i] >= 'A' && raw[i] <= 'Z' {
		i++
	}
	j := i
	for j < len(raw) && (isDigit(raw[j]) || raw[j] == '.') {
		j++
	}
	tok := Token{Raw: raw, Prefix: raw[:i], Number: raw[i:j], Suffix: raw[j:]}
	if tok.Number != "" && !validNumber(tok.Number) {
		// Keep the text but make sure no class rule accepts it.
		tok.Suffix = tok.Number + tok.Suffix
		tok.Number = ""
	}
	return tok
}

// validNumber accepts digits with at most one interior decimal point.
func validNumber(s string) bool {
	if s == "" || s[0] == '.' || s[len(s)-1] == '.' {
		return false
	}
	return strings.Count(s, ".") <= 1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// classToken tokenizes a single class value such as "C25".
func classToken(class string) Token {
	return scanToken(strings.TrimSpace(class))
}
