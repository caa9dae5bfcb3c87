package editor

import (
	"strings"
	"unicode/utf8"
)

// Special key tokens. Everything else is literal text.
const (
	KeyEsc   = "<esc>"
	KeyEnter = "<cr>"
	KeyBack  = "<bs>"
	KeyTab   = "<tab>"
	KeyLeft  = "<left>"
	KeyRight = "<right>"
	KeyUp    = "<up>"
	KeyDown  = "<down>"
)

var specialKeys = map[string]string{
	"esc":       KeyEsc,
	"cr":        KeyEnter,
	"enter":     KeyEnter,
	"bs":        KeyBack,
	"backspace": KeyBack,
	"tab":       KeyTab,
	"left":      KeyLeft,
	"right":     KeyRight,
	"up":        KeyUp,
	"down":      KeyDown,
	"lt":        "<",
}

// Tokenize splits a key sequence such as "dwihello<esc>" into tokens.
// Bracketed names are case-insensitive; "<lt>" is a literal '<' and an
// unknown bracket sequence is taken literally.
func Tokenize(keys string) []string {
	var tokens []string
	for len(keys) > 0 {
		if keys[0] == '<' {
			if end := strings.IndexByte(keys, '>'); end > 1 {
				if tok, ok := specialKeys[strings.ToLower(keys[1:end])]; ok {
					tokens = append(tokens, tok)
					keys = keys[end+1:]
					continue
				}
			}
		}
		_, size := utf8.DecodeRuneInString(keys)
		tokens = append(tokens, keys[:size])
		keys = keys[size:]
	}
	return tokens
}

// IsSpecial reports whether token is one of the bracketed key names.
func IsSpecial(token string) bool {
	return len(token) > 2 && token[0] == '<' && token[len(token)-1] == '>'
}
