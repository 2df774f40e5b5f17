// Package search rewrites free-form user input into expressions the
// full-text index accepts.
package search

import (
	"regexp"
	"strings"
)

// A token is either an optionally prefixed quoted phrase or a bare run of
// non-whitespace. Unterminated quotes fall through to the bare case.
var tokenRe = regexp.MustCompile(`[-^]?"[^"]*"|\S+`)

// Sanitize converts raw search text into a safe FTS5 MATCH expression.
// It is total: any input produces a usable expression.
//
// Bare terms are wrapped in wildcards on both sides so a word matches
// anywhere in a note. Terms containing a hyphen are additionally quoted,
// because the index treats an unescaped hyphen as a phrase delimiter.
// Boolean operators pass through, quoted phrases keep their exact text,
// and a leading - or ^ keeps the term anchored on the left.
func Sanitize(raw string) string {
	tokens := tokenRe.FindAllString(raw, -1)
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, sanitizeToken(tok))
	}
	return strings.Join(parts, " ")
}

func sanitizeToken(tok string) string {
	switch tok {
	case "AND", "OR", "NOT":
		return tok
	}

	prefix := ""
	body := tok
	if body[0] == '-' || body[0] == '^' {
		prefix, body = string(body[0]), body[1:]
	}

	// Already-quoted phrase: double interior quotes, keep the rest as the
	// user wrote it. A prefixed phrase stays non-wildcarded.
	if len(body) >= 2 && body[0] == '"' && body[len(body)-1] == '"' {
		inner := strings.ReplaceAll(body[1:len(body)-1], `"`, `""`)
		return prefix + `"` + inner + `"`
	}

	body = strings.ReplaceAll(body, `"`, `""`)
	body = strings.ReplaceAll(body, ":", `\:`)

	if prefix != "" {
		return prefix + body + "*"
	}

	term := "*" + body + "*"
	if strings.Contains(body, "-") {
		term = `"` + term + `"`
	}
	return term
}
