package command

import (
	"strings"
	"unicode"
)

const langPrefix = "lang="

// IsCommand reports whether raw would be treated as a command by Parse.
func IsCommand(raw string) bool {
	return strings.HasPrefix(raw, Sigil)
}

// Parse classifies a raw message. The second return value is false when
// the message does not start with the sigil and should be treated as
// plain chat text. The command word is case-sensitive; free-text payloads
// keep their internal whitespace but are trimmed at both ends.
func Parse(raw string) (Command, bool) {
	if !strings.HasPrefix(raw, Sigil) {
		return nil, false
	}

	word, rest := nextToken(raw[len(Sigil):])
	switch word {
	case "ai":
		query := strings.TrimSpace(rest)
		if query == "" {
			return Invalid{Raw: raw}, true
		}
		return AIQuery{Query: query}, true

	case "ask":
		name, tail := nextToken(rest)
		query := strings.TrimSpace(tail)
		if name == "" || query == "" {
			return Invalid{Raw: raw}, true
		}
		return AIQuery{Bot: name, Query: query}, true

	case "online":
		return NumUsersOnline{}, true

	case "help":
		return Help{}, true

	case "listbots":
		return ListBots{}, true

	case "removebot":
		name, _ := nextToken(rest)
		if name == "" {
			return Invalid{Raw: raw}, true
		}
		return RemoveBot{Name: name}, true

	case "newbot":
		name, tail := nextToken(rest)
		if name == "" {
			return Invalid{Raw: raw}, true
		}
		lang := ""
		config := tail
		if tok, after := nextToken(tail); strings.HasPrefix(tok, langPrefix) {
			lang = strings.TrimPrefix(tok, langPrefix)
			config = after
		}
		config = strings.TrimSpace(config)
		if config == "" {
			return Invalid{Raw: raw}, true
		}
		return AICreate{Name: name, Lang: lang, Config: config}, true

	default:
		return Invalid{Raw: raw}, true
	}
}

// nextToken splits off the first whitespace-delimited token. The
// remainder keeps its internal whitespace; only the separator itself is
// consumed.
func nextToken(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}
