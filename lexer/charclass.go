package lexer

// Character classes used by the base identifier/numeric matchers, narrowed
// to the fixed classes SQL lexing actually needs rather than a general
// rune-set API.

func isIdentStart(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '$'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f':
		return true
	default:
		return false
	}
}

func isNewline(r rune) bool {
	return r == '\n' || r == '\r'
}
