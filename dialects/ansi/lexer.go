package ansi

import (
	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
)

// baseLexerMatchers builds the ANSI lexer matcher list in priority order:
// whitespace and comments first so they never get mistaken for code, then
// quoted literals, then numbers, then the keyword set (so a reserved word
// never falls through to the plain identifier matcher), then the
// identifier matcher, then punctuation/operators, with each
// multi-character operator ahead of its single-character prefix so "<="
// is never split into "<" + "=".
//
// The line-comment pattern stops before the line break, so the newline
// matcher emits the Newline token that follows a `-- comment`.
func baseLexerMatchers(reserved, unreserved []string) []lexer.Matcher {
	keywords := append(append([]string{}, reserved...), unreserved...)

	semicolon := lexer.RegexMatcher("semicolon_run", kind.Semicolon, `;+`)
	semicolon.Subdivider = func(s string) (int, bool) {
		if len(s) > 0 && s[0] == ';' {
			return 1, true
		}
		return 0, false
	}
	semicolon.SubdividerKind = kind.Semicolon

	blockComment := lexer.Regex2Matcher("block_comment", kind.BlockComment, `/\*(?:[^*]|\*(?!/))*\*/`)

	return []lexer.Matcher{
		lexer.RegexMatcher("whitespace", kind.Whitespace, `[ \t]+`),
		lexer.RegexMatcher("newline", kind.Newline, `\r\n|\r|\n`),
		blockComment,
		lexer.RegexMatcher("inline_comment", kind.InlineComment, `--[^\r\n]*`),
		lexer.Regex2Matcher("single_quote", kind.SingleQuote, `'(?:[^'\\]|\\.|'')*'`),
		lexer.Regex2Matcher("double_quote", kind.DoubleQuote, `"(?:[^"\\]|\\.|"")*"`),
		lexer.Regex2Matcher("back_quote", kind.BackQuote, "`(?:[^`\\\\]|\\\\.|``)*`"),
		lexer.RegexMatcher("numeric_literal", kind.NumericLiteral, `\d+\.\d+([eE][+-]?\d+)?|\d+[eE][+-]?\d+|\d+`),
		lexer.KeywordSetMatcher("keyword", kind.Keyword, keywords),
		lexer.RegexMatcher("code", kind.Code, `[\p{L}_][\p{L}\p{N}_$]*`),
		lexer.LiteralMatcher("colon", kind.Colon, ":"),
		lexer.LiteralMatcher("comparison_lte", kind.ComparisonOperatorToken, "<="),
		lexer.LiteralMatcher("comparison_gte", kind.ComparisonOperatorToken, ">="),
		lexer.LiteralMatcher("comparison_ne_angle", kind.ComparisonOperatorToken, "<>"),
		lexer.LiteralMatcher("comparison_ne_bang", kind.ComparisonOperatorToken, "!="),
		lexer.LiteralMatcher("comparison_eq", kind.ComparisonOperatorToken, "="),
		lexer.LiteralMatcher("comparison_lt", kind.ComparisonOperatorToken, "<"),
		lexer.LiteralMatcher("comparison_gt", kind.ComparisonOperatorToken, ">"),
		lexer.LiteralMatcher("concat", kind.BinaryOperatorToken, "||"),
		lexer.LiteralMatcher("plus", kind.SignToken, "+"),
		lexer.LiteralMatcher("minus", kind.SignToken, "-"),
		lexer.LiteralMatcher("divide", kind.BinaryOperatorToken, "/"),
		lexer.LiteralMatcher("modulo", kind.BinaryOperatorToken, "%"),
		lexer.LiteralMatcher("star", kind.Star, "*"),
		lexer.LiteralMatcher("dot", kind.Dot, "."),
		lexer.LiteralMatcher("comma", kind.Comma, ","),
		semicolon,
		lexer.LiteralMatcher("start_bracket", kind.StartBracket, "("),
		lexer.LiteralMatcher("end_bracket", kind.EndBracket, ")"),
		lexer.LiteralMatcher("start_square_bracket", kind.StartSquareBracket, "["),
		lexer.LiteralMatcher("end_square_bracket", kind.EndSquareBracket, "]"),
		lexer.LiteralMatcher("start_curly_bracket", kind.StartCurlyBracket, "{"),
		lexer.LiteralMatcher("end_curly_bracket", kind.EndCurlyBracket, "}"),
	}
}
