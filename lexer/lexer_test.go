package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/templatefile"
)

func matchers() []lexer.Matcher {
	ws := lexer.RegexMatcher("whitespace", kind.Whitespace, `[ \t]+`)
	kw := lexer.KeywordSetMatcher("keyword", kind.Keyword, []string{"SELECT", "FROM"})
	single := lexer.Regex2Matcher("single_quote", kind.SingleQuote, `'(?:[^'\\]|\\.|'')*'`)
	code := lexer.RegexMatcher("code", kind.Code, `[\p{L}_][\p{L}\p{N}_$]*`)
	num := lexer.RegexMatcher("numeric", kind.NumericLiteral, `\d+`)

	semicolon := lexer.RegexMatcher("semicolon_run", kind.Semicolon, `;+`)
	semicolon.Subdivider = func(s string) (int, bool) {
		if len(s) > 0 && s[0] == ';' {
			return 1, true
		}
		return 0, false
	}
	semicolon.SubdividerKind = kind.Semicolon

	return []lexer.Matcher{ws, kw, single, code, num, semicolon}
}

func TestLex_KeywordBeatsCode(t *testing.T) {
	tf := templatefile.NewLiteralFile("SELECT x")
	toks, errs := lexer.Lex(tf, matchers())
	require.Empty(t, errs)
	require.Len(t, toks, 4) // keyword, ws, code, eof
	assert.Equal(t, kind.Keyword, toks[0].Kind)
	assert.Equal(t, kind.Code, toks[2].Kind)
	assert.Equal(t, kind.EndOfFile, toks[len(toks)-1].Kind)
}

func TestLex_SemicolonRunSubdivides(t *testing.T) {
	tf := templatefile.NewLiteralFile(";;;")
	toks, errs := lexer.Lex(tf, matchers())
	require.Empty(t, errs)
	require.Len(t, toks, 4) // three semicolons + eof
	for i := 0; i < 3; i++ {
		assert.Equal(t, kind.Semicolon, toks[i].Kind)
		assert.Equal(t, ";", toks[i].Text)
	}
}

func TestLex_QuotedLiteralWithEscapedQuote(t *testing.T) {
	tf := templatefile.NewLiteralFile(`'it''s here'`)
	toks, errs := lexer.Lex(tf, matchers())
	require.Empty(t, errs)
	require.Len(t, toks, 2)
	assert.Equal(t, kind.SingleQuote, toks[0].Kind)
	assert.Equal(t, `'it''s here'`, toks[0].Text)
}

func TestLex_UnlexableCharacterReported(t *testing.T) {
	tf := templatefile.NewLiteralFile("@")
	toks, errs := lexer.Lex(tf, matchers())
	require.Len(t, errs, 1)
	require.Len(t, toks, 2)
	assert.Equal(t, kind.Unlexable, toks[0].Kind)
}

func TestFoldIdentifier_WholeStringEquality(t *testing.T) {
	assert.Equal(t, lexer.FoldIdentifier("SELECT"), lexer.FoldIdentifier("select"))
	assert.Equal(t, lexer.FoldIdentifier("café"), lexer.FoldIdentifier("café"))
}
