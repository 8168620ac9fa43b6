package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapesql/shapesql/dialect"
	"github.com/shapesql/shapesql/grammar"
	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/templatefile"
)

func tokenize(t *testing.T, matchers []lexer.Matcher, src string) []lexer.Token {
	t.Helper()
	tf := templatefile.NewLiteralFile(src)
	toks, errs := lexer.Lex(tf, matchers)
	require.Empty(t, errs)
	return toks[:len(toks)-1] // drop EndOfFile
}

func testMatchers() []lexer.Matcher {
	return []lexer.Matcher{
		lexer.RegexMatcher("whitespace", kind.Whitespace, `[ \t]+`),
		lexer.KeywordSetMatcher("keyword", kind.Keyword, []string{"SELECT", "FROM", "AND"}),
		lexer.RegexMatcher("numeric", kind.NumericLiteral, `\d+`),
		lexer.RegexMatcher("code", kind.Code, `[\p{L}_][\p{L}\p{N}_$]*`),
		lexer.LiteralMatcher("comma", kind.Comma, ","),
		lexer.LiteralMatcher("dot", kind.Dot, "."),
		lexer.LiteralMatcher("start_bracket", kind.StartBracket, "("),
		lexer.LiteralMatcher("end_bracket", kind.EndBracket, ")"),
	}
}

func TestSequence_MatchesInOrderSkippingTrivia(t *testing.T) {
	toks := tokenize(t, testMatchers(), "SELECT a")
	seq := grammar.Sequence(grammar.KeywordParser("SELECT"), grammar.TypedParser(kind.Code))
	ctx := grammar.NewContext(dialect.New("empty"), 100)

	res := seq.Match(toks, ctx)
	require.True(t, res.HasMatch)
	assert.Empty(t, res.Unmatched)
	assert.Len(t, res.Matched, 3) // keyword, whitespace, code
}

func TestOneOf_PrefersLongerMatch(t *testing.T) {
	toks := tokenize(t, testMatchers(), "a.b")
	short := grammar.TypedParser(kind.Code)
	long := grammar.Sequence(grammar.TypedParser(kind.Code), grammar.TypedParser(kind.Dot), grammar.TypedParser(kind.Code)).NoGaps()
	choice := grammar.OneOf(short, long)
	ctx := grammar.NewContext(dialect.New("empty"), 100)

	res := choice.Match(toks, ctx)
	require.True(t, res.HasMatch)
	assert.Empty(t, res.Unmatched)
}

func TestDelimited_CollectsCommaSeparatedItems(t *testing.T) {
	toks := tokenize(t, testMatchers(), "a, b, c")
	d := grammar.Delimited(grammar.TypedParser(kind.Code), grammar.TypedParser(kind.Comma))
	ctx := grammar.NewContext(dialect.New("empty"), 100)

	res := d.Match(toks, ctx)
	require.True(t, res.HasMatch)
	assert.Empty(t, res.Unmatched)
}

func TestBracketed_WrapsUnclosedContentAsUnparsable(t *testing.T) {
	toks := tokenize(t, testMatchers(), "(a")
	b := grammar.Bracketed(grammar.TypedParser(kind.Code), grammar.RoundBrackets)
	ctx := grammar.NewContext(dialect.New("empty"), 100)

	res := b.Match(toks, ctx)
	require.True(t, res.HasMatch)
	require.Len(t, res.Matched, 1)
	assert.Equal(t, kind.Bracketed, res.Matched[0].Kind())

	var foundUnparsable bool
	for _, c := range res.Matched[0].Children() {
		if c.Kind() == kind.Unparsable {
			foundUnparsable = true
		}
	}
	assert.True(t, foundUnparsable)
}

func TestAnyNumberOf_RespectsMinTimes(t *testing.T) {
	toks := tokenize(t, testMatchers(), "")
	a := grammar.AnyNumberOf(grammar.TypedParser(kind.Code)).Min(1)
	ctx := grammar.NewContext(dialect.New("empty"), 100)

	res := a.Match(toks, ctx)
	assert.False(t, res.HasMatch)
}

func TestRef_ResolvesAgainstDialect(t *testing.T) {
	d := dialect.New("tiny")
	d.Add("Word", grammar.TypedParser(kind.Code))
	expanded, err := dialect.Expand(d)
	require.NoError(t, err)

	toks := tokenize(t, testMatchers(), "a")
	ctx := grammar.NewContext(expanded, 100)

	res := grammar.Ref("Word").Match(toks, ctx)
	require.True(t, res.HasMatch)
	assert.Empty(t, res.Unmatched)
}

func TestNothing_NeverMatchesButIsOptional(t *testing.T) {
	n := grammar.Nothing()
	assert.True(t, n.IsOptional())

	ctx := grammar.NewContext(dialect.New("empty"), 100)
	res := n.Match(nil, ctx)
	assert.False(t, res.HasMatch)
}
