package segment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/segment"
)

func tok(k kind.SyntaxKind, text string, start int) lexer.Token {
	end := start + len(text)
	return lexer.Token{
		Kind: k,
		Text: text,
		Span: lexer.Span{SourceStart: start, SourceEnd: end, TemplatedStart: start, TemplatedEnd: end},
	}
}

func TestNonTerminal_RawConcatenatesChildren(t *testing.T) {
	a := segment.NewTerminal(tok(kind.Code, "SELECT", 0))
	b := segment.NewTerminal(tok(kind.Whitespace, " ", 6))
	c := segment.NewTerminal(tok(kind.NumericLiteral, "1", 7))

	nt := segment.NewNonTerminal(kind.SelectStatement, []segment.Segment{a, b, c})
	assert.Equal(t, "SELECT 1", nt.Raw())
}

func TestNonTerminal_PositionIsUnionOfChildren(t *testing.T) {
	a := segment.NewTerminal(tok(kind.Code, "a", 10))
	b := segment.NewTerminal(tok(kind.Code, "bb", 14))

	nt := segment.NewNonTerminal(kind.ColumnReference, []segment.Segment{a, b})
	pos := nt.Position()
	assert.Equal(t, 10, pos.SourceStart)
	assert.Equal(t, 16, pos.SourceEnd)
}

func TestFindAll_RecursesThroughNestedNonTerminals(t *testing.T) {
	lit := segment.NewTerminal(tok(kind.NumericLiteral, "1", 0))
	inner := segment.NewNonTerminal(kind.Expression, []segment.Segment{lit})
	outer := segment.NewNonTerminal(kind.SelectClauseElement, []segment.Segment{inner})

	found := segment.FindAll(outer, kind.NumericLiteral)
	require.Len(t, found, 1)
	assert.Equal(t, "1", found[0].Raw())

	assert.Empty(t, segment.FindAll(outer, kind.Unparsable))
}

func TestNewUnparsable_IsTaggedUnparsableKind(t *testing.T) {
	lit := segment.NewTerminal(tok(kind.Code, "garbage", 0))
	u := segment.NewUnparsable([]segment.Segment{lit})
	assert.Equal(t, kind.Unparsable, u.Kind())
	assert.Equal(t, "garbage", u.Raw())
}

func TestRebuild_ReplacesTargetedSegmentInPlace(t *testing.T) {
	a := segment.NewTerminal(tok(kind.Code, "a", 0))
	b := segment.NewTerminal(tok(kind.Code, "b", 1))
	root := segment.NewNonTerminal(kind.ColumnReference, []segment.Segment{a, b})

	replacement := segment.NewTerminal(tok(kind.Code, "z", 0))
	rebuilt := segment.Rebuild(root, map[uint64][]segment.Segment{a.ID(): {replacement}})

	assert.Equal(t, "zb", rebuilt.Raw())
	assert.Equal(t, "ab", root.Raw(), "original tree must remain untouched")
}

func TestRebuild_ReturnsSameSegmentWhenNothingMatches(t *testing.T) {
	a := segment.NewTerminal(tok(kind.Code, "a", 0))
	root := segment.NewNonTerminal(kind.ColumnReference, []segment.Segment{a})

	rebuilt := segment.Rebuild(root, map[uint64][]segment.Segment{9999: {a}})
	assert.Equal(t, root.ID(), rebuilt.ID())
}
