package grammar

import (
	"fmt"

	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/segment"
)

// BracketPair names the open/close token kinds for one bracket flavor.
// Round is the default; a dialect can register additional pairs
// (square/curly/angle) via its own bracket set.
type BracketPair struct {
	Open  kind.SyntaxKind
	Close kind.SyntaxKind
}

var (
	RoundBrackets  = BracketPair{Open: kind.StartBracket, Close: kind.EndBracket}
	SquareBrackets = BracketPair{Open: kind.StartSquareBracket, Close: kind.EndSquareBracket}
	CurlyBrackets  = BracketPair{Open: kind.StartCurlyBracket, Close: kind.EndCurlyBracket}
)

// bracketedMatchable matches an open bracket, an inner Sequence, and a
// matching close bracket, recovering greedily to the close bracket on
// inner failure instead of failing the whole match outright.
type bracketedMatchable struct {
	inner    Matchable
	pair     BracketPair
	optional bool
}

// Bracketed matches pair.Open, inner, pair.Close in sequence.
func Bracketed(inner Matchable, pair BracketPair) *bracketedMatchable {
	return &bracketedMatchable{inner: inner, pair: pair}
}

func (b *bracketedMatchable) Optional() *bracketedMatchable {
	cp := *b
	cp.optional = true
	return &cp
}

func (b *bracketedMatchable) IsOptional() bool { return b.optional }

func (b *bracketedMatchable) matchableChildren() []Matchable { return []Matchable{b.inner} }

func (b *bracketedMatchable) Simple(d DialectLookup) (SimpleHint, bool) {
	return SimpleHint{Ok: true, Kinds: map[kind.SyntaxKind]struct{}{b.pair.Open: {}}}, true
}

func (b *bracketedMatchable) Copy(opts CopyOptions) Matchable {
	return &bracketedMatchable{inner: b.inner.Copy(opts), pair: b.pair, optional: b.optional}
}

func (b *bracketedMatchable) String() string {
	return fmt.Sprintf("Bracketed[%s](%s)", b.pair.Open, b.inner)
}

func (b *bracketedMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	trivia, afterTrivia := skipTrivia(toks)
	i := firstCodeIndex(toks)
	if i < 0 || toks[i].Kind != b.pair.Open {
		return noMatch(toks)
	}

	openTok := afterTrivia[0]
	open := segment.NewTerminal(openTok)
	remaining := afterTrivia[1:]

	closeMatcher := TypedParser(b.pair.Close)
	ctx.PushTerminators([]Matchable{closeMatcher})
	innerTrivia, afterInnerTrivia := skipTrivia(remaining)
	innerRes := b.inner.Match(afterInnerTrivia, ctx)
	ctx.PopTerminators()

	var innerMatched []segment.Segment
	var afterInner []lexer.Token
	if innerRes.HasMatch {
		innerMatched = append(innerMatched, innerTrivia...)
		innerMatched = append(innerMatched, innerRes.Matched...)
		afterInner = innerRes.Unmatched
	} else {
		afterInner = remaining
	}

	closeTrivia, afterCloseTrivia := skipTrivia(afterInner)
	ci := firstCodeIndex(afterCloseTrivia)
	if ci < 0 {
		// Unmatched close bracket: wrap everything consumed so far as
		// Unparsable rather than failing the whole construct.
		var unparsableChildren []segment.Segment
		unparsableChildren = append(unparsableChildren, innerMatched...)
		unparsableChildren = append(unparsableChildren, closeTrivia...)
		children := []segment.Segment{segment.NewUnparsable(append([]segment.Segment{open}, unparsableChildren...))}
		return MatchResult{Matched: append(trivia, segment.NewNonTerminal(kind.Bracketed, children)), Unmatched: afterCloseTrivia, HasMatch: true}
	}
	if afterCloseTrivia[ci].Kind != b.pair.Close {
		cut := ci + 1
		var unparsableChildren []segment.Segment
		unparsableChildren = append(unparsableChildren, innerMatched...)
		unparsableChildren = append(unparsableChildren, closeTrivia...)
		for _, t := range afterCloseTrivia[:cut] {
			unparsableChildren = append(unparsableChildren, segment.NewTerminal(t))
		}
		children := []segment.Segment{segment.NewUnparsable(append([]segment.Segment{open}, unparsableChildren...))}
		return MatchResult{Matched: append(trivia, segment.NewNonTerminal(kind.Bracketed, children)), Unmatched: afterCloseTrivia[cut:], HasMatch: true}
	}

	closeTok := afterCloseTrivia[ci]
	close_ := segment.NewTerminal(closeTok)
	children := make([]segment.Segment, 0, len(innerMatched)+len(closeTrivia)+2)
	children = append(children, open)
	children = append(children, innerMatched...)
	children = append(children, closeTrivia...)
	children = append(children, close_)

	wrapped := segment.NewNonTerminal(kind.Bracketed, children)
	matched := append(trivia, wrapped)
	return MatchResult{Matched: matched, Unmatched: afterCloseTrivia[ci+1:], HasMatch: true}
}
