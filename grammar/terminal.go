package grammar

import (
	"fmt"

	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/segment"
)

// typedMatchable matches exactly one token of a given kind. The lexer
// already classifies tokens before grammar sees them, so this is a plain
// kind equality check rather than a character-class test.
type typedMatchable struct {
	kind     kind.SyntaxKind
	optional bool
}

// TypedParser matches exactly one token whose Kind equals k.
func TypedParser(k kind.SyntaxKind) Matchable { return &typedMatchable{kind: k} }

func (t *typedMatchable) Optional() *typedMatchable {
	cp := *t
	cp.optional = true
	return &cp
}

func (t *typedMatchable) IsOptional() bool { return t.optional }

func (t *typedMatchable) Simple(d DialectLookup) (SimpleHint, bool) {
	return SimpleHint{Ok: true, Kinds: map[kind.SyntaxKind]struct{}{t.kind: {}}}, true
}

func (t *typedMatchable) Copy(opts CopyOptions) Matchable { cp := *t; return &cp }

func (t *typedMatchable) String() string { return fmt.Sprintf("Typed(%s)", t.kind) }

func (t *typedMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	if len(toks) == 0 || toks[0].Kind != t.kind {
		return noMatch(toks)
	}
	return MatchResult{Matched: []segment.Segment{segment.NewTerminal(toks[0])}, Unmatched: toks[1:], HasMatch: true}
}

// stringMatchable matches exactly one token of a given kind whose text
// equals a fixed string, case-insensitively — the mechanism dialect
// grammars use for keywords and fixed punctuation/operators.
type stringMatchable struct {
	kind     kind.SyntaxKind
	text     string
	optional bool
}

// StringParser matches exactly one token of kind k whose text equals
// text, ignoring case.
func StringParser(k kind.SyntaxKind, text string) Matchable {
	return &stringMatchable{kind: k, text: lexer.FoldIdentifier(text)}
}

func (s *stringMatchable) Optional() *stringMatchable {
	cp := *s
	cp.optional = true
	return &cp
}

func (s *stringMatchable) IsOptional() bool { return s.optional }

func (s *stringMatchable) Simple(d DialectLookup) (SimpleHint, bool) {
	return SimpleHint{Ok: true, Kinds: map[kind.SyntaxKind]struct{}{s.kind: {}}, Strings: map[string]struct{}{s.text: {}}}, true
}

func (s *stringMatchable) Copy(opts CopyOptions) Matchable { cp := *s; return &cp }

func (s *stringMatchable) String() string { return fmt.Sprintf("%q", s.text) }

func (s *stringMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	if len(toks) == 0 || toks[0].Kind != s.kind || lexer.FoldIdentifier(toks[0].Text) != s.text {
		return noMatch(toks)
	}
	return MatchResult{Matched: []segment.Segment{segment.NewTerminal(toks[0])}, Unmatched: toks[1:], HasMatch: true}
}

// KeywordParser matches a single Keyword token whose text equals word,
// the convenience every dialect's rule table uses to reference a keyword
// by spelling alone.
func KeywordParser(word string) Matchable {
	return StringParser(kind.Keyword, word)
}
