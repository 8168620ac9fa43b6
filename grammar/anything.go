package grammar

import (
	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/segment"
)

// anythingMatchable consumes every token up to (but not including) the
// earliest active terminator, or to end of input if none matches. SQL's
// catch-all productions (unhandled clause tails, Unparsable bodies) need
// this variable-width any rather than a fixed one-token match.
type anythingMatchable struct {
	optional bool
}

// Anything matches every token up to the nearest active terminator.
func Anything() *anythingMatchable { return &anythingMatchable{} }

func (a *anythingMatchable) Optional() *anythingMatchable {
	cp := *a
	cp.optional = true
	return &cp
}

func (a *anythingMatchable) IsOptional() bool               { return a.optional }
func (a *anythingMatchable) Simple(d DialectLookup) (SimpleHint, bool) { return unknownHint() }
func (a *anythingMatchable) Copy(opts CopyOptions) Matchable           { cp := *a; return &cp }
func (a *anythingMatchable) String() string                           { return "Anything()" }

func (a *anythingMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	cut := ctx.findTerminatorCut(toks)
	if cut == 0 {
		if a.optional {
			return MatchResult{Unmatched: toks, HasMatch: true}
		}
		return noMatch(toks)
	}
	segs := make([]segment.Segment, cut)
	for i, t := range toks[:cut] {
		segs[i] = segment.NewTerminal(t)
	}
	return MatchResult{Matched: segs, Unmatched: toks[cut:], HasMatch: true}
}

// nothingMatchable never matches; used to disable an inherited production
// by Copy-replacing it with Nothing().
type nothingMatchable struct{}

// Nothing never matches.
func Nothing() Matchable { return &nothingMatchable{} }

func (n *nothingMatchable) IsOptional() bool                           { return true }
func (n *nothingMatchable) Simple(d DialectLookup) (SimpleHint, bool)   { return unknownHint() }
func (n *nothingMatchable) Copy(opts CopyOptions) Matchable             { return n }
func (n *nothingMatchable) String() string                             { return "Nothing()" }
func (n *nothingMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	return noMatch(toks)
}
