// Package grammar implements the composable grammar primitives every SQL
// dialect assembles its syntax from, and the parse context that drives
// them.
//
// Matchable.Match(toks, ctx) returns a MatchResult value rather than
// threading an error through a continuation-passing trampoline, so a
// failed sub-match is just data a caller can inspect and recover from.
// Context and Matchable are kept in one package because they are
// mutually recursive: every primitive's Match needs a *Context, and
// Ref's Match needs to call back into a DialectLookup's Matchable
// values.
package grammar

import (
	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/segment"
)

// MatchResult is the uniform output of Matchable.Match: consumed tokens
// appear, in order, as Matched (possibly wrapped in a non-terminal
// segment), and every other token appears unchanged in Unmatched. A
// primitive must never reorder or duplicate tokens.
type MatchResult struct {
	Matched   []segment.Segment
	Unmatched []lexer.Token
	HasMatch  bool
}

// consumedLen returns how many tokens the result consumed, measured as
// the positional difference, used by OneOf's longest-match rule.
func (r MatchResult) consumedLen(total int) int {
	return total - len(r.Unmatched)
}

func noMatch(toks []lexer.Token) MatchResult {
	return MatchResult{Unmatched: toks, HasMatch: false}
}

// SimpleHint is the result of Matchable.Simple: a static lower bound on
// what the very first non-trivia token of a successful match could be.
// An "unknown" hint (Ok==false) is always a safe fallback; OneOf/Sequence
// use a definite hint only to skip alternatives that cannot possibly
// match, never to change which alternative is chosen.
type SimpleHint struct {
	Ok      bool
	Kinds   map[kind.SyntaxKind]struct{}
	Strings map[string]struct{}
}

func unknownHint() (SimpleHint, bool) { return SimpleHint{}, false }

// DialectLookup is the narrow view of a dialect a Ref needs at parse
// time: resolve a grammar name to its (already expanded) Matchable. Kept
// as an interface here, rather than importing package dialect directly,
// so dialect can depend on grammar without a cycle back (dialect.Dialect
// implements this interface structurally).
type DialectLookup interface {
	LookupGrammar(name string) (Matchable, bool)
}

// CopyOptions parametrizes Matchable.Copy: the sole mechanism by which a
// derived dialect overrides part of a base production without
// hand-duplicating it.
type CopyOptions struct {
	// Insert adds these matchables into the receiver's immediate child
	// list, at the position named by At/Before, or appended if neither
	// is set.
	Insert []Matchable
	// Remove drops any immediate child structurally equal (by String())
	// to one of these.
	Remove []Matchable
	// At names an existing child (by String()) that Insert should be
	// placed immediately after.
	At string
	// Before names an existing child (by String()) that Insert should be
	// placed immediately before. At and Before are mutually exclusive.
	Before string
	// ReplaceTerminators, if non-nil, replaces the receiver's own
	// terminator list (Sequence/OneOf/AnyNumberOf/Delimited only).
	ReplaceTerminators []Matchable
}

// Matchable is the contract every grammar primitive implements, spec
// §4.2.
type Matchable interface {
	// Match consumes a prefix of toks, returning the parsed segments plus
	// whatever remains. A Matchable must never be called with an empty
	// ctx; NewContext sets one up.
	Match(toks []lexer.Token, ctx *Context) MatchResult
	// IsOptional permits the parent to skip this matchable without the
	// parent itself failing.
	IsOptional() bool
	// Simple reports a static first-token hint when one is statically
	// derivable against the given dialect, enabling O(1) negative
	// pruning; ok is false when no useful hint exists.
	Simple(d DialectLookup) (SimpleHint, bool)
	// Copy returns a new Matchable structurally identical to the
	// receiver but with opts applied to its immediate child list. This is
	// the sole mechanism dialects use to derive overrides.
	Copy(opts CopyOptions) Matchable
	// String renders the grammar for debugging.
	String() string
}

// RefNamer is implemented by Ref/OptionalRef so dialect closure
// validation can discover which grammar name a reference targets without
// importing a concrete ref type.
type RefNamer interface {
	RefName() string
}

// walkableChildren is implemented by every composite primitive
// (Sequence, OneOf, AnyNumberOf, Delimited, Bracketed, Node) so Walk can
// recurse without a type switch over every primitive.
type walkableChildren interface {
	matchableChildren() []Matchable
}

// Walk visits m and, recursively, every nested Matchable it contains,
// calling visit once per node including m itself. Used by dialect
// closure validation to find every Ref reachable from a dialect's
// registered grammars.
func Walk(m Matchable, visit func(Matchable)) {
	if m == nil {
		return
	}
	visit(m)
	if c, ok := m.(walkableChildren); ok {
		for _, child := range c.matchableChildren() {
			Walk(child, visit)
		}
	}
}

// firstCodeIndex returns the index of the first token in toks whose Kind
// IsCode, or -1 if every remaining token is trivia/EOF.
func firstCodeIndex(toks []lexer.Token) int {
	for i, t := range toks {
		if t.Kind.IsCode() {
			return i
		}
	}
	return -1
}
