package grammar

import (
	"fmt"
	"strings"

	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
)

// hintStringKey must match whatever stringMatchable.Simple puts into
// SimpleHint.Strings (lexer.FoldIdentifier), not a plain ToUpper — they
// fold differently for non-ASCII text.
func hintStringKey(s string) string { return lexer.FoldIdentifier(s) }

// oneOfMatchable tries every alternative and keeps the longest successful
// match, ties broken by declaration order, rather than stopping at the
// first alternative that matches (noted in DESIGN.md as a deliberate
// design decision).
type oneOfMatchable struct {
	choices     []Matchable
	terminators []Matchable
	optional    bool
}

// OneOf tries every choice and keeps the alternative that consumes the
// most tokens; the earliest-declared alternative wins ties.
func OneOf(choices ...Matchable) *oneOfMatchable {
	return &oneOfMatchable{choices: choices}
}

func (o *oneOfMatchable) Terminators(terms ...Matchable) *oneOfMatchable {
	cp := *o
	cp.terminators = terms
	return &cp
}

func (o *oneOfMatchable) Optional() *oneOfMatchable {
	cp := *o
	cp.optional = true
	return &cp
}

func (o *oneOfMatchable) IsOptional() bool { return o.optional }

func (o *oneOfMatchable) matchableChildren() []Matchable { return o.choices }

func (o *oneOfMatchable) Simple(d DialectLookup) (SimpleHint, bool) {
	kinds := map[kind.SyntaxKind]struct{}{}
	strs := map[string]struct{}{}
	for _, c := range o.choices {
		hint, ok := c.Simple(d)
		if !ok {
			return unknownHint()
		}
		for k := range hint.Kinds {
			kinds[k] = struct{}{}
		}
		for s := range hint.Strings {
			strs[s] = struct{}{}
		}
	}
	return SimpleHint{Ok: true, Kinds: kinds, Strings: strs}, true
}

func (o *oneOfMatchable) Copy(opts CopyOptions) Matchable {
	cp := &oneOfMatchable{
		choices:     applyChildEdits(o.choices, opts),
		terminators: o.terminators,
		optional:    o.optional,
	}
	if opts.ReplaceTerminators != nil {
		cp.terminators = opts.ReplaceTerminators
	}
	return cp
}

func (o *oneOfMatchable) String() string {
	strs := make([]string, len(o.choices))
	for i, c := range o.choices {
		strs[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf("OneOf(%s)", strings.Join(strs, " | "))
}

func (o *oneOfMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	ctx.PushTerminators(o.terminators)
	defer ctx.PopTerminators()

	var best MatchResult
	haveBest := false
	bestLen := -1
	total := len(toks)

	for _, c := range o.choices {
		if hint, ok := c.Simple(ctx.Dialect); ok {
			if !hintCouldMatch(hint, toks) {
				continue
			}
		}
		res := c.Match(toks, ctx)
		if !res.HasMatch {
			continue
		}
		n := res.consumedLen(total)
		if n > bestLen {
			best, bestLen, haveBest = res, n, true
		}
	}

	if !haveBest {
		return noMatch(toks)
	}
	return best
}

// hintCouldMatch applies a SimpleHint's O(1) negative pruning: if the
// hint gives a definite kind/string set, the first non-trivia token of
// toks must be in it, or the alternative cannot possibly match.
func hintCouldMatch(hint SimpleHint, toks []lexer.Token) bool {
	if !hint.Ok {
		return true
	}
	i := firstCodeIndex(toks)
	if i < 0 {
		return false
	}
	tok := toks[i]
	if len(hint.Kinds) > 0 {
		if _, ok := hint.Kinds[tok.Kind]; ok {
			return true
		}
	}
	if len(hint.Strings) > 0 {
		if _, ok := hint.Strings[hintStringKey(tok.Text)]; ok {
			return true
		}
	}
	if len(hint.Kinds) == 0 && len(hint.Strings) == 0 {
		return true
	}
	return false
}
