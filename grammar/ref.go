package grammar

import (
	"fmt"

	"github.com/shapesql/shapesql/lexer"
)

const maxMemoEntries = 20000

// refMatchable is a named indirection to another grammar in the active
// dialect, resolved at Match time by looking the name up in the
// dialect's grammars map.
type refMatchable struct {
	name     string
	optional bool
}

// Ref builds a reference to the grammar registered under name in the
// active dialect.
func Ref(name string) Matchable {
	return &refMatchable{name: name}
}

// OptionalRef builds a Ref that the parent may skip without failing.
func OptionalRef(name string) Matchable {
	return &refMatchable{name: name, optional: true}
}

func (r *refMatchable) IsOptional() bool { return r.optional }

func (r *refMatchable) Simple(d DialectLookup) (SimpleHint, bool) {
	target, ok := d.LookupGrammar(r.name)
	if !ok {
		return unknownHint()
	}
	return target.Simple(d)
}

func (r *refMatchable) Copy(opts CopyOptions) Matchable {
	cp := *r
	return &cp
}

func (r *refMatchable) String() string {
	return fmt.Sprintf("Ref(%s)", r.name)
}

// RefName satisfies RefNamer for dialect closure validation.
func (r *refMatchable) RefName() string { return r.name }

func (r *refMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	target, ok := ctx.Dialect.LookupGrammar(r.name)
	if !ok {
		// Closure is validated at dialect Expand time; reaching here at
		// Match time means the dialect was used unexpanded. Fail locally
		// rather than panicking, keeping the parser total.
		return noMatch(toks)
	}

	key := memoKey{name: r.name, index: len(toks)}
	if ctx.refStack[key] {
		// Recursing to the same Ref at the same token position without
		// having consumed anything fails rather than looping forever.
		return noMatch(toks)
	}
	if cached, ok := ctx.memo[key]; ok {
		return cached
	}

	if !ctx.EnterDepth() {
		return noMatch(toks)
	}
	ctx.refStack[key] = true
	res := target.Match(toks, ctx)
	delete(ctx.refStack, key)
	ctx.ExitDepth()

	if len(ctx.memo) < maxMemoEntries {
		ctx.memo[key] = res
	}
	return res
}
