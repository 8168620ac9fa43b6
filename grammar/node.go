package grammar

import (
	"fmt"

	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/segment"
)

// nodeMatchable wraps inner's matched segments into a single NonTerminal
// tagged k. Every grammar a dialect registers under a name is built with
// Node so that a Ref to that name always yields exactly one segment of a
// known kind — tagging happens once, at the point a rule is defined,
// rather than at every call site.
type nodeMatchable struct {
	kind  kind.SyntaxKind
	inner Matchable
}

// Node tags inner's match result as a single non-terminal segment of kind
// k. If inner does not match, Node does not match either.
func Node(k kind.SyntaxKind, inner Matchable) Matchable {
	return &nodeMatchable{kind: k, inner: inner}
}

func (n *nodeMatchable) IsOptional() bool { return n.inner.IsOptional() }

func (n *nodeMatchable) matchableChildren() []Matchable { return []Matchable{n.inner} }

func (n *nodeMatchable) Simple(d DialectLookup) (SimpleHint, bool) {
	return n.inner.Simple(d)
}

func (n *nodeMatchable) Copy(opts CopyOptions) Matchable {
	return &nodeMatchable{kind: n.kind, inner: n.inner.Copy(opts)}
}

func (n *nodeMatchable) String() string {
	return fmt.Sprintf("%s{%s}", n.kind, n.inner)
}

func (n *nodeMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	res := n.inner.Match(toks, ctx)
	if !res.HasMatch {
		return res
	}
	if len(res.Matched) == 0 {
		return res
	}
	wrapped := segment.NewNonTerminal(n.kind, res.Matched)
	return MatchResult{
		Matched:   []segment.Segment{wrapped},
		Unmatched: res.Unmatched,
		HasMatch:  true,
	}
}
