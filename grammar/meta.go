package grammar

import (
	"fmt"

	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/segment"
)

// metaMatchable always succeeds consuming zero tokens, producing a single
// zero-width marker segment of kind k. Used for MetaIndent/MetaDedent/
// MetaImplicitIndent.
type metaMatchable struct {
	kind kind.SyntaxKind
}

// MetaSegment always matches, inserting a zero-width segment of kind k.
func MetaSegment(k kind.SyntaxKind) Matchable { return &metaMatchable{kind: k} }

func (m *metaMatchable) IsOptional() bool { return true }

func (m *metaMatchable) Simple(d DialectLookup) (SimpleHint, bool) { return unknownHint() }

func (m *metaMatchable) Copy(opts CopyOptions) Matchable { cp := *m; return &cp }

func (m *metaMatchable) String() string { return fmt.Sprintf("Meta(%s)", m.kind) }

func (m *metaMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	marker := segment.NewNonTerminal(m.kind, nil)
	return MatchResult{Matched: []segment.Segment{marker}, Unmatched: toks, HasMatch: true}
}
