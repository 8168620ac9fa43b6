package lexer

import "github.com/shapesql/shapesql/kind"

// Span locates a token in both the templated text the lexer actually
// scanned and the original source text it was templated from.
//
// Invariant: SourceEnd >= SourceStart and TemplatedEnd >= TemplatedStart.
type Span struct {
	SourceStart, SourceEnd       int
	TemplatedStart, TemplatedEnd int
}

// Len returns the templated-text length of the span.
func (s Span) Len() int {
	return s.TemplatedEnd - s.TemplatedStart
}

// Token is produced by the lexer and never mutated afterwards.
type Token struct {
	Kind kind.SyntaxKind
	Text string
	Span Span
}
