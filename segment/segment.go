// Package segment implements the CST: terminal segments wrapping a single
// token, and non-terminal segments wrapping an ordered list of children.
// Every non-terminal is tagged with one of the fixed kind.SyntaxKind
// values, so the tree is table-driven rather than built from bespoke
// per-rule constructor closures.
package segment

import (
	"strings"
	"sync/atomic"

	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
)

// PositionMarker is the union of a segment's source and templated spans,
// carrying both coordinate systems so a diagnostic can be reported in
// either one.
type PositionMarker struct {
	SourceStart, SourceEnd       int
	TemplatedStart, TemplatedEnd int
}

// FromSpan converts a lexer token span into a PositionMarker.
func FromSpan(s lexer.Span) PositionMarker {
	return PositionMarker{
		SourceStart:    s.SourceStart,
		SourceEnd:      s.SourceEnd,
		TemplatedStart: s.TemplatedStart,
		TemplatedEnd:   s.TemplatedEnd,
	}
}

// Union returns the smallest PositionMarker containing both a and b. An
// empty PositionMarker (zero value with SourceEnd==0 and
// TemplatedEnd==0, produced by an empty child list) is treated as
// absorbing rather than dominating.
func Union(a, b PositionMarker) PositionMarker {
	if a == (PositionMarker{}) {
		return b
	}
	if b == (PositionMarker{}) {
		return a
	}
	out := a
	if b.SourceStart < out.SourceStart {
		out.SourceStart = b.SourceStart
	}
	if b.SourceEnd > out.SourceEnd {
		out.SourceEnd = b.SourceEnd
	}
	if b.TemplatedStart < out.TemplatedStart {
		out.TemplatedStart = b.TemplatedStart
	}
	if b.TemplatedEnd > out.TemplatedEnd {
		out.TemplatedEnd = b.TemplatedEnd
	}
	return out
}

var nextID uint64

func newID() uint64 {
	return atomic.AddUint64(&nextID, 1)
}

// Segment is a CST node: either a Terminal wrapping one token or a
// NonTerminal wrapping an ordered child list.
type Segment interface {
	ID() uint64
	Kind() kind.SyntaxKind
	Position() PositionMarker
	Raw() string
	// Children returns the ordered child list, nil for a Terminal.
	Children() []Segment
	// IsTerminal reports whether this segment wraps exactly one token.
	IsTerminal() bool
}

// Terminal wraps exactly one lexer token. Its identity is fixed at
// construction and is never mutated afterwards.
type Terminal struct {
	id  uint64
	tok lexer.Token
}

// NewTerminal builds a Terminal segment from a single token.
func NewTerminal(tok lexer.Token) *Terminal {
	return &Terminal{id: newID(), tok: tok}
}

func (t *Terminal) ID() uint64              { return t.id }
func (t *Terminal) Kind() kind.SyntaxKind    { return t.tok.Kind }
func (t *Terminal) Position() PositionMarker { return FromSpan(t.tok.Span) }
func (t *Terminal) Raw() string              { return t.tok.Text }
func (t *Terminal) Children() []Segment      { return nil }
func (t *Terminal) IsTerminal() bool         { return true }
func (t *Terminal) Token() lexer.Token       { return t.tok }

// NonTerminal wraps an ordered list of children under one SyntaxKind. Raw
// text and position are memoized at construction: both are pure functions
// of the children, computed once and cached.
type NonTerminal struct {
	id       uint64
	kind     kind.SyntaxKind
	children []Segment
	raw      string
	pos      PositionMarker
}

// NewNonTerminal builds a non-terminal from its kind and ordered
// children, computing and memoizing Raw() and Position() immediately.
func NewNonTerminal(k kind.SyntaxKind, children []Segment) *NonTerminal {
	nt := &NonTerminal{id: newID(), kind: k, children: children}
	nt.raw = computeRaw(children)
	nt.pos = computePosition(children)
	return nt
}

func computeRaw(children []Segment) string {
	var b strings.Builder
	for _, c := range children {
		b.WriteString(c.Raw())
	}
	return b.String()
}

func computePosition(children []Segment) PositionMarker {
	var pm PositionMarker
	for _, c := range children {
		pm = Union(pm, c.Position())
	}
	return pm
}

func (n *NonTerminal) ID() uint64               { return n.id }
func (n *NonTerminal) Kind() kind.SyntaxKind     { return n.kind }
func (n *NonTerminal) Position() PositionMarker  { return n.pos }
func (n *NonTerminal) Raw() string               { return n.raw }
func (n *NonTerminal) Children() []Segment       { return n.children }
func (n *NonTerminal) IsTerminal() bool          { return false }

// NewUnparsable wraps tokens (already lifted to Terminal segments, or
// deeper partial matches) the parser could not explain. It is an ordinary
// NonTerminal tagged kind.Unparsable; external collaborators recognize it
// by kind, not by a distinct Go type.
func NewUnparsable(children []Segment) *NonTerminal {
	return NewNonTerminal(kind.Unparsable, children)
}

// FindAll performs a depth-first recursive search for every descendant
// (including the receiver) whose Kind equals k.
func FindAll(s Segment, k kind.SyntaxKind) []Segment {
	var out []Segment
	var walk func(Segment)
	walk = func(s Segment) {
		if s.Kind() == k {
			out = append(out, s)
		}
		for _, c := range s.Children() {
			walk(c)
		}
	}
	walk(s)
	return out
}

// Rebuild produces a new tree identical to s except that any segment
// whose ID appears in replacements is substituted: a one-element
// replacement list takes its place as is, and any other list is wrapped
// in a new NonTerminal of the replaced segment's kind. This is the
// non-destructive
// rewrite an external fix engine needs; the source tree is left untouched
// since NonTerminal fields are only ever set once, at construction.
func Rebuild(s Segment, replacements map[uint64][]Segment) Segment {
	if repl, ok := replacements[s.ID()]; ok {
		if len(repl) == 1 {
			return repl[0]
		}
		return NewNonTerminal(s.Kind(), repl)
	}
	if s.IsTerminal() {
		return s
	}
	children := s.Children()
	newChildren := make([]Segment, 0, len(children))
	changed := false
	for _, c := range children {
		rc := Rebuild(c, replacements)
		if rc.ID() != c.ID() {
			changed = true
		}
		newChildren = append(newChildren, rc)
	}
	if !changed {
		return s
	}
	return NewNonTerminal(s.Kind(), newChildren)
}
