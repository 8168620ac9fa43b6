package grammar

import (
	"github.com/shapesql/shapesql/lexer"
)

// ParseMode controls how Sequence/OneOf/AnyNumberOf recover from a
// failed child match.
type ParseMode int

const (
	// Strict: a partial match propagates failure to the parent.
	Strict ParseMode = iota
	// Greedy: on failure, consume tokens up to the earliest configured
	// terminator and wrap them in an Unparsable segment instead of
	// backtracking past them.
	Greedy
	// GreedyOnceStarted behaves Strict until the first element matches,
	// then behaves Greedy for the remainder.
	GreedyOnceStarted
)

// Context is the parse context every Matchable consults: a recursion
// depth bound checked on Ref entry, and a terminator stack pushed by
// Sequence/AnyNumberOf/Bracketed/Delimited on entry and popped on exit.
type Context struct {
	Dialect  DialectLookup
	Depth    int
	MaxDepth int

	terminators [][]Matchable

	// Progress is called between heavy sub-matches so a long parse can be
	// cancelled cooperatively. Nil means no cancellation.
	Progress func() (cancelled bool)

	memo map[memoKey]MatchResult
	// refStack tracks (name, tokenIndex) pairs currently being matched,
	// to detect a Ref recursing to the same position without progress.
	refStack map[memoKey]bool

	// consumedTotal is not read anywhere: memo and refStack keys identify
	// a position by the length of the remaining token slice.
	consumedTotal int
}

type memoKey struct {
	name  string
	index int
}

// NewContext builds a root parse context for one parse. maxDepth<=0 means
// unlimited (not recommended; callers should always set a bound).
func NewContext(d DialectLookup, maxDepth int) *Context {
	return &Context{
		Dialect:  d,
		MaxDepth: maxDepth,
		memo:     make(map[memoKey]MatchResult),
		refStack: make(map[memoKey]bool),
	}
}

// PushTerminators pushes a new frame of terminators onto the stack; pop
// with PopTerminators in the same primitive's Match before returning.
func (c *Context) PushTerminators(m []Matchable) {
	c.terminators = append(c.terminators, m)
}

// PopTerminators removes the most recently pushed terminator frame.
func (c *Context) PopTerminators() {
	if len(c.terminators) > 0 {
		c.terminators = c.terminators[:len(c.terminators)-1]
	}
}

// ActiveTerminators returns the union of every terminator frame
// currently on the stack; lower primitives consult this union.
func (c *Context) ActiveTerminators() []Matchable {
	var all []Matchable
	for _, frame := range c.terminators {
		all = append(all, frame...)
	}
	return all
}

// EnterDepth increments the recursion counter, returning false (and not
// incrementing) if doing so would exceed MaxDepth.
func (c *Context) EnterDepth() bool {
	if c.MaxDepth > 0 && c.Depth >= c.MaxDepth {
		return false
	}
	c.Depth++
	return true
}

// ExitDepth decrements the recursion counter; call exactly once for every
// successful EnterDepth.
func (c *Context) ExitDepth() {
	if c.Depth > 0 {
		c.Depth--
	}
}

// cancelled reports whether the cooperative progress hook has requested a
// stop.
func (c *Context) cancelled() bool {
	if c.Progress == nil {
		return false
	}
	return c.Progress()
}

// terminatorMatches reports whether any currently active terminator
// matches at the head of toks, without capturing a segment for it — used
// by Sequence/AnyNumberOf/Anything to find the lookahead cut point.
func (c *Context) terminatorMatches(toks []lexer.Token) bool {
	for _, term := range c.ActiveTerminators() {
		res := term.Match(toks, c)
		if res.HasMatch {
			return true
		}
	}
	return false
}

// findTerminatorCut scans toks for the earliest position (from the
// front) at which any active terminator matches, returning len(toks) if
// none do. Used by Greedy recovery and by Anything.
func (c *Context) findTerminatorCut(toks []lexer.Token) int {
	for i := range toks {
		if c.terminatorMatches(toks[i:]) {
			return i
		}
	}
	return len(toks)
}
