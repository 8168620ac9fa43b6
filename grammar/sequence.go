package grammar

import (
	"fmt"
	"strings"

	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/segment"
)

// sequenceMatchable matches its elements in order, optionally skipping
// trivia between them, with configurable allow_gaps, terminators and
// ParseMode.
type sequenceMatchable struct {
	elements    []Matchable
	allowGaps   bool
	terminators []Matchable
	mode        ParseMode
	optional    bool
}

// Sequence matches elems in order. Trivia between elements is captured
// and permitted by default (allowGaps=true); terminators are empty;
// ParseMode is Strict. Use the builder methods to change any of these.
func Sequence(elems ...Matchable) *sequenceMatchable {
	return &sequenceMatchable{elements: elems, allowGaps: true, mode: Strict}
}

// Terminators returns a copy of the receiver with its terminator set
// replaced.
func (s *sequenceMatchable) Terminators(terms ...Matchable) *sequenceMatchable {
	cp := *s
	cp.terminators = terms
	return &cp
}

// Mode returns a copy of the receiver with its ParseMode replaced.
func (s *sequenceMatchable) Mode(m ParseMode) *sequenceMatchable {
	cp := *s
	cp.mode = m
	return &cp
}

// NoGaps returns a copy of the receiver with allow_gaps disabled: trivia
// between elements is no longer permitted, only consumed implicitly
// where individual elements accept it.
func (s *sequenceMatchable) NoGaps() *sequenceMatchable {
	cp := *s
	cp.allowGaps = false
	return &cp
}

// Optional returns a copy of the receiver marked optional.
func (s *sequenceMatchable) Optional() *sequenceMatchable {
	cp := *s
	cp.optional = true
	return &cp
}

func (s *sequenceMatchable) IsOptional() bool { return s.optional }

func (s *sequenceMatchable) matchableChildren() []Matchable { return s.elements }

func (s *sequenceMatchable) Simple(d DialectLookup) (SimpleHint, bool) {
	union := SimpleHint{Ok: true, Kinds: map[kind.SyntaxKind]struct{}{}, Strings: map[string]struct{}{}}
	for _, e := range s.elements {
		hint, ok := e.Simple(d)
		if !ok {
			return unknownHint()
		}
		for k := range hint.Kinds {
			union.Kinds[k] = struct{}{}
		}
		for str := range hint.Strings {
			union.Strings[str] = struct{}{}
		}
		if !e.IsOptional() {
			return union, true
		}
	}
	return unknownHint()
}

func (s *sequenceMatchable) Copy(opts CopyOptions) Matchable {
	cp := &sequenceMatchable{
		elements:    applyChildEdits(s.elements, opts),
		allowGaps:   s.allowGaps,
		terminators: s.terminators,
		mode:        s.mode,
		optional:    s.optional,
	}
	if opts.ReplaceTerminators != nil {
		cp.terminators = opts.ReplaceTerminators
	}
	return cp
}

func (s *sequenceMatchable) String() string {
	strs := make([]string, len(s.elements))
	for i, e := range s.elements {
		strs[i] = fmt.Sprint(e)
	}
	return fmt.Sprintf("Sequence(%s)", strings.Join(strs, " "))
}

// applyChildEdits implements the structural-copy contract every
// multi-child primitive's Copy delegates to: insert named matchables
// at/before a named existing child (matched by String()), and/or remove
// matchables structurally equal to one of opts.Remove.
func applyChildEdits(children []Matchable, opts CopyOptions) []Matchable {
	out := make([]Matchable, 0, len(children)+len(opts.Insert))
	removeSet := make(map[string]bool, len(opts.Remove))
	for _, r := range opts.Remove {
		removeSet[fmt.Sprint(r)] = true
	}

	inserted := false
	for _, c := range children {
		if removeSet[fmt.Sprint(c)] {
			continue
		}
		if opts.Before != "" && fmt.Sprint(c) == opts.Before {
			out = append(out, opts.Insert...)
			inserted = true
		}
		out = append(out, c)
		if opts.At != "" && fmt.Sprint(c) == opts.At {
			out = append(out, opts.Insert...)
			inserted = true
		}
	}
	if !inserted && len(opts.Insert) > 0 && opts.At == "" && opts.Before == "" {
		out = append(out, opts.Insert...)
	}
	return out
}

// skipTrivia peels every leading trivia token from toks without
// committing to consuming them, returning them as Terminal segments plus
// the remaining tokens.
func skipTrivia(toks []lexer.Token) ([]segment.Segment, []lexer.Token) {
	i := 0
	for i < len(toks) && toks[i].Kind.IsTrivia() {
		i++
	}
	if i == 0 {
		return nil, toks
	}
	segs := make([]segment.Segment, i)
	for j := 0; j < i; j++ {
		segs[j] = segment.NewTerminal(toks[j])
	}
	return segs, toks[i:]
}

func (s *sequenceMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	ctx.PushTerminators(s.terminators)
	defer ctx.PopTerminators()

	var matched []segment.Segment
	remaining := toks
	started := false

	for idx, elem := range s.elements {
		if ctx.cancelled() {
			return s.recover(ctx, matched, toks, remaining, idx)
		}

		var trivia []segment.Segment
		var afterTrivia []lexer.Token
		if s.allowGaps {
			trivia, afterTrivia = skipTrivia(remaining)
		} else {
			afterTrivia = remaining
		}

		if len(ctx.ActiveTerminators()) > 0 && ctx.terminatorMatches(afterTrivia) {
			if elem.IsOptional() {
				continue
			}
			return s.recover(ctx, matched, toks, remaining, idx)
		}

		res := elem.Match(afterTrivia, ctx)
		if !res.HasMatch {
			if elem.IsOptional() {
				continue
			}
			effectiveMode := s.mode
			if effectiveMode == GreedyOnceStarted && !started {
				effectiveMode = Strict
			}
			if effectiveMode == Strict {
				return noMatch(toks)
			}
			return s.recover(ctx, matched, toks, remaining, idx)
		}

		started = true
		matched = append(matched, trivia...)
		matched = append(matched, res.Matched...)
		remaining = res.Unmatched
	}

	return MatchResult{Matched: matched, Unmatched: remaining, HasMatch: true}
}

// recover implements Greedy/GreedyOnceStarted failure recovery (spec
// §4.3): consume tokens up to the earliest active terminator and wrap
// them as Unparsable, rather than backtracking past what already matched.
func (s *sequenceMatchable) recover(ctx *Context, matched []segment.Segment, original []lexer.Token, remaining []lexer.Token, failedAt int) MatchResult {
	mode := s.mode
	if mode == GreedyOnceStarted {
		if failedAt == 0 {
			return noMatch(original)
		}
		mode = Greedy
	}
	if mode != Greedy {
		return noMatch(original)
	}

	trivia, afterTrivia := skipTrivia(remaining)
	cut := ctx.findTerminatorCut(afterTrivia)
	if cut == 0 {
		return MatchResult{Matched: matched, Unmatched: remaining, HasMatch: len(matched) > 0}
	}
	var unparsableChildren []segment.Segment
	for _, t := range afterTrivia[:cut] {
		unparsableChildren = append(unparsableChildren, segment.NewTerminal(t))
	}
	matched = append(matched, trivia...)
	matched = append(matched, segment.NewUnparsable(unparsableChildren))
	return MatchResult{Matched: matched, Unmatched: afterTrivia[cut:], HasMatch: true}
}
