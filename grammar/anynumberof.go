package grammar

import (
	"fmt"
	"strings"

	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/segment"
)

const defaultLoopLimit = 10000

// anyNumberOfMatchable repeats: at each iteration it picks any matching
// choice, stopping when none matches, max_times is reached, or a
// terminator appears.
type anyNumberOfMatchable struct {
	choices     []Matchable
	minTimes    int
	maxTimes    int // 0 means unbounded
	terminators []Matchable
	optional    bool
}

// AnyNumberOf repeats any of choices, with no min/max bound by default.
func AnyNumberOf(choices ...Matchable) *anyNumberOfMatchable {
	return &anyNumberOfMatchable{choices: choices}
}

// Optional wraps a single matchable to run zero or one times.
func Optional(m Matchable) Matchable {
	return &anyNumberOfMatchable{choices: []Matchable{m}, maxTimes: 1, optional: true}
}

func (a *anyNumberOfMatchable) Min(n int) *anyNumberOfMatchable {
	cp := *a
	cp.minTimes = n
	return &cp
}

func (a *anyNumberOfMatchable) Max(n int) *anyNumberOfMatchable {
	cp := *a
	cp.maxTimes = n
	return &cp
}

func (a *anyNumberOfMatchable) Terminators(terms ...Matchable) *anyNumberOfMatchable {
	cp := *a
	cp.terminators = terms
	return &cp
}

func (a *anyNumberOfMatchable) Optional() *anyNumberOfMatchable {
	cp := *a
	cp.optional = true
	return &cp
}

func (a *anyNumberOfMatchable) IsOptional() bool {
	return a.optional || a.minTimes == 0
}

func (a *anyNumberOfMatchable) matchableChildren() []Matchable { return a.choices }

func (a *anyNumberOfMatchable) Simple(d DialectLookup) (SimpleHint, bool) {
	if len(a.choices) == 0 {
		return unknownHint()
	}
	return OneOf(a.choices...).Simple(d)
}

func (a *anyNumberOfMatchable) Copy(opts CopyOptions) Matchable {
	cp := &anyNumberOfMatchable{
		choices:     applyChildEdits(a.choices, opts),
		minTimes:    a.minTimes,
		maxTimes:    a.maxTimes,
		terminators: a.terminators,
		optional:    a.optional,
	}
	if opts.ReplaceTerminators != nil {
		cp.terminators = opts.ReplaceTerminators
	}
	return cp
}

func (a *anyNumberOfMatchable) String() string {
	strs := make([]string, len(a.choices))
	for i, c := range a.choices {
		strs[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf("AnyNumberOf<%d,%d>(%s)", a.minTimes, a.maxTimes, strings.Join(strs, " | "))
}

func (a *anyNumberOfMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	ctx.PushTerminators(a.terminators)
	defer ctx.PopTerminators()

	var matched []segment.Segment
	remaining := toks
	count := 0

	for i := 0; ; i++ {
		if i >= defaultLoopLimit {
			break
		}
		if a.maxTimes > 0 && count >= a.maxTimes {
			break
		}
		if ctx.cancelled() {
			break
		}

		trivia, afterTrivia := skipTrivia(remaining)
		if len(ctx.ActiveTerminators()) > 0 && ctx.terminatorMatches(afterTrivia) {
			break
		}

		choice := OneOf(a.choices...)
		res := choice.Match(afterTrivia, ctx)
		if !res.HasMatch {
			break
		}
		if len(res.Unmatched) == len(afterTrivia) && len(res.Matched) == 0 {
			// No progress: stop to avoid an infinite loop on a choice
			// that matches zero tokens (e.g. a MetaSegment).
			matched = append(matched, trivia...)
			matched = append(matched, res.Matched...)
			remaining = res.Unmatched
			count++
			break
		}
		matched = append(matched, trivia...)
		matched = append(matched, res.Matched...)
		remaining = res.Unmatched
		count++
	}

	if count < a.minTimes {
		return noMatch(toks)
	}
	return MatchResult{Matched: matched, Unmatched: remaining, HasMatch: true}
}
