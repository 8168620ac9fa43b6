package grammar

import (
	"fmt"

	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/segment"
)

// delimitedMatchable matches item, then repeatedly (separator, item),
// optionally allowing a trailing separator, with a configurable minimum
// delimiter count.
type delimitedMatchable struct {
	item          Matchable
	separator     Matchable
	allowTrailing bool
	minDelimiters int
	terminators   []Matchable
	optional      bool
}

// Delimited matches a run of item separated by separator.
func Delimited(item, separator Matchable) *delimitedMatchable {
	return &delimitedMatchable{item: item, separator: separator}
}

func (d *delimitedMatchable) AllowTrailing() *delimitedMatchable {
	cp := *d
	cp.allowTrailing = true
	return &cp
}

func (d *delimitedMatchable) MinDelimiters(n int) *delimitedMatchable {
	cp := *d
	cp.minDelimiters = n
	return &cp
}

func (d *delimitedMatchable) Terminators(terms ...Matchable) *delimitedMatchable {
	cp := *d
	cp.terminators = terms
	return &cp
}

func (d *delimitedMatchable) Optional() *delimitedMatchable {
	cp := *d
	cp.optional = true
	return &cp
}

func (d *delimitedMatchable) IsOptional() bool { return d.optional }

func (d *delimitedMatchable) matchableChildren() []Matchable {
	return []Matchable{d.item, d.separator}
}

func (d *delimitedMatchable) Simple(dl DialectLookup) (SimpleHint, bool) {
	return d.item.Simple(dl)
}

func (d *delimitedMatchable) Copy(opts CopyOptions) Matchable {
	cp := &delimitedMatchable{
		item:          d.item,
		separator:     d.separator,
		allowTrailing: d.allowTrailing,
		minDelimiters: d.minDelimiters,
		terminators:   d.terminators,
		optional:      d.optional,
	}
	if opts.ReplaceTerminators != nil {
		cp.terminators = opts.ReplaceTerminators
	}
	return cp
}

func (d *delimitedMatchable) String() string {
	return fmt.Sprintf("Delimited(%s, by %s)", d.item, d.separator)
}

func (d *delimitedMatchable) Match(toks []lexer.Token, ctx *Context) MatchResult {
	ctx.PushTerminators(d.terminators)
	defer ctx.PopTerminators()

	var matched []segment.Segment
	remaining := toks
	delimiterCount := 0

	trivia, afterTrivia := skipTrivia(remaining)
	firstRes := d.item.Match(afterTrivia, ctx)
	if !firstRes.HasMatch {
		return noMatch(toks)
	}
	matched = append(matched, trivia...)
	matched = append(matched, firstRes.Matched...)
	remaining = firstRes.Unmatched

	for {
		if ctx.cancelled() {
			break
		}
		preSepTrivia, afterPreSepTrivia := skipTrivia(remaining)
		if len(ctx.ActiveTerminators()) > 0 && ctx.terminatorMatches(afterPreSepTrivia) {
			break
		}

		sepRes := d.separator.Match(afterPreSepTrivia, ctx)
		if !sepRes.HasMatch {
			break
		}

		afterSep := sepRes.Unmatched
		sepTrivia, afterSepTrivia := skipTrivia(afterSep)

		itemRes := d.item.Match(afterSepTrivia, ctx)
		if !itemRes.HasMatch {
			if d.allowTrailing {
				matched = append(matched, preSepTrivia...)
				matched = append(matched, sepRes.Matched...)
				matched = append(matched, sepTrivia...)
				remaining = afterSepTrivia
				delimiterCount++
			}
			break
		}

		matched = append(matched, preSepTrivia...)
		matched = append(matched, sepRes.Matched...)
		matched = append(matched, sepTrivia...)
		matched = append(matched, itemRes.Matched...)
		remaining = itemRes.Unmatched
		delimiterCount++
	}

	if delimiterCount < d.minDelimiters {
		return noMatch(toks)
	}
	return MatchResult{Matched: matched, Unmatched: remaining, HasMatch: true}
}
