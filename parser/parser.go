// Package parser implements the top-level parse driver: given a
// templated file and an expanded dialect, find the dialect's root grammar
// and match it against the token stream, never failing outright on
// unparsable input.
package parser

import (
	"github.com/shapesql/shapesql/dialect"
	"github.com/shapesql/shapesql/grammar"
	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
	"github.com/shapesql/shapesql/segment"
	"github.com/shapesql/shapesql/templatefile"
)

// ErrorKind distinguishes a parse-time diagnostic from a lex-time one.
type ErrorKind int

const (
	LexError ErrorKind = iota
	UnparsableSpan
)

// ParseError is one diagnostic produced by a parse, carrying both
// coordinate systems so callers can report either one.
type ParseError struct {
	Kind          ErrorKind
	Message       string
	SourceSpan    templatefile.Range
	TemplatedSpan templatefile.Range
}

// ParserConfig holds the externally-configurable knobs: which dialect to
// use, how deep grammar recursion may go, and the size past which a file
// is skipped rather than parsed.
type ParserConfig struct {
	Dialect                *dialect.Dialect
	RecursionLimit         int
	LargeFileSkipByteLimit int
}

// DefaultRecursionLimit is used by NewParserConfig when the caller
// doesn't name one.
const DefaultRecursionLimit = 1000

// NewParserConfig builds a ParserConfig for d with sane defaults; use the
// With* options to override them.
func NewParserConfig(d *dialect.Dialect, opts ...Option) ParserConfig {
	cfg := ParserConfig{
		Dialect:        d,
		RecursionLimit: DefaultRecursionLimit,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a ParserConfig built by NewParserConfig.
type Option func(*ParserConfig)

// WithRecursionLimit overrides the grammar recursion depth bound.
func WithRecursionLimit(n int) Option {
	return func(c *ParserConfig) { c.RecursionLimit = n }
}

// WithLargeFileSkipByteLimit sets the byte size past which Parse returns
// a diagnostic instead of attempting to parse.
func WithLargeFileSkipByteLimit(n int) Option {
	return func(c *ParserConfig) { c.LargeFileSkipByteLimit = n }
}

// rootGrammarName is the grammar every dialect must register under this
// name.
const rootGrammarName = "FileSegment"

// Parse runs the lex-then-match driver against tf using cfg's dialect,
// never returning an error for unparsable SQL: unrecognized spans are
// wrapped as Unparsable segments and reported as ParseErrors instead.
func Parse(tf *templatefile.TemplatedFile, cfg ParserConfig) (segment.Segment, []ParseError) {
	if cfg.LargeFileSkipByteLimit > 0 && len(tf.Raw) > cfg.LargeFileSkipByteLimit {
		return nil, []ParseError{{
			Kind:    UnparsableSpan,
			Message: "file exceeds large_file_skip_byte_limit, parse skipped",
			SourceSpan: templatefile.Range{
				Start: 0, End: len(tf.Raw),
			},
		}}
	}

	root, ok := cfg.Dialect.LookupGrammar(rootGrammarName)
	if !ok {
		return nil, []ParseError{{
			Kind:    UnparsableSpan,
			Message: "dialect has no " + rootGrammarName + " grammar registered",
		}}
	}

	toks, lexErrs := lexer.Lex(tf, cfg.Dialect.LexerMatchers())
	var errs []ParseError
	for _, e := range lexErrs {
		errs = append(errs, ParseError{
			Kind:          LexError,
			Message:       e.Message,
			SourceSpan:    e.SourceSpan,
			TemplatedSpan: e.TemplatedSpan,
		})
	}

	eof := toks[len(toks)-1]
	codeToks := toks[:len(toks)-1]

	// Step 1/2: trim leading/trailing non-code tokens.
	leadStart := 0
	for leadStart < len(codeToks) && !codeToks[leadStart].Kind.IsCode() {
		leadStart++
	}
	trailEnd := len(codeToks)
	for trailEnd > leadStart && !codeToks[trailEnd-1].Kind.IsCode() {
		trailEnd--
	}
	leading := codeToks[:leadStart]
	trailing := codeToks[trailEnd:]
	core := codeToks[leadStart:trailEnd]

	ctx := grammar.NewContext(cfg.Dialect, cfg.RecursionLimit)

	var body []segment.Segment
	if len(core) > 0 {
		result := root.Match(core, ctx)

		if result.HasMatch {
			body = append(body, result.Matched...)
			// Every Unparsable the grammar produced gets its own diagnostic.
			for _, m := range result.Matched {
				for _, u := range segment.FindAll(m, kind.Unparsable) {
					pos := u.Position()
					errs = append(errs, ParseError{
						Kind:          UnparsableSpan,
						Message:       "unparsable input",
						SourceSpan:    templatefile.Range{Start: pos.SourceStart, End: pos.SourceEnd},
						TemplatedSpan: templatefile.Range{Start: pos.TemplatedStart, End: pos.TemplatedEnd},
					})
				}
			}
			// Step 4: leftover tokens the root couldn't explain.
			if len(result.Unmatched) > 0 {
				body = append(body, wrapUnparsable(result.Unmatched))
				errs = append(errs, unparsableError(result.Unmatched))
			}
		} else {
			// Step 5: root matched nothing at all.
			body = append(body, wrapUnparsable(core))
			errs = append(errs, unparsableError(core))
		}
	}

	// Step 6: reattach trimmed trivia at both ends.
	var children []segment.Segment
	children = append(children, tokensToTerminals(leading)...)
	children = append(children, body...)
	children = append(children, tokensToTerminals(trailing)...)
	children = append(children, segment.NewTerminal(eof))

	// Step 7: construct the root FileSegment.
	return segment.NewNonTerminal(kind.File, children), errs
}

func tokensToTerminals(toks []lexer.Token) []segment.Segment {
	segs := make([]segment.Segment, len(toks))
	for i, t := range toks {
		segs[i] = segment.NewTerminal(t)
	}
	return segs
}

func wrapUnparsable(toks []lexer.Token) segment.Segment {
	return segment.NewUnparsable(tokensToTerminals(toks))
}

func unparsableError(toks []lexer.Token) ParseError {
	first, last := toks[0], toks[len(toks)-1]
	return ParseError{
		Kind:    UnparsableSpan,
		Message: "unparsable input",
		SourceSpan: templatefile.Range{
			Start: first.Span.SourceStart, End: last.Span.SourceEnd,
		},
		TemplatedSpan: templatefile.Range{
			Start: first.Span.TemplatedStart, End: last.Span.TemplatedEnd,
		},
	}
}
