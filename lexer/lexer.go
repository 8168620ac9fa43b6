// Package lexer turns a TemplatedFile's templated text into a token
// stream whose spans are expressed in both templated and source
// coordinates.
package lexer

import (
	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/templatefile"
)

// ErrorKind distinguishes lex-time diagnostics from parse-time ones.
type ErrorKind int

const (
	LexErrorKind ErrorKind = iota
)

// Error is a single lex diagnostic: an unlexable span was encountered.
// Lexing never aborts, it only records these and keeps going.
type Error struct {
	Kind          ErrorKind
	Message       string
	TemplatedSpan templatefile.Range
	SourceSpan    templatefile.Range
}

// Lex runs matchers in declared order over tf's templated text, producing
// a flat token stream plus any lex errors. It never returns early:
// unmatched spans are consumed by the last-resort matcher and reported,
// not thrown. A zero-length EndOfFile token is always appended last.
func Lex(tf *templatefile.TemplatedFile, matchers []Matcher) ([]Token, []Error) {
	text := tf.Templated
	var tokens []Token
	var errs []Error

	pos := 0
	for pos < len(text) {
		m, n, ok := tryMatchers(matchers, text[pos:])
		if !ok {
			n = lastResort(text[pos:])
			srcStart, _ := tf.SourcePosition(pos)
			srcEnd, _ := tf.SourcePosition(pos + n)
			tok := Token{
				Kind: kind.Unlexable,
				Text: text[pos : pos+n],
				Span: Span{
					SourceStart:    srcStart,
					SourceEnd:      srcEnd,
					TemplatedStart: pos,
					TemplatedEnd:   pos + n,
				},
			}
			tokens = append(tokens, tok)
			errs = append(errs, Error{
				Kind:          LexErrorKind,
				Message:       "no matcher progressed",
				TemplatedSpan: templatefile.Range{Start: pos, End: pos + n},
				SourceSpan:    templatefile.Range{Start: srcStart, End: srcEnd},
			})
			pos += n
			continue
		}

		matchedText := text[pos : pos+n]
		pieces := subdivide(m, matchedText)
		for _, p := range pieces {
			tokens = appendToken(tokens, tf, p.kind, p.text, pos+p.offset)
		}
		pos += n
	}

	eofSrc, _ := tf.SourcePosition(len(text))
	tokens = append(tokens, Token{
		Kind: kind.EndOfFile,
		Text: "",
		Span: Span{
			SourceStart:    eofSrc,
			SourceEnd:      eofSrc,
			TemplatedStart: len(text),
			TemplatedEnd:   len(text),
		},
	})

	return tokens, errs
}

// appendToken emits one or more tokens of kind k covering
// [templatedStart, templatedStart+len(text)) of the templated text,
// mapping to source coordinates: whitespace/newline tokens are split
// along TemplatedSlice boundaries; every other kind keeps one token
// whose source span is the union across any slices it straddles.
func appendToken(tokens []Token, tf *templatefile.TemplatedFile, k kind.SyntaxKind, text string, templatedStart int) []Token {
	templatedEnd := templatedStart + len(text)
	if k == kind.Whitespace || k == kind.Newline {
		pos := templatedStart
		for pos < templatedEnd {
			sl, ok := tf.SliceAt(pos)
			segEnd := templatedEnd
			if ok && sl.TemplatedRange.End < segEnd {
				segEnd = sl.TemplatedRange.End
			}
			if segEnd <= pos {
				segEnd = pos + 1
			}
			srcStart, _ := tf.SourcePosition(pos)
			srcEnd, _ := tf.SourcePosition(segEnd)
			tokens = append(tokens, Token{
				Kind: k,
				Text: text[pos-templatedStart : segEnd-templatedStart],
				Span: Span{
					SourceStart:    srcStart,
					SourceEnd:      srcEnd,
					TemplatedStart: pos,
					TemplatedEnd:   segEnd,
				},
			})
			pos = segEnd
		}
		return tokens
	}

	srcRange, err := tf.SourceRangeForTemplated(templatefile.Range{Start: templatedStart, End: templatedEnd})
	if err != nil {
		srcRange = templatefile.Range{}
	}
	return append(tokens, Token{
		Kind: k,
		Text: text,
		Span: Span{
			SourceStart:    srcRange.Start,
			SourceEnd:      srcRange.End,
			TemplatedStart: templatedStart,
			TemplatedEnd:   templatedEnd,
		},
	})
}

func tryMatchers(matchers []Matcher, s string) (Matcher, int, bool) {
	for _, m := range matchers {
		if n, ok := m.Pattern(s); ok && n > 0 {
			return m, n, true
		}
	}
	return Matcher{}, 0, false
}

// lastResort consumes one or more characters up to the next whitespace or
// newline. It always consumes at least one byte so the lexer makes
// progress.
func lastResort(s string) int {
	for i, r := range s {
		if i == 0 {
			continue
		}
		if isWhitespace(r) || isNewline(r) {
			return i
		}
	}
	return len(s)
}

type piece struct {
	kind   kind.SyntaxKind
	text   string
	offset int
}

// subdivide applies a matcher's Subdivider and PostSubdivider: Subdivider
// splits the match into multiple tokens; the trailing residue left once
// Subdivider stops matching is re-split by PostSubdivider (e.g. trailing
// whitespace split into newlines), and whatever neither consumes keeps the
// matcher's Kind.
func subdivide(m Matcher, text string) []piece {
	if m.Subdivider == nil {
		return []piece{{kind: m.Kind, text: text, offset: 0}}
	}

	var out []piece
	pos := 0
	for pos < len(text) {
		n, ok := m.Subdivider(text[pos:])
		if !ok || n == 0 {
			break
		}
		out = append(out, piece{kind: m.SubdividerKind, text: text[pos : pos+n], offset: pos})
		pos += n
	}
	if pos < len(text) {
		residue := text[pos:]
		if m.PostSubdivider == nil {
			out = append(out, piece{kind: m.Kind, text: residue, offset: pos})
		} else {
			rpos := 0
			for rpos < len(residue) {
				n, ok := m.PostSubdivider(residue[rpos:])
				if !ok || n == 0 {
					break
				}
				out = append(out, piece{kind: m.PostSubdividerKind, text: residue[rpos : rpos+n], offset: pos + rpos})
				rpos += n
			}
			if rpos < len(residue) {
				out = append(out, piece{kind: m.Kind, text: residue[rpos:], offset: pos + rpos})
			}
		}
	}
	if len(out) == 0 {
		return []piece{{kind: m.Kind, text: text, offset: 0}}
	}
	return out
}

