// Package templatefile models the lexer's input: raw source text, the
// post-templating text actually lexed, and the source-map between them.
//
// The position-search machinery generalizes a line/column binary search
// over newline offsets to a slice-range binary search over
// TemplatedSlices.
package templatefile

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// SliceType classifies a TemplatedSlice.
type SliceType int

const (
	// Literal marks source text that passed through templating unchanged.
	Literal SliceType = iota
	// Templated marks text produced by expanding a template expression.
	Templated
	// BlockStart marks the opening of a template control block (e.g. {% if %}).
	BlockStart
	// BlockEnd marks the closing of a template control block.
	BlockEnd
)

// Range is a half-open [Start, End) byte offset range.
type Range struct {
	Start, End int
}

// Len returns End-Start, or 0 if the range is empty/invalid.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether offset lies within [Start, End).
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// TemplatedSlice maps one contiguous templated-text span back to the
// source span it was produced from.
type TemplatedSlice struct {
	Type           SliceType
	SourceRange    Range
	TemplatedRange Range
}

// TemplatedFile bundles raw source, the templated text actually lexed, and
// the ordered source-map between them.
//
// Invariant: Slices are ordered and contiguous in TemplatedRange; they may
// be non-contiguous (or overlapping, or reversed) in SourceRange, since a
// single source span can be expanded into text appearing zero, one, or
// many times in the templated output.
type TemplatedFile struct {
	Raw       string
	Templated string
	Slices    []TemplatedSlice
}

// NewLiteralFile builds the trivial TemplatedFile for untemplated input:
// raw and templated text are identical, covered by one literal slice.
func NewLiteralFile(text string) *TemplatedFile {
	return &TemplatedFile{
		Raw:       text,
		Templated: text,
		Slices: []TemplatedSlice{
			{
				Type:           Literal,
				SourceRange:    Range{0, len(text)},
				TemplatedRange: Range{0, len(text)},
			},
		},
	}
}

// sliceAt returns the index of the slice whose TemplatedRange contains
// offset, using the fact that TemplatedRanges are sorted and contiguous.
func (tf *TemplatedFile) sliceAt(offset int) (int, bool) {
	n := len(tf.Slices)
	if n == 0 {
		return 0, false
	}
	i := sort.Search(n, func(i int) bool {
		return tf.Slices[i].TemplatedRange.End > offset
	})
	if i >= n {
		return n - 1, offset == tf.Slices[n-1].TemplatedRange.End
	}
	return i, true
}

// SliceAt returns the TemplatedSlice whose TemplatedRange contains offset.
// Exposed so the lexer can split a token along slice boundaries without
// reaching into unexported state.
func (tf *TemplatedFile) SliceAt(offset int) (TemplatedSlice, bool) {
	idx, ok := tf.sliceAt(offset)
	if !ok {
		return TemplatedSlice{}, false
	}
	return tf.Slices[idx], true
}

// SourcePosition maps a templated-text offset back to a source offset:
// a literal slice translates by a constant delta; a templated/block
// slice collapses any offset inside it to the start of its source range
// (the templated content did not exist verbatim in the source).
func (tf *TemplatedFile) SourcePosition(templatedOffset int) (int, error) {
	idx, ok := tf.sliceAt(templatedOffset)
	if !ok {
		return 0, errors.Newf("templatefile: offset %d out of range", templatedOffset)
	}
	sl := tf.Slices[idx]
	switch sl.Type {
	case Literal:
		delta := templatedOffset - sl.TemplatedRange.Start
		return sl.SourceRange.Start + delta, nil
	default:
		return sl.SourceRange.Start, nil
	}
}

// SourceRangeForTemplated maps a templated [start, end) range to the
// smallest source range covering it, for a token that spans multiple
// slices: the result is the union of the endpoints' mapped source
// positions, widened to the full source range of any templated/block
// slice the token overlaps.
func (tf *TemplatedFile) SourceRangeForTemplated(templatedRange Range) (Range, error) {
	startIdx, ok := tf.sliceAt(templatedRange.Start)
	if !ok {
		return Range{}, errors.Newf("templatefile: start offset %d out of range", templatedRange.Start)
	}
	endOffset := templatedRange.End
	if endOffset < templatedRange.Start {
		endOffset = templatedRange.Start
	}
	endIdx, ok := tf.sliceAt(maxInt(endOffset-1, templatedRange.Start))
	if !ok {
		endIdx = startIdx
	}

	start, err := tf.SourcePosition(templatedRange.Start)
	if err != nil {
		return Range{}, err
	}
	var end int
	if tf.Slices[endIdx].Type == Literal {
		delta := endOffset - tf.Slices[endIdx].TemplatedRange.Start
		end = tf.Slices[endIdx].SourceRange.Start + delta
	} else {
		end = tf.Slices[endIdx].SourceRange.End
	}

	lo, hi := start, end
	for i := startIdx; i <= endIdx; i++ {
		if tf.Slices[i].Type != Literal {
			if tf.Slices[i].SourceRange.Start < lo {
				lo = tf.Slices[i].SourceRange.Start
			}
			if tf.Slices[i].SourceRange.End > hi {
				hi = tf.Slices[i].SourceRange.End
			}
		}
	}
	if hi < lo {
		hi = lo
	}
	return Range{lo, hi}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
