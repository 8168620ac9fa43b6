package templatefile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapesql/shapesql/templatefile"
)

func TestNewLiteralFile_IsOneLiteralSliceCoveringEverything(t *testing.T) {
	tf := templatefile.NewLiteralFile("SELECT 1")
	require.Len(t, tf.Slices, 1)
	assert.Equal(t, templatefile.Literal, tf.Slices[0].Type)
	assert.Equal(t, tf.Raw, tf.Templated)
}

func TestSourcePosition_LiteralSliceTranslatesByConstantDelta(t *testing.T) {
	tf := templatefile.NewLiteralFile("SELECT 1")
	pos, err := tf.SourcePosition(7)
	require.NoError(t, err)
	assert.Equal(t, 7, pos)
}

// "SELECT {{v}} FROM t" templates to "SELECT 1 FROM t": the templated
// digit at offset 7 maps back to the start of the {{v}} expression, not
// to a byte inside it, since it never existed verbatim in the source.
func TestSourcePosition_TemplatedSliceCollapsesToSourceStart(t *testing.T) {
	tf := &templatefile.TemplatedFile{
		Raw:       "SELECT {{v}} FROM t",
		Templated: "SELECT 1 FROM t",
		Slices: []templatefile.TemplatedSlice{
			{Type: templatefile.Literal, SourceRange: templatefile.Range{Start: 0, End: 7}, TemplatedRange: templatefile.Range{Start: 0, End: 7}},
			{Type: templatefile.Templated, SourceRange: templatefile.Range{Start: 7, End: 12}, TemplatedRange: templatefile.Range{Start: 7, End: 8}},
			{Type: templatefile.Literal, SourceRange: templatefile.Range{Start: 12, End: 19}, TemplatedRange: templatefile.Range{Start: 8, End: 15}},
		},
	}

	pos, err := tf.SourcePosition(7)
	require.NoError(t, err)
	assert.Equal(t, 7, pos)

	afterLit, err := tf.SourcePosition(9)
	require.NoError(t, err)
	assert.Equal(t, 13, afterLit)
}

func TestSourceRangeForTemplated_WidensToFullTemplatedSliceSpan(t *testing.T) {
	tf := &templatefile.TemplatedFile{
		Raw:       "SELECT {{v}} FROM t",
		Templated: "SELECT 1 FROM t",
		Slices: []templatefile.TemplatedSlice{
			{Type: templatefile.Literal, SourceRange: templatefile.Range{Start: 0, End: 7}, TemplatedRange: templatefile.Range{Start: 0, End: 7}},
			{Type: templatefile.Templated, SourceRange: templatefile.Range{Start: 7, End: 12}, TemplatedRange: templatefile.Range{Start: 7, End: 8}},
			{Type: templatefile.Literal, SourceRange: templatefile.Range{Start: 12, End: 19}, TemplatedRange: templatefile.Range{Start: 8, End: 15}},
		},
	}

	rng, err := tf.SourceRangeForTemplated(templatefile.Range{Start: 7, End: 8})
	require.NoError(t, err)
	assert.Equal(t, 7, rng.Start)
	assert.Equal(t, 12, rng.End)
}

func TestSourcePosition_OutOfRangeOffsetErrors(t *testing.T) {
	tf := templatefile.NewLiteralFile("SELECT 1")
	_, err := tf.SourcePosition(100)
	assert.Error(t, err)
}

func TestRange_ContainsAndLen(t *testing.T) {
	r := templatefile.Range{Start: 5, End: 10}
	assert.True(t, r.Contains(5))
	assert.True(t, r.Contains(9))
	assert.False(t, r.Contains(10))
	assert.Equal(t, 5, r.Len())
}
