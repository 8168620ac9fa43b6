package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapesql/shapesql/dialect"
	"github.com/shapesql/shapesql/dialects/ansi"
	"github.com/shapesql/shapesql/dialects/bigquery"
	"github.com/shapesql/shapesql/dialects/postgres"
	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/parser"
	"github.com/shapesql/shapesql/segment"
	"github.com/shapesql/shapesql/templatefile"
)

func expandedANSI(t *testing.T) *dialect.Dialect {
	t.Helper()
	d, err := dialect.Expand(ansi.Dialect())
	require.NoError(t, err)
	return d
}

func expandedBigQuery(t *testing.T) *dialect.Dialect {
	t.Helper()
	d, err := dialect.Expand(bigquery.Dialect())
	require.NoError(t, err)
	return d
}

func expandedPostgres(t *testing.T) *dialect.Dialect {
	t.Helper()
	d, err := dialect.Expand(postgres.Dialect())
	require.NoError(t, err)
	return d
}

func parseString(t *testing.T, d *dialect.Dialect, sql string) (segment.Segment, []parser.ParseError) {
	t.Helper()
	tf := templatefile.NewLiteralFile(sql)
	cfg := parser.NewParserConfig(d)
	return parser.Parse(tf, cfg)
}

// Scenario 1: a simple SELECT produces a clean tree with no Unparsable
// segments, a numeric literal element, and one statement terminator.
func TestParse_SimpleSelect(t *testing.T) {
	tree, errs := parseString(t, expandedANSI(t), "SELECT 1;")
	assert.Empty(t, errs)

	stmts := segment.FindAll(tree, kind.SelectStatement)
	require.Len(t, stmts, 1)

	lits := segment.FindAll(tree, kind.NumericLiteral)
	require.Len(t, lits, 1)
	assert.Equal(t, "1", lits[0].Raw())

	assert.Empty(t, segment.FindAll(tree, kind.Unparsable))
}

// Scenario 2: SELECT * FROM t WHERE x = 1 wires a wildcard, a from
// clause, and a where clause expression with a column reference and a
// comparison operator.
func TestParse_WildcardFromWhere(t *testing.T) {
	tree, errs := parseString(t, expandedANSI(t), "SELECT * FROM t WHERE x = 1")
	assert.Empty(t, errs)

	assert.Len(t, segment.FindAll(tree, kind.WildcardExpression), 1)
	assert.Len(t, segment.FindAll(tree, kind.FromClause), 1)

	where := segment.FindAll(tree, kind.WhereClause)
	require.Len(t, where, 1)
	assert.Len(t, segment.FindAll(where[0], kind.ColumnReference), 1)
	assert.Len(t, segment.FindAll(where[0], kind.ComparisonOperator), 1)
	assert.Len(t, segment.FindAll(where[0], kind.NumericLiteral), 1)
}

// Scenario 3: an unterminated bracketed expression is wrapped as
// Unparsable rather than failing the whole parse, with a parse error
// starting at the open-bracket offset.
func TestParse_UnterminatedBracketIsUnparsable(t *testing.T) {
	sql := "SELECT 1 + (2"
	tree, errs := parseString(t, expandedANSI(t), sql)
	require.NotEmpty(t, errs)

	unparsable := segment.FindAll(tree, kind.Unparsable)
	require.NotEmpty(t, unparsable)

	found := false
	for _, e := range errs {
		if e.Kind == parser.UnparsableSpan {
			found = true
		}
	}
	assert.True(t, found)
}

// Whitespace before a closing bracket must not desync the code-index
// computed against the trivia-stripped remainder from the slice it
// indexes into.
func TestParse_BracketedTrailingWhitespaceBeforeClose(t *testing.T) {
	tree, errs := parseString(t, expandedANSI(t), "SELECT (1 )")
	assert.Empty(t, errs)
	assert.Empty(t, segment.FindAll(tree, kind.Unparsable))
}

// An unreserved keyword can still be used as a naked identifier; a
// reserved one cannot.
func TestParse_UnreservedKeywordAsIdentifier(t *testing.T) {
	tree, errs := parseString(t, expandedANSI(t), "SELECT count FROM t")
	assert.Empty(t, errs)
	assert.Empty(t, segment.FindAll(tree, kind.Unparsable))

	refs := segment.FindAll(tree, kind.ColumnReference)
	require.Len(t, refs, 1)
	assert.Equal(t, "count", refs[0].Raw())
}

// Scenario 4: BigQuery admits a dashed project-id table reference; ansi
// cannot and produces an Unparsable segment around the dash.
func TestParse_BigQueryDashedTableReference(t *testing.T) {
	sql := "SELECT a FROM my_project-123.my_dataset.my_table"

	tree, errs := parseString(t, expandedBigQuery(t), sql)
	assert.Empty(t, errs)
	assert.Empty(t, segment.FindAll(tree, kind.Unparsable))
	refs := segment.FindAll(tree, kind.TableReference)
	require.Len(t, refs, 1)
	assert.Contains(t, refs[0].Raw(), "my_project-123")

	ansiTree, ansiErrs := parseString(t, expandedANSI(t), sql)
	assert.NotEmpty(t, ansiErrs)
	assert.NotEmpty(t, segment.FindAll(ansiTree, kind.Unparsable))
}

// Scenario 5: Postgres's `::` shorthand cast wraps a column reference
// with a datatype.
func TestParse_PostgresShorthandCast(t *testing.T) {
	tree, errs := parseString(t, expandedPostgres(t), "SELECT a::int FROM t")
	assert.Empty(t, errs)

	casts := segment.FindAll(tree, kind.ShorthandCast)
	require.Len(t, casts, 1)
	assert.Len(t, segment.FindAll(casts[0], kind.ColumnReference), 1)
	assert.Contains(t, casts[0].Raw(), "int")
}

// Scenario 6: a templated token's templated span lies inside the expanded
// region while its source span covers the original template expression,
// and the enclosing element's source range is the union of its tokens'.
func TestParse_TemplatedPositionMapping(t *testing.T) {
	// Source: "SELECT {{v}} FROM t", templated: "SELECT 1 FROM t".
	tf := &templatefile.TemplatedFile{
		Raw:       "SELECT {{v}} FROM t",
		Templated: "SELECT 1 FROM t",
		Slices: []templatefile.TemplatedSlice{
			{Type: templatefile.Literal, SourceRange: templatefile.Range{Start: 0, End: 7}, TemplatedRange: templatefile.Range{Start: 0, End: 7}},
			{Type: templatefile.Templated, SourceRange: templatefile.Range{Start: 7, End: 12}, TemplatedRange: templatefile.Range{Start: 7, End: 8}},
			{Type: templatefile.Literal, SourceRange: templatefile.Range{Start: 12, End: 19}, TemplatedRange: templatefile.Range{Start: 8, End: 15}},
		},
	}

	d := expandedANSI(t)
	cfg := parser.NewParserConfig(d)
	tree, errs := parser.Parse(tf, cfg)
	assert.Empty(t, errs)

	lits := segment.FindAll(tree, kind.NumericLiteral)
	require.Len(t, lits, 1)
	lit := lits[0]

	pos := lit.Position()
	assert.Equal(t, 7, pos.TemplatedStart)
	assert.Equal(t, 8, pos.TemplatedEnd)
	assert.Equal(t, 7, pos.SourceStart)
	assert.Equal(t, 12, pos.SourceEnd)

	elements := segment.FindAll(tree, kind.SelectClauseElement)
	require.Len(t, elements, 1)
	epos := elements[0].Position()
	assert.Equal(t, epos.SourceStart, pos.SourceStart)
	assert.Equal(t, epos.SourceEnd, pos.SourceEnd)
}

// Every non-trivia byte is covered by some descendant segment: round-trip
// Raw() reconstruction of the whole file should equal the templated text
// for a fully-recognized parse.
func TestParse_RawRoundTrips(t *testing.T) {
	sql := "SELECT a, b FROM t WHERE a = 1 ORDER BY b DESC;"
	tree, errs := parseString(t, expandedANSI(t), sql)
	assert.Empty(t, errs)
	assert.Equal(t, sql, tree.Raw())
}

func TestParse_LargeFileSkipLimit(t *testing.T) {
	d := expandedANSI(t)
	cfg := parser.NewParserConfig(d, parser.WithLargeFileSkipByteLimit(4))
	tf := templatefile.NewLiteralFile("SELECT 1;")
	tree, errs := parser.Parse(tf, cfg)
	assert.Nil(t, tree)
	require.Len(t, errs, 1)
	assert.Equal(t, parser.UnparsableSpan, errs[0].Kind)
}
