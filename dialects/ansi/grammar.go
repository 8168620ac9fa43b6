// Package ansi implements the base SQL dialect every other dialect in
// this module derives from. BigQuery and Postgres are built by Copy-ing
// this dialect and overriding a handful of named productions, never by
// re-declaring the whole grammar.
package ansi

import (
	"sort"

	"github.com/shapesql/shapesql/dialect"
	"github.com/shapesql/shapesql/grammar"
	"github.com/shapesql/shapesql/kind"
)

// clauseTerminators is the set every top-level SelectStatement clause
// pushes so Greedy recovery (and Delimited's early stop) knows where one
// clause ends and the next begins: lower primitives consult the union of
// every active frame, so a WHERE clause's inner Delimited/Bracketed still
// stops at GROUP/ORDER/; without each of them repeating the list. The
// clause's own leading keyword, own, is left out of the set so the clause
// is not terminated before its first element.
func clauseTerminators(own string) []grammar.Matchable {
	var out []grammar.Matchable
	for _, w := range []string{"FROM", "WHERE", "GROUP", "ORDER", "LIMIT"} {
		if w != own {
			out = append(out, grammar.KeywordParser(w))
		}
	}
	return append(out, grammar.TypedParser(kind.Semicolon))
}

// Dialect builds the unexpanded ANSI base dialect: call dialect.Expand on
// the result before using it to parse.
func Dialect() *dialect.Dialect {
	d := dialect.New("ansi")

	d.SetBracketSet("bracket_pairs", []grammar.BracketPair{
		grammar.RoundBrackets, grammar.SquareBrackets, grammar.CurlyBrackets,
	})
	reserved := d.SetsMut("reserved_keywords")
	for _, w := range reservedKeywords {
		reserved[w] = struct{}{}
	}
	unreserved := d.SetsMut("unreserved_keywords")
	for _, w := range unreservedKeywords {
		unreserved[w] = struct{}{}
	}
	d.InsertLexerMatchers("", baseLexerMatchers(reservedKeywords, unreservedKeywords)...)

	addFileAndStatements(d)
	addSelect(d)
	addFromAndJoins(d)
	addWhereGroupOrder(d)
	addExpressions(d)
	addIdentifiersAndReferences(d)
	addCreateTable(d)

	return d
}

func addFileAndStatements(d *dialect.Dialect) {
	d.Add("FileSegment", grammar.Node(kind.File,
		grammar.AnyNumberOf(
			grammar.Sequence(
				grammar.Ref("StatementSegment"),
				grammar.Optional(grammar.Node(kind.StatementTerminator, grammar.TypedParser(kind.Semicolon))),
			).Mode(grammar.Greedy),
		),
	))

	d.Add("StatementSegment", grammar.Node(kind.Statement,
		grammar.OneOf(
			grammar.Ref("WithCompoundStatementSegment"),
			grammar.Ref("SelectStatementSegment"),
			grammar.Ref("CreateTableStatementSegment"),
		),
	))

	d.Add("WithCompoundStatementSegment", grammar.Node(kind.WithCompoundStatement,
		grammar.Sequence(
			grammar.KeywordParser("WITH"),
			grammar.Delimited(grammar.Ref("CommonTableExpressionSegment"), grammar.TypedParser(kind.Comma)),
			grammar.Ref("SelectStatementSegment"),
		),
	))

	d.Add("CommonTableExpressionSegment", grammar.Node(kind.CommonTableExpression,
		grammar.Sequence(
			grammar.Ref("NakedIdentifierSegment"),
			grammar.Optional(grammar.Bracketed(
				grammar.Delimited(grammar.Ref("NakedIdentifierSegment"), grammar.TypedParser(kind.Comma)),
				grammar.RoundBrackets,
			)),
			grammar.KeywordParser("AS"),
			grammar.Bracketed(grammar.Ref("SelectStatementSegment"), grammar.RoundBrackets),
		),
	))
}

func addSelect(d *dialect.Dialect) {
	d.Add("SelectStatementSegment", grammar.Node(kind.SelectStatement,
		grammar.Sequence(
			grammar.Ref("SelectClauseSegment"),
			grammar.Optional(grammar.Ref("FromClauseSegment")),
			grammar.Optional(grammar.Ref("WhereClauseSegment")),
			grammar.Optional(grammar.Ref("GroupByClauseSegment")),
			grammar.Optional(grammar.Ref("OrderByClauseSegment")),
		).Mode(grammar.GreedyOnceStarted).Terminators(grammar.TypedParser(kind.Semicolon)),
	))

	d.Add("SelectClauseSegment", grammar.Node(kind.SelectClause,
		grammar.Sequence(
			grammar.KeywordParser("SELECT"),
			grammar.Optional(grammar.OneOf(grammar.KeywordParser("DISTINCT"), grammar.KeywordParser("ALL"))),
			grammar.Delimited(grammar.Ref("SelectClauseElementSegment"), grammar.TypedParser(kind.Comma)),
		).Terminators(clauseTerminators("SELECT")...),
	))

	d.Add("SelectClauseElementSegment", grammar.Node(kind.SelectClauseElement,
		grammar.OneOf(
			grammar.Ref("WildcardExpressionSegment"),
			grammar.Sequence(grammar.Ref("ExpressionSegment"), grammar.Optional(grammar.Ref("AliasExpressionSegment"))),
		),
	))

	d.Add("WildcardExpressionSegment", grammar.Node(kind.WildcardExpression,
		grammar.OneOf(
			grammar.TypedParser(kind.Star),
			grammar.Sequence(grammar.Ref("ObjectReferenceSegment"), grammar.TypedParser(kind.Dot), grammar.TypedParser(kind.Star)),
		),
	))

	d.Add("AliasExpressionSegment", grammar.Node(kind.Alias,
		grammar.Sequence(grammar.Optional(grammar.KeywordParser("AS")), grammar.Ref("NakedIdentifierSegment")),
	))
}

func addFromAndJoins(d *dialect.Dialect) {
	d.Add("FromClauseSegment", grammar.Node(kind.FromClause,
		grammar.Sequence(
			grammar.KeywordParser("FROM"),
			grammar.Delimited(grammar.Ref("FromExpressionSegment"), grammar.TypedParser(kind.Comma)),
		).Mode(grammar.Greedy).Terminators(clauseTerminators("FROM")...),
	))

	d.Add("FromExpressionSegment", grammar.Node(kind.FromExpression,
		grammar.Sequence(
			grammar.Ref("FromExpressionElementSegment"),
			grammar.AnyNumberOf(grammar.Ref("JoinClauseSegment")),
		),
	))

	d.Add("FromExpressionElementSegment", grammar.Node(kind.FromExpressionElement,
		grammar.Sequence(grammar.Ref("TableExpressionSegment"), grammar.Optional(grammar.Ref("AliasExpressionSegment"))),
	))

	d.Add("TableExpressionSegment", grammar.Node(kind.TableExpression,
		grammar.Ref("TableReferenceSegment"),
	))

	d.Add("JoinClauseSegment", grammar.Node(kind.JoinClause,
		grammar.Sequence(
			grammar.Optional(grammar.OneOf(
				grammar.KeywordParser("INNER"),
				grammar.KeywordParser("LEFT"),
				grammar.KeywordParser("RIGHT"),
				grammar.KeywordParser("FULL"),
				grammar.KeywordParser("CROSS"),
			)),
			grammar.Optional(grammar.KeywordParser("OUTER")),
			grammar.KeywordParser("JOIN"),
			grammar.Ref("FromExpressionElementSegment"),
			grammar.Optional(grammar.Ref("JoinOnConditionSegment")),
		),
	))

	d.Add("JoinOnConditionSegment", grammar.Node(kind.JoinOnCondition,
		grammar.Sequence(grammar.KeywordParser("ON"), grammar.Ref("ExpressionSegment")),
	))
}

func addWhereGroupOrder(d *dialect.Dialect) {
	d.Add("WhereClauseSegment", grammar.Node(kind.WhereClause,
		grammar.Sequence(grammar.KeywordParser("WHERE"), grammar.Ref("ExpressionSegment")).
			Mode(grammar.Greedy).Terminators(clauseTerminators("WHERE")...),
	))

	d.Add("GroupByClauseSegment", grammar.Node(kind.GroupByClause,
		grammar.Sequence(
			grammar.KeywordParser("GROUP"), grammar.KeywordParser("BY"),
			grammar.Delimited(grammar.Ref("GroupByClauseElementSegment"), grammar.TypedParser(kind.Comma)),
		).Mode(grammar.Greedy).Terminators(clauseTerminators("GROUP")...),
	))
	d.Add("GroupByClauseElementSegment", grammar.Node(kind.GroupByClauseElement, grammar.Ref("ExpressionSegment")))

	d.Add("OrderByClauseSegment", grammar.Node(kind.OrderByClause,
		grammar.Sequence(
			grammar.KeywordParser("ORDER"), grammar.KeywordParser("BY"),
			grammar.Delimited(grammar.Ref("OrderByClauseElementSegment"), grammar.TypedParser(kind.Comma)),
		).Mode(grammar.Greedy).Terminators(clauseTerminators("ORDER")...),
	))
	d.Add("OrderByClauseElementSegment", grammar.Node(kind.OrderByClauseElement,
		grammar.Sequence(
			grammar.Ref("ExpressionSegment"),
			grammar.Optional(grammar.OneOf(grammar.KeywordParser("ASC"), grammar.KeywordParser("DESC"))),
		),
	))
}

// addExpressions builds the operator-precedence ladder (or, and, not,
// comparison/predicate, additive, multiplicative, postfix, primary). The
// or/and/not/predicate levels are local values nested inside
// ExpressionSegment; the additive, multiplicative, postfix and primary
// levels are registered under their own names and reached through Ref.
// ShorthandCastSegment is registered on its own so Postgres can override
// it with ReplaceGrammar without rebuilding the whole ladder.
func addExpressions(d *dialect.Dialect) {
	comparisonOp := grammar.Node(kind.ComparisonOperator, grammar.TypedParser(kind.ComparisonOperatorToken))

	predicateTail := grammar.OneOf(
		grammar.Sequence(comparisonOp, grammar.Ref("AdditiveExpressionSegment")),
		grammar.Sequence(
			grammar.Optional(grammar.KeywordParser("NOT")), grammar.KeywordParser("BETWEEN"),
			grammar.Ref("AdditiveExpressionSegment"), grammar.KeywordParser("AND"), grammar.Ref("AdditiveExpressionSegment"),
		),
		grammar.Sequence(
			grammar.Optional(grammar.KeywordParser("NOT")), grammar.KeywordParser("LIKE"),
			grammar.Ref("AdditiveExpressionSegment"),
		),
		grammar.Sequence(
			grammar.Optional(grammar.KeywordParser("NOT")), grammar.KeywordParser("IN"),
			grammar.Bracketed(grammar.Delimited(grammar.Ref("ExpressionSegment"), grammar.TypedParser(kind.Comma)), grammar.RoundBrackets),
		),
		grammar.Sequence(
			grammar.KeywordParser("IS"), grammar.Optional(grammar.KeywordParser("NOT")),
			grammar.OneOf(grammar.KeywordParser("NULL"), grammar.KeywordParser("TRUE"), grammar.KeywordParser("FALSE")),
		),
	)

	predicate := grammar.Sequence(grammar.Ref("AdditiveExpressionSegment"), grammar.Optional(predicateTail))
	not := grammar.Sequence(grammar.Optional(grammar.KeywordParser("NOT")), predicate)
	and := grammar.Delimited(not, grammar.KeywordParser("AND"))
	or := grammar.Delimited(and, grammar.KeywordParser("OR"))

	d.Add("ExpressionSegment", grammar.Node(kind.Expression, or))

	additiveOp := grammar.Node(kind.BinaryOperator, grammar.TypedParser(kind.SignToken))
	d.Add("AdditiveExpressionSegment", grammar.Sequence(
		grammar.Ref("MultiplicativeExpressionSegment"),
		grammar.AnyNumberOf(grammar.Sequence(additiveOp, grammar.Ref("MultiplicativeExpressionSegment"))),
	))

	multiplicativeOp := grammar.Node(kind.BinaryOperator, grammar.OneOf(
		grammar.TypedParser(kind.Star), grammar.TypedParser(kind.BinaryOperatorToken),
	))
	d.Add("MultiplicativeExpressionSegment", grammar.Sequence(
		grammar.Ref("PostfixExpressionSegment"),
		grammar.AnyNumberOf(grammar.Sequence(multiplicativeOp, grammar.Ref("PostfixExpressionSegment"))),
	))

	// ShorthandCastSegment is tried first so a dialect that overrides it
	// can match (and wrap) the whole cast expression, operand included,
	// rather than just a `::type` suffix tacked onto a sibling operand.
	// OneOf keeps the longest match, so a plain operand with no cast
	// still falls through to the second alternative.
	d.Add("PostfixExpressionSegment", grammar.OneOf(
		grammar.Ref("ShorthandCastSegment"),
		grammar.Sequence(
			grammar.Optional(grammar.TypedParser(kind.SignToken)),
			grammar.Ref("PrimaryExpressionSegment"),
		),
	))

	// Disabled in ANSI; Postgres's ReplaceGrammar swaps in the real
	// `expr::type` production.
	d.Add("ShorthandCastSegment", grammar.Nothing())

	d.Add("PrimaryExpressionSegment", grammar.OneOf(
		grammar.Ref("CastExpressionSegment"),
		grammar.Ref("LiteralSegment"),
		grammar.Ref("ColumnReferenceSegment"),
		grammar.Bracketed(grammar.Ref("ExpressionSegment"), grammar.RoundBrackets),
	))

	d.Add("CastExpressionSegment", grammar.Node(kind.CastExpression,
		grammar.Sequence(
			grammar.KeywordParser("CAST"),
			grammar.Bracketed(
				grammar.Sequence(grammar.Ref("ExpressionSegment"), grammar.KeywordParser("AS"), grammar.Ref("DatatypeSegment")),
				grammar.RoundBrackets,
			),
		),
	))

	d.Add("DatatypeSegment", grammar.Ref("NakedIdentifierSegment"))

	d.Add("LiteralSegment", grammar.OneOf(
		grammar.TypedParser(kind.NumericLiteral),
		grammar.Node(kind.QuotedLiteral, grammar.TypedParser(kind.SingleQuote)),
		grammar.Node(kind.BooleanLiteral, grammar.OneOf(grammar.KeywordParser("TRUE"), grammar.KeywordParser("FALSE"))),
		grammar.Node(kind.NullLiteral, grammar.KeywordParser("NULL")),
	))
}

func addIdentifiersAndReferences(d *dialect.Dialect) {
	// Built as a generator rather than a fixed Add because it needs the
	// dialect's final reserved_keywords set: a reserved word (SELECT,
	// FROM, ...) can never be a naked identifier, but an unreserved one
	// (COUNT, TYPE, ...) can, even though the lexer tags both alike as
	// Keyword tokens rather than Code. Reading the set at Expand time
	// means a derived dialect's added/removed reserved words are picked
	// up automatically.
	d.AddGenerator("NakedIdentifierSegment", func(v *dialect.View) grammar.Matchable {
		choices := []grammar.Matchable{
			grammar.TypedParser(kind.Code),
			grammar.TypedParser(kind.DoubleQuote),
			grammar.TypedParser(kind.BackQuote),
		}
		reserved := v.KeywordSet("reserved_keywords")
		unreserved := v.KeywordSet("unreserved_keywords")
		words := make([]string, 0, len(unreserved))
		for w := range unreserved {
			if _, isReserved := reserved[w]; !isReserved {
				words = append(words, w)
			}
		}
		sort.Strings(words)
		for _, w := range words {
			choices = append(choices, grammar.KeywordParser(w))
		}
		return grammar.OneOf(choices...)
	})

	d.Add("ObjectReferenceSegment", grammar.Node(kind.ObjectReference,
		grammar.Delimited(grammar.Ref("NakedIdentifierSegment"), grammar.TypedParser(kind.Dot)).MinDelimiters(0),
	))
	d.Add("TableReferenceSegment", grammar.Node(kind.TableReference,
		grammar.Delimited(grammar.Ref("NakedIdentifierSegment"), grammar.TypedParser(kind.Dot)).MinDelimiters(0),
	))
	d.Add("ColumnReferenceSegment", grammar.Node(kind.ColumnReference,
		grammar.Delimited(grammar.Ref("NakedIdentifierSegment"), grammar.TypedParser(kind.Dot)).MinDelimiters(0),
	))
}

func addCreateTable(d *dialect.Dialect) {
	d.Add("ColumnDefinitionSegment", grammar.Node(kind.ColumnDefinition,
		grammar.Sequence(
			grammar.Ref("NakedIdentifierSegment"),
			grammar.Ref("DatatypeSegment"),
			grammar.Optional(grammar.Sequence(grammar.KeywordParser("PRIMARY"), grammar.KeywordParser("KEY"))),
			grammar.Optional(grammar.Sequence(
				grammar.KeywordParser("DEFAULT"), grammar.Ref("LiteralSegment"),
			)),
		),
	))

	d.Add("CreateTableStatementSegment", grammar.Node(kind.CreateTableStatement,
		grammar.Sequence(
			grammar.KeywordParser("CREATE"), grammar.KeywordParser("TABLE"),
			grammar.Ref("TableReferenceSegment"),
			grammar.Bracketed(
				grammar.Delimited(grammar.Ref("ColumnDefinitionSegment"), grammar.TypedParser(kind.Comma)),
				grammar.RoundBrackets,
			),
		).Mode(grammar.Greedy).Terminators(grammar.TypedParser(kind.Semicolon)),
	))
}
