// Package kind defines the closed set of syntax tags shared by the lexer,
// grammar and segment tree. Nothing downstream of this package dispatches
// on strings: every token and every CST node carries exactly one
// SyntaxKind, fixed at build time.
package kind

// SyntaxKind tags both lexer tokens and CST nodes.
type SyntaxKind int

const (
	Unknown SyntaxKind = iota

	// --- token kinds -------------------------------------------------
	Whitespace
	Newline
	InlineComment
	BlockComment
	Keyword
	Code // an identifier-shaped token that is in none of the dialect's keyword sets
	SingleQuote
	DoubleQuote
	BackQuote
	NumericLiteral
	BooleanLiteral
	NullLiteral
	Star
	Dot
	Comma
	Semicolon
	Colon
	DoubleColon
	StartBracket
	EndBracket
	StartSquareBracket
	EndSquareBracket
	StartCurlyBracket
	EndCurlyBracket
	ComparisonOperatorToken
	BinaryOperatorToken
	SignToken
	Unlexable
	EndOfFile

	// --- node kinds ----------------------------------------------------
	File
	Statement
	StatementTerminator
	SelectStatement
	SelectClause
	SelectClauseElement
	WildcardExpression
	FromClause
	FromExpression
	FromExpressionElement
	TableExpression
	TableReference
	ObjectReference
	ColumnReference
	Alias
	WhereClause
	JoinClause
	JoinOnCondition
	GroupByClause
	GroupByClauseElement
	OrderByClause
	OrderByClauseElement
	Expression
	ComparisonOperator
	BinaryOperator
	Literal
	QuotedLiteral
	CastExpression
	ShorthandCast
	Bracketed
	Delimited
	ColumnDefinition
	CreateTableStatement
	CommonTableExpression
	WithCompoundStatement
	Unparsable
	MetaIndent
	MetaDedent
	MetaImplicitIndent
)

var names = map[SyntaxKind]string{
	Unknown:                 "unknown",
	Whitespace:              "whitespace",
	Newline:                 "newline",
	InlineComment:           "inline_comment",
	BlockComment:            "block_comment",
	Keyword:                 "keyword",
	Code:                    "code",
	SingleQuote:             "single_quote",
	DoubleQuote:             "double_quote",
	BackQuote:               "back_quote",
	NumericLiteral:          "numeric_literal",
	BooleanLiteral:          "boolean_literal",
	NullLiteral:             "null_literal",
	Star:                    "star",
	Dot:                     "dot",
	Comma:                   "comma",
	Semicolon:               "semicolon",
	Colon:                   "colon",
	DoubleColon:             "double_colon",
	StartBracket:            "start_bracket",
	EndBracket:              "end_bracket",
	StartSquareBracket:      "start_square_bracket",
	EndSquareBracket:        "end_square_bracket",
	StartCurlyBracket:       "start_curly_bracket",
	EndCurlyBracket:         "end_curly_bracket",
	ComparisonOperatorToken: "comparison_operator_token",
	BinaryOperatorToken:     "binary_operator_token",
	SignToken:               "sign_token",
	Unlexable:               "unlexable",
	EndOfFile:               "end_of_file",

	File:                  "file",
	Statement:             "statement",
	StatementTerminator:   "statement_terminator",
	SelectStatement:       "select_statement",
	SelectClause:          "select_clause",
	SelectClauseElement:   "select_clause_element",
	WildcardExpression:    "wildcard_expression",
	FromClause:            "from_clause",
	FromExpression:        "from_expression",
	FromExpressionElement: "from_expression_element",
	TableExpression:       "table_expression",
	TableReference:        "table_reference",
	ObjectReference:       "object_reference",
	ColumnReference:       "column_reference",
	Alias:                 "alias",
	WhereClause:           "where_clause",
	JoinClause:            "join_clause",
	JoinOnCondition:       "join_on_condition",
	GroupByClause:         "groupby_clause",
	GroupByClauseElement:  "groupby_clause_element",
	OrderByClause:         "orderby_clause",
	OrderByClauseElement:  "orderby_clause_element",
	Expression:            "expression",
	ComparisonOperator:    "comparison_operator",
	BinaryOperator:        "binary_operator",
	Literal:               "literal",
	QuotedLiteral:         "quoted_literal",
	CastExpression:        "cast_expression",
	ShorthandCast:         "shorthand_cast",
	Bracketed:             "bracketed",
	Delimited:             "delimited",
	ColumnDefinition:      "column_definition",
	CreateTableStatement:  "create_table_statement",
	CommonTableExpression: "common_table_expression",
	WithCompoundStatement: "with_compound_statement",
	Unparsable:            "unparsable",
	MetaIndent:            "meta_indent",
	MetaDedent:            "meta_dedent",
	MetaImplicitIndent:    "meta_implicit_indent",
}

func (k SyntaxKind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "invalid_kind"
}

// IsTrivia reports whether a token kind carries no grammatical meaning:
// whitespace, newlines and comments may appear between any two grammar
// elements unless a Sequence disables gap-filling.
func (k SyntaxKind) IsTrivia() bool {
	switch k {
	case Whitespace, Newline, InlineComment, BlockComment:
		return true
	default:
		return false
	}
}

// IsCode is the complement of IsTrivia restricted to token kinds; it does
// not consider EndOfFile or Unlexable "code".
func (k SyntaxKind) IsCode() bool {
	if k.IsTrivia() {
		return false
	}
	return k != EndOfFile && k != Unlexable
}
