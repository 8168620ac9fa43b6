// Package postgres derives Postgres's dialect from ansi by copy-on-extend.
// Its one grammar override activates the `expr::type` shorthand cast ansi
// leaves registered but disabled.
package postgres

import (
	"github.com/shapesql/shapesql/dialect"
	"github.com/shapesql/shapesql/dialects/ansi"
	"github.com/shapesql/shapesql/grammar"
	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
)

// postgresReservedKeywords are added on top of ansi's reserved set.
var postgresReservedKeywords = []string{
	"RETURNING", "ILIKE", "SIMILAR", "ONLY",
}

// Dialect builds the unexpanded Postgres dialect: call dialect.Expand on
// the result before using it to parse.
func Dialect() *dialect.Dialect {
	d := ansi.Dialect().Copy("postgres")

	reserved := d.SetsMut("reserved_keywords")
	for _, w := range postgresReservedKeywords {
		reserved[w] = struct{}{}
	}

	// Matchers run in priority order and the first match wins, so "::"
	// must be inserted right after "code" (i.e. before "colon") or the
	// plain colon matcher would claim the first ':' and leave a dangling
	// second one.
	d.InsertLexerMatchers("code", lexer.LiteralMatcher("double_colon", kind.DoubleColon, "::"))

	// Flip on the shorthand cast production ansi registers as Nothing():
	// ansi disables a production by replacing it with Nothing(), and a
	// derived dialect re-enables it with ReplaceGrammar, run in reverse.
	// The cast wraps its operand, not just the "::type" suffix, so the
	// resulting node has the cast target (e.g. a column reference) as a
	// child rather than as an unwrapped sibling.
	d.ReplaceGrammar("ShorthandCastSegment", grammar.Node(kind.ShorthandCast,
		grammar.Sequence(
			grammar.Optional(grammar.TypedParser(kind.SignToken)),
			grammar.Ref("PrimaryExpressionSegment"),
			grammar.TypedParser(kind.DoubleColon),
			grammar.Ref("DatatypeSegment"),
		),
	))

	return d
}
