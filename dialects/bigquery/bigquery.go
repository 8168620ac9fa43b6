// Package bigquery derives BigQuery's dialect from ansi by copy-on-extend:
// everything not overridden here behaves exactly as ansi defines it.
package bigquery

import (
	"github.com/shapesql/shapesql/dialect"
	"github.com/shapesql/shapesql/dialects/ansi"
	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
)

// bigqueryReservedKeywords are added on top of ansi's reserved set.
var bigqueryReservedKeywords = []string{
	"QUALIFY", "UNNEST", "STRUCT", "ARRAY", "EXCEPT", "REPLACE",
}

// Dialect builds the unexpanded BigQuery dialect: call dialect.Expand on
// the result before using it to parse.
func Dialect() *dialect.Dialect {
	d := ansi.Dialect().Copy("bigquery")

	reserved := d.SetsMut("reserved_keywords")
	for _, w := range bigqueryReservedKeywords {
		reserved[w] = struct{}{}
	}

	// A BigQuery project-id segment may contain hyphens
	// (`my-project.my_dataset.my_table`). Matchers run in priority order
	// and the first match wins, so this is inserted right after
	// "back_quote", ahead of ansi's numeric, keyword and plain "code"
	// matchers, or "code" would already have claimed the run up to the
	// first hyphen.
	d.InsertLexerMatchers("back_quote", lexer.RegexMatcher("hyphenated_identifier", kind.Code, `[\p{L}_][\p{L}\p{N}_$]*(?:-[\p{L}\p{N}_$]+)+`))

	return d
}
