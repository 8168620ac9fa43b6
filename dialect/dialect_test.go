package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapesql/shapesql/dialect"
	"github.com/shapesql/shapesql/grammar"
	"github.com/shapesql/shapesql/kind"
	"github.com/shapesql/shapesql/lexer"
)

// Expand must reject a dialect with a dangling Ref — a ClosureError,
// the only fatal error path in this module.
func TestExpand_RejectsDanglingRef(t *testing.T) {
	d := dialect.New("broken")
	d.Add("Root", grammar.Ref("DoesNotExist"))

	_, err := dialect.Expand(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DoesNotExist")
}

func TestExpand_AcceptsClosedGraph(t *testing.T) {
	d := dialect.New("closed")
	d.Add("A", grammar.KeywordParser("X"))
	d.Add("Root", grammar.Ref("A"))

	expanded, err := dialect.Expand(d)
	require.NoError(t, err)
	_, ok := expanded.LookupGrammar("Root")
	assert.True(t, ok)
}

// Copy derives an independent dialect: overriding a grammar on the copy
// must not affect the original.
func TestDialect_CopyIsIndependent(t *testing.T) {
	base := dialect.New("base")
	base.Add("Greeting", grammar.KeywordParser("HELLO"))

	derived := base.Copy("derived")
	derived.ReplaceGrammar("Greeting", grammar.KeywordParser("HOWDY"))

	baseGreeting, _ := base.LookupGrammar("Greeting")
	derivedGreeting, _ := derived.LookupGrammar("Greeting")
	assert.NotEqual(t, baseGreeting.String(), derivedGreeting.String())
}

// AddGenerator's Matchable is built lazily at Expand time, from the
// dialect's own keyword sets rather than a value baked in at Add time.
func TestExpand_ResolvesGeneratorAgainstFinalKeywordSets(t *testing.T) {
	d := dialect.New("generated")
	reserved := d.SetsMut("reserved_keywords")
	reserved["SELECT"] = struct{}{}
	unreserved := d.SetsMut("unreserved_keywords")
	unreserved["COUNT"] = struct{}{}

	d.AddGenerator("Root", func(v *dialect.View) grammar.Matchable {
		choices := []grammar.Matchable{grammar.TypedParser(kind.Code)}
		for w := range v.KeywordSet("unreserved_keywords") {
			if _, isReserved := v.KeywordSet("reserved_keywords")[w]; !isReserved {
				choices = append(choices, grammar.KeywordParser(w))
			}
		}
		return grammar.OneOf(choices...)
	})

	expanded, err := dialect.Expand(d)
	require.NoError(t, err)
	root, ok := expanded.LookupGrammar("Root")
	require.True(t, ok)
	assert.Contains(t, root.String(), `"count"`)
	assert.NotContains(t, root.String(), `"select"`)
}

func TestDialect_InsertLexerMatchersOrdering(t *testing.T) {
	d := dialect.New("lex")
	a := lexer.LiteralMatcher("a", kind.Code, "a")
	b := lexer.LiteralMatcher("b", kind.Code, "b")
	c := lexer.LiteralMatcher("c", kind.Code, "c")
	d.InsertLexerMatchers("", a, c)
	d.InsertLexerMatchers("a", b)

	names := make([]string, 0, 3)
	for _, m := range d.LexerMatchers() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}
