package lexer

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/shapesql/shapesql/kind"
)

var foldCaser = cases.Fold()

// FoldIdentifier returns s's case-insensitive comparison key:
// NFC-normalized (so a precomposed and a decomposed accented letter
// compare equal) then Unicode case-folded (wider than ASCII
// upper-casing). Safe only for whole-string equality checks — the result
// is not guaranteed to be the same byte length as s, so it must never be
// used to compute an offset back into the original text (see
// KeywordSetMatcher's comment).
func FoldIdentifier(s string) string {
	return foldCaser.String(norm.NFC.String(s))
}

// MatchFn reports how many leading bytes of s a pattern claims, and
// whether it claims any at all. It is the uniform shape every matcher
// variant (literal, regex, or user function) is reduced to.
type MatchFn func(s string) (n int, ok bool)

// Matcher is one lexer rule. Matchers are tried in declared order at the
// current cursor; the first one returning a non-empty match wins.
type Matcher struct {
	Name    string
	Kind    kind.SyntaxKind
	Pattern MatchFn

	// Subdivider, if set, re-lexes a successful match's text, splitting
	// it into multiple tokens (e.g. a terminator run split on ";").
	Subdivider MatchFn
	// SubdividerKind is the SyntaxKind given to each piece Subdivider
	// splits off.
	SubdividerKind kind.SyntaxKind

	// PostSubdivider, if set, is applied repeatedly to the trailing
	// residue left once Subdivider stops matching; its pieces get
	// PostSubdividerKind, and any remainder keeps the matcher's Kind.
	PostSubdivider     MatchFn
	PostSubdividerKind kind.SyntaxKind
}

// LiteralMatcher matches one fixed string exactly, case-sensitively.
func LiteralMatcher(name string, k kind.SyntaxKind, literal string) Matcher {
	return Matcher{
		Name: name,
		Kind: k,
		Pattern: func(s string) (int, bool) {
			if strings.HasPrefix(s, literal) {
				return len(literal), true
			}
			return 0, false
		},
	}
}

// KeywordSetMatcher matches the longest word in words that is a prefix of
// the input and is not itself followed by another identifier character
// (so "SELECTOR" does not match keyword "SELECT"). Comparison is
// case-insensitive per SQL's default identifier folding.
func KeywordSetMatcher(name string, k kind.SyntaxKind, words []string) Matcher {
	// Uppercasing (not the fuller FoldIdentifier) here is deliberate:
	// matchLongest reports a byte offset into its input, which the caller
	// then slices out of the ORIGINAL s; FoldIdentifier can change a
	// string's byte length (Unicode case folding is not length-preserving
	// in general), which would desync that offset. strings.ToUpper is
	// length-preserving for the ASCII keyword spellings this matcher is
	// built from. FoldIdentifier is used instead wherever only
	// whole-string equality is needed, never for computing a match length.
	upper := make([]string, len(words))
	for i, w := range words {
		upper[i] = strings.ToUpper(w)
	}
	trie := newKeywordTrie(upper)
	return Matcher{
		Name: name,
		Kind: k,
		Pattern: func(s string) (int, bool) {
			n, ok := trie.matchLongest(strings.ToUpper(s))
			if !ok {
				return 0, false
			}
			if n < len(s) && isIdentCont(rune(s[n])) {
				return 0, false
			}
			return n, true
		},
	}
}

// RegexMatcher wraps a standard-library regexp (RE2), anchored at the
// start of the input.
func RegexMatcher(name string, k kind.SyntaxKind, pattern string) Matcher {
	re := regexp.MustCompile(`\A(?:` + pattern + `)`)
	return Matcher{
		Name: name,
		Kind: k,
		Pattern: func(s string) (int, bool) {
			loc := re.FindStringIndex(s)
			if loc == nil || loc[1] == 0 {
				return 0, false
			}
			return loc[1], true
		},
	}
}

// Regex2Matcher wraps a github.com/dlclark/regexp2 pattern, for matchers
// that need lookaround or backreferences RE2 cannot express (e.g. a block
// comment that must not stop at an escaped delimiter).
func Regex2Matcher(name string, k kind.SyntaxKind, pattern string) Matcher {
	re := regexp2.MustCompile(`\A(?:`+pattern+`)`, regexp2.None)
	return Matcher{
		Name: name,
		Kind: k,
		Pattern: func(s string) (int, bool) {
			m, err := re.FindStringMatch(s)
			if err != nil || m == nil || m.Length == 0 {
				return 0, false
			}
			return m.Length, true
		},
	}
}

// FuncMatcher wraps an arbitrary user-supplied MatchFn.
func FuncMatcher(name string, k kind.SyntaxKind, fn MatchFn) Matcher {
	return Matcher{Name: name, Kind: k, Pattern: fn}
}
